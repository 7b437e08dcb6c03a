package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Stripe configuration.
	StripeKey           string `mapstructure:"STRIPE_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`

	// Geocoding provider.
	GeocoderBaseURL string `mapstructure:"GEOCODER_BASE_URL"`

	// Service area: circular radius around a fixed centre point.
	ServiceCentreLat   float64 `mapstructure:"SERVICE_CENTRE_LAT"`
	ServiceCentreLng   float64 `mapstructure:"SERVICE_CENTRE_LNG"`
	ServiceRadiusMiles float64 `mapstructure:"SERVICE_RADIUS_MILES"`
	NearbyBranchLimit  int     `mapstructure:"NEARBY_BRANCH_LIMIT"`

	// Scheduling parameters.
	OperatingOpen   string  `mapstructure:"OPERATING_OPEN"`
	OperatingClose  string  `mapstructure:"OPERATING_CLOSE"`
	SlotIntervalMin int     `mapstructure:"SLOT_INTERVAL_MIN"`
	TravelBufferMin int     `mapstructure:"TRAVEL_BUFFER_MIN"`
	MinLeadTimeMin  int     `mapstructure:"MIN_LEAD_TIME_MIN"`
	PlatformFeeRate float64 `mapstructure:"PLATFORM_FEE_RATE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_LOCK_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GEOCODER_BASE_URL", "https://api.postcodes.io")

	// Central London, 10 mile service radius.
	viper.SetDefault("SERVICE_CENTRE_LAT", 51.5074)
	viper.SetDefault("SERVICE_CENTRE_LNG", -0.1278)
	viper.SetDefault("SERVICE_RADIUS_MILES", 10.0)
	viper.SetDefault("NEARBY_BRANCH_LIMIT", 3)

	viper.SetDefault("OPERATING_OPEN", "07:00")
	viper.SetDefault("OPERATING_CLOSE", "21:30")
	viper.SetDefault("SLOT_INTERVAL_MIN", 30)
	viper.SetDefault("TRAVEL_BUFFER_MIN", 15)
	viper.SetDefault("MIN_LEAD_TIME_MIN", 60)
	viper.SetDefault("PLATFORM_FEE_RATE", 0.10)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
