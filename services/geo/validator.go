package geo

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strings"

	"knead/config"
	"knead/models"
)

// Validator answers whether a postcode falls inside the service area.
type Validator interface {
	Validate(ctx context.Context, postcode string) (*models.PostcodeValidation, error)
}

// postcodePattern is a permissive UK postcode shape check; the geocoding
// provider is the real authority.
var postcodePattern = regexp.MustCompile(`(?i)^[A-Z]{1,2}[0-9][A-Z0-9]?\s*[0-9][A-Z]{2}$`)

// DefaultValidator computes distance from the fixed service centre and
// classifies the postcode against the configured radius. It is a pure
// function of its inputs plus the static branch registry; the only side
// effect is the geocoding call.
type DefaultValidator struct {
	Geocoder Geocoder
	Branches []models.Branch

	CentreLat   float64
	CentreLng   float64
	RadiusMiles float64
	BranchLimit int
}

func NewDefaultValidator(geocoder Geocoder) *DefaultValidator {
	cfg := config.AppConfig
	return &DefaultValidator{
		Geocoder:    geocoder,
		Branches:    DefaultBranches,
		CentreLat:   cfg.ServiceCentreLat,
		CentreLng:   cfg.ServiceCentreLng,
		RadiusMiles: cfg.ServiceRadiusMiles,
		BranchLimit: cfg.NearbyBranchLimit,
	}
}

// Validate resolves the postcode and classifies it. Malformed or unknown
// postcodes produce IsValid=false with a message, never an error; only a
// provider outage surfaces as ErrGeocodeUnavailable.
func (v *DefaultValidator) Validate(ctx context.Context, postcode string) (*models.PostcodeValidation, error) {
	trimmed := strings.TrimSpace(postcode)
	if !postcodePattern.MatchString(trimmed) {
		return &models.PostcodeValidation{
			IsValid: false,
			Message: "please enter a valid postcode",
		}, nil
	}

	lat, lng, err := v.Geocoder.Lookup(ctx, trimmed)
	if err != nil {
		if errors.Is(err, ErrUnknownPostcode) {
			return &models.PostcodeValidation{
				IsValid: false,
				Message: "postcode not recognised",
			}, nil
		}
		return nil, err
	}

	distance := math.Round(haversineMiles(v.CentreLat, v.CentreLng, lat, lng)*100) / 100

	result := &models.PostcodeValidation{
		IsValid:            true,
		DistanceFromCenter: distance,
		// Boundary is inclusive: exactly on the radius is in area.
		WithinServiceArea: distance <= v.RadiusMiles,
		NearbyBranches:    []models.Branch{},
	}
	if !result.WithinServiceArea {
		result.NearbyBranches = nearestBranches(v.Branches, lat, lng, v.BranchLimit)
		result.Message = "this address is outside our current service area"
	}
	return result, nil
}
