package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"knead/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateToken creates a signed JWT with the given subject (user ID) and role.
// The token expires after the specified duration.
func GenerateToken(subject, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func sessionKey(userID string) string {
	return fmt.Sprintf("authsession:%s", userID)
}

// PinAuthToken stores the token's hash so a later sign-in or revocation
// invalidates earlier tokens. One active session per account.
func PinAuthToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	return GetCacheClient().Set(ctx, sessionKey(userID), HashToken(token), ttl).Err()
}

// VerifyPinnedToken reports whether the token is the account's current
// session.
func VerifyPinnedToken(ctx context.Context, userID, token string) bool {
	stored, err := GetCacheClient().Get(ctx, sessionKey(userID)).Result()
	return err == nil && stored == HashToken(token)
}

// RevokeAuthToken drops the account's pinned session.
func RevokeAuthToken(ctx context.Context, userID string) error {
	return GetCacheClient().Del(ctx, sessionKey(userID)).Err()
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractClaimsFromToken extracts the subject and role from a valid JWT.
func ExtractClaimsFromToken(tokenString string) (subject, role string, err error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	subject, ok = claims["sub"].(string)
	if !ok || subject == "" {
		return "", "", errors.New("token does not contain a valid 'sub' claim")
	}
	role, _ = claims["role"].(string)

	return subject, role, nil
}
