package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-mapping-keeper/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidTokenParams = errors.New("invalid params for generating JWT token")
	ErrEmptySubject       = errors.New("empty subject")
	ErrInvalidAuthHeader  = errors.New("invalid authorization header")
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT for the admin API.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the server that issued the token
//   - Subject   (sub): the admin the token is issued for
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required.
//
//	token, err := utils.GenerateJWTToken("mapping-keeper", "ops", time.Hour, "secret")
func GenerateJWTToken(issuer, admin string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || admin == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, ErrInvalidTokenParams
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   admin,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, Admin: admin}, nil
}

// ValidateAndParseJWTToken checks the signature, issuer and expiry of
// tokenString and returns the admin named in its subject. Tokens signed with
// anything but HMAC are refused.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	admin, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if admin == "" {
		return models.Token{}, ErrEmptySubject
	}

	return models.Token{Token: token, SignedString: tokenString, Admin: admin}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthHeader
	}
	return parts[1], nil
}
