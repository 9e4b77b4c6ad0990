package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/kiosk-gate/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken creates a signed HMAC-SHA256 bearer token for session.
//
// The token carries:
//   - Issuer    (iss): issuer
//   - Subject   (sub): the profile ID
//   - ID        (jti): the session ID
//   - IssuedAt  (iat) and ExpiresAt (exp): taken from the session
//   - dev / kiosk: the device the slot belongs to and the kiosk flag
//
// Returns an error if issuer, signKey or the session identifiers are empty.
func GenerateSessionToken(issuer string, session models.AuthSession, signKey string) (models.Token, error) {
	if issuer == "" || signKey == "" || session.ID == "" || session.ProfileID == "" {
		return models.Token{}, errors.New("invalid params for generating session token")
	}

	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   session.ProfileID,
			ID:        session.ID,
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
		DeviceID: session.DeviceID,
		Kiosk:    session.IsKiosk,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing session token: %w", err)
	}

	return models.Token{Token: token, Claims: claims, SignedString: tokenString}, nil
}

// ValidateAndParseSessionToken verifies the signature, issuer and expiry of
// tokenString and returns its claims. Expiry is judged against now, so
// callers with an injected clock get consistent results.
func ValidateAndParseSessionToken(tokenString, signKey, issuer string, now func() time.Time) (models.Token, error) {
	var claims models.SessionClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" || claims.ID == "" {
		return models.Token{}, errors.New("token has no subject or id")
	}

	return models.Token{Token: token, Claims: claims, SignedString: tokenString}, nil
}

// ParseSessionTokenIgnoringExpiry verifies the signature and issuer of
// tokenString but accepts it after its expiry. Logout uses it so that a
// device can still give up a slot whose token has lapsed.
func ParseSessionTokenIgnoringExpiry(tokenString, signKey, issuer string) (models.Token, error) {
	var claims models.SessionClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred parsing token: %w", err)
	}

	if claims.Issuer != issuer {
		return models.Token{}, fmt.Errorf("unexpected token issuer %q", claims.Issuer)
	}
	if claims.Subject == "" || claims.ID == "" {
		return models.Token{}, errors.New("token has no subject or id")
	}

	return models.Token{Token: token, Claims: claims, SignedString: tokenString}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <t>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
