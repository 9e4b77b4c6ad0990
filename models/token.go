package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the claim set carried by a session bearer token.
//
// Subject holds the profile ID and ID ("jti") the session ID. DeviceID binds
// the token to the device slot it was issued for.
type SessionClaims struct {
	jwt.RegisteredClaims

	// DeviceID is the kiosk device the session was issued on.
	DeviceID string `json:"dev"`

	// Kiosk reports whether the session was issued in kiosk mode.
	Kiosk bool `json:"kiosk,omitempty"`
}

// Token wraps a parsed or freshly signed session token.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// Claims is the decoded claim set.
	Claims SessionClaims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// ProfileID returns the subject claim.
func (t *Token) ProfileID() string {
	return t.Claims.Subject
}

// SessionID returns the "jti" claim.
func (t *Token) SessionID() string {
	return t.Claims.ID
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
