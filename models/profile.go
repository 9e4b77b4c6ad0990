// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
	"unicode"
)

// Role is the enumerated permission level of a profile.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleOperator, RoleViewer:
		return true
	}
	return false
}

// UserProfile is the identity unit of the kiosk. It is owned by the profile
// registry; other components refer to it by ID and re-read it on every call.
type UserProfile struct {
	// ID is the unique, server-generated profile identifier (UUIDv7).
	ID string `json:"id"`

	// Name is the display name. Unique across all profiles, ignoring case.
	Name string `json:"name"`

	// Initials is derived from Name at signup and used as the default avatar.
	Initials string `json:"initials"`

	Role Role `json:"role"`

	// Credential is the stored PIN verifier. Never sent to clients.
	Credential CredentialHash `json:"credential"`

	// Active is false for soft-deactivated profiles. Profiles are never
	// physically deleted.
	Active bool `json:"active"`

	Suspended       bool       `json:"suspended"`
	SuspendedReason string     `json:"suspended_reason,omitempty"`
	SuspendedBy     string     `json:"suspended_by,omitempty"`
	SuspendedAt     *time.Time `json:"suspended_at,omitempty"`

	LoginCount  int64      `json:"login_count"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	LastSeenAt  *time.Time `json:"last_seen_at,omitempty"`
	Online      bool       `json:"online"`

	// PinResetRequired is set by an administrative PIN reset and cleared by
	// the next successful PIN change.
	PinResetRequired bool `json:"pin_reset_required"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the UserProfile model.
func (p UserProfile) TableName() string {
	return "profiles"
}

// Public returns a copy of p that is safe to hand to clients: the
// credential is cleared.
func (p UserProfile) Public() UserProfile {
	p.Credential = CredentialHash{}
	return p
}

// NormalizeName trims surrounding whitespace from a display name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// NameKey is the case-insensitive lookup key used for name uniqueness.
func NameKey(name string) string {
	return strings.ToLower(NormalizeName(name))
}

// Initials derives up to two upper-case initials from a display name:
// the first letter of the first two words, or the first two letters of a
// single-word name.
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}

	var out []rune
	if len(words) == 1 {
		for _, r := range words[0] {
			if len(out) == 2 {
				break
			}
			out = append(out, unicode.ToUpper(r))
		}
		return string(out)
	}

	for _, w := range words[:2] {
		for _, r := range w {
			out = append(out, unicode.ToUpper(r))
			break
		}
	}
	return string(out)
}
