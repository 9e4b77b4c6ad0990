// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// CredentialKind tags the representation held by a [CredentialHash].
type CredentialKind string

const (
	// CredentialHashed marks a salted PBKDF2-HMAC-SHA256 verifier.
	CredentialHashed CredentialKind = "pbkdf2-sha256"

	// CredentialLegacyPlain marks a PIN imported before hashing was
	// introduced. It is upgraded to [CredentialHashed] on the next
	// successful login.
	CredentialLegacyPlain CredentialKind = "plain"

	// CredentialUnreadable marks a stored document that did not decode. It
	// never verifies.
	CredentialUnreadable CredentialKind = "unreadable"
)

// CredentialHash is a tagged union of the two stored PIN representations:
//
//   - Hashed{Salt, Key, Iterations} when Kind == CredentialHashed
//   - LegacyPlain{Plain} when Kind == CredentialLegacyPlain
//
// Salt and Key are standard base64. Any other Kind, or a Hashed record whose
// fields do not decode, is treated as corrupt by the hasher.
type CredentialHash struct {
	Kind       CredentialKind `json:"kind"`
	Salt       string         `json:"salt,omitempty"`
	Key        string         `json:"key,omitempty"`
	Iterations int            `json:"iterations,omitempty"`
	Plain      string         `json:"value,omitempty"`

	// raw keeps the original column text of an unreadable record so that
	// writing the profile back does not destroy it.
	raw string
}

// Hashed builds a hashed credential record.
func Hashed(salt, key string, iterations int) CredentialHash {
	return CredentialHash{Kind: CredentialHashed, Salt: salt, Key: key, Iterations: iterations}
}

// LegacyPlain builds a plaintext credential record. Only importers create
// these.
func LegacyPlain(value string) CredentialHash {
	return CredentialHash{Kind: CredentialLegacyPlain, Plain: value}
}

// IsHashed reports whether c is a hashed record.
func (c CredentialHash) IsHashed() bool { return c.Kind == CredentialHashed }

// IsLegacy reports whether c is a legacy plaintext record.
func (c CredentialHash) IsLegacy() bool { return c.Kind == CredentialLegacyPlain }

// IsZero reports whether c carries no credential at all.
func (c CredentialHash) IsZero() bool { return c == CredentialHash{} }

// IsUnreadable reports whether c came from a stored document that did not
// decode.
func (c CredentialHash) IsUnreadable() bool { return c.Kind == CredentialUnreadable }

// Value implements [driver.Valuer]; the record is stored as a JSON document.
// An unreadable record is written back unchanged.
func (c CredentialHash) Value() (driver.Value, error) {
	if c.IsUnreadable() {
		return c.raw, nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements [sql.Scanner] for JSON documents stored as text or bytes.
// A document that does not decode yields an unreadable record instead of a
// scan error, so the profile row still loads and verification reports the
// credential as corrupt.
func (c *CredentialHash) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c = CredentialHash{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported credential column type %T", src)
	}

	var decoded CredentialHash
	if err := json.Unmarshal(raw, &decoded); err != nil {
		*c = CredentialHash{Kind: CredentialUnreadable, raw: string(raw)}
		return nil
	}
	*c = decoded
	return nil
}
