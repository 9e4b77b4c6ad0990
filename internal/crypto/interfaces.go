package crypto

import (
	"context"

	"github.com/MKhiriev/kiosk-gate/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/credential_hasher_mock.go -package=mock

// CredentialHasher derives and verifies one-way PIN verifiers.
//
// Both methods are the single suspension point of the authentication path:
// the key derivation runs off the calling goroutine and the call returns
// ctx.Err() as soon as ctx is done.
type CredentialHasher interface {
	// Hash derives a fresh [models.CredentialHashed] record for pin with a
	// new random salt. Two calls for the same pin never return the same
	// record.
	Hash(ctx context.Context, pin string) (models.CredentialHash, error)

	// Verify checks pin against a stored record. A malformed record yields
	// an error wrapping [ErrCorruptCredential]; a wrong PIN is reported as
	// Verification.OK == false with a nil error.
	Verify(ctx context.Context, pin string, cred models.CredentialHash) (Verification, error)
}

// Verification is the outcome of [CredentialHasher.Verify].
type Verification struct {
	// OK is true when pin matches the stored record.
	OK bool

	// NeedsRehash is true when the match succeeded against a record that
	// must be replaced by a fresh [CredentialHasher.Hash] result, such as a
	// legacy plaintext record.
	NeedsRehash bool
}
