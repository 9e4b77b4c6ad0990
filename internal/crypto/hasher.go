// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"

	"github.com/MKhiriev/kiosk-gate/models"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/sync/semaphore"
)

const (
	// SaltSize is the length of the random salt in bytes.
	SaltSize = 16
	// KeySize is the length of the derived key in bytes.
	KeySize = 32
	// Iterations is the PBKDF2-HMAC-SHA256 round count of new records.
	Iterations = 100_000
)

// pbkdf2Hasher is the private implementation of [CredentialHasher].
type pbkdf2Hasher struct {
	sem        *semaphore.Weighted
	iterations int

	// derivations counts completed key derivations.
	derivations atomic.Int64
}

// NewCredentialHasher constructs a [CredentialHasher] that runs at most
// concurrency derivations at once. A non-positive concurrency means
// GOMAXPROCS.
func NewCredentialHasher(concurrency int) CredentialHasher {
	return newPBKDF2Hasher(concurrency, Iterations)
}

func newPBKDF2Hasher(concurrency, iterations int) *pbkdf2Hasher {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &pbkdf2Hasher{
		sem:        semaphore.NewWeighted(int64(concurrency)),
		iterations: iterations,
	}
}

// Hash implements [CredentialHasher].
func (h *pbkdf2Hasher) Hash(ctx context.Context, pin string) (models.CredentialHash, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return models.CredentialHash{}, fmt.Errorf("generate salt: %w", err)
	}

	key, err := h.derive(ctx, pin, salt, h.iterations)
	if err != nil {
		return models.CredentialHash{}, err
	}

	return models.Hashed(
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key),
		h.iterations,
	), nil
}

// Verify implements [CredentialHasher]. Hashed records are re-derived with
// their own salt and round count and compared in constant time. Legacy
// plaintext records are compared directly and always ask for a rehash on
// success. A hashed record with a round count other than the current one is
// also rehashed.
func (h *pbkdf2Hasher) Verify(ctx context.Context, pin string, cred models.CredentialHash) (Verification, error) {
	switch cred.Kind {
	case models.CredentialHashed:
		salt, want, err := decodeHashed(cred)
		if err != nil {
			return Verification{}, err
		}

		got, err := h.derive(ctx, pin, salt, cred.Iterations)
		if err != nil {
			return Verification{}, err
		}

		ok := subtle.ConstantTimeCompare(got, want) == 1
		return Verification{OK: ok, NeedsRehash: ok && cred.Iterations != h.iterations}, nil

	case models.CredentialLegacyPlain:
		if cred.Plain == "" {
			return Verification{}, fmt.Errorf("%w: empty legacy value", ErrCorruptCredential)
		}
		ok := subtle.ConstantTimeCompare([]byte(pin), []byte(cred.Plain)) == 1
		return Verification{OK: ok, NeedsRehash: ok}, nil

	default:
		return Verification{}, fmt.Errorf("%w: unknown kind %q", ErrCorruptCredential, cred.Kind)
	}
}

// Derivations returns the number of key derivations performed so far.
func (h *pbkdf2Hasher) Derivations() int64 {
	return h.derivations.Load()
}

// derive runs PBKDF2 on its own goroutine under the concurrency bound. If
// ctx is done first the result is discarded and ctx.Err() returned.
func (h *pbkdf2Hasher) derive(ctx context.Context, pin string, salt []byte, iterations int) ([]byte, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	done := make(chan []byte, 1)
	go func() {
		defer h.sem.Release(1)
		key := pbkdf2.Key([]byte(pin), salt, iterations, KeySize, sha256.New)
		h.derivations.Add(1)
		done <- key
	}()

	select {
	case key := <-done:
		return key, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func decodeHashed(cred models.CredentialHash) (salt, key []byte, err error) {
	if cred.Iterations <= 0 {
		return nil, nil, fmt.Errorf("%w: iteration count %d", ErrCorruptCredential, cred.Iterations)
	}

	salt, err = base64.StdEncoding.DecodeString(cred.Salt)
	if err != nil || len(salt) == 0 {
		return nil, nil, fmt.Errorf("%w: undecodable salt", ErrCorruptCredential)
	}

	key, err = base64.StdEncoding.DecodeString(cred.Key)
	if err != nil || len(key) != KeySize {
		return nil, nil, fmt.Errorf("%w: undecodable key", ErrCorruptCredential)
	}

	return salt, key, nil
}
