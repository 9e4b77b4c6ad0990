package crypto

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/kiosk-gate/models"
)

// fastHasher keeps the round count low; the algorithm is the same.
func fastHasher() *pbkdf2Hasher {
	return newPBKDF2Hasher(2, 1000)
}

func TestHash_VerifyRoundTrip(t *testing.T) {
	h := fastHasher()
	ctx := context.Background()

	for _, pin := range []string{"7491", "0000", "1234", "9999"} {
		cred, err := h.Hash(ctx, pin)
		if err != nil {
			t.Fatalf("Hash(%q) error: %v", pin, err)
		}
		if !cred.IsHashed() {
			t.Fatalf("Hash(%q) kind = %q, want %q", pin, cred.Kind, models.CredentialHashed)
		}

		v, err := h.Verify(ctx, pin, cred)
		if err != nil {
			t.Fatalf("Verify(%q) error: %v", pin, err)
		}
		if !v.OK || v.NeedsRehash {
			t.Fatalf("Verify(%q) = %+v, want OK without rehash", pin, v)
		}
	}
}

func TestVerify_WrongPIN(t *testing.T) {
	h := fastHasher()
	ctx := context.Background()

	cred, err := h.Hash(ctx, "7491")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	v, err := h.Verify(ctx, "7492", cred)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if v.OK {
		t.Fatalf("Verify accepted a wrong PIN")
	}
}

func TestHash_DistinctSalts(t *testing.T) {
	h := fastHasher()
	ctx := context.Background()

	c1, err := h.Hash(ctx, "7491")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	c2, err := h.Hash(ctx, "7491")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if c1.Salt == c2.Salt || c1.Key == c2.Key {
		t.Fatalf("two hashes of the same PIN share salt or key")
	}

	salt, _ := base64.StdEncoding.DecodeString(c1.Salt)
	key, _ := base64.StdEncoding.DecodeString(c1.Key)
	if len(salt) != SaltSize || len(key) != KeySize {
		t.Fatalf("salt/key length = %d/%d, want %d/%d", len(salt), len(key), SaltSize, KeySize)
	}

	for _, c := range []models.CredentialHash{c1, c2} {
		v, err := h.Verify(ctx, "7491", c)
		if err != nil || !v.OK {
			t.Fatalf("Verify = %+v, %v; want OK", v, err)
		}
	}
}

func TestNewCredentialHasher_DefaultIterations(t *testing.T) {
	h := NewCredentialHasher(0)

	cred, err := h.Hash(context.Background(), "7491")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if cred.Iterations != Iterations {
		t.Fatalf("iterations = %d, want %d", cred.Iterations, Iterations)
	}
}

func TestVerify_LegacyPlain(t *testing.T) {
	h := fastHasher()
	ctx := context.Background()
	cred := models.LegacyPlain("4821")

	v, err := h.Verify(ctx, "4821", cred)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !v.OK || !v.NeedsRehash {
		t.Fatalf("Verify = %+v, want OK with rehash", v)
	}

	v, err = h.Verify(ctx, "4822", cred)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if v.OK || v.NeedsRehash {
		t.Fatalf("Verify = %+v, want mismatch", v)
	}

	if got := h.Derivations(); got != 0 {
		t.Fatalf("legacy verification derived %d keys, want 0", got)
	}
}

func TestVerify_OutdatedIterationsNeedRehash(t *testing.T) {
	ctx := context.Background()
	old := newPBKDF2Hasher(1, 500)
	cur := fastHasher()

	cred, err := old.Hash(ctx, "7491")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	v, err := cur.Verify(ctx, "7491", cred)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !v.OK || !v.NeedsRehash {
		t.Fatalf("Verify = %+v, want OK with rehash", v)
	}
}

func TestVerify_CorruptRecords(t *testing.T) {
	h := fastHasher()
	ctx := context.Background()

	good, err := h.Hash(ctx, "7491")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	shortKey := good
	shortKey.Key = base64.StdEncoding.EncodeToString([]byte("short"))
	badSalt := good
	badSalt.Salt = "%%%not-base64"
	noIterations := good
	noIterations.Iterations = 0

	var unreadable models.CredentialHash
	if err := unreadable.Scan(`{"kind":"pbkdf2-sha256","salt":"c2Fs`); err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	tests := map[string]models.CredentialHash{
		"unknown kind":    {Kind: "md5", Plain: "x"},
		"empty record":    {},
		"short key":       shortKey,
		"bad salt":        badSalt,
		"zero iterations": noIterations,
		"empty legacy":    models.LegacyPlain(""),
		"unreadable":      unreadable,
	}

	for name, cred := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := h.Verify(ctx, "7491", cred)
			if !errors.Is(err, ErrCorruptCredential) {
				t.Fatalf("Verify error = %v, want ErrCorruptCredential", err)
			}
		})
	}
}

func TestVerify_ContextCancelledWhileWaiting(t *testing.T) {
	h := newPBKDF2Hasher(1, 1000)
	cred, err := h.Hash(context.Background(), "7491")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	// Occupy the only slot so the next derivation has to wait.
	if err := h.sem.Acquire(context.Background(), 1); err != nil {
		t.Fatalf("Acquire error: %v", err)
	}
	defer h.sem.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = h.Verify(ctx, "7491", cred)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Verify error = %v, want context.DeadlineExceeded", err)
	}
}

func TestDerivations_Counts(t *testing.T) {
	h := fastHasher()
	ctx := context.Background()

	cred, _ := h.Hash(ctx, "7491")
	_, _ = h.Verify(ctx, "0000", cred)

	if got := h.Derivations(); got != 2 {
		t.Fatalf("Derivations = %d, want 2", got)
	}
}
