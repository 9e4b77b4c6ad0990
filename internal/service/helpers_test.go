package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/kiosk-gate/internal/config"
	"github.com/MKhiriev/kiosk-gate/internal/crypto"
	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/store"
	"github.com/MKhiriev/kiosk-gate/models"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%04d", g.n)
}

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			TokenSignKey: "test-sign-key",
			TokenIssuer:  "kiosk-gate",
			ResetPIN:     "0000",
			Version:      "test",
		},
	}
}

type fixture struct {
	svc     *Services
	storage store.Storage
	hasher  crypto.CredentialHasher
	clock   *fakeClock

	mu     sync.Mutex
	events []models.Event
}

// newFixture wires the services over a memory-only state store. A nil
// hasher selects the real PBKDF2 hasher.
func newFixture(t *testing.T, hasher crypto.CredentialHasher) *fixture {
	t.Helper()

	storage, err := store.NewStateStore("", logger.Nop())
	require.NoError(t, err)

	if hasher == nil {
		hasher = crypto.NewCredentialHasher(2)
	}

	f := &fixture{storage: storage, hasher: hasher, clock: newFakeClock(t0)}

	f.svc, err = NewServices(storage, hasher, testConfig(), models.AppBuildInfo{}, logger.Nop(),
		WithClock(f.clock), WithIDGenerator(&seqIDs{}))
	require.NoError(t, err)

	f.svc.Notifier.Subscribe(func(ev models.Event) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.events = append(f.events, ev)
	})

	return f
}

// addProfile stores a profile directly, bypassing signup.
func (f *fixture) addProfile(t *testing.T, id, name string, role models.Role, cred models.CredentialHash) models.UserProfile {
	t.Helper()

	p := models.UserProfile{
		ID:         id,
		Name:       name,
		Initials:   models.Initials(name),
		Role:       role,
		Credential: cred,
		Active:     true,
		CreatedAt:  f.clock.Now(),
		UpdatedAt:  f.clock.Now(),
	}
	require.NoError(t, f.storage.Repositories().Profiles.CreateProfile(context.Background(), p))
	return p
}

// hashed derives a real credential with the fixture hasher.
func (f *fixture) hashed(t *testing.T, pin string) models.CredentialHash {
	t.Helper()
	cred, err := f.hasher.Hash(context.Background(), pin)
	require.NoError(t, err)
	return cred
}

func (f *fixture) profile(t *testing.T, id string) models.UserProfile {
	t.Helper()
	p, err := f.storage.Repositories().Profiles.GetProfile(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (f *fixture) updateProfile(t *testing.T, p models.UserProfile) {
	t.Helper()
	require.NoError(t, f.storage.Repositories().Profiles.UpdateProfile(context.Background(), p))
}

func (f *fixture) audit(t *testing.T) []models.AuditEntry {
	t.Helper()
	entries, err := f.svc.Audit.Recent(context.Background(), 1000)
	require.NoError(t, err)
	return entries
}

func (f *fixture) countAudit(t *testing.T, action models.AuditAction) int {
	t.Helper()
	n := 0
	for _, e := range f.audit(t) {
		if e.Action == action {
			n++
		}
	}
	return n
}

func (f *fixture) countEvents(typ models.EventType) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, ev := range f.events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func (f *fixture) signup(t *testing.T, name, pin, deviceID string, role models.Role) (models.UserProfile, models.AuthSession) {
	t.Helper()
	profile, session, err := f.svc.Signup.Signup(context.Background(), models.SignupRequest{
		DeviceID: deviceID,
		Name:     name,
		PIN:      pin,
		Role:     role,
	})
	require.NoError(t, err)
	return profile, session
}

func (f *fixture) login(profileID, pin, deviceID string) (models.AuthSession, error) {
	return f.svc.Sessions.Login(context.Background(), models.LoginRequest{
		DeviceID:  deviceID,
		ProfileID: profileID,
		PIN:       pin,
	})
}
