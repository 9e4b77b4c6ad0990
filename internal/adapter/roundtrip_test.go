package adapter

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/kiosk-gate/internal/config"
	"github.com/MKhiriev/kiosk-gate/internal/crypto"
	khttp "github.com/MKhiriev/kiosk-gate/internal/handler/http"
	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/service"
	"github.com/MKhiriev/kiosk-gate/internal/store"
	"github.com/MKhiriev/kiosk-gate/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newKioskServer runs the full server stack over a memory-only state store.
func newKioskServer(t *testing.T) *httptest.Server {
	t.Helper()

	storage, err := store.NewStateStore("", logger.Nop())
	require.NoError(t, err)

	cfg := config.StructuredConfig{
		App: config.App{TokenSignKey: "roundtrip-key", TokenIssuer: "kiosk-gate", ResetPIN: "0000", Version: "test"},
		Server: config.Server{
			HTTPAddress:    "127.0.0.1:0",
			RequestTimeout: 10 * time.Second,
			RateLimit:      1000,
			RateBurst:      1000,
		},
	}

	services, err := service.NewServices(storage, crypto.NewCredentialHasher(2), cfg, models.NewAppBuildInfo("", "", ""), logger.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(khttp.NewHandler(services, cfg.Server, logger.Nop()).Init())
	t.Cleanup(srv.Close)
	return srv
}

func deviceAdapter(t *testing.T, url, device string) ServerAdapter {
	t.Helper()
	a, err := NewHTTPServerAdapter(config.Adapter{HTTPAddress: url, RequestTimeout: 10 * time.Second, DeviceID: device}, logger.Nop())
	require.NoError(t, err)
	return a
}

func TestRoundTrip_AdminLifecycle(t *testing.T) {
	srv := newKioskServer(t)
	ctx := context.Background()

	admin := deviceAdapter(t, srv.URL, "front-desk")
	clerk := deviceAdapter(t, srv.URL, "back-office")

	signedUp, err := admin.Signup(ctx, models.SignupRequest{Name: "Maria", PIN: "4829", Role: models.RoleAdmin})
	require.NoError(t, err)
	require.NotNil(t, signedUp.Profile)
	assert.NotEmpty(t, admin.Token())

	_, err = clerk.Signup(ctx, models.SignupRequest{Name: "maria", PIN: "7316", Role: models.RoleOperator})
	require.ErrorIs(t, err, ErrConflict)

	_, err = clerk.Signup(ctx, models.SignupRequest{Name: "Jon", PIN: "1357", Role: models.RoleOperator})
	require.ErrorIs(t, err, ErrWeakPIN)

	jon, err := clerk.Signup(ctx, models.SignupRequest{Name: "Jon", PIN: "7316", Role: models.RoleOperator})
	require.NoError(t, err)
	jonID := jon.Profile.ID

	profiles, err := clerk.Profiles(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)

	err = clerk.ResetPin(ctx, signedUp.Profile.ID)
	require.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, admin.Suspend(ctx, jonID, "on leave"))

	status, err := clerk.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, status.Session)

	_, err = clerk.LoginByName(ctx, models.LoginByNameRequest{Name: "JON", PIN: "7316"})
	require.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, admin.Unsuspend(ctx, jonID))

	_, err = clerk.Login(ctx, models.LoginRequest{ProfileID: jonID, PIN: "0000"})
	require.ErrorIs(t, err, ErrUnauthorized)
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	remaining, ok := reqErr.RemainingAttempts()
	require.True(t, ok)
	assert.Equal(t, 4, remaining)

	session, err := clerk.LoginByName(ctx, models.LoginByNameRequest{Name: "jon", PIN: "7316"})
	require.NoError(t, err)
	assert.Equal(t, jonID, session.ProfileID)

	entries, err := admin.Audit(ctx, 100)
	require.NoError(t, err)
	actions := make(map[models.AuditAction]int)
	for _, e := range entries {
		actions[e.Action]++
	}
	assert.Equal(t, 2, actions[models.AuditSignup])
	assert.Equal(t, 1, actions[models.AuditUserSuspended])
	assert.Equal(t, 1, actions[models.AuditUserUnsuspended])
	assert.GreaterOrEqual(t, actions[models.AuditLoginFailed], 2)

	require.NoError(t, clerk.Logout(ctx))
	_, err = clerk.Audit(ctx, 10)
	require.ErrorIs(t, err, ErrUnauthorized)

	version, err := admin.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test", version)
}
