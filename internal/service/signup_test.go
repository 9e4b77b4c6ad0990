package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/kiosk-gate/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePIN(t *testing.T) {
	tests := []struct {
		pin    string
		reason string
	}{
		{pin: "7392"},
		{pin: "3816"},
		{pin: "1357", reason: "PIN is too common"},
		{pin: "1234", reason: "PIN is too common"},
		{pin: "0000", reason: "PIN is too common"},
		{pin: "9999", reason: "PIN is too common"},
		{pin: "1010", reason: "PIN is too common"},
		{pin: "2580", reason: "PIN is too common"},
		{pin: "2345", reason: "PIN must not be a sequence"},
		{pin: "8765", reason: "PIN must not be a sequence"},
		{pin: "6789", reason: "PIN must not be a sequence"},
		{pin: "123", reason: "PIN must be exactly 4 digits"},
		{pin: "12345", reason: "PIN must be exactly 4 digits"},
		{pin: "12a4", reason: "PIN must be exactly 4 digits"},
		{pin: "١٢٣٤", reason: "PIN must be exactly 4 digits"},
		{pin: "", reason: "PIN must be exactly 4 digits"},
	}

	for _, tt := range tests {
		t.Run(tt.pin, func(t *testing.T) {
			err := ValidatePIN(tt.pin)
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}

			var weak *WeakCredentialError
			require.ErrorAs(t, err, &weak)
			assert.ErrorIs(t, err, ErrWeakCredential)
			assert.Equal(t, tt.reason, weak.Reason)
		})
	}
}

func TestIsSequential(t *testing.T) {
	assert.True(t, isSequential("0123"))
	assert.True(t, isSequential("3210"))
	assert.False(t, isSequential("1235"))
	assert.False(t, isSequential("1324"))
	assert.False(t, isSequential("9012"), "no wrap-around")
}

func TestSignup_Success(t *testing.T) {
	f := newFixture(t, nil)

	profile, session, err := f.svc.Signup.Signup(context.Background(), models.SignupRequest{
		DeviceID: "kiosk-1",
		Name:     "  Maria Silva ",
		PIN:      "7491",
		Role:     models.RoleManager,
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria Silva", profile.Name)
	assert.Equal(t, "MS", profile.Initials)
	assert.Equal(t, models.RoleManager, profile.Role)
	assert.True(t, profile.Credential.IsZero(), "credential never returned")
	assert.Equal(t, int64(1), profile.LoginCount)
	assert.True(t, profile.Online)

	stored := f.profile(t, profile.ID)
	require.True(t, stored.Credential.IsHashed())
	v, err := f.hasher.Verify(context.Background(), "7491", stored.Credential)
	require.NoError(t, err)
	assert.True(t, v.OK)

	assert.Equal(t, profile.ID, session.ProfileID)
	assert.Equal(t, "kiosk-1", session.DeviceID)
	assert.Equal(t, t0.Add(SessionLifetime), session.ExpiresAt)

	_, err = f.svc.Sessions.Authenticate(context.Background(), "kiosk-1", session.Token)
	require.NoError(t, err)

	assert.Equal(t, 1, f.countAudit(t, models.AuditSignup))
	assert.Equal(t, 0, f.countAudit(t, models.AuditLogin), "implied login adds no entry")
	assert.Equal(t, 1, f.countEvents(models.EventSessionStarted))
}

func TestSignup_RejectsWeakPINs(t *testing.T) {
	f := newFixture(t, nil)

	for _, pin := range []string{"1234", "0000", "1010", "2345"} {
		_, _, err := f.svc.Signup.Signup(context.Background(), models.SignupRequest{
			DeviceID: "kiosk-1", Name: "Maria", PIN: pin, Role: models.RoleOperator,
		})
		assert.ErrorIs(t, err, ErrWeakCredential, pin)
	}

	_, _, err := f.svc.Signup.Signup(context.Background(), models.SignupRequest{
		DeviceID: "kiosk-1", Name: "Maria", PIN: "7392", Role: models.RoleOperator,
	})
	assert.NoError(t, err)
}

func TestSignup_DuplicateName(t *testing.T) {
	f := newFixture(t, nil)

	inactive := f.addProfile(t, "p1", "maria", models.RoleViewer, models.LegacyPlain("7491"))
	inactive.Active = false
	f.updateProfile(t, inactive)

	suspended := f.addProfile(t, "p2", "Bob", models.RoleViewer, models.LegacyPlain("7491"))
	suspended.Suspended = true
	f.updateProfile(t, suspended)

	for _, name := range []string{"MARIA", "maria", " Maria ", "bob", "BOB"} {
		_, _, err := f.svc.Signup.Signup(context.Background(), models.SignupRequest{
			DeviceID: "kiosk-1", Name: name, PIN: "7392", Role: models.RoleOperator,
		})
		assert.ErrorIs(t, err, ErrDuplicateName, name)
	}
}

func TestSignup_ValidationOrder(t *testing.T) {
	f := newFixture(t, nil)
	f.addProfile(t, "p1", "Maria", models.RoleViewer, models.LegacyPlain("7491"))

	tests := []struct {
		name    string
		req     models.SignupRequest
		wantErr error
	}{
		{
			name:    "short name before weak PIN",
			req:     models.SignupRequest{DeviceID: "kiosk-1", Name: " A ", PIN: "1234", Role: models.RoleOperator},
			wantErr: ErrNameTooShort,
		},
		{
			name:    "duplicate name before weak PIN",
			req:     models.SignupRequest{DeviceID: "kiosk-1", Name: "maria", PIN: "1234", Role: models.RoleOperator},
			wantErr: ErrDuplicateName,
		},
		{
			name:    "unknown role",
			req:     models.SignupRequest{DeviceID: "kiosk-1", Name: "Bob", PIN: "7392", Role: "root"},
			wantErr: ErrInvalidDataProvided,
		},
		{
			name:    "missing device",
			req:     models.SignupRequest{Name: "Bob", PIN: "7392", Role: models.RoleOperator},
			wantErr: ErrInvalidDataProvided,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := f.svc.Signup.Signup(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, f.audit(t), "rejected signups leave no trace")
}
