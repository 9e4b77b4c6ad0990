package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/kiosk-gate/internal/store"
	"github.com/MKhiriev/kiosk-gate/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── ChangePin ───────────────────────────────────────────────────────────────

func TestProfileService_ChangePin(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	maria, session := f.signup(t, "Maria", "7491", "kiosk-1", models.RoleOperator)

	p := f.profile(t, maria.ID)
	p.PinResetRequired = true
	f.updateProfile(t, p)

	err := f.svc.Profiles.ChangePin(ctx, session, models.ChangePinRequest{OldPIN: "7491", NewPIN: "3816"})
	require.NoError(t, err)

	assert.False(t, f.profile(t, maria.ID).PinResetRequired)
	assert.Equal(t, 1, f.countAudit(t, models.AuditPinChanged))

	_, err = f.login(maria.ID, "7491", "kiosk-2")
	assert.ErrorIs(t, err, ErrInvalidCredential)
	_, err = f.login(maria.ID, "3816", "kiosk-2")
	assert.NoError(t, err)
}

func TestProfileService_ChangePin_WrongOldPIN(t *testing.T) {
	f := newFixture(t, nil)
	maria, session := f.signup(t, "Maria", "7491", "kiosk-1", models.RoleOperator)

	err := f.svc.Profiles.ChangePin(context.Background(), session, models.ChangePinRequest{OldPIN: "1111", NewPIN: "3816"})

	var invalid *InvalidCredentialError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, MaxFailedAttempts-1, invalid.Remaining)
	assert.Equal(t, 1, f.countAudit(t, models.AuditLoginFailed))
	assert.Equal(t, 0, f.countAudit(t, models.AuditPinChanged))

	v, err := f.hasher.Verify(context.Background(), "7491", f.profile(t, maria.ID).Credential)
	require.NoError(t, err)
	assert.True(t, v.OK, "credential unchanged")
}

func TestProfileService_ChangePin_NewPINRules(t *testing.T) {
	f := newFixture(t, nil)
	_, session := f.signup(t, "Maria", "7491", "kiosk-1", models.RoleOperator)

	for _, pin := range []string{"1234", "0000", "2345", "74", "7491"} {
		err := f.svc.Profiles.ChangePin(context.Background(), session, models.ChangePinRequest{OldPIN: "7491", NewPIN: pin})
		assert.ErrorIs(t, err, ErrWeakCredential, pin)
	}
	assert.Equal(t, 0, f.countAudit(t, models.AuditPinChanged))
}

// ── admin ───────────────────────────────────────────────────────────────────

func adminFixture(t *testing.T) (*fixture, models.AuthSession, models.UserProfile) {
	t.Helper()
	f := newFixture(t, nil)
	_, admin := f.signup(t, "Ada Admin", "7392", "kiosk-admin", models.RoleAdmin)
	maria, _ := f.signup(t, "Maria", "7491", "kiosk-1", models.RoleOperator)
	return f, admin, maria
}

func TestProfileService_ResetPin(t *testing.T) {
	f, admin, maria := adminFixture(t)
	ctx := context.Background()

	mariaSession, err := f.svc.Sessions.Current(ctx, "kiosk-1")
	require.NoError(t, err)

	err = f.svc.Profiles.ResetPin(ctx, mariaSession, maria.ID)
	assert.ErrorIs(t, err, ErrForbidden, "operators cannot reset PINs")

	require.NoError(t, f.svc.Profiles.ResetPin(ctx, admin, maria.ID))

	stored := f.profile(t, maria.ID)
	assert.True(t, stored.PinResetRequired)
	assert.True(t, stored.Credential.IsHashed())

	_, err = f.login(maria.ID, "0000", "kiosk-2")
	require.NoError(t, err)

	entries := f.audit(t)
	require.NotEmpty(t, entries)
	assert.Equal(t, 1, f.countAudit(t, models.AuditPinReset))

	err = f.svc.Profiles.ResetPin(ctx, admin, "missing")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileService_SuspendAndUnsuspend(t *testing.T) {
	f, admin, maria := adminFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Profiles.SuspendUser(ctx, admin, maria.ID, "lost badge"))

	stored := f.profile(t, maria.ID)
	assert.True(t, stored.Suspended)
	assert.Equal(t, "lost badge", stored.SuspendedReason)
	assert.Equal(t, admin.ProfileID, stored.SuspendedBy)
	require.NotNil(t, stored.SuspendedAt)
	assert.False(t, stored.Online)

	_, err := f.storage.Repositories().Sessions.GetSession(ctx, "kiosk-1")
	assert.ErrorIs(t, err, store.ErrNoSessionWasFound, "slot cleared")

	_, err = f.login(maria.ID, "7491", "kiosk-1")
	assert.ErrorIs(t, err, ErrAccountSuspended)

	require.NoError(t, f.svc.Profiles.UnsuspendUser(ctx, admin, maria.ID))
	stored = f.profile(t, maria.ID)
	assert.False(t, stored.Suspended)
	assert.Empty(t, stored.SuspendedReason)
	assert.Nil(t, stored.SuspendedAt)

	_, err = f.login(maria.ID, "7491", "kiosk-1")
	assert.NoError(t, err)

	assert.Equal(t, 1, f.countAudit(t, models.AuditUserSuspended))
	assert.Equal(t, 1, f.countAudit(t, models.AuditUserUnsuspended))
}

func TestProfileService_Suspend_Forbidden(t *testing.T) {
	f, admin, maria := adminFixture(t)
	ctx := context.Background()

	err := f.svc.Profiles.SuspendUser(ctx, admin, admin.ProfileID, "")
	assert.ErrorIs(t, err, ErrForbidden, "cannot suspend self")

	err = f.svc.Profiles.SuspendUser(ctx, models.AuthSession{ProfileID: maria.ID}, admin.ProfileID, "")
	assert.ErrorIs(t, err, ErrForbidden)

	err = f.svc.Profiles.UnsuspendUser(ctx, models.AuthSession{ProfileID: "missing"}, maria.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestProfileService_List(t *testing.T) {
	f := newFixture(t, nil)
	f.addProfile(t, "p1", "Maria", models.RoleOperator, models.LegacyPlain("7491"))
	gone := f.addProfile(t, "p2", "Gone", models.RoleViewer, models.LegacyPlain("3816"))
	gone.Active = false
	f.updateProfile(t, gone)
	f.addProfile(t, "p3", "Bob", models.RoleViewer, models.LegacyPlain("3816"))

	profiles, err := f.svc.Profiles.List(context.Background())
	require.NoError(t, err)

	require.Len(t, profiles, 2)
	assert.Equal(t, "Maria", profiles[0].Name)
	assert.Equal(t, "Bob", profiles[1].Name)
	for _, p := range profiles {
		assert.True(t, p.Credential.IsZero())
	}
}
