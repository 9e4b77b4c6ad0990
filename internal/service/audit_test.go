package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/store"
	"github.com/MKhiriev/kiosk-gate/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuditLog(t *testing.T) (AuditLog, *fakeClock) {
	t.Helper()
	storage, err := store.NewStateStore("", logger.Nop())
	require.NoError(t, err)
	clock := newFakeClock(t0)
	return NewAuditLog(storage, &seqIDs{}, clock, logger.Nop()), clock
}

func TestAuditLog_AppendFillsDefaults(t *testing.T) {
	audit, _ := newTestAuditLog(t)

	require.NoError(t, audit.Append(context.Background(), models.AuditEntry{
		Action:     models.AuditPinReset,
		TargetKind: models.TargetProfile,
		TargetID:   "p1",
	}))

	entries, err := audit.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "id-0001", e.ID)
	assert.Equal(t, t0, e.At)
	assert.Equal(t, models.SystemActor, e.ActorID)
	assert.Equal(t, models.CategoryAdmin, e.Category)
}

func TestAuditLog_RecentIsMostRecentFirst(t *testing.T) {
	audit, clock := newTestAuditLog(t)
	ctx := context.Background()

	for _, action := range []models.AuditAction{models.AuditSignup, models.AuditLogin, models.AuditLogout} {
		require.NoError(t, audit.Append(ctx, models.AuditEntry{Action: action, ActorID: "p1"}))
		clock.Advance(time.Second)
	}

	entries, err := audit.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.AuditLogout, entries[0].Action)
	assert.Equal(t, models.AuditLogin, entries[1].Action)
}

func TestActionCategories_Complete(t *testing.T) {
	actions := []models.AuditAction{
		models.AuditSignup, models.AuditLogin, models.AuditLoginFailed, models.AuditLogout,
		models.AuditSessionExpired, models.AuditPinChanged, models.AuditPinReset,
		models.AuditUserSuspended, models.AuditUserUnsuspended, models.AuditCredentialCorrupt,
	}
	for _, a := range actions {
		assert.NotEmpty(t, actionCategories[a], a)
	}
}
