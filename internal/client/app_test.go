package client

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/kiosk-gate/internal/adapter"
	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdapter records calls. Methods a test does not need fall through to
// the nil embedded interface.
type fakeAdapter struct {
	adapter.ServerAdapter

	calls []string

	loginErr  error
	sessions  []models.SessionStatus
	entries   []models.AuditEntry
	auditSeen int
}

func (f *fakeAdapter) Version(context.Context) (string, error) {
	f.calls = append(f.calls, "version")
	return "1.4.0", nil
}

func (f *fakeAdapter) Profiles(context.Context) ([]models.UserProfile, error) {
	f.calls = append(f.calls, "profiles")
	return []models.UserProfile{{ID: "p-1", Name: "Maria", Role: models.RoleAdmin, Online: true}}, nil
}

func (f *fakeAdapter) LoginByName(_ context.Context, req models.LoginByNameRequest) (models.AuthSession, error) {
	f.calls = append(f.calls, "login:"+req.Name+":"+req.PIN)
	if f.loginErr != nil {
		return models.AuthSession{}, f.loginErr
	}
	return models.AuthSession{ID: "s-1", ProfileID: "p-1", DeviceID: "kiosk-1"}, nil
}

func (f *fakeAdapter) Suspend(_ context.Context, id, reason string) error {
	f.calls = append(f.calls, "suspend:"+id+":"+reason)
	return nil
}

func (f *fakeAdapter) Session(context.Context) (models.SessionStatus, error) {
	f.calls = append(f.calls, "session")
	status := f.sessions[0]
	if len(f.sessions) > 1 {
		f.sessions = f.sessions[1:]
	}
	return status, nil
}

func (f *fakeAdapter) Audit(_ context.Context, limit int) ([]models.AuditEntry, error) {
	f.auditSeen = limit
	return f.entries, nil
}

func (f *fakeAdapter) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	return nil
}

type fakePicker struct {
	session models.AuthSession
}

func (p fakePicker) Picker(context.Context) (models.AuthSession, error) {
	return p.session, nil
}

func newTestApp(f *fakeAdapter) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return NewApp(f, fakePicker{session: models.AuthSession{ID: "s-9", ProfileID: "p-2"}}, &out, logger.Nop()), &out
}

// ─────────────────────────────────────────────
// dispatch
// ─────────────────────────────────────────────

func TestRun_Dispatch(t *testing.T) {
	f := &fakeAdapter{}
	a, out := newTestApp(f)

	require.NoError(t, a.Run(context.Background(), []string{"version"}, nil))
	require.NoError(t, a.Run(context.Background(), []string{"profiles"}, nil))
	require.NoError(t, a.Run(context.Background(), []string{"suspend", "p-2", "on", "leave"}, nil))

	assert.Equal(t, []string{"version", "profiles", "suspend:p-2:on leave"}, f.calls)
	assert.Contains(t, out.String(), "server version: 1.4.0")
	assert.Contains(t, out.String(), "Maria")
}

func TestRun_UsageErrors(t *testing.T) {
	a, _ := newTestApp(&fakeAdapter{})

	err := a.Run(context.Background(), []string{"login", "Maria"}, nil)
	assert.ErrorIs(t, err, ErrUsage)

	err = a.Run(context.Background(), []string{"reboot"}, nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)

	err = a.Run(context.Background(), []string{"audit", "-3"}, nil)
	assert.ErrorIs(t, err, ErrUsage)
}

func TestRun_Help(t *testing.T) {
	a, out := newTestApp(&fakeAdapter{})

	require.NoError(t, a.Run(context.Background(), nil, nil))

	assert.Contains(t, out.String(), "reset-pin <profile-id>")
	assert.Contains(t, out.String(), "shell")
}

func TestRun_Picker(t *testing.T) {
	a, out := newTestApp(&fakeAdapter{})

	require.NoError(t, a.Run(context.Background(), []string{"picker"}, nil))

	assert.Contains(t, out.String(), "session s-9 for profile p-2")
}

func TestRun_AuditLimit(t *testing.T) {
	f := &fakeAdapter{entries: []models.AuditEntry{
		{At: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), Action: models.AuditLoginFailed, ActorID: "p-1", TargetID: "p-1"},
	}}
	a, out := newTestApp(f)

	require.NoError(t, a.Run(context.Background(), []string{"audit", "20"}, nil))

	assert.Equal(t, 20, f.auditSeen)
	assert.Contains(t, out.String(), "login_failed")
	assert.Contains(t, out.String(), "2026-03-01T09:00:00Z")
}

// ─────────────────────────────────────────────
// shell
// ─────────────────────────────────────────────

func TestShell_RunsCommandsAndReportsErrors(t *testing.T) {
	remaining := 4
	f := &fakeAdapter{
		loginErr: adapter.NewRequestError(http.StatusUnauthorized, models.OperationResult{RemainingAttempts: &remaining}),
	}
	a, out := newTestApp(f)

	in := strings.NewReader("version\n\nlogin Maria 0000\nbogus\nlogout\nexit\nversion\n")
	require.NoError(t, a.Run(context.Background(), []string{"shell"}, in))

	assert.Equal(t, []string{"version", "login:Maria:0000", "logout"}, f.calls)
	assert.Contains(t, out.String(), "error: wrong PIN, 4 attempt(s) left")
	assert.Contains(t, out.String(), "error: unknown command: bogus")
}

func TestShell_StopsAtEOF(t *testing.T) {
	f := &fakeAdapter{}
	a, _ := newTestApp(f)

	require.NoError(t, a.Run(context.Background(), []string{"shell"}, strings.NewReader("version")))

	assert.Equal(t, []string{"version"}, f.calls)
}

// ─────────────────────────────────────────────
// watch
// ─────────────────────────────────────────────

func TestWatch_StopsOnExpiry(t *testing.T) {
	live := models.AuthSession{ID: "s-1"}
	f := &fakeAdapter{sessions: []models.SessionStatus{
		{Session: &live},
		{Session: &live},
		{Expired: true},
	}}
	a, out := newTestApp(f)

	require.NoError(t, a.Run(context.Background(), []string{"watch", "5ms"}, nil))

	assert.Equal(t, []string{"session", "session", "session"}, f.calls)
	assert.Contains(t, out.String(), "session expired")
}

func TestWatch_StopsOnCancel(t *testing.T) {
	live := models.AuthSession{ID: "s-1"}
	f := &fakeAdapter{sessions: []models.SessionStatus{{Session: &live}}}
	a, _ := newTestApp(f)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	require.NoError(t, a.Run(ctx, []string{"watch", "5ms"}, nil))
	assert.NotEmpty(t, f.calls)
}

func TestWatch_InvalidInterval(t *testing.T) {
	a, _ := newTestApp(&fakeAdapter{})

	err := a.Run(context.Background(), []string{"watch", "soon"}, nil)

	assert.ErrorIs(t, err, ErrUsage)
}
