package service

import (
	"context"
	"time"

	"github.com/MKhiriev/kiosk-gate/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SessionManager issues, validates and expires the session slot of each
// device.
type SessionManager interface {
	// Login verifies the PIN of req.ProfileID and fills the device slot.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthSession, error)
	// LoginByName resolves req.Name (ignoring case) and then behaves like
	// Login.
	LoginByName(ctx context.Context, req models.LoginByNameRequest) (models.AuthSession, error)
	// Logout clears the slot of deviceID. It is a no-op when the slot is
	// empty.
	Logout(ctx context.Context, deviceID string) error
	// LogoutToken ends the session named by a correctly signed token, even
	// one past its expiry, if that session still holds its device slot.
	LogoutToken(ctx context.Context, deviceID, token string) error
	// CheckSessionExpiry reports true exactly once per expired session and
	// applies the implicit logout.
	CheckSessionExpiry(ctx context.Context, deviceID string) (bool, error)
	// CheckAllSessionExpiry sweeps every slot and returns how many expired.
	CheckAllSessionExpiry(ctx context.Context) (int, error)
	// Current returns the live session held by deviceID.
	Current(ctx context.Context, deviceID string) (models.AuthSession, error)
	// Authenticate validates a bearer token against the live slot it was
	// issued for.
	Authenticate(ctx context.Context, deviceID, token string) (models.AuthSession, error)
}

// SignupService creates profiles.
type SignupService interface {
	Signup(ctx context.Context, req models.SignupRequest) (models.UserProfile, models.AuthSession, error)
}

// ProfileService holds self-service and administrative profile operations.
type ProfileService interface {
	ChangePin(ctx context.Context, session models.AuthSession, req models.ChangePinRequest) error
	ResetPin(ctx context.Context, actor models.AuthSession, targetID string) error
	SuspendUser(ctx context.Context, actor models.AuthSession, targetID, reason string) error
	UnsuspendUser(ctx context.Context, actor models.AuthSession, targetID string) error
	// List returns the active profiles without credentials, for the kiosk
	// picker.
	List(ctx context.Context) ([]models.UserProfile, error)
	// AuthorizeAdmin returns the profile of profileID if it may run
	// administrative operations, or [ErrForbidden].
	AuthorizeAdmin(ctx context.Context, profileID string) (models.UserProfile, error)
}

// LockoutPolicy derives lock state from the login attempt history.
type LockoutPolicy interface {
	IsLocked(ctx context.Context, profileID string, now time.Time) (time.Time, bool, error)
	RecordAttempt(ctx context.Context, attempt models.LoginAttempt) error
	CheckAndMaybeLock(ctx context.Context, profileID string, now time.Time) (time.Time, bool, error)
	Remaining(ctx context.Context, profileID string, now time.Time) (int, error)
	// Prune drops attempts that can no longer influence any lock decision.
	Prune(ctx context.Context, now time.Time) (int64, error)
}

// AuditLog is the append-only security trail. Authorization code never
// reads it.
type AuditLog interface {
	Append(ctx context.Context, entry models.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]models.AuditEntry, error)
}

// Notifier delivers [models.Event] values to subscribers after commits.
type Notifier interface {
	Subscribe(fn func(models.Event)) (unsubscribe func())
	Publish(ctx context.Context, events ...models.Event)
}

// AppInfoService reports build metadata for the version endpoint.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// IDGenerator issues unique identifiers.
type IDGenerator interface {
	Generate() string
}
