package store

import (
	"context"
	"time"

	"github.com/MKhiriev/kiosk-gate/models"
)

// ProfileRepository is the profile registry: the only persistent store of
// identity. Profiles are never deleted.
type ProfileRepository interface {
	// CreateProfile stores a new profile. A name already held by any profile
	// (ignoring case) yields [ErrNameAlreadyExists].
	CreateProfile(ctx context.Context, profile models.UserProfile) error
	// GetProfile returns the profile with id or [ErrNoProfileWasFound].
	GetProfile(ctx context.Context, id string) (models.UserProfile, error)
	// FindProfileByName resolves a display name, ignoring case and
	// surrounding whitespace, or returns [ErrNoProfileWasFound].
	FindProfileByName(ctx context.Context, name string) (models.UserProfile, error)
	// UpdateProfile overwrites an existing profile.
	UpdateProfile(ctx context.Context, profile models.UserProfile) error
	// ListProfiles returns all profiles in creation order.
	ListProfiles(ctx context.Context) ([]models.UserProfile, error)
}

// AttemptRepository is the append-only login attempt history.
type AttemptRepository interface {
	AddAttempt(ctx context.Context, attempt models.LoginAttempt) error
	// ListAttempts returns the attempts of profileID strictly after since,
	// oldest first.
	ListAttempts(ctx context.Context, profileID string, since time.Time) ([]models.LoginAttempt, error)
	// PruneAttempts drops attempts older than before and reports how many
	// were removed.
	PruneAttempts(ctx context.Context, before time.Time) (int64, error)
}

// LockoutRepository caches computed lock expiries.
type LockoutRepository interface {
	// GetLockout returns the cached entry of profileID; found is false when
	// none is cached.
	GetLockout(ctx context.Context, profileID string) (entry models.LockoutEntry, found bool, err error)
	SetLockout(ctx context.Context, entry models.LockoutEntry) error
	ClearLockout(ctx context.Context, profileID string) error
}

// SessionRepository holds one session slot per device.
type SessionRepository interface {
	// GetSession returns the slot of deviceID or [ErrNoSessionWasFound].
	GetSession(ctx context.Context, deviceID string) (models.AuthSession, error)
	// PutSession fills the slot of session.DeviceID, replacing any previous
	// session held there.
	PutSession(ctx context.Context, session models.AuthSession) error
	// DeleteSession clears the slot of deviceID only if it still holds
	// sessionID, and reports whether it did.
	DeleteSession(ctx context.Context, deviceID, sessionID string) (bool, error)
	ListSessions(ctx context.Context) ([]models.AuthSession, error)
}

// AuditRepository is the append-only audit trail. It has no update or
// delete operation; retention trimming happens inside AppendAudit.
type AuditRepository interface {
	AppendAudit(ctx context.Context, entry models.AuditEntry) error
	// RecentAudit returns at most limit entries, most recent first.
	RecentAudit(ctx context.Context, limit int) ([]models.AuditEntry, error)
}

// Repositories bundles the repositories of one storage backend.
type Repositories struct {
	Profiles ProfileRepository
	Attempts AttemptRepository
	Lockouts LockoutRepository
	Sessions SessionRepository
	Audit    AuditRepository
}

// Storage is a storage backend.
type Storage interface {
	// Repositories returns repositories whose every call applies on its own.
	Repositories() Repositories

	// Atomic runs fn against repositories bound to a single unit of work.
	// Either every mutation made through them is kept or, when fn returns an
	// error, none is.
	Atomic(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error

	Close() error
}
