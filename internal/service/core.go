package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/kiosk-gate/internal/crypto"
	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/store"
	"github.com/MKhiriev/kiosk-gate/internal/utils"
	"github.com/MKhiriev/kiosk-gate/models"
)

const (
	// SessionLifetime is how long an issued session stays valid.
	SessionLifetime = 12 * time.Hour

	// ExpiryPollInterval is the default cadence of expiry polling.
	ExpiryPollInterval = 30 * time.Second

	// PINLength is the number of digits of a PIN.
	PINLength = 4

	// DefaultResetPIN is assigned by an administrative reset when no other
	// value is configured.
	DefaultResetPIN = "0000"
)

// core holds the collaborators shared by the session, signup and profile
// services. Profiles are re-read from storage on every call; nothing here
// caches them.
type core struct {
	storage  store.Storage
	hasher   crypto.CredentialHasher
	lockout  *lockoutPolicy
	audit    *auditLog
	notifier Notifier
	clock    utils.Clock
	ids      IDGenerator

	// profileLocks serializes the verify-then-record sequence per profile.
	profileLocks *keyedMutex

	tokenSignKey string
	tokenIssuer  string

	logger *logger.Logger
}

// issueSession builds a session for profileID on deviceID and signs its
// bearer token.
func (c *core) issueSession(profileID, deviceID string, kiosk bool, now time.Time) (models.AuthSession, error) {
	session := models.AuthSession{
		ID:        c.ids.Generate(),
		ProfileID: profileID,
		DeviceID:  deviceID,
		IssuedAt:  now,
		ExpiresAt: now.Add(SessionLifetime),
		IsKiosk:   kiosk,
	}

	token, err := utils.GenerateSessionToken(c.tokenIssuer, session, c.tokenSignKey)
	if err != nil {
		return models.AuthSession{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	session.Token = token.String()

	return session, nil
}

// getActiveProfile maps a missing or deactivated profile to
// ErrProfileNotFound.
func getActiveProfile(ctx context.Context, repos store.Repositories, id string) (models.UserProfile, error) {
	profile, err := repos.Profiles.GetProfile(ctx, id)
	if errors.Is(err, store.ErrNoProfileWasFound) {
		return models.UserProfile{}, ErrProfileNotFound
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("profile lookup failed: %w", err)
	}
	if !profile.Active {
		return models.UserProfile{}, ErrProfileNotFound
	}
	return profile, nil
}

// setOffline marks profileID offline unless another device still holds a
// live session for it.
func setOffline(ctx context.Context, repos store.Repositories, profileID string, now time.Time) error {
	sessions, err := repos.Sessions.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("listing sessions failed: %w", err)
	}
	for _, s := range sessions {
		if s.ProfileID == profileID && !s.Expired(now) {
			return nil
		}
	}

	profile, err := repos.Profiles.GetProfile(ctx, profileID)
	if errors.Is(err, store.ErrNoProfileWasFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("profile lookup failed: %w", err)
	}
	if !profile.Online {
		return nil
	}

	profile.Online = false
	profile.LastSeenAt = &now
	profile.UpdatedAt = now
	if err = repos.Profiles.UpdateProfile(ctx, profile); err != nil {
		return fmt.Errorf("profile update failed: %w", err)
	}
	return nil
}

// verifyCredential runs the hasher and handles a corrupt record: an
// operator-channel log line, a credential_corrupt audit entry and an
// event. The returned error wraps ErrCorruptCredential in that case.
func (c *core) verifyCredential(ctx context.Context, profile models.UserProfile, pin, deviceID string) (crypto.Verification, error) {
	verification, err := c.hasher.Verify(ctx, pin, profile.Credential)
	if err == nil {
		return verification, nil
	}
	if !errors.Is(err, crypto.ErrCorruptCredential) {
		return crypto.Verification{}, fmt.Errorf("credential verification failed: %w", err)
	}

	now := c.clock.Now()
	c.logger.Operator().
		Err(err).
		Str("func", "core.verifyCredential").
		Str("profile_id", profile.ID).
		Str("credential_kind", string(profile.Credential.Kind)).
		Msg("stored credential is corrupt")

	auditErr := c.storage.Atomic(ctx, func(ctx context.Context, repos store.Repositories) error {
		if err := c.audit.appendTo(ctx, repos.Audit,
			profileEntry(models.AuditCredentialCorrupt, models.SystemActor, profile.ID, "stored credential could not be decoded", now)); err != nil {
			return err
		}
		return c.audit.appendTo(ctx, repos.Audit,
			profileEntry(models.AuditLoginFailed, models.SystemActor, profile.ID, "corrupt credential", now))
	})
	if auditErr != nil {
		logger.FromContext(ctx).Err(auditErr).Str("func", "core.verifyCredential").Msg("recording corrupt credential failed")
	}

	c.notifier.Publish(ctx, models.Event{
		Type:      models.EventCredentialCorrupt,
		ProfileID: profile.ID,
		DeviceID:  deviceID,
		At:        now,
	})

	return crypto.Verification{}, fmt.Errorf("%w: profile %s", ErrCorruptCredential, profile.ID)
}

// recordFailure appends the failed attempt, applies the lock threshold and
// writes one login_failed entry. It returns the caller-facing error.
func (c *core) recordFailure(ctx context.Context, profileID, deviceID, detail string, now time.Time) error {
	failure := &InvalidCredentialError{}

	err := c.storage.Atomic(ctx, func(ctx context.Context, repos store.Repositories) error {
		err := repos.Attempts.AddAttempt(ctx, models.LoginAttempt{ProfileID: profileID, At: now, DeviceID: deviceID})
		if err != nil {
			return fmt.Errorf("recording login attempt failed: %w", err)
		}

		until, locked, err := c.lockout.checkAndMaybeLock(ctx, repos, profileID, now)
		if err != nil {
			return err
		}
		if locked {
			failure.LockedUntil = &until
		} else if failure.Remaining, err = c.lockout.remaining(ctx, repos, profileID, now); err != nil {
			return err
		}

		return c.audit.appendTo(ctx, repos.Audit, profileEntry(models.AuditLoginFailed, models.SystemActor, profileID, detail, now))
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "core.recordFailure").Str("profile_id", profileID).Msg("recording failed login failed")
		return fmt.Errorf("recording failed login failed: %w", err)
	}

	return failure
}

// auditRejection writes the single login_failed entry of a login that was
// refused before any PIN check.
func (c *core) auditRejection(ctx context.Context, profileID, detail string, now time.Time) error {
	err := c.audit.Append(ctx, profileEntry(models.AuditLoginFailed, models.SystemActor, profileID, detail, now))
	if err != nil {
		return fmt.Errorf("recording rejected login failed: %w", err)
	}
	return nil
}
