// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/store"
	"github.com/MKhiriev/kiosk-gate/internal/utils"
	"github.com/MKhiriev/kiosk-gate/models"
)

// sessionManager is the concrete implementation of SessionManager.
//
// A login verifies the PIN outside any storage unit of work, holding only
// the per-profile lock, and then commits the attempt, the profile counters,
// the session slot and the audit entry together.
type sessionManager struct {
	*core
}

// ── Login ───────────────────────────────────────────────────────────────────

// Login authenticates req.ProfileID on req.DeviceID.
//
// Checks run in this order and each rejection appends one login_failed
// audit entry:
//   - missing or inactive profile: ErrProfileNotFound
//   - suspended profile: ErrAccountSuspended, lockout is not consulted
//   - active lock: *LockedError, the hasher is not invoked
//   - corrupt stored credential: ErrCorruptCredential
//   - wrong PIN: *InvalidCredentialError, the failure is recorded
func (s *sessionManager) Login(ctx context.Context, req models.LoginRequest) (models.AuthSession, error) {
	log := logger.FromContext(ctx)

	if req.DeviceID == "" || req.ProfileID == "" {
		log.Warn().Str("func", "sessionManager.Login").Msg("login without device or profile id")
		return models.AuthSession{}, ErrInvalidDataProvided
	}

	unlock := s.profileLocks.Lock(req.ProfileID)
	defer unlock()

	now := s.clock.Now()
	repos := s.storage.Repositories()

	profile, err := getActiveProfile(ctx, repos, req.ProfileID)
	if errors.Is(err, ErrProfileNotFound) {
		log.Info().Str("profile_id", req.ProfileID).Msg("login for unknown profile")
		if err = s.auditRejection(ctx, req.ProfileID, "profile not found", now); err != nil {
			return models.AuthSession{}, err
		}
		return models.AuthSession{}, ErrProfileNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "sessionManager.Login").Msg("profile lookup failed")
		return models.AuthSession{}, err
	}

	if profile.Suspended {
		log.Info().Str("profile_id", profile.ID).Msg("login for suspended profile")
		if err = s.auditRejection(ctx, profile.ID, "account suspended", now); err != nil {
			return models.AuthSession{}, err
		}
		return models.AuthSession{}, ErrAccountSuspended
	}

	until, locked, err := s.lockout.isLocked(ctx, repos, profile.ID, now)
	if err != nil {
		log.Err(err).Str("func", "sessionManager.Login").Msg("lockout check failed")
		return models.AuthSession{}, err
	}
	if locked {
		log.Info().Str("profile_id", profile.ID).Time("locked_until", until).Msg("login for locked profile")
		if err = s.auditRejection(ctx, profile.ID, "account locked", now); err != nil {
			return models.AuthSession{}, err
		}
		return models.AuthSession{}, &LockedError{Until: until}
	}

	verification, err := s.verifyCredential(ctx, profile, req.PIN, req.DeviceID)
	if err != nil {
		return models.AuthSession{}, err
	}

	// verification may have taken a while
	now = s.clock.Now()

	if !verification.OK {
		log.Info().Str("profile_id", profile.ID).Msg("wrong PIN")
		return models.AuthSession{}, s.recordFailure(ctx, profile.ID, req.DeviceID, "invalid PIN", now)
	}

	var upgraded *models.CredentialHash
	if verification.NeedsRehash {
		cred, err := s.hasher.Hash(ctx, req.PIN)
		if err != nil {
			log.Err(err).Str("func", "sessionManager.Login").Msg("re-hashing credential failed")
			return models.AuthSession{}, fmt.Errorf("re-hashing credential failed: %w", err)
		}
		upgraded = &cred
	}

	session, err := s.issueSession(profile.ID, req.DeviceID, req.Kiosk, now)
	if err != nil {
		log.Err(err).Str("func", "sessionManager.Login").Msg("issuing session failed")
		return models.AuthSession{}, err
	}

	var superseded *models.AuthSession
	err = s.storage.Atomic(ctx, func(ctx context.Context, repos store.Repositories) error {
		err := repos.Attempts.AddAttempt(ctx, models.LoginAttempt{ProfileID: profile.ID, At: now, Success: true, DeviceID: req.DeviceID})
		if err != nil {
			return fmt.Errorf("recording login attempt failed: %w", err)
		}

		current, err := repos.Profiles.GetProfile(ctx, profile.ID)
		if err != nil {
			return fmt.Errorf("profile lookup failed: %w", err)
		}
		// another process may have suspended the profile during verification
		if current.Suspended {
			return ErrAccountSuspended
		}
		if upgraded != nil {
			current.Credential = *upgraded
		}
		current.LoginCount++
		current.LastLoginAt = &now
		current.LastSeenAt = &now
		current.Online = true
		current.UpdatedAt = now
		if err = repos.Profiles.UpdateProfile(ctx, current); err != nil {
			return fmt.Errorf("profile update failed: %w", err)
		}

		superseded, err = s.fillSlot(ctx, repos, session, now)
		if err != nil {
			return err
		}

		detail := ""
		if upgraded != nil {
			detail = "legacy credential upgraded"
		}
		return s.audit.appendTo(ctx, repos.Audit, profileEntry(models.AuditLogin, profile.ID, profile.ID, detail, now))
	})
	if errors.Is(err, ErrAccountSuspended) {
		log.Info().Str("profile_id", profile.ID).Msg("profile suspended during login")
		if err = s.auditRejection(ctx, profile.ID, "account suspended", now); err != nil {
			return models.AuthSession{}, err
		}
		return models.AuthSession{}, ErrAccountSuspended
	}
	if err != nil {
		log.Err(err).Str("func", "sessionManager.Login").Msg("committing login failed")
		return models.AuthSession{}, fmt.Errorf("committing login failed: %w", err)
	}

	log.Info().Str("profile_id", profile.ID).Str("device_id", req.DeviceID).Msg("login succeeded")
	s.publishStarted(ctx, session, superseded)

	return session, nil
}

func (s *sessionManager) LoginByName(ctx context.Context, req models.LoginByNameRequest) (models.AuthSession, error) {
	log := logger.FromContext(ctx)

	if req.DeviceID == "" || models.NormalizeName(req.Name) == "" {
		return models.AuthSession{}, ErrInvalidDataProvided
	}

	profile, err := s.storage.Repositories().Profiles.FindProfileByName(ctx, req.Name)
	if errors.Is(err, store.ErrNoProfileWasFound) {
		log.Info().Str("name", req.Name).Msg("login for unknown name")
		if err = s.auditRejection(ctx, "", "unknown profile name", s.clock.Now()); err != nil {
			return models.AuthSession{}, err
		}
		return models.AuthSession{}, ErrProfileNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "sessionManager.LoginByName").Msg("profile lookup by name failed")
		return models.AuthSession{}, fmt.Errorf("profile lookup by name failed: %w", err)
	}

	return s.Login(ctx, models.LoginRequest{
		DeviceID:  req.DeviceID,
		ProfileID: profile.ID,
		PIN:       req.PIN,
		Kiosk:     req.Kiosk,
	})
}

// fillSlot puts session into its device slot. If the slot held another
// profile, that profile is marked offline (unless it is live elsewhere) and
// the superseded session is returned.
func (c *core) fillSlot(ctx context.Context, repos store.Repositories, session models.AuthSession, now time.Time) (*models.AuthSession, error) {
	previous, err := repos.Sessions.GetSession(ctx, session.DeviceID)
	switch {
	case errors.Is(err, store.ErrNoSessionWasFound):
		previous = models.AuthSession{}
	case err != nil:
		return nil, fmt.Errorf("reading session slot failed: %w", err)
	}

	if err = repos.Sessions.PutSession(ctx, session); err != nil {
		return nil, fmt.Errorf("storing session failed: %w", err)
	}

	if previous.ID == "" {
		return nil, nil
	}
	if previous.ProfileID != session.ProfileID {
		if err = setOffline(ctx, repos, previous.ProfileID, now); err != nil {
			return nil, err
		}
	}
	return &previous, nil
}

func (c *core) publishStarted(ctx context.Context, session models.AuthSession, superseded *models.AuthSession) {
	events := make([]models.Event, 0, 3)
	if superseded != nil {
		events = append(events, models.Event{Type: models.EventSessionEnded, ProfileID: superseded.ProfileID, DeviceID: superseded.DeviceID, At: session.IssuedAt})
	}
	events = append(events,
		models.Event{Type: models.EventSessionStarted, ProfileID: session.ProfileID, DeviceID: session.DeviceID, At: session.IssuedAt},
		models.Event{Type: models.EventProfileChanged, ProfileID: session.ProfileID, At: session.IssuedAt},
	)
	c.notifier.Publish(ctx, events...)
}

// ── Logout / expiry ─────────────────────────────────────────────────────────

func (s *sessionManager) Logout(ctx context.Context, deviceID string) error {
	if deviceID == "" {
		return ErrInvalidDataProvided
	}

	ended, err := s.endSession(ctx, deviceID, "", false, models.AuditLogout)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sessionManager.Logout").Str("device_id", deviceID).Msg("logout failed")
		return err
	}
	if ended {
		logger.FromContext(ctx).Info().Str("device_id", deviceID).Msg("logged out")
	}
	return nil
}

// LogoutToken ends the session token names. The token must be correctly
// signed but may have expired; a token whose session no longer holds the
// slot is a no-op.
func (s *sessionManager) LogoutToken(ctx context.Context, deviceID, token string) error {
	log := logger.FromContext(ctx)

	parsed, err := utils.ParseSessionTokenIgnoringExpiry(token, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		log.Info().Err(err).Msg("invalid session token on logout")
		return ErrSessionExpired
	}
	if deviceID != "" && parsed.Claims.DeviceID != deviceID {
		log.Warn().Str("device_id", deviceID).Str("token_device_id", parsed.Claims.DeviceID).Msg("logout token presented from another device")
		return ErrSessionExpired
	}

	ended, err := s.endSession(ctx, parsed.Claims.DeviceID, parsed.SessionID(), false, models.AuditLogout)
	if err != nil {
		log.Err(err).Str("func", "sessionManager.LogoutToken").Str("device_id", parsed.Claims.DeviceID).Msg("logout failed")
		return err
	}
	if ended {
		log.Info().Str("device_id", parsed.Claims.DeviceID).Msg("logged out")
	}
	return nil
}

func (s *sessionManager) CheckSessionExpiry(ctx context.Context, deviceID string) (bool, error) {
	if deviceID == "" {
		return false, ErrInvalidDataProvided
	}

	expired, err := s.endSession(ctx, deviceID, "", true, models.AuditSessionExpired)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sessionManager.CheckSessionExpiry").Str("device_id", deviceID).Msg("expiry check failed")
		return false, err
	}
	if expired {
		logger.FromContext(ctx).Info().Str("device_id", deviceID).Msg("session expired")
	}
	return expired, nil
}

func (s *sessionManager) CheckAllSessionExpiry(ctx context.Context) (int, error) {
	sessions, err := s.storage.Repositories().Sessions.ListSessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing sessions failed: %w", err)
	}

	now := s.clock.Now()
	n := 0
	for _, session := range sessions {
		if !session.Expired(now) {
			continue
		}
		expired, err := s.CheckSessionExpiry(ctx, session.DeviceID)
		if err != nil {
			return n, err
		}
		if expired {
			n++
		}
	}
	return n, nil
}

// endSession clears the slot of deviceID, marks its profile offline and
// appends one action entry. With onlyExpired it does nothing to a live
// session, and a non-empty sessionID must match the slot. It reports
// whether a session was ended by this call.
func (s *sessionManager) endSession(ctx context.Context, deviceID, sessionID string, onlyExpired bool, action models.AuditAction) (bool, error) {
	session, err := s.storage.Repositories().Sessions.GetSession(ctx, deviceID)
	if errors.Is(err, store.ErrNoSessionWasFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading session slot failed: %w", err)
	}

	if sessionID != "" && session.ID != sessionID {
		return false, nil
	}

	now := s.clock.Now()
	if onlyExpired && !session.Expired(now) {
		return false, nil
	}

	actor := session.ProfileID
	if action == models.AuditSessionExpired {
		actor = models.SystemActor
	}

	ended := false
	err = s.storage.Atomic(ctx, func(ctx context.Context, repos store.Repositories) error {
		// conditional on the session id: a concurrent login may have
		// replaced the slot since it was read
		deleted, err := repos.Sessions.DeleteSession(ctx, deviceID, session.ID)
		if err != nil {
			return fmt.Errorf("clearing session slot failed: %w", err)
		}
		if !deleted {
			return nil
		}
		ended = true

		if err = setOffline(ctx, repos, session.ProfileID, now); err != nil {
			return err
		}
		return s.audit.appendTo(ctx, repos.Audit, profileEntry(action, actor, session.ProfileID, "", now))
	})
	if err != nil {
		return false, err
	}

	if ended {
		s.notifier.Publish(ctx,
			models.Event{Type: models.EventSessionEnded, ProfileID: session.ProfileID, DeviceID: deviceID, At: now},
			models.Event{Type: models.EventProfileChanged, ProfileID: session.ProfileID, At: now},
		)
	}
	return ended, nil
}

// ── Current / Authenticate ──────────────────────────────────────────────────

func (s *sessionManager) Current(ctx context.Context, deviceID string) (models.AuthSession, error) {
	if deviceID == "" {
		return models.AuthSession{}, ErrInvalidDataProvided
	}

	session, err := s.storage.Repositories().Sessions.GetSession(ctx, deviceID)
	if errors.Is(err, store.ErrNoSessionWasFound) {
		return models.AuthSession{}, ErrSessionExpired
	}
	if err != nil {
		return models.AuthSession{}, fmt.Errorf("reading session slot failed: %w", err)
	}
	if session.Expired(s.clock.Now()) {
		return models.AuthSession{}, ErrSessionExpired
	}
	return session, nil
}

// Authenticate accepts token only while it names the session currently in
// its device's slot. When deviceID is not empty it must match the device
// the token was issued for.
func (s *sessionManager) Authenticate(ctx context.Context, deviceID, token string) (models.AuthSession, error) {
	log := logger.FromContext(ctx)

	parsed, err := utils.ValidateAndParseSessionToken(token, s.tokenSignKey, s.tokenIssuer, s.clock.Now)
	if err != nil {
		log.Info().Err(err).Msg("invalid session token")
		return models.AuthSession{}, ErrSessionExpired
	}

	if deviceID != "" && parsed.Claims.DeviceID != deviceID {
		log.Warn().Str("device_id", deviceID).Str("token_device_id", parsed.Claims.DeviceID).Msg("token presented from another device")
		return models.AuthSession{}, ErrSessionExpired
	}

	session, err := s.Current(ctx, parsed.Claims.DeviceID)
	if err != nil {
		return models.AuthSession{}, err
	}
	if session.ID != parsed.SessionID() || session.ProfileID != parsed.ProfileID() {
		log.Info().Str("session_id", parsed.SessionID()).Msg("superseded session token")
		return models.AuthSession{}, ErrSessionExpired
	}

	session.Token = token
	return session, nil
}
