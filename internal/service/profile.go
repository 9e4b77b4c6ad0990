package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/store"
	"github.com/MKhiriev/kiosk-gate/models"
)

type profileService struct {
	*core

	// resetPIN is the known PIN assigned by ResetPin.
	resetPIN string
}

// ── ChangePin ───────────────────────────────────────────────────────────────

// ChangePin re-verifies the old PIN under the same lockout rules as login,
// then applies the signup PIN rules to the new one.
func (p *profileService) ChangePin(ctx context.Context, session models.AuthSession, req models.ChangePinRequest) error {
	log := logger.FromContext(ctx)

	unlock := p.profileLocks.Lock(session.ProfileID)
	defer unlock()

	now := p.clock.Now()
	repos := p.storage.Repositories()

	profile, err := getActiveProfile(ctx, repos, session.ProfileID)
	if err != nil {
		return err
	}
	if profile.Suspended {
		return ErrAccountSuspended
	}

	until, locked, err := p.lockout.isLocked(ctx, repos, profile.ID, now)
	if err != nil {
		log.Err(err).Str("func", "profileService.ChangePin").Msg("lockout check failed")
		return err
	}
	if locked {
		if err = p.auditRejection(ctx, profile.ID, "pin change: account locked", now); err != nil {
			return err
		}
		return &LockedError{Until: until}
	}

	verification, err := p.verifyCredential(ctx, profile, req.OldPIN, session.DeviceID)
	if err != nil {
		return err
	}
	if !verification.OK {
		log.Info().Str("profile_id", profile.ID).Msg("pin change with wrong old PIN")
		return p.recordFailure(ctx, profile.ID, session.DeviceID, "pin change: invalid PIN", p.clock.Now())
	}

	if err = ValidatePIN(req.NewPIN); err != nil {
		return err
	}
	if req.NewPIN == req.OldPIN {
		return &WeakCredentialError{Reason: "new PIN must differ from the current one"}
	}

	cred, err := p.hasher.Hash(ctx, req.NewPIN)
	if err != nil {
		log.Err(err).Str("func", "profileService.ChangePin").Msg("hashing PIN failed")
		return fmt.Errorf("hashing PIN failed: %w", err)
	}

	now = p.clock.Now()
	err = p.mutateProfile(ctx, profile.ID, func(profile *models.UserProfile) {
		profile.Credential = cred
		profile.PinResetRequired = false
	}, profileEntry(models.AuditPinChanged, profile.ID, profile.ID, "", now))
	if err != nil {
		log.Err(err).Str("func", "profileService.ChangePin").Msg("storing PIN failed")
		return err
	}

	log.Info().Str("profile_id", profile.ID).Msg("PIN changed")
	return nil
}

// ── administrative operations ───────────────────────────────────────────────

// ResetPin sets the target's credential to the hashed reset PIN and flags
// the profile so that the UI asks for a new PIN.
func (p *profileService) ResetPin(ctx context.Context, actor models.AuthSession, targetID string) error {
	admin, err := p.AuthorizeAdmin(ctx, actor.ProfileID)
	if err != nil {
		return err
	}

	unlock := p.profileLocks.Lock(targetID)
	defer unlock()

	if _, err = getActiveProfile(ctx, p.storage.Repositories(), targetID); err != nil {
		return err
	}

	cred, err := p.hasher.Hash(ctx, p.resetPIN)
	if err != nil {
		return fmt.Errorf("hashing reset PIN failed: %w", err)
	}

	now := p.clock.Now()
	err = p.mutateProfile(ctx, targetID, func(profile *models.UserProfile) {
		profile.Credential = cred
		profile.PinResetRequired = true
	}, profileEntry(models.AuditPinReset, admin.ID, targetID, "", now))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "profileService.ResetPin").Msg("resetting PIN failed")
		return err
	}

	logger.FromContext(ctx).Info().Str("actor_id", admin.ID).Str("profile_id", targetID).Msg("PIN reset")
	return nil
}

// SuspendUser flags the target as suspended and clears every session slot
// it holds. An administrator cannot suspend themself.
func (p *profileService) SuspendUser(ctx context.Context, actor models.AuthSession, targetID, reason string) error {
	admin, err := p.AuthorizeAdmin(ctx, actor.ProfileID)
	if err != nil {
		return err
	}
	if targetID == admin.ID {
		return fmt.Errorf("%w: cannot suspend own profile", ErrForbidden)
	}

	// serializes with a login of the target that is still verifying its PIN
	unlock := p.profileLocks.Lock(targetID)
	defer unlock()

	if _, err = getActiveProfile(ctx, p.storage.Repositories(), targetID); err != nil {
		return err
	}

	now := p.clock.Now()
	var cleared []string
	err = p.storage.Atomic(ctx, func(ctx context.Context, repos store.Repositories) error {
		sessions, err := repos.Sessions.ListSessions(ctx)
		if err != nil {
			return fmt.Errorf("listing sessions failed: %w", err)
		}
		for _, s := range sessions {
			if s.ProfileID != targetID {
				continue
			}
			deleted, err := repos.Sessions.DeleteSession(ctx, s.DeviceID, s.ID)
			if err != nil {
				return fmt.Errorf("clearing session slot failed: %w", err)
			}
			if deleted {
				cleared = append(cleared, s.DeviceID)
			}
		}

		return p.mutateProfileIn(ctx, repos, targetID, func(profile *models.UserProfile) {
			profile.Suspended = true
			profile.SuspendedReason = reason
			profile.SuspendedBy = admin.ID
			profile.SuspendedAt = &now
			profile.Online = false
		}, profileEntry(models.AuditUserSuspended, admin.ID, targetID, reason, now))
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "profileService.SuspendUser").Msg("suspending profile failed")
		return fmt.Errorf("suspending profile failed: %w", err)
	}

	events := []models.Event{{Type: models.EventProfileChanged, ProfileID: targetID, At: now}}
	for _, deviceID := range cleared {
		events = append(events, models.Event{Type: models.EventSessionEnded, ProfileID: targetID, DeviceID: deviceID, At: now})
	}
	p.notifier.Publish(ctx, events...)

	logger.FromContext(ctx).Info().Str("actor_id", admin.ID).Str("profile_id", targetID).Int("sessions_cleared", len(cleared)).Msg("profile suspended")
	return nil
}

func (p *profileService) UnsuspendUser(ctx context.Context, actor models.AuthSession, targetID string) error {
	admin, err := p.AuthorizeAdmin(ctx, actor.ProfileID)
	if err != nil {
		return err
	}

	unlock := p.profileLocks.Lock(targetID)
	defer unlock()

	if _, err = getActiveProfile(ctx, p.storage.Repositories(), targetID); err != nil {
		return err
	}

	now := p.clock.Now()
	err = p.mutateProfile(ctx, targetID, func(profile *models.UserProfile) {
		profile.Suspended = false
		profile.SuspendedReason = ""
		profile.SuspendedBy = ""
		profile.SuspendedAt = nil
	}, profileEntry(models.AuditUserUnsuspended, admin.ID, targetID, "", now))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "profileService.UnsuspendUser").Msg("unsuspending profile failed")
		return err
	}

	logger.FromContext(ctx).Info().Str("actor_id", admin.ID).Str("profile_id", targetID).Msg("profile unsuspended")
	return nil
}

func (p *profileService) List(ctx context.Context) ([]models.UserProfile, error) {
	profiles, err := p.storage.Repositories().Profiles.ListProfiles(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "profileService.List").Msg("listing profiles failed")
		return nil, fmt.Errorf("listing profiles failed: %w", err)
	}

	out := make([]models.UserProfile, 0, len(profiles))
	for _, profile := range profiles {
		if profile.Active {
			out = append(out, profile.Public())
		}
	}
	return out, nil
}

func (p *profileService) AuthorizeAdmin(ctx context.Context, profileID string) (models.UserProfile, error) {
	profile, err := getActiveProfile(ctx, p.storage.Repositories(), profileID)
	if errors.Is(err, ErrProfileNotFound) {
		return models.UserProfile{}, ErrForbidden
	}
	if err != nil {
		return models.UserProfile{}, err
	}
	if profile.Suspended || profile.Role != models.RoleAdmin {
		logger.FromContext(ctx).Warn().Str("profile_id", profileID).Str("role", string(profile.Role)).Msg("administrative operation refused")
		return models.UserProfile{}, ErrForbidden
	}
	return profile, nil
}

// ── helpers ─────────────────────────────────────────────────────────────────

// mutateProfile applies fn to a fresh copy of the profile and stores it
// together with entry, then publishes profile_changed.
func (p *profileService) mutateProfile(ctx context.Context, id string, fn func(*models.UserProfile), entry models.AuditEntry) error {
	err := p.storage.Atomic(ctx, func(ctx context.Context, repos store.Repositories) error {
		return p.mutateProfileIn(ctx, repos, id, fn, entry)
	})
	if err != nil {
		return fmt.Errorf("updating profile failed: %w", err)
	}

	p.notifier.Publish(ctx, models.Event{Type: models.EventProfileChanged, ProfileID: id, At: entry.At})
	return nil
}

func (p *profileService) mutateProfileIn(ctx context.Context, repos store.Repositories, id string, fn func(*models.UserProfile), entry models.AuditEntry) error {
	profile, err := getActiveProfile(ctx, repos, id)
	if err != nil {
		return err
	}

	fn(&profile)
	profile.UpdatedAt = entry.At
	if err = repos.Profiles.UpdateProfile(ctx, profile); err != nil {
		return fmt.Errorf("profile update failed: %w", err)
	}

	return p.audit.appendTo(ctx, repos.Audit, entry)
}
