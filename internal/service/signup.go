// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/store"
	"github.com/MKhiriev/kiosk-gate/models"
)

// MinNameLength is the minimum length of a trimmed display name, in runes.
const MinNameLength = 2

// deniedPINs are trivially guessable PINs. Repeated-digit PINs are checked
// separately.
var deniedPINs = map[string]struct{}{
	"1234": {}, "4321": {}, "1010": {}, "2580": {}, "0852": {},
	"1212": {}, "6969": {}, "1122": {}, "1313": {}, "2000": {},
	"0101": {}, "2001": {}, "1004": {}, "7777": {}, "0007": {},
	"1230": {}, "2468": {}, "1357": {}, "9876": {}, "1990": {},
}

// signupValidator is the concrete implementation of SignupService.
type signupValidator struct {
	*core

	// nameLocks serializes concurrent signups for the same name key.
	nameLocks *keyedMutex
}

// Signup validates req, creates the profile and logs it in on req.DeviceID.
//
// Validation order: role, name shape, name uniqueness, PIN shape, deny-list,
// sequential run. The first failing rule is reported.
func (s *signupValidator) Signup(ctx context.Context, req models.SignupRequest) (models.UserProfile, models.AuthSession, error) {
	log := logger.FromContext(ctx)

	if req.DeviceID == "" || !req.Role.Valid() {
		log.Warn().Str("role", string(req.Role)).Msg("signup without device id or with unknown role")
		return models.UserProfile{}, models.AuthSession{}, ErrInvalidDataProvided
	}

	name := models.NormalizeName(req.Name)
	if err := validateName(name); err != nil {
		return models.UserProfile{}, models.AuthSession{}, err
	}

	unlock := s.nameLocks.Lock(models.NameKey(name))
	defer unlock()

	repos := s.storage.Repositories()
	_, err := repos.Profiles.FindProfileByName(ctx, name)
	switch {
	case err == nil:
		log.Info().Str("name", name).Msg("signup with taken name")
		return models.UserProfile{}, models.AuthSession{}, ErrDuplicateName
	case !errors.Is(err, store.ErrNoProfileWasFound):
		log.Err(err).Str("func", "signupValidator.Signup").Msg("name lookup failed")
		return models.UserProfile{}, models.AuthSession{}, fmt.Errorf("name lookup failed: %w", err)
	}

	if err = ValidatePIN(req.PIN); err != nil {
		log.Info().Err(err).Msg("signup with weak PIN")
		return models.UserProfile{}, models.AuthSession{}, err
	}

	cred, err := s.hasher.Hash(ctx, req.PIN)
	if err != nil {
		log.Err(err).Str("func", "signupValidator.Signup").Msg("hashing PIN failed")
		return models.UserProfile{}, models.AuthSession{}, fmt.Errorf("hashing PIN failed: %w", err)
	}

	now := s.clock.Now()
	profile := models.UserProfile{
		ID:          s.ids.Generate(),
		Name:        name,
		Initials:    models.Initials(name),
		Role:        req.Role,
		Credential:  cred,
		Active:      true,
		LoginCount:  1,
		LastLoginAt: &now,
		LastSeenAt:  &now,
		Online:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	session, err := s.issueSession(profile.ID, req.DeviceID, req.Kiosk, now)
	if err != nil {
		log.Err(err).Str("func", "signupValidator.Signup").Msg("issuing session failed")
		return models.UserProfile{}, models.AuthSession{}, err
	}

	var superseded *models.AuthSession
	err = s.storage.Atomic(ctx, func(ctx context.Context, repos store.Repositories) error {
		if err := repos.Profiles.CreateProfile(ctx, profile); err != nil {
			return err
		}
		err := repos.Attempts.AddAttempt(ctx, models.LoginAttempt{ProfileID: profile.ID, At: now, Success: true, DeviceID: req.DeviceID})
		if err != nil {
			return fmt.Errorf("recording login attempt failed: %w", err)
		}

		if superseded, err = s.fillSlot(ctx, repos, session, now); err != nil {
			return err
		}

		return s.audit.appendTo(ctx, repos.Audit, profileEntry(models.AuditSignup, profile.ID, profile.ID, "role="+string(profile.Role), now))
	})
	if errors.Is(err, store.ErrNameAlreadyExists) {
		log.Info().Str("name", name).Msg("signup lost a race for the name")
		return models.UserProfile{}, models.AuthSession{}, ErrDuplicateName
	}
	if err != nil {
		log.Err(err).Str("func", "signupValidator.Signup").Msg("committing signup failed")
		return models.UserProfile{}, models.AuthSession{}, fmt.Errorf("committing signup failed: %w", err)
	}

	log.Info().Str("profile_id", profile.ID).Str("role", string(profile.Role)).Msg("profile created")
	s.publishStarted(ctx, session, superseded)

	return profile.Public(), session, nil
}

func validateName(name string) error {
	if utf8.RuneCountInString(name) < MinNameLength {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, ErrNameTooShort)
	}
	return nil
}

// ValidatePIN applies the PIN strength rules shared by signup and PIN
// change: exactly PINLength ASCII digits, not on the deny-list, not a
// repeated digit and not a step-1 run up or down.
func ValidatePIN(pin string) error {
	if len(pin) != PINLength {
		return &WeakCredentialError{Reason: fmt.Sprintf("PIN must be exactly %d digits", PINLength)}
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return &WeakCredentialError{Reason: fmt.Sprintf("PIN must be exactly %d digits", PINLength)}
		}
	}

	if _, denied := deniedPINs[pin]; denied || isRepeated(pin) {
		return &WeakCredentialError{Reason: "PIN is too common"}
	}

	if isSequential(pin) {
		return &WeakCredentialError{Reason: "PIN must not be a sequence"}
	}

	return nil
}

func isRepeated(pin string) bool {
	for i := 1; i < len(pin); i++ {
		if pin[i] != pin[0] {
			return false
		}
	}
	return true
}

// isSequential reports whether every digit is one more, or every digit one
// less, than the previous one.
func isSequential(pin string) bool {
	up, down := true, true
	for i := 1; i < len(pin); i++ {
		d := int(pin[i]) - int(pin[i-1])
		up = up && d == 1
		down = down && d == -1
	}
	return up || down
}
