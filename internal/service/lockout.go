// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/store"
	"github.com/MKhiriev/kiosk-gate/models"
)

const (
	// MaxFailedAttempts is the number of failures inside LockoutWindow that
	// locks a profile.
	MaxFailedAttempts = 5

	// LockoutWindow is both the look-back window for failures and the
	// length of a lock.
	LockoutWindow = 15 * time.Minute

	// AttemptRetention is how far back attempts can still affect a lock
	// decision, plus a safety margin.
	AttemptRetention = 2*LockoutWindow + 5*time.Minute
)

// ── pure lock arithmetic ────────────────────────────────────────────────────

// failuresInWindow counts the failed attempts in (now-LockoutWindow, now].
func failuresInWindow(attempts []models.LoginAttempt, now time.Time) int {
	from := now.Add(-LockoutWindow)
	n := 0
	for _, a := range attempts {
		if !a.Success && a.At.After(from) && !a.At.After(now) {
			n++
		}
	}
	return n
}

// lockExpiry recomputes the lock in force at now from the attempt history.
// A lock starts at any failure that brings the failures in its trailing
// window to MaxFailedAttempts and lasts LockoutWindow from there.
func lockExpiry(attempts []models.LoginAttempt, now time.Time) (time.Time, bool) {
	failures := make([]time.Time, 0, len(attempts))
	for _, a := range attempts {
		if !a.Success && !a.At.After(now) {
			failures = append(failures, a.At)
		}
	}
	sort.Slice(failures, func(i, j int) bool { return failures[i].Before(failures[j]) })

	var until time.Time
	start := 0
	for i, at := range failures {
		for failures[start].Add(LockoutWindow).Compare(at) <= 0 {
			start++
		}
		if i-start+1 >= MaxFailedAttempts {
			if exp := at.Add(LockoutWindow); exp.After(until) {
				until = exp
			}
		}
	}

	if until.After(now) {
		return until, true
	}
	return time.Time{}, false
}

// remainingAttempts is MaxFailedAttempts minus the failures in the window,
// floored at zero.
func remainingAttempts(attempts []models.LoginAttempt, now time.Time) int {
	return max(MaxFailedAttempts-failuresInWindow(attempts, now), 0)
}

// ── policy ──────────────────────────────────────────────────────────────────

type lockoutPolicy struct {
	storage store.Storage
	logger  *logger.Logger
}

// NewLockoutPolicy returns the [LockoutPolicy] over the attempt and lockout
// repositories of storage.
func NewLockoutPolicy(storage store.Storage, logger *logger.Logger) LockoutPolicy {
	return newLockoutPolicy(storage, logger)
}

func newLockoutPolicy(storage store.Storage, logger *logger.Logger) *lockoutPolicy {
	return &lockoutPolicy{storage: storage, logger: logger}
}

func (p *lockoutPolicy) IsLocked(ctx context.Context, profileID string, now time.Time) (time.Time, bool, error) {
	return p.isLocked(ctx, p.storage.Repositories(), profileID, now)
}

func (p *lockoutPolicy) RecordAttempt(ctx context.Context, attempt models.LoginAttempt) error {
	if err := p.storage.Repositories().Attempts.AddAttempt(ctx, attempt); err != nil {
		return fmt.Errorf("recording login attempt failed: %w", err)
	}
	return nil
}

func (p *lockoutPolicy) CheckAndMaybeLock(ctx context.Context, profileID string, now time.Time) (time.Time, bool, error) {
	var (
		until  time.Time
		locked bool
	)
	err := p.storage.Atomic(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		until, locked, err = p.checkAndMaybeLock(ctx, repos, profileID, now)
		return err
	})
	return until, locked, err
}

func (p *lockoutPolicy) Remaining(ctx context.Context, profileID string, now time.Time) (int, error) {
	return p.remaining(ctx, p.storage.Repositories(), profileID, now)
}

func (p *lockoutPolicy) Prune(ctx context.Context, now time.Time) (int64, error) {
	n, err := p.storage.Repositories().Attempts.PruneAttempts(ctx, now.Add(-AttemptRetention))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "lockoutPolicy.Prune").Msg("pruning login attempts failed")
		return 0, fmt.Errorf("pruning login attempts failed: %w", err)
	}
	return n, nil
}

// isLocked consults the cached entry first. A stale entry is dropped and
// a missing one is recomputed from the history, repairing the cache.
func (p *lockoutPolicy) isLocked(ctx context.Context, repos store.Repositories, profileID string, now time.Time) (time.Time, bool, error) {
	entry, found, err := repos.Lockouts.GetLockout(ctx, profileID)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reading lockout failed: %w", err)
	}
	if found && entry.LockedUntil.After(now) {
		return entry.LockedUntil, true, nil
	}
	if found {
		if err = repos.Lockouts.ClearLockout(ctx, profileID); err != nil {
			return time.Time{}, false, fmt.Errorf("clearing stale lockout failed: %w", err)
		}
	}

	attempts, err := repos.Attempts.ListAttempts(ctx, profileID, now.Add(-2*LockoutWindow))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reading login attempts failed: %w", err)
	}

	until, locked := lockExpiry(attempts, now)
	if !locked {
		return time.Time{}, false, nil
	}

	logger.FromContext(ctx).Warn().
		Str("func", "lockoutPolicy.isLocked").
		Str("profile_id", profileID).
		Time("locked_until", until).
		Msg("lockout cache repaired from attempt history")
	if err = repos.Lockouts.SetLockout(ctx, models.LockoutEntry{ProfileID: profileID, LockedUntil: until}); err != nil {
		return time.Time{}, false, fmt.Errorf("repairing lockout failed: %w", err)
	}
	return until, true, nil
}

// checkAndMaybeLock locks the profile until now+LockoutWindow when the
// failures in the window reached MaxFailedAttempts.
func (p *lockoutPolicy) checkAndMaybeLock(ctx context.Context, repos store.Repositories, profileID string, now time.Time) (time.Time, bool, error) {
	attempts, err := repos.Attempts.ListAttempts(ctx, profileID, now.Add(-LockoutWindow))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reading login attempts failed: %w", err)
	}
	if failuresInWindow(attempts, now) < MaxFailedAttempts {
		return time.Time{}, false, nil
	}

	until := now.Add(LockoutWindow)
	if err = repos.Lockouts.SetLockout(ctx, models.LockoutEntry{ProfileID: profileID, LockedUntil: until}); err != nil {
		return time.Time{}, false, fmt.Errorf("storing lockout failed: %w", err)
	}

	logger.FromContext(ctx).Warn().
		Str("func", "lockoutPolicy.checkAndMaybeLock").
		Str("profile_id", profileID).
		Time("locked_until", until).
		Msg("profile locked")
	return until, true, nil
}

func (p *lockoutPolicy) remaining(ctx context.Context, repos store.Repositories, profileID string, now time.Time) (int, error) {
	attempts, err := repos.Attempts.ListAttempts(ctx, profileID, now.Add(-LockoutWindow))
	if err != nil {
		return 0, fmt.Errorf("reading login attempts failed: %w", err)
	}
	return remainingAttempts(attempts, now), nil
}
