// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/models"
)

// memState is the whole device-local state. It is only touched with
// stateStore.mu held.
type memState struct {
	profiles map[string]models.UserProfile
	order    []string
	sessions map[string]models.AuthSession
	lockouts map[string]time.Time
	attempts []models.LoginAttempt
	// audit is kept most recent first.
	audit []models.AuditEntry
}

func newMemState() *memState {
	return &memState{
		profiles: make(map[string]models.UserProfile),
		sessions: make(map[string]models.AuthSession),
		lockouts: make(map[string]time.Time),
	}
}

func (s *memState) clone() *memState {
	c := &memState{
		profiles: make(map[string]models.UserProfile, len(s.profiles)),
		order:    slices.Clone(s.order),
		sessions: make(map[string]models.AuthSession, len(s.sessions)),
		lockouts: make(map[string]time.Time, len(s.lockouts)),
		attempts: slices.Clone(s.attempts),
		audit:    slices.Clone(s.audit),
	}
	for k, v := range s.profiles {
		c.profiles[k] = v
	}
	for k, v := range s.sessions {
		c.sessions[k] = v
	}
	for k, v := range s.lockouts {
		c.lockouts[k] = v
	}
	return c
}

// stateStore is the device-local [Storage]: all state in memory, written
// through to a JSON state file after every committed mutation when path is
// set.
type stateStore struct {
	mu     sync.Mutex
	state  *memState
	path   string
	logger *logger.Logger
}

// NewStateStore opens the state file at path, loading it when it exists.
// An empty path yields a memory-only store.
func NewStateStore(path string, logger *logger.Logger) (Storage, error) {
	s := &stateStore{
		state:  newMemState(),
		path:   path,
		logger: logger,
	}

	if path != "" {
		st, err := loadSnapshot(path)
		if err != nil {
			logger.Err(err).Str("func", "NewStateStore").Str("path", path).Msg("error loading state file")
			return nil, err
		}
		if st != nil {
			s.state = st
		}
	}

	logger.Debug().Str("func", "NewStateStore").Str("path", path).Msg("state store ready")
	return s, nil
}

// Repositories implements [Storage].
func (s *stateStore) Repositories() Repositories {
	return stateRepo{store: s}.repositories()
}

// Atomic implements [Storage]. The store lock is held for the whole of fn.
func (s *stateStore) Atomic(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(func() error {
		return fn(ctx, stateRepo{store: s, inTx: true}.repositories())
	})
}

// Close implements [Storage].
func (s *stateStore) Close() error {
	return nil
}

// commit runs mutate against the live state and persists the result. On any
// error the state is restored to what it was before mutate.
func (s *stateStore) commit(mutate func() error) error {
	backup := s.state.clone()

	if err := mutate(); err != nil {
		s.state = backup
		return err
	}

	if err := s.persist(); err != nil {
		s.logger.Err(err).Str("func", "*stateStore.commit").Str("path", s.path).Msg("error persisting state, rolled back")
		s.state = backup
		return err
	}
	return nil
}

func (s *stateStore) persist() error {
	if s.path == "" {
		return nil
	}
	return writeSnapshot(s.path, s.state)
}

// stateRepo implements every repository interface over a stateStore. Inside
// Atomic (inTx) the store lock is already held.
type stateRepo struct {
	store *stateStore
	inTx  bool
}

func (r stateRepo) repositories() Repositories {
	return Repositories{
		Profiles: r,
		Attempts: r,
		Lockouts: r,
		Sessions: r,
		Audit:    r,
	}
}

func (r stateRepo) read(fn func(st *memState) error) error {
	if r.inTx {
		return fn(r.store.state)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(r.store.state)
}

func (r stateRepo) write(fn func(st *memState) error) error {
	if r.inTx {
		return fn(r.store.state)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.commit(func() error {
		return fn(r.store.state)
	})
}

// ── profiles ─────────────────────────────────────────────────────────────────

func (r stateRepo) CreateProfile(ctx context.Context, profile models.UserProfile) error {
	return r.write(func(st *memState) error {
		key := models.NameKey(profile.Name)
		for _, p := range st.profiles {
			if models.NameKey(p.Name) == key {
				return ErrNameAlreadyExists
			}
		}
		st.profiles[profile.ID] = profile
		st.order = append(st.order, profile.ID)
		return nil
	})
}

func (r stateRepo) GetProfile(ctx context.Context, id string) (models.UserProfile, error) {
	var out models.UserProfile
	err := r.read(func(st *memState) error {
		p, ok := st.profiles[id]
		if !ok {
			return ErrNoProfileWasFound
		}
		out = p
		return nil
	})
	return out, err
}

func (r stateRepo) FindProfileByName(ctx context.Context, name string) (models.UserProfile, error) {
	var out models.UserProfile
	err := r.read(func(st *memState) error {
		key := models.NameKey(name)
		for _, id := range st.order {
			if p := st.profiles[id]; models.NameKey(p.Name) == key {
				out = p
				return nil
			}
		}
		return ErrNoProfileWasFound
	})
	return out, err
}

func (r stateRepo) UpdateProfile(ctx context.Context, profile models.UserProfile) error {
	return r.write(func(st *memState) error {
		if _, ok := st.profiles[profile.ID]; !ok {
			return ErrNoProfileWasFound
		}
		st.profiles[profile.ID] = profile
		return nil
	})
}

func (r stateRepo) ListProfiles(ctx context.Context) ([]models.UserProfile, error) {
	var out []models.UserProfile
	err := r.read(func(st *memState) error {
		out = make([]models.UserProfile, 0, len(st.order))
		for _, id := range st.order {
			out = append(out, st.profiles[id])
		}
		return nil
	})
	return out, err
}

// ── attempts ─────────────────────────────────────────────────────────────────

func (r stateRepo) AddAttempt(ctx context.Context, attempt models.LoginAttempt) error {
	return r.write(func(st *memState) error {
		st.attempts = append(st.attempts, attempt)
		return nil
	})
}

func (r stateRepo) ListAttempts(ctx context.Context, profileID string, since time.Time) ([]models.LoginAttempt, error) {
	var out []models.LoginAttempt
	err := r.read(func(st *memState) error {
		for _, a := range st.attempts {
			if a.ProfileID == profileID && a.At.After(since) {
				out = append(out, a)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
		return nil
	})
	return out, err
}

func (r stateRepo) PruneAttempts(ctx context.Context, before time.Time) (int64, error) {
	var pruned int64
	err := r.write(func(st *memState) error {
		kept := st.attempts[:0:0]
		for _, a := range st.attempts {
			if a.At.Before(before) {
				pruned++
				continue
			}
			kept = append(kept, a)
		}
		st.attempts = kept
		return nil
	})
	return pruned, err
}

// ── lockouts ─────────────────────────────────────────────────────────────────

func (r stateRepo) GetLockout(ctx context.Context, profileID string) (models.LockoutEntry, bool, error) {
	var (
		out   models.LockoutEntry
		found bool
	)
	err := r.read(func(st *memState) error {
		until, ok := st.lockouts[profileID]
		if ok {
			out = models.LockoutEntry{ProfileID: profileID, LockedUntil: until}
			found = true
		}
		return nil
	})
	return out, found, err
}

func (r stateRepo) SetLockout(ctx context.Context, entry models.LockoutEntry) error {
	return r.write(func(st *memState) error {
		st.lockouts[entry.ProfileID] = entry.LockedUntil
		return nil
	})
}

func (r stateRepo) ClearLockout(ctx context.Context, profileID string) error {
	return r.write(func(st *memState) error {
		delete(st.lockouts, profileID)
		return nil
	})
}

// ── sessions ─────────────────────────────────────────────────────────────────

func (r stateRepo) GetSession(ctx context.Context, deviceID string) (models.AuthSession, error) {
	var out models.AuthSession
	err := r.read(func(st *memState) error {
		s, ok := st.sessions[deviceID]
		if !ok {
			return ErrNoSessionWasFound
		}
		out = s
		return nil
	})
	return out, err
}

func (r stateRepo) PutSession(ctx context.Context, session models.AuthSession) error {
	session.Token = ""
	return r.write(func(st *memState) error {
		st.sessions[session.DeviceID] = session
		return nil
	})
}

func (r stateRepo) DeleteSession(ctx context.Context, deviceID, sessionID string) (bool, error) {
	var deleted bool
	err := r.write(func(st *memState) error {
		s, ok := st.sessions[deviceID]
		if !ok || s.ID != sessionID {
			return nil
		}
		delete(st.sessions, deviceID)
		deleted = true
		return nil
	})
	return deleted, err
}

func (r stateRepo) ListSessions(ctx context.Context) ([]models.AuthSession, error) {
	var out []models.AuthSession
	err := r.read(func(st *memState) error {
		out = make([]models.AuthSession, 0, len(st.sessions))
		for _, s := range st.sessions {
			out = append(out, s)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].DeviceID < out[j].DeviceID })
		return nil
	})
	return out, err
}

// ── audit ────────────────────────────────────────────────────────────────────

func (r stateRepo) AppendAudit(ctx context.Context, entry models.AuditEntry) error {
	return r.write(func(st *memState) error {
		st.audit = append([]models.AuditEntry{entry}, st.audit...)
		if len(st.audit) > AuditRetention {
			st.audit = st.audit[:AuditRetention]
		}
		return nil
	})
}

func (r stateRepo) RecentAudit(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	var out []models.AuditEntry
	err := r.read(func(st *memState) error {
		n := len(st.audit)
		if limit > 0 && limit < n {
			n = limit
		}
		out = slices.Clone(st.audit[:n])
		return nil
	})
	return out, err
}
