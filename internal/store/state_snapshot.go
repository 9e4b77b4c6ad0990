package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/kiosk-gate/models"
)

// snapshot is the on-disk shape of the state file.
type snapshot struct {
	// Session maps device id to the session held by that device.
	Session       map[string]models.AuthSession `json:"session"`
	Profiles      []models.UserProfile          `json:"profiles"`
	LockedUsers   map[string]string             `json:"lockedUsers"`
	LoginAttempts []models.LoginAttempt         `json:"loginAttempts"`
	// AuditLog is most recent first and capped at AuditSnapshotRetention.
	AuditLog []models.AuditEntry `json:"auditLog"`
}

func toSnapshot(st *memState) snapshot {
	snap := snapshot{
		Session:       st.sessions,
		Profiles:      make([]models.UserProfile, 0, len(st.order)),
		LockedUsers:   make(map[string]string, len(st.lockouts)),
		LoginAttempts: st.attempts,
		AuditLog:      st.audit,
	}
	for _, id := range st.order {
		snap.Profiles = append(snap.Profiles, st.profiles[id])
	}
	for id, until := range st.lockouts {
		snap.LockedUsers[id] = until.UTC().Format(time.RFC3339Nano)
	}
	if len(snap.AuditLog) > AuditSnapshotRetention {
		snap.AuditLog = snap.AuditLog[:AuditSnapshotRetention]
	}
	return snap
}

func fromSnapshot(snap snapshot) (*memState, error) {
	st := newMemState()
	for id, s := range snap.Session {
		st.sessions[id] = s
	}
	for _, p := range snap.Profiles {
		st.profiles[p.ID] = p
		st.order = append(st.order, p.ID)
	}
	for id, raw := range snap.LockedUsers {
		until, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("lock expiry of %s: %w", id, err)
		}
		st.lockouts[id] = until
	}
	st.attempts = snap.LoginAttempts
	st.audit = snap.AuditLog
	return st, nil
}

// loadSnapshot reads the state file at path. A missing file yields a nil
// state and no error.
func loadSnapshot(path string) (*memState, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadingState, err)
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadingState, err)
	}

	st, err := fromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadingState, err)
	}
	return st, nil
}

// writeSnapshot replaces the state file at path. The new content is written
// to a temporary file in the same directory and renamed over the old one.
func writeSnapshot(path string, st *memState) error {
	raw, err := json.Marshal(toSnapshot(st))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistingState, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistingState, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", ErrPersistingState, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistingState, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistingState, err)
	}
	return nil
}
