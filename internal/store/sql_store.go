// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/models"
)

// maxTxAttempts bounds how often Atomic reruns a unit of work that failed
// with a retryable driver error.
const maxTxAttempts = 3

// sqlStore is the relational [Storage] (PostgreSQL or SQLite).
type sqlStore struct {
	db *DB
	qb queryBuilder
}

// NewSQLStore builds a [Storage] over an open, migrated database.
func NewSQLStore(db *DB) Storage {
	return &sqlStore{
		db: db,
		qb: newQueryBuilder(db.driver),
	}
}

// Repositories implements [Storage].
func (s *sqlStore) Repositories() Repositories {
	return s.repo(s.db.DB).repositories()
}

// Atomic implements [Storage]. fn runs inside one transaction; a retryable
// failure (serialization failure, deadlock, busy database) reruns it.
func (s *sqlStore) Atomic(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = WithTx(ctx, s.db.DB, nil, func(tx *sql.Tx) error {
			return fn(ctx, s.repo(tx).repositories())
		})
		if err == nil || s.db.errorClassificator == nil || s.db.errorClassificator.Classify(err) != Retryable {
			return err
		}
		log.Warn().Err(err).Str("func", "*sqlStore.Atomic").Int("attempt", attempt).Msg("retrying transaction")
	}
	return err
}

// Close implements [Storage].
func (s *sqlStore) Close() error {
	return s.db.Close()
}

func (s *sqlStore) repo(q DBTX) sqlRepo {
	return sqlRepo{q: q, qb: s.qb, classifier: s.db.errorClassificator}
}

// sqlRepo implements every repository interface over a DBTX.
type sqlRepo struct {
	q          DBTX
	qb         queryBuilder
	classifier ErrorClassificator
}

func (r sqlRepo) repositories() Repositories {
	return Repositories{
		Profiles: r,
		Attempts: r,
		Lockouts: r,
		Sessions: r,
		Audit:    r,
	}
}

func (r sqlRepo) exec(ctx context.Context, fn string, query string, args []any) (sql.Result, error) {
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("failed to execute statement")
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return res, nil
}

// ── profiles ─────────────────────────────────────────────────────────────────

func (r sqlRepo) CreateProfile(ctx context.Context, profile models.UserProfile) error {
	query, args, err := r.qb.insertProfile(profile)
	if err != nil {
		return err
	}

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		if r.classifier != nil && r.classifier.IsUniqueViolation(err) {
			return ErrNameAlreadyExists
		}
		logger.FromContext(ctx).Err(err).Str("func", "sqlRepo.CreateProfile").Msg("failed to insert profile")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r sqlRepo) GetProfile(ctx context.Context, id string) (models.UserProfile, error) {
	query, args, err := r.qb.selectProfile("id", id)
	if err != nil {
		return models.UserProfile{}, err
	}
	return r.scanProfile(ctx, "sqlRepo.GetProfile", query, args)
}

func (r sqlRepo) FindProfileByName(ctx context.Context, name string) (models.UserProfile, error) {
	query, args, err := r.qb.selectProfile("name_key", models.NameKey(name))
	if err != nil {
		return models.UserProfile{}, err
	}
	return r.scanProfile(ctx, "sqlRepo.FindProfileByName", query, args)
}

func (r sqlRepo) UpdateProfile(ctx context.Context, profile models.UserProfile) error {
	query, args, err := r.qb.updateProfile(profile)
	if err != nil {
		return err
	}

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		if r.classifier != nil && r.classifier.IsUniqueViolation(err) {
			return ErrNameAlreadyExists
		}
		logger.FromContext(ctx).Err(err).Str("func", "sqlRepo.UpdateProfile").Str("profile_id", profile.ID).Msg("failed to update profile")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoProfileWasFound
	}
	return nil
}

func (r sqlRepo) ListProfiles(ctx context.Context) ([]models.UserProfile, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.qb.selectProfiles()
	if err != nil {
		return nil, err
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "sqlRepo.ListProfiles").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	profiles := make([]models.UserProfile, 0, 16)
	for rows.Next() {
		var p models.UserProfile
		if err := scanProfileRow(rows, &p); err != nil {
			log.Err(err).Str("func", "sqlRepo.ListProfiles").Msg("failed to scan profile row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "sqlRepo.ListProfiles").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return profiles, nil
}

func (r sqlRepo) scanProfile(ctx context.Context, fn, query string, args []any) (models.UserProfile, error) {
	var p models.UserProfile
	err := scanProfileRow(r.q.QueryRowContext(ctx, query, args...), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserProfile{}, ErrNoProfileWasFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("failed to scan profile row")
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfileRow(row rowScanner, p *models.UserProfile) error {
	var (
		role                               string
		suspendedAt, lastLoginAt, lastSeen sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Initials, &role, &p.Credential,
		&p.Active, &p.Suspended, &p.SuspendedReason, &p.SuspendedBy, &suspendedAt,
		&p.LoginCount, &lastLoginAt, &lastSeen, &p.Online, &p.PinResetRequired,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	p.Role = models.Role(role)
	p.SuspendedAt = timePtr(suspendedAt)
	p.LastLoginAt = timePtr(lastLoginAt)
	p.LastSeenAt = timePtr(lastSeen)
	return nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// ── attempts ─────────────────────────────────────────────────────────────────

func (r sqlRepo) AddAttempt(ctx context.Context, attempt models.LoginAttempt) error {
	query, args, err := r.qb.insertAttempt(attempt)
	if err != nil {
		return err
	}
	_, err = r.exec(ctx, "sqlRepo.AddAttempt", query, args)
	return err
}

func (r sqlRepo) ListAttempts(ctx context.Context, profileID string, since time.Time) ([]models.LoginAttempt, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.qb.selectAttempts(profileID, since)
	if err != nil {
		return nil, err
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "sqlRepo.ListAttempts").Str("profile_id", profileID).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var attempts []models.LoginAttempt
	for rows.Next() {
		var a models.LoginAttempt
		if err := rows.Scan(&a.ProfileID, &a.At, &a.Success, &a.DeviceID); err != nil {
			log.Err(err).Str("func", "sqlRepo.ListAttempts").Msg("failed to scan attempt row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return attempts, nil
}

func (r sqlRepo) PruneAttempts(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := r.qb.deleteAttempts(before)
	if err != nil {
		return 0, err
	}
	res, err := r.exec(ctx, "sqlRepo.PruneAttempts", query, args)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ── lockouts ─────────────────────────────────────────────────────────────────

func (r sqlRepo) GetLockout(ctx context.Context, profileID string) (models.LockoutEntry, bool, error) {
	query, args, err := r.qb.selectLockout(profileID)
	if err != nil {
		return models.LockoutEntry{}, false, err
	}

	var entry models.LockoutEntry
	err = r.q.QueryRowContext(ctx, query, args...).Scan(&entry.ProfileID, &entry.LockedUntil)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LockoutEntry{}, false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sqlRepo.GetLockout").Str("profile_id", profileID).Msg("failed to scan lockout row")
		return models.LockoutEntry{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return entry, true, nil
}

func (r sqlRepo) SetLockout(ctx context.Context, entry models.LockoutEntry) error {
	query, args, err := r.qb.upsertLockout(entry)
	if err != nil {
		return err
	}
	_, err = r.exec(ctx, "sqlRepo.SetLockout", query, args)
	return err
}

func (r sqlRepo) ClearLockout(ctx context.Context, profileID string) error {
	query, args, err := r.qb.deleteLockout(profileID)
	if err != nil {
		return err
	}
	_, err = r.exec(ctx, "sqlRepo.ClearLockout", query, args)
	return err
}

// ── sessions ─────────────────────────────────────────────────────────────────

func (r sqlRepo) GetSession(ctx context.Context, deviceID string) (models.AuthSession, error) {
	query, args, err := r.qb.selectSession(deviceID)
	if err != nil {
		return models.AuthSession{}, err
	}

	var s models.AuthSession
	err = scanSessionRow(r.q.QueryRowContext(ctx, query, args...), &s)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AuthSession{}, ErrNoSessionWasFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sqlRepo.GetSession").Str("device_id", deviceID).Msg("failed to scan session row")
		return models.AuthSession{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return s, nil
}

func (r sqlRepo) PutSession(ctx context.Context, session models.AuthSession) error {
	query, args, err := r.qb.upsertSession(session)
	if err != nil {
		return err
	}
	_, err = r.exec(ctx, "sqlRepo.PutSession", query, args)
	return err
}

func (r sqlRepo) DeleteSession(ctx context.Context, deviceID, sessionID string) (bool, error) {
	query, args, err := r.qb.deleteSession(deviceID, sessionID)
	if err != nil {
		return false, err
	}
	res, err := r.exec(ctx, "sqlRepo.DeleteSession", query, args)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return affected > 0, nil
}

func (r sqlRepo) ListSessions(ctx context.Context) ([]models.AuthSession, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.qb.selectSessions()
	if err != nil {
		return nil, err
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "sqlRepo.ListSessions").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var sessions []models.AuthSession
	for rows.Next() {
		var s models.AuthSession
		if err := scanSessionRow(rows, &s); err != nil {
			log.Err(err).Str("func", "sqlRepo.ListSessions").Msg("failed to scan session row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return sessions, nil
}

func scanSessionRow(row rowScanner, s *models.AuthSession) error {
	return row.Scan(&s.ID, &s.ProfileID, &s.DeviceID, &s.IssuedAt, &s.ExpiresAt, &s.IsKiosk)
}

// ── audit ────────────────────────────────────────────────────────────────────

// AppendAudit inserts entry and trims the table to AuditRetention rows.
func (r sqlRepo) AppendAudit(ctx context.Context, entry models.AuditEntry) error {
	query, args, err := r.qb.insertAudit(entry)
	if err != nil {
		return err
	}
	if _, err := r.exec(ctx, "sqlRepo.AppendAudit", query, args); err != nil {
		return err
	}

	query, args, err = r.qb.trimAudit(AuditRetention)
	if err != nil {
		return err
	}
	_, err = r.exec(ctx, "sqlRepo.AppendAudit", query, args)
	return err
}

func (r sqlRepo) RecentAudit(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 || limit > AuditRetention {
		limit = AuditRetention
	}
	query, args, err := r.qb.selectRecentAudit(limit)
	if err != nil {
		return nil, err
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "sqlRepo.RecentAudit").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.AuditEntry, 0, limit)
	for rows.Next() {
		var (
			e                models.AuditEntry
			action, category string
		)
		if err := rows.Scan(&e.ID, &e.ActorID, &action, &e.TargetKind, &e.TargetID, &e.Detail, &e.At, &category); err != nil {
			log.Err(err).Str("func", "sqlRepo.RecentAudit").Msg("failed to scan audit row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		e.Action = models.AuditAction(action)
		e.Category = models.AuditCategory(category)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return entries, nil
}
