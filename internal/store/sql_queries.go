package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/kiosk-gate/internal/config"
	"github.com/MKhiriev/kiosk-gate/models"
)

const (
	profilesTable = "profiles"
	attemptsTable = "login_attempts"
	lockoutsTable = "lockouts"
	sessionsTable = "sessions"
	auditTable    = "audit_log"
)

var profileColumns = []string{
	"id", "name", "initials", "role", "credential",
	"active", "suspended", "suspended_reason", "suspended_by", "suspended_at",
	"login_count", "last_login_at", "last_seen_at", "online", "pin_reset_required",
	"created_at", "updated_at",
}

var sessionColumns = []string{"id", "profile_id", "device_id", "issued_at", "expires_at", "is_kiosk"}

var auditColumns = []string{"id", "actor_id", "action", "target_kind", "target_id", "detail", "at", "category"}

// queryBuilder builds the statements of the SQL store for one dialect.
type queryBuilder struct {
	sq.StatementBuilderType
}

func newQueryBuilder(driver string) queryBuilder {
	var format sq.PlaceholderFormat = sq.Question
	if driver == config.DriverPostgres {
		format = sq.Dollar
	}
	return queryBuilder{sq.StatementBuilder.PlaceholderFormat(format)}
}

func toSQL(b sq.Sqlizer) (string, []any, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// ── profiles ─────────────────────────────────────────────────────────────────

func (b queryBuilder) insertProfile(p models.UserProfile) (string, []any, error) {
	return toSQL(b.Insert(profilesTable).
		Columns(append(profileColumns, "name_key")...).
		Values(append(profileValues(p), models.NameKey(p.Name))...))
}

func (b queryBuilder) updateProfile(p models.UserProfile) (string, []any, error) {
	values := profileValues(p)
	upd := b.Update(profilesTable)
	// id is the key, not a column to set
	for i, col := range profileColumns[1:] {
		upd = upd.Set(col, values[i+1])
	}
	return toSQL(upd.Set("name_key", models.NameKey(p.Name)).Where(sq.Eq{"id": p.ID}))
}

func (b queryBuilder) selectProfile(column string, value any) (string, []any, error) {
	return toSQL(b.Select(profileColumns...).From(profilesTable).Where(sq.Eq{column: value}))
}

func (b queryBuilder) selectProfiles() (string, []any, error) {
	return toSQL(b.Select(profileColumns...).From(profilesTable).OrderBy("created_at", "id"))
}

func profileValues(p models.UserProfile) []any {
	return []any{
		p.ID, p.Name, p.Initials, string(p.Role), p.Credential,
		p.Active, p.Suspended, p.SuspendedReason, p.SuspendedBy, p.SuspendedAt,
		p.LoginCount, p.LastLoginAt, p.LastSeenAt, p.Online, p.PinResetRequired,
		p.CreatedAt, p.UpdatedAt,
	}
}

// ── attempts ─────────────────────────────────────────────────────────────────

func (b queryBuilder) insertAttempt(a models.LoginAttempt) (string, []any, error) {
	return toSQL(b.Insert(attemptsTable).
		Columns("profile_id", "at", "success", "device_id").
		Values(a.ProfileID, a.At, a.Success, a.DeviceID))
}

func (b queryBuilder) selectAttempts(profileID string, since time.Time) (string, []any, error) {
	return toSQL(b.Select("profile_id", "at", "success", "device_id").
		From(attemptsTable).
		Where(sq.Eq{"profile_id": profileID}).
		Where(sq.Gt{"at": since}).
		OrderBy("at"))
}

func (b queryBuilder) deleteAttempts(before time.Time) (string, []any, error) {
	return toSQL(b.Delete(attemptsTable).Where(sq.Lt{"at": before}))
}

// ── lockouts ─────────────────────────────────────────────────────────────────

func (b queryBuilder) selectLockout(profileID string) (string, []any, error) {
	return toSQL(b.Select("profile_id", "locked_until").From(lockoutsTable).Where(sq.Eq{"profile_id": profileID}))
}

func (b queryBuilder) upsertLockout(e models.LockoutEntry) (string, []any, error) {
	return toSQL(b.Insert(lockoutsTable).
		Columns("profile_id", "locked_until").
		Values(e.ProfileID, e.LockedUntil).
		Suffix("ON CONFLICT (profile_id) DO UPDATE SET locked_until = excluded.locked_until"))
}

func (b queryBuilder) deleteLockout(profileID string) (string, []any, error) {
	return toSQL(b.Delete(lockoutsTable).Where(sq.Eq{"profile_id": profileID}))
}

// ── sessions ─────────────────────────────────────────────────────────────────

func (b queryBuilder) selectSession(deviceID string) (string, []any, error) {
	return toSQL(b.Select(sessionColumns...).From(sessionsTable).Where(sq.Eq{"device_id": deviceID}))
}

func (b queryBuilder) selectSessions() (string, []any, error) {
	return toSQL(b.Select(sessionColumns...).From(sessionsTable).OrderBy("device_id"))
}

func (b queryBuilder) upsertSession(s models.AuthSession) (string, []any, error) {
	return toSQL(b.Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(s.ID, s.ProfileID, s.DeviceID, s.IssuedAt, s.ExpiresAt, s.IsKiosk).
		Suffix("ON CONFLICT (device_id) DO UPDATE SET " +
			"id = excluded.id, profile_id = excluded.profile_id, issued_at = excluded.issued_at, " +
			"expires_at = excluded.expires_at, is_kiosk = excluded.is_kiosk"))
}

func (b queryBuilder) deleteSession(deviceID, sessionID string) (string, []any, error) {
	return toSQL(b.Delete(sessionsTable).Where(sq.Eq{"device_id": deviceID, "id": sessionID}))
}

// ── audit ────────────────────────────────────────────────────────────────────

func (b queryBuilder) insertAudit(e models.AuditEntry) (string, []any, error) {
	return toSQL(b.Insert(auditTable).
		Columns(auditColumns...).
		Values(e.ID, e.ActorID, string(e.Action), e.TargetKind, e.TargetID, e.Detail, e.At, string(e.Category)))
}

// trimAudit drops everything older than the retain most recent entries.
func (b queryBuilder) trimAudit(retain int) (string, []any, error) {
	return toSQL(b.Delete(auditTable).
		Where(sq.Expr("seq <= (SELECT seq FROM audit_log ORDER BY seq DESC LIMIT 1 OFFSET ?)", retain)))
}

func (b queryBuilder) selectRecentAudit(limit int) (string, []any, error) {
	return toSQL(b.Select(auditColumns...).From(auditTable).OrderBy("seq DESC").Limit(uint64(limit)))
}
