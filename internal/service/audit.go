// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/store"
	"github.com/MKhiriev/kiosk-gate/internal/utils"
	"github.com/MKhiriev/kiosk-gate/models"
)

// actionCategories maps every audit action to its category.
var actionCategories = map[models.AuditAction]models.AuditCategory{
	models.AuditSignup:            models.CategoryAccount,
	models.AuditLogin:             models.CategoryAuth,
	models.AuditLoginFailed:       models.CategoryAuth,
	models.AuditLogout:            models.CategorySession,
	models.AuditSessionExpired:    models.CategorySession,
	models.AuditPinChanged:        models.CategoryAccount,
	models.AuditPinReset:          models.CategoryAdmin,
	models.AuditUserSuspended:     models.CategoryAdmin,
	models.AuditUserUnsuspended:   models.CategoryAdmin,
	models.AuditCredentialCorrupt: models.CategoryIntegrity,
}

type auditLog struct {
	storage store.Storage
	ids     IDGenerator
	clock   utils.Clock
	logger  *logger.Logger
}

// NewAuditLog returns the [AuditLog] backed by storage.
func NewAuditLog(storage store.Storage, ids IDGenerator, clock utils.Clock, logger *logger.Logger) AuditLog {
	return newAuditLog(storage, ids, clock, logger)
}

func newAuditLog(storage store.Storage, ids IDGenerator, clock utils.Clock, logger *logger.Logger) *auditLog {
	return &auditLog{storage: storage, ids: ids, clock: clock, logger: logger}
}

// Append fills in the id, time, actor and category when they are missing
// and stores the entry.
func (a *auditLog) Append(ctx context.Context, entry models.AuditEntry) error {
	return a.appendTo(ctx, a.storage.Repositories().Audit, entry)
}

func (a *auditLog) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	entries, err := a.storage.Repositories().Audit.RecentAudit(ctx, limit)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "auditLog.Recent").Msg("reading audit log failed")
		return nil, fmt.Errorf("reading audit log failed: %w", err)
	}
	return entries, nil
}

// appendTo writes through repo so that callers inside a unit of work commit
// the entry together with the mutation it records.
func (a *auditLog) appendTo(ctx context.Context, repo store.AuditRepository, entry models.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = a.ids.Generate()
	}
	if entry.At.IsZero() {
		entry.At = a.clock.Now()
	}
	if entry.ActorID == "" {
		entry.ActorID = models.SystemActor
	}
	if entry.Category == "" {
		entry.Category = actionCategories[entry.Action]
	}

	if err := repo.AppendAudit(ctx, entry); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "auditLog.appendTo").
			Str("action", string(entry.Action)).
			Msg("appending audit entry failed")
		return fmt.Errorf("appending audit entry failed: %w", err)
	}
	return nil
}

// profileEntry builds an entry targeting profileID.
func profileEntry(action models.AuditAction, actorID, profileID, detail string, at time.Time) models.AuditEntry {
	return models.AuditEntry{
		ActorID:    actorID,
		Action:     action,
		TargetKind: models.TargetProfile,
		TargetID:   profileID,
		Detail:     detail,
		At:         at,
	}
}
