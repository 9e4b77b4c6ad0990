// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SystemActor is the actor ID recorded when no profile is authenticated.
const SystemActor = "system"

// AuditAction tags the security decision an [AuditEntry] records.
type AuditAction string

const (
	AuditSignup            AuditAction = "signup"
	AuditLogin             AuditAction = "login"
	AuditLoginFailed       AuditAction = "login_failed"
	AuditLogout            AuditAction = "logout"
	AuditSessionExpired    AuditAction = "session_expired"
	AuditPinChanged        AuditAction = "pin_changed"
	AuditPinReset          AuditAction = "pin_reset"
	AuditUserSuspended     AuditAction = "user_suspended"
	AuditUserUnsuspended   AuditAction = "user_unsuspended"
	AuditCredentialCorrupt AuditAction = "credential_corrupt"
)

// AuditCategory groups audit actions for filtering in the admin view.
type AuditCategory string

const (
	CategoryAuth      AuditCategory = "auth"
	CategorySession   AuditCategory = "session"
	CategoryAccount   AuditCategory = "account"
	CategoryAdmin     AuditCategory = "admin"
	CategoryIntegrity AuditCategory = "integrity"
)

// TargetProfile is the target kind used for profile-scoped entries.
const TargetProfile = "profile"

// AuditEntry is an immutable, append-only record of a security-relevant
// decision. Entries are observability only and are never consulted by
// authorization logic.
type AuditEntry struct {
	ID         string        `json:"id"`
	ActorID    string        `json:"actor_id"`
	Action     AuditAction   `json:"action"`
	TargetKind string        `json:"target_kind,omitempty"`
	TargetID   string        `json:"target_id,omitempty"`
	Detail     string        `json:"detail,omitempty"`
	At         time.Time     `json:"at"`
	Category   AuditCategory `json:"category"`
}

// TableName returns the name of the database table
// associated with the AuditEntry model.
func (a AuditEntry) TableName() string {
	return "audit_log"
}
