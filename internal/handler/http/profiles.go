package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/utils"
	"github.com/MKhiriev/kiosk-gate/models"
	"github.com/go-chi/chi/v5"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 1000
)

func (h *Handler) listProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.services.Profiles.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if profiles == nil {
		profiles = []models.UserProfile{}
	}

	if _, err = utils.WriteJSON(w, profiles, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listProfiles").Msg("error writing response")
	}
}

func (h *Handler) resetPin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := utils.GetSessionFromContext(ctx)

	if err := h.services.Profiles.ResetPin(ctx, actor, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	writeResult(w, r, models.OperationResult{Success: true}, http.StatusOK)
}

func (h *Handler) suspendUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := utils.GetSessionFromContext(ctx)

	var req models.SuspendRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.Profiles.SuspendUser(ctx, actor, chi.URLParam(r, "id"), req.Reason); err != nil {
		writeError(w, r, err)
		return
	}

	writeResult(w, r, models.OperationResult{Success: true}, http.StatusOK)
}

func (h *Handler) unsuspendUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := utils.GetSessionFromContext(ctx)

	if err := h.services.Profiles.UnsuspendUser(ctx, actor, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	writeResult(w, r, models.OperationResult{Success: true}, http.StatusOK)
}

// recentAudit returns the newest audit entries. The page size comes from
// the "limit" query parameter and is capped at maxAuditLimit.
func (h *Handler) recentAudit(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := h.services.Audit.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}

	if _, err = utils.WriteJSON(w, entries, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.recentAudit").Msg("error writing response")
	}
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultAuditLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLimit, raw)
	}
	return min(limit, maxAuditLimit), nil
}
