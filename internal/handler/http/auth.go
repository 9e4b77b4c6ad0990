package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/service"
	"github.com/MKhiriev/kiosk-gate/internal/utils"
	"github.com/MKhiriev/kiosk-gate/models"
)

// decodeBody decodes the JSON request body into dst. Malformed input is
// reported as [service.ErrInvalidDataProvided].
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON was passed: %w", service.ErrInvalidDataProvided, err)
	}
	return nil
}

func writeSession(w http.ResponseWriter, r *http.Request, session models.AuthSession, profile *models.UserProfile) {
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", session.Token))
	writeResult(w, r, models.OperationResult{Success: true, Session: &session, Profile: profile}, http.StatusOK)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignupRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.DeviceID, _ = utils.GetDeviceIDFromContext(ctx)

	profile, session, err := h.services.Signup.Signup(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("profile_id", profile.ID).Str("device_id", session.DeviceID).Msg("profile signed up")

	public := profile.Public()
	writeSession(w, r, session, &public)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.DeviceID, _ = utils.GetDeviceIDFromContext(ctx)

	session, err := h.services.Sessions.Login(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSession(w, r, session, nil)
}

func (h *Handler) loginByName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginByNameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.DeviceID, _ = utils.GetDeviceIDFromContext(ctx)

	session, err := h.services.Sessions.LoginByName(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSession(w, r, session, nil)
}

// logout ends the session named by the bearer token. The token may have
// expired as long as its signature holds.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deviceID, _ := utils.GetDeviceIDFromContext(ctx)

	tokenString, err := bearerToken(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.Sessions.LogoutToken(ctx, deviceID, tokenString); err != nil {
		writeError(w, r, err)
		return
	}

	writeResult(w, r, models.OperationResult{Success: true}, http.StatusOK)
}

// getSession applies the expiry check for the calling device and reports
// the session it still holds. It answers 200 with an empty status when the
// slot is empty so that the UI shell can poll it.
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deviceID, _ := utils.GetDeviceIDFromContext(ctx)

	expired, err := h.services.Sessions.CheckSessionExpiry(ctx, deviceID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := models.SessionStatus{Expired: expired}
	if !expired {
		session, err := h.services.Sessions.Current(ctx, deviceID)
		switch {
		case err == nil:
			session.Token = ""
			status.Session = &session
		case !errors.Is(err, service.ErrSessionExpired):
			writeError(w, r, err)
			return
		}
	}

	if _, err = utils.WriteJSON(w, status, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getSession").Msg("error writing response")
	}
}

func (h *Handler) changePin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := utils.GetSessionFromContext(ctx)

	var req models.ChangePinRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.Profiles.ChangePin(ctx, session, req); err != nil {
		writeError(w, r, err)
		return
	}

	writeResult(w, r, models.OperationResult{Success: true}, http.StatusOK)
}
