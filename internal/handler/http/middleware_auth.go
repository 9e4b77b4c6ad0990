package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/utils"
)

// auth validates the bearer token against the session slot of the calling
// device and stores the live session in the request context under
// [utils.SessionCtxKey].
//
// Requests are rejected with 401 when the header is absent or malformed, or
// when the token does not belong to the session currently held by the
// device (expired, superseded or logged out).
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := bearerToken(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx := r.Context()
		deviceID, _ := utils.GetDeviceIDFromContext(ctx)

		session, err := h.services.Sessions.Authenticate(ctx, deviceID, tokenString)
		if err != nil {
			log.Info().Err(err).Str("func", "Handler.auth").Str("device_id", deviceID).Msg("session authentication failed")
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithSession(ctx, session)))
	})
}

// bearerToken returns the token of the request's Authorization header.
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	tokenString, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err)
	}
	return tokenString, nil
}

// requireAdmin lets the request through only when the authenticated profile
// may run administrative operations. It must run after auth.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		session, ok := utils.GetSessionFromContext(ctx)
		if !ok {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		if _, err := h.services.Profiles.AuthorizeAdmin(ctx, session.ProfileID); err != nil {
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
