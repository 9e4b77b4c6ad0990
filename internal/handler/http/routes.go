package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/api/version", h.getServerVersion)
	router.Get("/api/profiles", h.listProfiles)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(h.withDeviceID)
		r.Use(h.withRateLimit)

		r.Post("/api/auth/signup", h.signup)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/login-by-name", h.loginByName)
		r.Get("/api/auth/session", h.getSession)
		// checks its own token so that a lapsed session can still be ended
		r.Post("/api/auth/logout", h.logout)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.withDeviceID)
		r.Use(h.withRateLimit)
		r.Use(h.auth)

		r.Post("/api/auth/pin", h.changePin)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAdmin)

			r.Post("/api/admin/profiles/{id}/reset-pin", h.resetPin)
			r.Post("/api/admin/profiles/{id}/suspend", h.suspendUser)
			r.Post("/api/admin/profiles/{id}/unsuspend", h.unsuspendUser)
			r.Get("/api/admin/audit", h.recentAudit)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
