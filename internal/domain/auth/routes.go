package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the auth endpoints. The login gate middleware (IP
// allowlist) wraps only login; refresh and logout hold a token already,
// and /me requires a full authenticated identity.
func (h *Handler) Routes(authMiddleware, loginGate func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(loginGate)
		r.Post("/login", h.Login)
	})

	r.Post("/refresh", h.Refresh)
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/me", h.Me)
	})

	return r
}
