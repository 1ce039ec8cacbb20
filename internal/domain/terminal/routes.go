package terminal

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omspos/oms-api/internal/authz"
	"github.com/omspos/oms-api/internal/middleware"
)

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(authz.PermPOSOperate))
		r.Get("/", h.List)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(authz.PermSettingsManage))
		r.Post("/", h.Create)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/offline", h.SetOffline)
		r.Post("/{id}/online", h.SetOnline)
	})

	return r
}
