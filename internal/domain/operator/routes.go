package operator

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omspos/oms-api/internal/authz"
	"github.com/omspos/oms-api/internal/middleware"
)

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(middleware.RequirePermission(authz.PermSettingsManage))

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)

	return r
}
