package role

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omspos/oms-api/internal/authz"
	"github.com/omspos/oms-api/internal/middleware"
)

// Routes returns the role management router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(middleware.RequirePermission(authz.PermUserCreate))

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// PermissionRoutes returns the permission catalog router
func (h *Handler) PermissionRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(middleware.RequirePermission(authz.PermUserCreate))

	r.Get("/", h.ListPermissions)

	return r
}
