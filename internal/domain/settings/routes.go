package settings

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

	r.Get("/config", h.ListConfig)
	r.Put("/config", h.UpsertConfig)
	r.Get("/config/{key}", h.GetConfig)

	r.Get("/allowlist", h.ListAllowedIPs)
	r.Post("/allowlist", h.AddAllowedIP)
	r.Delete("/allowlist/{id}", h.RemoveAllowedIP)

	return r
}
