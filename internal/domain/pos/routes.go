package pos

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
		r.Post("/bind", h.Bind)
		r.Post("/deposit", h.Deposit)
		r.Post("/settle", h.Settle)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(authz.PermFinanceView))
		r.Get("/transactions", h.ListTransactions)
	})

	return r
}
