package dashboard

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/omspos/oms-api/internal/middleware"
	"github.com/omspos/oms-api/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	summary, err := h.service.Summary(r.Context(), identity)
	if err != nil {
		log.Error().Err(err).Msg("dashboard handler error")
		response.InternalError(w)
		return
	}
	response.OK(w, summary)
}
