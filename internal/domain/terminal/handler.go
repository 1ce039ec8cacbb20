package terminal

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/omspos/oms-api/internal/authz"
	"github.com/omspos/oms-api/internal/middleware"
	"github.com/omspos/oms-api/internal/pkg/response"
	"github.com/omspos/oms-api/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	terminals, err := h.service.List(r.Context(), identity)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]*TerminalResponse, 0, len(terminals))
	for _, t := range terminals {
		out = append(out, NewTerminalViewResponse(t))
	}
	response.OK(w, out)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	var req CreateTerminalRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	t, err := h.service.Create(r.Context(), identity, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Created(w, NewTerminalResponse(t))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid terminal id")
		return
	}

	if err := h.service.Delete(r.Context(), identity, id); err != nil {
		h.writeError(w, err)
		return
	}
	response.NoContent(w)
}

func (h *Handler) SetOffline(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.service.SetOffline)
}

func (h *Handler) SetOnline(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.service.SetOnline)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, fn func(context.Context, *authz.Identity, uuid.UUID) error) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid terminal id")
		return
	}

	if err := fn(r.Context(), identity, id); err != nil {
		h.writeError(w, err)
		return
	}
	response.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTerminalNotFound), errors.Is(err, ErrOutletNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrTerminalOccupied), errors.Is(err, ErrTerminalCodeTaken):
		response.Conflict(w, err.Error())
	case authz.IsScopeGuard(err):
		response.Forbidden(w, err.Error())
	default:
		log.Error().Err(err).Msg("terminal handler error")
		response.InternalError(w)
	}
}
