package operator

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

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

	operators, err := h.service.List(r.Context(), identity)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]*OperatorResponse, 0, len(operators))
	for _, op := range operators {
		out = append(out, NewOperatorResponse(op))
	}
	response.OK(w, out)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid operator id")
		return
	}

	op, err := h.service.Get(r.Context(), identity, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, NewOperatorResponse(op))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	var req CreateOperatorRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	op, err := h.service.Create(r.Context(), identity, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Created(w, NewOperatorResponse(op))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid operator id")
		return
	}

	var req UpdateOperatorRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	op, err := h.service.Update(r.Context(), identity, id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, NewOperatorResponse(op))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrOperatorNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrOperatorNameTaken):
		response.Conflict(w, err.Error())
	case errors.Is(err, ErrAdminOnly):
		response.Forbidden(w, err.Error())
	default:
		log.Error().Err(err).Msg("operator handler error")
		response.InternalError(w)
	}
}
