package outlet

import (
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

	outlets, err := h.service.List(r.Context(), identity)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]*OutletResponse, 0, len(outlets))
	for _, o := range outlets {
		out = append(out, NewOutletResponse(o))
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
		response.BadRequest(w, "invalid outlet id")
		return
	}

	o, err := h.service.Get(r.Context(), identity, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, NewOutletResponse(o))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	var req CreateOutletRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	o, err := h.service.Create(r.Context(), identity, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Created(w, NewOutletResponse(o))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid outlet id")
		return
	}

	var req UpdateOutletRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	o, err := h.service.Update(r.Context(), identity, id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, NewOutletResponse(o))
}

func (h *Handler) TopUpBCF(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid outlet id")
		return
	}

	var req TopUpBCFRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	o, err := h.service.TopUpBCF(r.Context(), identity, id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, NewOutletResponse(o))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrOutletNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrOperatorNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrInsufficientWallet):
		response.UnprocessableEntity(w, "INSUFFICIENT_WALLET", err.Error())
	case errors.Is(err, ErrInvalidTopUpAmount), errors.Is(err, ErrOperatorNotAssigned):
		response.BadRequest(w, err.Error())
	case authz.IsScopeGuard(err):
		response.Forbidden(w, err.Error())
	default:
		log.Error().Err(err).Msg("outlet handler error")
		response.InternalError(w)
	}
}
