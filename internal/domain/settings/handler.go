package settings

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/omspos/oms-api/internal/pkg/response"
	"github.com/omspos/oms-api/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListConfig(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListConfig(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, entries)
}

func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.GetConfig(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, entry)
}

func (h *Handler) UpsertConfig(w http.ResponseWriter, r *http.Request) {
	var req UpsertConfigRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	entry, err := h.service.UpsertConfig(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, entry)
}

func (h *Handler) ListAllowedIPs(w http.ResponseWriter, r *http.Request) {
	ips, err := h.service.ListAllowedIPs(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, ips)
}

func (h *Handler) AddAllowedIP(w http.ResponseWriter, r *http.Request) {
	var req AddAllowedIPRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	ip, err := h.service.AddAllowedIP(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Created(w, ip)
}

func (h *Handler) RemoveAllowedIP(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid allowlist entry id")
		return
	}

	if err := h.service.RemoveAllowedIP(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	response.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEntryNotFound), errors.Is(err, ErrAddressNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrAddressDuplicated):
		response.Conflict(w, err.Error())
	default:
		log.Error().Err(err).Msg("settings handler error")
		response.InternalError(w)
	}
}
