package pos

import (
	"errors"
	"net/http"
	"strconv"

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

func (h *Handler) Bind(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	var req BindRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	session, err := h.service.Bind(r.Context(), identity, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, session)
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	var req DepositRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	session, err := h.service.Deposit(r.Context(), identity, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, session)
}

func (h *Handler) Settle(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	var req SettleRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Settle(r.Context(), identity, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, result)
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	transactions, total, err := h.service.ListTransactions(r.Context(), identity, limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]*TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, NewTransactionResponse(t))
	}
	response.WithMeta(w, out, response.Meta{Total: total, Limit: limit, Offset: offset})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTerminalNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrTerminalUnavailable), errors.Is(err, ErrTerminalNotActive):
		response.Conflict(w, err.Error())
	case errors.Is(err, ErrInsufficientFloat):
		response.UnprocessableEntity(w, "INSUFFICIENT_FLOAT", err.Error())
	case errors.Is(err, ErrInvalidAmount):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrOutletRequired), errors.Is(err, ErrTerminalForeign):
		response.Forbidden(w, err.Error())
	default:
		log.Error().Err(err).Msg("pos handler error")
		response.InternalError(w)
	}
}
