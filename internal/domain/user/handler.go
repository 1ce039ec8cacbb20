package user

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

// Handler handles user management HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates user handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	users, err := h.service.List(r.Context(), identity)
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
		response.InternalError(w)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	response.OK(w, out)
}

// Get handles GET /users/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user id")
		return
	}

	u, err := h.service.Get(r.Context(), identity, id)
	if err != nil {
		h.writeError(w, err, id)
		return
	}
	response.OK(w, NewUserResponse(u))
}

// Create handles POST /users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	var req CreateUserRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.service.Create(r.Context(), identity, &req)
	if err != nil {
		h.writeError(w, err, uuid.Nil)
		return
	}
	response.Created(w, NewUserResponse(u))
}

// Update handles PUT /users/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user id")
		return
	}

	var req UpdateUserRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.service.Update(r.Context(), identity, id, &req)
	if err != nil {
		h.writeError(w, err, id)
		return
	}
	response.OK(w, NewUserResponse(u))
}

func (h *Handler) writeError(w http.ResponseWriter, err error, id uuid.UUID) {
	var lg *authz.LevelGuardError
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, ErrRoleNotFound):
		response.BadRequest(w, "Role not found")
	case errors.Is(err, ErrUsernameTaken):
		response.Conflict(w, "Username already exists")
	case errors.As(err, &lg):
		response.Forbidden(w, lg.Error())
	case authz.IsScopeGuard(err):
		response.Forbidden(w, err.Error())
	default:
		log.Error().Err(err).Str("user_id", id.String()).Msg("user operation failed")
		response.InternalError(w)
	}
}
