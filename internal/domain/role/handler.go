package role

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/omspos/oms-api/internal/pkg/response"
	"github.com/omspos/oms-api/internal/pkg/validator"
)

// Handler handles role HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates role handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListPermissions handles GET /permissions
func (h *Handler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.service.ListPermissions(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list permissions")
		response.InternalError(w)
		return
	}
	response.OK(w, perms)
}

// List handles GET /roles
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.service.ListRoles(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list roles")
		response.InternalError(w)
		return
	}
	response.OK(w, roles)
}

// Create handles POST /roles
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req RoleRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	role, err := h.service.CreateRole(r.Context(), req.Name, req.PermissionIDs)
	if err != nil {
		switch {
		case errors.Is(err, ErrRoleNameTaken):
			response.Conflict(w, "Role name already exists")
		default:
			log.Error().Err(err).Str("role", req.Name).Msg("failed to create role")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, role)
}

// Update handles PUT /roles/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid role id")
		return
	}

	var req RoleRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	role, err := h.service.UpdateRole(r.Context(), id, req.Name, req.PermissionIDs)
	if err != nil {
		switch {
		case errors.Is(err, ErrRoleNotFound):
			response.NotFound(w, "Role not found")
		case errors.Is(err, ErrRoleNameTaken):
			response.Conflict(w, "Role name already exists")
		default:
			log.Error().Err(err).Str("role_id", id.String()).Msg("failed to update role")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, role)
}

// Delete handles DELETE /roles/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid role id")
		return
	}

	if err := h.service.DeleteRole(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrRoleNotFound):
			response.NotFound(w, "Role not found")
		case errors.Is(err, ErrRoleInUse):
			response.Conflict(w, "Cannot delete role assigned to users")
		default:
			log.Error().Err(err).Str("role_id", id.String()).Msg("failed to delete role")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}
