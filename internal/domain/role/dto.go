package role

import "github.com/google/uuid"

// RoleRequest for POST /roles and PUT /roles/{id}
type RoleRequest struct {
	Name          string      `json:"name" validate:"required,min=2,max=50"`
	PermissionIDs []uuid.UUID `json:"permission_ids"`
}
