package user

import (
	"time"

	"github.com/google/uuid"
)

// CreateUserRequest for POST /users
type CreateUserRequest struct {
	Username   string     `json:"username" validate:"required,min=3,max=50"`
	Password   string     `json:"password" validate:"required,min=4,max=128"`
	RoleID     uuid.UUID  `json:"role_id" validate:"required"`
	OperatorID *uuid.UUID `json:"operator_id"`
	OutletID   *uuid.UUID `json:"outlet_id"`
}

// UpdateUserRequest for PUT /users/{id}. Password is optional; empty keeps
// the current hash.
type UpdateUserRequest struct {
	Username   string     `json:"username" validate:"required,min=3,max=50"`
	Password   string     `json:"password" validate:"omitempty,min=4,max=128"`
	RoleID     uuid.UUID  `json:"role_id" validate:"required"`
	OperatorID *uuid.UUID `json:"operator_id"`
	OutletID   *uuid.UUID `json:"outlet_id"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID         uuid.UUID  `json:"id"`
	Username   string     `json:"username"`
	Role       string     `json:"role"`
	RoleID     uuid.UUID  `json:"role_id"`
	OperatorID *uuid.UUID `json:"operator_id,omitempty"`
	OutletID   *uuid.UUID `json:"outlet_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewUserResponse builds a UserResponse from the entity
func NewUserResponse(u *User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.RoleName,
		RoleID:    u.RoleID,
		CreatedAt: u.CreatedAt,
	}
	if u.OperatorID.Valid {
		id := u.OperatorID.UUID
		resp.OperatorID = &id
	}
	if u.OutletID.Valid {
		id := u.OutletID.UUID
		resp.OutletID = &id
	}
	return resp
}
