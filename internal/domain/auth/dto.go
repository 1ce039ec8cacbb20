package auth

import "github.com/google/uuid"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type MeResponse struct {
	UserID      uuid.UUID  `json:"user_id"`
	Username    string     `json:"username"`
	Role        string     `json:"role"`
	OperatorID  *uuid.UUID `json:"operator_id,omitempty"`
	OutletID    *uuid.UUID `json:"outlet_id,omitempty"`
	Permissions []string   `json:"permissions"`
}
