package operator

import "github.com/google/uuid"

type CreateOperatorRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	WalletBalance int64  `json:"wallet_balance" validate:"min=0"`
	ContactPerson string `json:"contact_person" validate:"max=100"`
	Email         string `json:"email" validate:"omitempty,email"`
}

type UpdateOperatorRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	WalletBalance int64  `json:"wallet_balance" validate:"min=0"`
	ContactPerson string `json:"contact_person" validate:"max=100"`
	Email         string `json:"email" validate:"omitempty,email"`
}

type OperatorResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	WalletBalance int64     `json:"wallet_balance"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
}

func NewOperatorResponse(op *Operator) *OperatorResponse {
	return &OperatorResponse{
		ID:            op.ID,
		Name:          op.Name,
		WalletBalance: op.WalletBalance,
		ContactPerson: op.ContactPerson,
		Email:         op.Email,
	}
}
