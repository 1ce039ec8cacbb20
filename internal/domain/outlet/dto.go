package outlet

import "github.com/google/uuid"

type CreateOutletRequest struct {
	OperatorID *uuid.UUID `json:"operator_id"`
	Name       string     `json:"name" validate:"required,min=2,max=100"`
	Address    string     `json:"address" validate:"max=255"`
}

type UpdateOutletRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Address string `json:"address" validate:"max=255"`
}

type TopUpBCFRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type OutletResponse struct {
	ID         uuid.UUID `json:"id"`
	OperatorID uuid.UUID `json:"operator_id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	BCFBalance int64     `json:"bcf_balance"`
}

func NewOutletResponse(o *Outlet) *OutletResponse {
	return &OutletResponse{
		ID:         o.ID,
		OperatorID: o.OperatorID,
		Name:       o.Name,
		Address:    o.Address,
		BCFBalance: o.BCFBalance,
	}
}
