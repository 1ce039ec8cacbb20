package pos

import (
	"time"

	"github.com/google/uuid"
)

type BindRequest struct {
	TerminalID uuid.UUID `json:"terminal_id" validate:"required"`
	Phone      string    `json:"phone" validate:"required,phone"`
}

type DepositRequest struct {
	TerminalID uuid.UUID `json:"terminal_id" validate:"required"`
	Amount     int64     `json:"amount" validate:"required,gt=0"`
}

type SettleRequest struct {
	TerminalID uuid.UUID `json:"terminal_id" validate:"required"`
}

type TransactionResponse struct {
	ID         uuid.UUID  `json:"id"`
	OutletID   uuid.UUID  `json:"outlet_id"`
	TerminalID *uuid.UUID `json:"terminal_id,omitempty"`
	PlayerID   uuid.UUID  `json:"player_id"`
	StaffID    uuid.UUID  `json:"staff_id"`
	Type       string     `json:"type"`
	Amount     int64      `json:"amount"`
	CreatedAt  time.Time  `json:"created_at"`
}

func NewTransactionResponse(t *Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:        t.ID,
		OutletID:  t.OutletID,
		PlayerID:  t.PlayerID,
		StaffID:   t.StaffID,
		Type:      t.Type,
		Amount:    t.Amount,
		CreatedAt: t.CreatedAt,
	}
	if t.TerminalID.Valid {
		terminalID := t.TerminalID.UUID
		resp.TerminalID = &terminalID
	}
	return resp
}
