package terminal

import (
	"time"

	"github.com/google/uuid"
)

type CreateTerminalRequest struct {
	OutletID uuid.UUID `json:"outlet_id" validate:"required"`
	Code     string    `json:"code" validate:"required,min=1,max=50"`
}

type TerminalResponse struct {
	ID             uuid.UUID `json:"id"`
	OutletID       uuid.UUID `json:"outlet_id"`
	Code           string    `json:"code"`
	Status         string    `json:"status"`
	PairingKey     string    `json:"pairing_key"`
	PlayerNickname string    `json:"player_nickname,omitempty"`
	PlayerBalance  *int64    `json:"player_balance,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewTerminalResponse(t *Terminal) *TerminalResponse {
	return &TerminalResponse{
		ID:         t.ID,
		OutletID:   t.OutletID,
		Code:       t.Code,
		Status:     t.Status,
		PairingKey: t.PairingKey,
		CreatedAt:  t.CreatedAt,
	}
}

func NewTerminalViewResponse(v *TerminalView) *TerminalResponse {
	resp := NewTerminalResponse(&v.Terminal)
	if v.PlayerNickname.Valid {
		resp.PlayerNickname = v.PlayerNickname.String
	}
	if v.PlayerBalance.Valid {
		balance := v.PlayerBalance.Int64
		resp.PlayerBalance = &balance
	}
	return resp
}
