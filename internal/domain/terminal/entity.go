package terminal

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Terminal statuses. A terminal is Idle when no player is bound, Occupied
// while a session is live, and Offline when taken out of service.
const (
	StatusIdle     = "Idle"
	StatusOccupied = "Occupied"
	StatusOffline  = "Offline"
)

type Terminal struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	OutletID      uuid.UUID     `db:"outlet_id" json:"outlet_id"`
	Code          string        `db:"code" json:"code"`
	Status        string        `db:"status" json:"status"`
	PairingKey    string        `db:"pairing_key" json:"pairing_key"`
	BoundPlayerID uuid.NullUUID `db:"bound_player_id" json:"-"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// TerminalView is a terminal row joined with its bound player, used for
// floor listings where the cashier needs to see who is on which seat and
// how much credit they hold.
type TerminalView struct {
	Terminal
	PlayerNickname sql.NullString `db:"player_nickname"`
	PlayerBalance  sql.NullInt64  `db:"player_balance"`
}
