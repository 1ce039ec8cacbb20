package pos

import (
	"time"

	"github.com/google/uuid"
)

// Transaction types. Deposits draw down the outlet float into a player
// wallet; a withdraw is the settle returning the remainder to the float.
const (
	TypeDeposit  = "Deposit"
	TypeWithdraw = "Withdraw"
)

// Player is a venue customer identified by phone number. The nickname is
// derived from the phone at first sight and reused on every later visit.
type Player struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Phone     string    `db:"phone" json:"phone"`
	Nickname  string    `db:"nickname" json:"nickname"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Wallet holds a player's live credit at one outlet. A player carries an
// independent balance per venue, never a global one, so outlet floats stay
// self-contained.
type Wallet struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PlayerID  uuid.UUID `db:"player_id" json:"player_id"`
	OutletID  uuid.UUID `db:"outlet_id" json:"outlet_id"`
	Balance   int64     `db:"balance" json:"balance"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Transaction is an immutable ledger entry. Rows are only ever inserted.
// TerminalID is null for movements that happen off the floor.
type Transaction struct {
	ID         uuid.UUID     `db:"id" json:"id"`
	OutletID   uuid.UUID     `db:"outlet_id" json:"outlet_id"`
	TerminalID uuid.NullUUID `db:"terminal_id" json:"-"`
	PlayerID   uuid.UUID     `db:"player_id" json:"player_id"`
	StaffID    uuid.UUID     `db:"staff_id" json:"staff_id"`
	Type       string        `db:"type" json:"type"`
	Amount     int64         `db:"amount" json:"amount"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}

// Session is what a bind returns to the cashier: the seat, the player and
// their current credit.
type Session struct {
	TerminalID     uuid.UUID `json:"terminal_id"`
	TerminalCode   string    `json:"terminal_code"`
	PlayerID       uuid.UUID `json:"player_id"`
	PlayerNickname string    `json:"player_nickname"`
	Balance        int64     `json:"balance"`
}

// SettleResult reports what a settle moved back into the outlet float.
type SettleResult struct {
	TerminalID uuid.UUID `json:"terminal_id"`
	PlayerID   uuid.UUID `json:"player_id"`
	Returned   int64     `json:"returned"`
	BCFBalance int64     `json:"bcf_balance"`
}
