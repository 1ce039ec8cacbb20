package outlet

import (
	"time"

	"github.com/google/uuid"
)

// Outlet is a physical venue owned by an operator. BCFBalance is the
// outlet's cash float: every POS deposit draws it down and every settle
// returns the player's remaining balance to it.
type Outlet struct {
	ID         uuid.UUID `db:"id" json:"id"`
	OperatorID uuid.UUID `db:"operator_id" json:"operator_id"`
	Name       string    `db:"name" json:"name"`
	Address    string    `db:"address" json:"address"`
	BCFBalance int64     `db:"bcf_balance" json:"bcf_balance"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
