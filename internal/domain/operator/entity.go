package operator

import (
	"time"

	"github.com/google/uuid"
)

// Operator is a top-level business entity. Outlets and their staff hang
// off an operator, and WalletBalance is the operator's master float that
// funds outlet BCF top-ups.
type Operator struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	WalletBalance int64     `db:"wallet_balance" json:"wallet_balance"`
	ContactPerson string    `db:"contact_person" json:"contact_person"`
	Email         string    `db:"email" json:"email"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
