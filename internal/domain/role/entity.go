package role

import (
	"time"

	"github.com/google/uuid"
)

// Permission is a row in the closed capability catalog. The catalog is
// seeded once and never mutated by the API.
type Permission struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	Description string    `db:"description" json:"description"`
}

// Role is a named bundle of permission codes
type Role struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	Permissions []Permission `db:"-" json:"permissions"`
}
