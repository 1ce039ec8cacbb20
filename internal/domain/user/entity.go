package user

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated principal: exactly one role, plus an optional
// position in the operator/outlet hierarchy. An outlet affiliation, when
// present, always belongs to the user's operator affiliation.
type User struct {
	ID           uuid.UUID     `db:"id"`
	Username     string        `db:"username"`
	PasswordHash string        `db:"password_hash"`
	RoleID       uuid.UUID     `db:"role_id"`
	RoleName     string        `db:"role_name"`
	OperatorID   uuid.NullUUID `db:"operator_id"`
	OutletID     uuid.NullUUID `db:"outlet_id"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}
