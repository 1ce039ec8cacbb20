package settings

import (
	"time"

	"github.com/google/uuid"
)

// ConfigEntry is a named system setting stored as an opaque string value.
type ConfigEntry struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AllowedIP is an address cleared to reach the login endpoint. A null
// OutletID makes the entry global; otherwise it records which venue the
// address belongs to.
type AllowedIP struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	Address   string        `db:"address" json:"address"`
	Label     string        `db:"label" json:"label"`
	OutletID  uuid.NullUUID `db:"outlet_id" json:"outlet_id"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}
