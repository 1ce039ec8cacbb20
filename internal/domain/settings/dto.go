package settings

import "github.com/google/uuid"

type UpsertConfigRequest struct {
	Key   string `json:"key" validate:"required,min=1,max=100"`
	Value string `json:"value" validate:"required,max=1000"`
}

type AddAllowedIPRequest struct {
	Address  string     `json:"address" validate:"required,ip"`
	Label    string     `json:"label" validate:"max=100"`
	OutletID *uuid.UUID `json:"outlet_id"`
}
