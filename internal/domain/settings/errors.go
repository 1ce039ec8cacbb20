package settings

import "errors"

var (
	ErrEntryNotFound     = errors.New("config entry not found")
	ErrAddressNotFound   = errors.New("allowlist entry not found")
	ErrAddressDuplicated = errors.New("address already allowlisted")
)
