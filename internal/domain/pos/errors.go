package pos

import "errors"

var (
	ErrTerminalNotFound    = errors.New("terminal not found")
	ErrTerminalUnavailable = errors.New("terminal is not available for binding")
	ErrTerminalNotActive   = errors.New("terminal has no active session")
	ErrInsufficientFloat   = errors.New("outlet float has insufficient funds")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrOutletRequired      = errors.New("caller is not assigned to an outlet")
	ErrTerminalForeign     = errors.New("terminal belongs to another outlet")
)
