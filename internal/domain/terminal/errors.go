package terminal

import "errors"

var (
	ErrTerminalNotFound  = errors.New("terminal not found")
	ErrOutletNotFound    = errors.New("outlet not found")
	ErrTerminalOccupied  = errors.New("terminal has an active session")
	ErrTerminalCodeTaken = errors.New("terminal code already exists")
)
