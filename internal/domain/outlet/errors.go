package outlet

import "errors"

var (
	ErrOutletNotFound      = errors.New("outlet not found")
	ErrOperatorNotFound    = errors.New("operator not found")
	ErrInsufficientWallet  = errors.New("operator wallet has insufficient funds")
	ErrInvalidTopUpAmount  = errors.New("top-up amount must be positive")
	ErrOperatorNotAssigned = errors.New("an operator must be assigned to the outlet")
)
