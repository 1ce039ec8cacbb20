package operator

import "errors"

var (
	ErrOperatorNotFound  = errors.New("operator not found")
	ErrOperatorNameTaken = errors.New("operator name already taken")
	ErrAdminOnly         = errors.New("only administrators can manage operators")
)
