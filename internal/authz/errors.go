package authz

import (
	"errors"
	"fmt"
)

// ErrPermissionDenied means the caller's role lacks the required permission code.
var ErrPermissionDenied = errors.New("permission denied")

// LevelGuardError means the creator role may not assign the target role.
// Both roles ride along for diagnostics.
type LevelGuardError struct {
	Creator Role
	Target  Role
}

func (e *LevelGuardError) Error() string {
	return fmt.Sprintf("level guard: %s cannot assign role %s", e.Creator, e.Target)
}

// ScopeGuardError means the target entity sits outside the caller's
// organizational subtree.
type ScopeGuardError struct {
	Entity Entity
	Detail string
}

func (e *ScopeGuardError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("scope guard: %s: %s", e.Entity, e.Detail)
	}
	return fmt.Sprintf("scope guard: %s out of scope", e.Entity)
}

// IsLevelGuard reports whether err is a level guard violation.
func IsLevelGuard(err error) bool {
	var lg *LevelGuardError
	return errors.As(err, &lg)
}

// IsScopeGuard reports whether err is a scope guard violation.
func IsScopeGuard(err error) bool {
	var sg *ScopeGuardError
	return errors.As(err, &sg)
}
