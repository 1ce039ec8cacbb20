package authz

import (
	"github.com/google/uuid"
)

// Entity names the record kinds the scope guard knows about.
type Entity string

const (
	EntityUser        Entity = "user"
	EntityOutlet      Entity = "outlet"
	EntityTerminal    Entity = "terminal"
	EntityTransaction Entity = "transaction"
)

// Filter restricts a list query to the caller's subtree. Exactly one of the
// four shapes applies: everything, an operator subtree, a single outlet, or
// nothing at all. Repositories translate it into WHERE clauses; lists never
// error on scope, they filter.
type Filter struct {
	All        bool
	OperatorID uuid.NullUUID
	OutletID   uuid.NullUUID
	None       bool
}

// Forced carries the organizational field values on a create or update. The
// policy returns it with the fields the caller may not choose overwritten.
type Forced struct {
	OperatorID uuid.NullUUID
	OutletID   uuid.NullUUID
}

// ScopePolicy is the per-role scope guard. QueryFilter shapes reads,
// ForcedFields shapes writes, CheckRow guards direct-ID operations. The
// hierarchy filters by different keys at different levels (operator_id vs
// outlet_id), and creation force-assigns rather than filters, which is why
// both directions exist.
type ScopePolicy interface {
	QueryFilter(entity Entity) Filter
	ForcedFields(entity Entity, requested Forced) (Forced, error)
	CheckRow(entity Entity, rowOperatorID, rowOutletID uuid.NullUUID) error
}

// PolicyFor returns the scope policy variant for the identity's role.
func PolicyFor(id *Identity) ScopePolicy {
	switch id.Role {
	case RoleAdmin:
		return adminPolicy{}
	case RoleOperator:
		return operatorPolicy{operatorID: id.OperatorID}
	case RoleStoreManager:
		return storePolicy{operatorID: id.OperatorID, outletID: id.OutletID}
	default:
		return outletReadPolicy{outletID: id.OutletID}
	}
}

// adminPolicy: unrestricted.
type adminPolicy struct{}

func (adminPolicy) QueryFilter(Entity) Filter {
	return Filter{All: true}
}

func (adminPolicy) ForcedFields(_ Entity, requested Forced) (Forced, error) {
	return requested, nil
}

func (adminPolicy) CheckRow(Entity, uuid.NullUUID, uuid.NullUUID) error {
	return nil
}

// operatorPolicy: restricted to the caller's operator subtree. Creation
// force-sets the operator affiliation to the caller's own; the requested
// outlet passes through and the service verifies it belongs to the operator
// with a CheckRow against the outlet row.
type operatorPolicy struct {
	operatorID uuid.NullUUID
}

func (p operatorPolicy) QueryFilter(Entity) Filter {
	if !p.operatorID.Valid {
		return Filter{None: true}
	}
	return Filter{OperatorID: p.operatorID}
}

func (p operatorPolicy) ForcedFields(_ Entity, requested Forced) (Forced, error) {
	requested.OperatorID = p.operatorID
	return requested, nil
}

func (p operatorPolicy) CheckRow(entity Entity, rowOperatorID, _ uuid.NullUUID) error {
	if !p.operatorID.Valid || !rowOperatorID.Valid || rowOperatorID.UUID != p.operatorID.UUID {
		return &ScopeGuardError{Entity: entity, Detail: "not in your operator scope"}
	}
	return nil
}

// storePolicy: restricted to the caller's outlet. Creation force-locks the
// outlet to the caller's own and inherits the operator affiliation; the
// request values are never trusted.
type storePolicy struct {
	operatorID uuid.NullUUID
	outletID   uuid.NullUUID
}

func (p storePolicy) QueryFilter(Entity) Filter {
	if !p.outletID.Valid {
		return Filter{None: true}
	}
	return Filter{OutletID: p.outletID}
}

func (p storePolicy) ForcedFields(Entity, Forced) (Forced, error) {
	return Forced{OperatorID: p.operatorID, OutletID: p.outletID}, nil
}

func (p storePolicy) CheckRow(entity Entity, _, rowOutletID uuid.NullUUID) error {
	if !p.outletID.Valid || !rowOutletID.Valid || rowOutletID.UUID != p.outletID.UUID {
		return &ScopeGuardError{Entity: entity, Detail: "not in your outlet scope"}
	}
	return nil
}

// outletReadPolicy: Area Mgr and Cashier. Read-only visibility limited to
// their own outlet; any write-shaped request is a scope violation.
type outletReadPolicy struct {
	outletID uuid.NullUUID
}

func (p outletReadPolicy) QueryFilter(Entity) Filter {
	if !p.outletID.Valid {
		return Filter{None: true}
	}
	return Filter{OutletID: p.outletID}
}

func (p outletReadPolicy) ForcedFields(entity Entity, _ Forced) (Forced, error) {
	return Forced{}, &ScopeGuardError{Entity: entity, Detail: "role has no write scope"}
}

func (p outletReadPolicy) CheckRow(entity Entity, _, rowOutletID uuid.NullUUID) error {
	if !p.outletID.Valid || !rowOutletID.Valid || rowOutletID.UUID != p.outletID.UUID {
		return &ScopeGuardError{Entity: entity, Detail: "not in your outlet scope"}
	}
	return nil
}
