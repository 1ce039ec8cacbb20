package authz_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/omspos/oms-api/internal/authz"
)

func nullUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: true}
}

func identity(role authz.Role, operatorID, outletID uuid.NullUUID) *authz.Identity {
	return &authz.Identity{
		UserID:     uuid.New(),
		Role:       role,
		OperatorID: operatorID,
		OutletID:   outletID,
	}
}

func TestAdminPolicyUnrestricted(t *testing.T) {
	policy := authz.PolicyFor(identity(authz.RoleAdmin, uuid.NullUUID{}, uuid.NullUUID{}))

	f := policy.QueryFilter(authz.EntityUser)
	if !f.All {
		t.Fatalf("admin filter should be unrestricted, got %+v", f)
	}

	requested := authz.Forced{OperatorID: nullUUID(uuid.New())}
	forced, err := policy.ForcedFields(authz.EntityOutlet, requested)
	if err != nil {
		t.Fatalf("admin forced fields: %v", err)
	}
	if forced.OperatorID != requested.OperatorID {
		t.Fatal("admin may choose the operator affiliation freely")
	}

	if err := policy.CheckRow(authz.EntityUser, uuid.NullUUID{}, uuid.NullUUID{}); err != nil {
		t.Fatalf("admin row check should pass: %v", err)
	}
}

func TestOperatorPolicyForcesOwnOperator(t *testing.T) {
	own := nullUUID(uuid.New())
	policy := authz.PolicyFor(identity(authz.RoleOperator, own, uuid.NullUUID{}))

	f := policy.QueryFilter(authz.EntityUser)
	if f.All || !f.OperatorID.Valid || f.OperatorID.UUID != own.UUID {
		t.Fatalf("operator filter should restrict by operator, got %+v", f)
	}

	// The request tries to smuggle a foreign operator affiliation.
	requested := authz.Forced{OperatorID: nullUUID(uuid.New()), OutletID: nullUUID(uuid.New())}
	forced, err := policy.ForcedFields(authz.EntityUser, requested)
	if err != nil {
		t.Fatalf("forced fields: %v", err)
	}
	if forced.OperatorID.UUID != own.UUID {
		t.Fatal("operator affiliation must be force-set to the caller's own")
	}
	if forced.OutletID != requested.OutletID {
		t.Fatal("requested outlet passes through for the ownership check")
	}
}

func TestOperatorPolicyRowCheck(t *testing.T) {
	own := nullUUID(uuid.New())
	policy := authz.PolicyFor(identity(authz.RoleOperator, own, uuid.NullUUID{}))

	if err := policy.CheckRow(authz.EntityOutlet, own, uuid.NullUUID{}); err != nil {
		t.Fatalf("own row should pass: %v", err)
	}

	err := policy.CheckRow(authz.EntityOutlet, nullUUID(uuid.New()), uuid.NullUUID{})
	if !authz.IsScopeGuard(err) {
		t.Fatalf("foreign row should be a scope guard violation, got %v", err)
	}
}

func TestStorePolicyForceLocksOutlet(t *testing.T) {
	operatorID := nullUUID(uuid.New())
	outletID := nullUUID(uuid.New())
	policy := authz.PolicyFor(identity(authz.RoleStoreManager, operatorID, outletID))

	f := policy.QueryFilter(authz.EntityUser)
	if !f.OutletID.Valid || f.OutletID.UUID != outletID.UUID {
		t.Fatalf("store manager filter should restrict by outlet, got %+v", f)
	}

	// Whatever the request says, the subordinate lands in the creator's outlet.
	requested := authz.Forced{OperatorID: nullUUID(uuid.New()), OutletID: nullUUID(uuid.New())}
	forced, err := policy.ForcedFields(authz.EntityUser, requested)
	if err != nil {
		t.Fatalf("forced fields: %v", err)
	}
	if forced.OutletID.UUID != outletID.UUID {
		t.Fatal("outlet affiliation must be force-locked to the creator's own")
	}
	if forced.OperatorID.UUID != operatorID.UUID {
		t.Fatal("operator affiliation must be inherited from the creator")
	}
}

func TestReadOnlyRolesHaveNoWriteScope(t *testing.T) {
	outletID := nullUUID(uuid.New())

	for _, role := range []authz.Role{authz.RoleAreaManager, authz.RoleCashier} {
		policy := authz.PolicyFor(identity(role, uuid.NullUUID{}, outletID))

		f := policy.QueryFilter(authz.EntityTerminal)
		if !f.OutletID.Valid || f.OutletID.UUID != outletID.UUID {
			t.Errorf("%s filter should restrict by outlet, got %+v", role, f)
		}

		if _, err := policy.ForcedFields(authz.EntityUser, authz.Forced{}); !authz.IsScopeGuard(err) {
			t.Errorf("%s should have no write scope, got %v", role, err)
		}
	}
}

func TestUnpositionedCallerSeesNothing(t *testing.T) {
	policy := authz.PolicyFor(identity(authz.RoleCashier, uuid.NullUUID{}, uuid.NullUUID{}))

	f := policy.QueryFilter(authz.EntityUser)
	if !f.None {
		t.Fatalf("cashier without an outlet should see an empty list, got %+v", f)
	}
}

func TestIdentityCan(t *testing.T) {
	id := &authz.Identity{
		Role:        authz.RoleCashier,
		Permissions: authz.NewPermissionSet([]string{"POS_OPERATE"}),
	}

	if !id.Can(authz.PermPOSOperate) {
		t.Fatal("expected POS_OPERATE to be granted")
	}
	if id.Can(authz.PermUserCreate) {
		t.Fatal("USER_CREATE should not be granted")
	}
	if err := id.Require(authz.PermUserCreate); err != authz.ErrPermissionDenied {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}
