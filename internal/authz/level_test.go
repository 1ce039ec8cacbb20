package authz_test

import (
	"errors"
	"testing"

	"github.com/omspos/oms-api/internal/authz"
)

func TestCheckAssignmentMatrix(t *testing.T) {
	cases := []struct {
		creator authz.Role
		target  authz.Role
		allowed bool
	}{
		{authz.RoleAdmin, authz.RoleAdmin, true},
		{authz.RoleAdmin, authz.RoleOperator, true},
		{authz.RoleAdmin, authz.RoleAreaManager, true},
		{authz.RoleAdmin, authz.RoleStoreManager, true},
		{authz.RoleAdmin, authz.RoleCashier, true},

		{authz.RoleOperator, authz.RoleAdmin, false},
		{authz.RoleOperator, authz.RoleOperator, false},
		{authz.RoleOperator, authz.RoleAreaManager, true},
		{authz.RoleOperator, authz.RoleStoreManager, true},
		{authz.RoleOperator, authz.RoleCashier, true},

		{authz.RoleStoreManager, authz.RoleCashier, true},
		{authz.RoleStoreManager, authz.RoleOperator, false},
		{authz.RoleStoreManager, authz.RoleStoreManager, false},

		{authz.RoleAreaManager, authz.RoleCashier, false},
		{authz.RoleCashier, authz.RoleCashier, false},
	}

	for _, tc := range cases {
		err := authz.CheckAssignment(tc.creator, tc.target)
		if tc.allowed && err != nil {
			t.Errorf("%s -> %s: expected allowed, got %v", tc.creator, tc.target, err)
		}
		if !tc.allowed {
			var lg *authz.LevelGuardError
			if !errors.As(err, &lg) {
				t.Errorf("%s -> %s: expected LevelGuardError, got %v", tc.creator, tc.target, err)
				continue
			}
			if lg.Creator != tc.creator || lg.Target != tc.target {
				t.Errorf("guard error should carry both roles, got %+v", lg)
			}
		}
	}
}

func TestAssignableRolesCopy(t *testing.T) {
	roles := authz.AssignableRoles(authz.RoleStoreManager)
	if len(roles) != 1 || roles[0] != authz.RoleCashier {
		t.Fatalf("expected [Cashier], got %v", roles)
	}

	// Mutating the returned slice must not leak into the matrix.
	roles[0] = authz.RoleAdmin
	if err := authz.CheckAssignment(authz.RoleStoreManager, authz.RoleAdmin); err == nil {
		t.Fatal("matrix was mutated through AssignableRoles result")
	}
}

func TestAssignableRolesUnknownCreator(t *testing.T) {
	if roles := authz.AssignableRoles(authz.RoleCashier); roles != nil {
		t.Fatalf("Cashier should not be able to create users, got %v", roles)
	}
}
