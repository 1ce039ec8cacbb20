package authz

import (
	"github.com/google/uuid"
)

// Permission is an atomic capability code. The catalog is closed and known
// at deploy time; role assignments are data, the codes themselves are not.
type Permission string

const (
	PermDashboardView  Permission = "DASHBOARD_VIEW"
	PermPOSOperate     Permission = "POS_OPERATE"
	PermFinanceView    Permission = "FINANCE_VIEW"
	PermBCFManage      Permission = "BCF_MANAGE"
	PermSettingsManage Permission = "SETTINGS_MANAGE"
	PermUserCreate     Permission = "USER_CREATE"
)

// Catalog returns every known permission code with its description.
func Catalog() map[Permission]string {
	return map[Permission]string{
		PermDashboardView:  "View Dashboard",
		PermPOSOperate:     "Operate POS",
		PermFinanceView:    "View Finance Reports",
		PermBCFManage:      "Manage BCF",
		PermSettingsManage: "Manage Settings",
		PermUserCreate:     "Create Users",
	}
}

// Role is one of the fixed role names used by the level and scope guards.
type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleOperator     Role = "Operator"
	RoleAreaManager  Role = "Area Mgr"
	RoleStoreManager Role = "Store Mgr"
	RoleCashier      Role = "Cashier"
)

// KnownRoles lists the role names in guard order.
func KnownRoles() []Role {
	return []Role{RoleAdmin, RoleOperator, RoleAreaManager, RoleStoreManager, RoleCashier}
}

// IsKnownRole reports whether name is one of the fixed role names.
func IsKnownRole(name string) bool {
	for _, r := range KnownRoles() {
		if string(r) == name {
			return true
		}
	}
	return false
}

// Identity is the resolved principal handed to the engine by the request
// shell: who is calling, with what role, permissions and position in the
// operator/outlet hierarchy.
type Identity struct {
	UserID      uuid.UUID
	Username    string
	Role        Role
	Permissions map[Permission]struct{}
	OperatorID  uuid.NullUUID
	OutletID    uuid.NullUUID
}

// Can reports whether the identity's role carries the permission code.
func (id *Identity) Can(p Permission) bool {
	if id == nil {
		return false
	}
	_, ok := id.Permissions[p]
	return ok
}

// Require returns ErrPermissionDenied when the permission code is absent.
func (id *Identity) Require(p Permission) error {
	if !id.Can(p) {
		return ErrPermissionDenied
	}
	return nil
}

// NewPermissionSet builds a permission set from raw codes.
func NewPermissionSet(codes []string) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(codes))
	for _, c := range codes {
		set[Permission(c)] = struct{}{}
	}
	return set
}
