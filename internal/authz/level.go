package authz

// assignableRoles is the role-creation matrix: which roles a creator role may
// hand to a new user. Roles absent from the map cannot create users at all,
// independent of their permission codes.
var assignableRoles = map[Role][]Role{
	RoleAdmin:        {RoleAdmin, RoleOperator, RoleAreaManager, RoleStoreManager, RoleCashier},
	RoleOperator:     {RoleAreaManager, RoleStoreManager, RoleCashier},
	RoleStoreManager: {RoleCashier},
}

// AssignableRoles returns the roles a creator may assign. The returned slice
// is a copy; the matrix itself is immutable after process start.
func AssignableRoles(creator Role) []Role {
	allowed, ok := assignableRoles[creator]
	if !ok {
		return nil
	}
	out := make([]Role, len(allowed))
	copy(out, allowed)
	return out
}

// CheckAssignment applies the level guard: it returns a *LevelGuardError when
// the creator role may not assign the target role.
func CheckAssignment(creator, target Role) error {
	for _, r := range assignableRoles[creator] {
		if r == target {
			return nil
		}
	}
	return &LevelGuardError{Creator: creator, Target: target}
}
