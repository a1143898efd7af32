package auth

// Permission represents a named capability on the terminal.
type Permission string

// Permission constants.
const (
	PermProcessSales   Permission = "sales:process"
	PermVoidSales      Permission = "sales:void"
	PermApplyDiscounts Permission = "sales:discount"
	PermViewReports    Permission = "reports:view"
	PermManageMenu     Permission = "menu:manage"
	PermManageUsers    Permission = "users:manage"
	PermViewKitchen    Permission = "kitchen:view"
	PermManageSettings Permission = "settings:manage"
)

// rolePermissions maps each role to its granted permissions.
// This is the single source of truth for the authorisation model.
// Admin is listed in full even though HasPermission short-circuits it,
// so PermissionsForRole stays accurate.
var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermProcessSales,
		PermVoidSales,
		PermApplyDiscounts,
		PermViewReports,
		PermManageMenu,
		PermManageUsers,
		PermViewKitchen,
		PermManageSettings,
	},
	RoleManager: {
		PermProcessSales,
		PermVoidSales,
		PermApplyDiscounts,
		PermViewReports,
		PermManageMenu,
		PermViewKitchen,
	},
	RoleCashier: {
		PermProcessSales,
		PermApplyDiscounts,
	},
	RoleKitchen: {
		PermViewKitchen,
	},
}

// HasPermission returns true if the given role has the specified permission.
// Admin implicitly holds every permission, including ones added later.
func HasPermission(role Role, perm Permission) bool {
	if role == RoleAdmin {
		return true
	}
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == perm {
			return true
		}
	}
	return false
}

// PermissionsForRole returns all permissions granted to a role.
// Returns nil for unknown roles.
func PermissionsForRole(role Role) []Permission {
	perms := rolePermissions[role]
	if perms == nil {
		return nil
	}
	result := make([]Permission, len(perms))
	copy(result, perms)
	return result
}
