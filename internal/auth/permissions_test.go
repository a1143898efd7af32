package auth

import "testing"

func TestHasPermission_Admin(t *testing.T) {
	// Admin holds everything, including permissions not in the table yet.
	allPerms := []Permission{
		PermProcessSales, PermVoidSales, PermApplyDiscounts,
		PermViewReports, PermManageMenu, PermManageUsers,
		PermViewKitchen, PermManageSettings,
	}
	for _, perm := range allPerms {
		if !HasPermission(RoleAdmin, perm) {
			t.Errorf("admin should have %s", perm)
		}
	}

	if !HasPermission(RoleAdmin, Permission("future:capability")) {
		t.Error("admin should implicitly hold permissions added later")
	}
}

func TestHasPermission_Manager(t *testing.T) {
	should := []Permission{
		PermProcessSales, PermVoidSales, PermApplyDiscounts,
		PermViewReports, PermManageMenu, PermViewKitchen,
	}
	shouldNot := []Permission{
		PermManageUsers, PermManageSettings,
	}

	for _, perm := range should {
		if !HasPermission(RoleManager, perm) {
			t.Errorf("manager should have %s", perm)
		}
	}
	for _, perm := range shouldNot {
		if HasPermission(RoleManager, perm) {
			t.Errorf("manager should NOT have %s", perm)
		}
	}
}

func TestHasPermission_Cashier(t *testing.T) {
	should := []Permission{
		PermProcessSales, PermApplyDiscounts,
	}
	shouldNot := []Permission{
		PermVoidSales, PermViewReports, PermManageMenu,
		PermManageUsers, PermViewKitchen, PermManageSettings,
	}

	for _, perm := range should {
		if !HasPermission(RoleCashier, perm) {
			t.Errorf("cashier should have %s", perm)
		}
	}
	for _, perm := range shouldNot {
		if HasPermission(RoleCashier, perm) {
			t.Errorf("cashier should NOT have %s", perm)
		}
	}
}

func TestHasPermission_Kitchen(t *testing.T) {
	if !HasPermission(RoleKitchen, PermViewKitchen) {
		t.Error("kitchen should have kitchen:view")
	}

	shouldNot := []Permission{
		PermProcessSales, PermVoidSales, PermApplyDiscounts,
		PermViewReports, PermManageMenu, PermManageUsers, PermManageSettings,
	}
	for _, perm := range shouldNot {
		if HasPermission(RoleKitchen, perm) {
			t.Errorf("kitchen should NOT have %s", perm)
		}
	}
}

func TestHasPermission_UnknownRole(t *testing.T) {
	if HasPermission(Role("nonexistent"), PermProcessSales) {
		t.Error("unknown role should have no permissions")
	}
}

func TestPermissionsForRole(t *testing.T) {
	perms := PermissionsForRole(RoleManager)
	if len(perms) == 0 {
		t.Fatal("PermissionsForRole(manager) should return permissions")
	}

	// Should return a copy, not the original slice
	perms[0] = "modified"
	original := PermissionsForRole(RoleManager)
	if original[0] == "modified" {
		t.Error("PermissionsForRole should return a copy, not the original")
	}
}

func TestPermissionsForRole_Unknown(t *testing.T) {
	if perms := PermissionsForRole(Role("unknown")); perms != nil {
		t.Error("PermissionsForRole(unknown) should return nil")
	}
}

func TestIsValidRole(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleManager, RoleCashier, RoleKitchen} {
		if !IsValidRole(r) {
			t.Errorf("%s should be a valid role", r)
		}
	}
	if IsValidRole(Role("guest")) {
		t.Error("guest should NOT be a valid role")
	}
}

func TestIsValidUsername(t *testing.T) {
	valid := []string{"admin", "jane.doe", "till-3", "kitchen_display", "a"}
	invalid := []string{"", "has space", "way.too.long.username.for.any.till.terminal", "tab\tchar"}

	for _, u := range valid {
		if !IsValidUsername(u) {
			t.Errorf("%q should be valid", u)
		}
	}
	for _, u := range invalid {
		if IsValidUsername(u) {
			t.Errorf("%q should be invalid", u)
		}
	}
}
