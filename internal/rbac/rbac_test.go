package rbac

import (
	"testing"

	"github.com/wavelaunch/studio-os/backend/internal/domain"
)

func TestCanManage(t *testing.T) {
	cases := []struct {
		role domain.Role
		want bool
	}{
		{domain.RoleAdmin, true},
		{domain.RoleOperator, true},
		{domain.RoleCreator, false},
		{domain.Role(""), false},
		{domain.Role("SUPERUSER"), false},
	}

	for _, c := range cases {
		if got := CanManage(c.role); got != c.want {
			t.Errorf("CanManage(%q) = %v, want %v", c.role, got, c.want)
		}
	}
}

func TestIsAdmin(t *testing.T) {
	if !IsAdmin(domain.RoleAdmin) {
		t.Error("IsAdmin(ADMIN) = false")
	}
	if IsAdmin(domain.RoleOperator) {
		t.Error("IsAdmin(OPERATOR) = true")
	}
	if IsAdmin(domain.Role("admin")) {
		t.Error("IsAdmin is case sensitive, lowercase role must not pass")
	}
}

func TestHasRole(t *testing.T) {
	if !HasRole(domain.RoleOperator, ManageRoles) {
		t.Error("OPERATOR should be in ManageRoles")
	}
	if HasRole(domain.RoleCreator, ManageRoles) {
		t.Error("CREATOR should not be in ManageRoles")
	}
	if HasRole(domain.RoleAdmin, nil) {
		t.Error("no role is a member of the empty set")
	}
}
