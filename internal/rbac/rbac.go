// Package rbac holds the role predicates shared by the HTTP guards.
// Roles are flat in storage; the hierarchy only exists in these checks.
package rbac

import (
	"slices"

	"github.com/wavelaunch/studio-os/backend/internal/domain"
)

// ManageRoles are the roles allowed to mutate and read operational data.
// CREATOR exists for future self-service and is not yet granted anything.
var ManageRoles = []domain.Role{domain.RoleAdmin, domain.RoleOperator}

func HasRole(role domain.Role, allowed []domain.Role) bool {
	return slices.Contains(allowed, role)
}

func IsAdmin(role domain.Role) bool {
	return role == domain.RoleAdmin
}

func CanManage(role domain.Role) bool {
	return role == domain.RoleAdmin || role == domain.RoleOperator
}
