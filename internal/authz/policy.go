// Package authz holds the single role policy used by every protected route.
package authz

import (
	"strings"

	"github.com/Skotchmaster/nk_store/internal/models"
)

// Role resolves the effective role of a user: the configured super admin is
// always admin, otherwise the stored role, defaulting to user.
func Role(superAdminEmail string, u *models.User) string {
	if u == nil {
		return models.RoleUser
	}
	if superAdminEmail != "" && strings.EqualFold(strings.TrimSpace(u.Email), superAdminEmail) {
		return models.RoleAdmin
	}
	switch u.Role {
	case models.RoleAdmin, models.RoleStaff:
		return u.Role
	default:
		return models.RoleUser
	}
}

func IsAdmin(role string) bool { return role == models.RoleAdmin }

// IsStaff reports back-office access: admins and staff.
func IsStaff(role string) bool { return role == models.RoleAdmin || role == models.RoleStaff }

func ValidRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleStaff || role == models.RoleUser
}
