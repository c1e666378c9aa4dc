package identity

import "github.com/perfhub/backend/internal/domain/shared"

// Role is the fixed set of roles a user can hold. A user has exactly one role;
// indicators are defined per role and visibility rules are derived from it.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// AllRoles lists every valid role
var AllRoles = []Role{RoleEmployee, RoleManager, RoleAdmin}

// ParseRole validates and converts a string into a Role
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleEmployee, RoleManager, RoleAdmin:
		return Role(s), nil
	default:
		return "", shared.NewDomainError("INVALID_ROLE", "Role must be one of: employee, manager, admin")
	}
}

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// HasOrgWideRead reports whether the role may read any subject's analytics
// regardless of department
func (r Role) HasOrgWideRead() bool {
	return r == RoleAdmin
}

// CanVerifyScores reports whether the role may verify submitted scores
func (r Role) CanVerifyScores() bool {
	return r == RoleManager || r == RoleAdmin
}

// CanManageIndicators reports whether the role may create or edit indicators
func (r Role) CanManageIndicators() bool {
	return r == RoleAdmin
}

// CanManageOrg reports whether the role may administer users and departments
func (r Role) CanManageOrg() bool {
	return r == RoleAdmin
}
