// Package domain contains core domain types for the Dilçi application.
package domain

// Role is the value of the role cookie.
type Role string

const (
	// RoleAdmin grants access to the admin area.
	RoleAdmin Role = "admin"
	// RoleAgent grants access to the guide area.
	RoleAgent Role = "agent"
	// RoleUser is the implicit role when no role cookie is present.
	RoleUser Role = ""
)

// ParseRole maps a raw cookie value onto a known role. Unknown values are
// treated as a regular user.
func ParseRole(v string) Role {
	switch Role(v) {
	case RoleAdmin, RoleAgent:
		return Role(v)
	default:
		return RoleUser
	}
}

// String returns the label used in logs and the activity trail.
func (r Role) String() string {
	if r == RoleUser {
		return "user"
	}
	return string(r)
}

// CompanyStatusActive is the only company status that unlocks the guide area.
const CompanyStatusActive = "active"
