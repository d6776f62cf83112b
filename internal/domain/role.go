package domain

import "strings"

// Role enumerates the dashboard audiences.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleIntern     Role = "INTERN"
)

// Roles lists every role in display order.
var Roles = []Role{RoleAdmin, RoleSupervisor, RoleIntern}

// ParseRole normalizes a raw role value. The second result is false for unknown roles.
func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(raw)))
	switch r {
	case RoleAdmin, RoleSupervisor, RoleIntern:
		return r, true
	default:
		return "", false
	}
}

// Label is the human readable role name.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleSupervisor:
		return "Supervisor"
	case RoleIntern:
		return "Intern"
	default:
		return string(r)
	}
}
