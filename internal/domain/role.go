package domain

// Role determines which dashboard tree a session may reach. It is set
// exactly once per session, at login time.
type Role string

const (
	RoleStudent    Role = "student"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// DashboardPath maps a role to the root of its page tree. Unknown roles
// fall back to the public landing page.
func (r Role) DashboardPath() string {
	switch r {
	case RoleStudent:
		return "/student"
	case RoleSupervisor:
		return "/supervisor"
	case RoleAdmin:
		return "/admin"
	}
	return "/"
}

// LoginPath maps a role to its login page.
func (r Role) LoginPath() string {
	switch r {
	case RoleStudent:
		return "/student/login"
	case RoleSupervisor:
		return "/supervisor/login"
	case RoleAdmin:
		return "/admin/login"
	}
	return "/"
}

// OrDefault normalizes a role that the upstream omitted from a login
// response. The surname path is student-only and the staff-ID path is
// supervisor-only, so each defaults its own role.
func (r Role) OrDefault(fallback Role) Role {
	if r == "" {
		return fallback
	}
	return r
}
