package domain

// Role enumerates caller roles used for access scoping.
type Role string

const (
	RoleEmployee       Role = "employee"
	RoleDepartmentHead Role = "department_head"
	RoleHRStaff        Role = "hr_staff"
	RoleAdmin          Role = "admin"
)

// Staff reports whether the role may perform lifecycle actions and run reports.
func (r Role) Staff() bool {
	return r == RoleHRStaff || r == RoleAdmin
}

// Session describes the authenticated caller for one interaction. It is built
// per request and never shared process-wide.
type Session struct {
	Email       string
	Role        Role
	Department  string
	CompanyCode string
	AccountCode string
}
