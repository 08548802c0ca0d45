package models

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleFaculty     UserRole = "faculty"
	RoleStudent     UserRole = "student"
	RoleCoordinator UserRole = "coordinator"
)

// Valid reports whether the role is known.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleFaculty, RoleStudent, RoleCoordinator:
		return true
	}
	return false
}

// Pagination describes paging metadata.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
