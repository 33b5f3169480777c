package domain

const (
	RoleAdmin       = "Admin"
	RoleCoordinator = "Coordinator"
	RoleSupervisor  = "Supervisor"
	RoleStudent     = "Student"
)

var Roles = []string{RoleAdmin, RoleCoordinator, RoleSupervisor, RoleStudent}

func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PermissionRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type PermissionResponse struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Source   string `json:"source"`
}
