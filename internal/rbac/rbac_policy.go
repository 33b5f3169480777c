package rbac

import "github.com/hxben0103/ojt-ai-system/internal/domain"

// defaultPolicy is loaded before the role_permissions table on every reload.
var defaultPolicy = [][3]string{
	{domain.RoleAdmin, "*", "*"},

	{domain.RoleCoordinator, "attendance", "read"},
	{domain.RoleCoordinator, "attendance", "create"},
	{domain.RoleCoordinator, "attendance", "verify"},
	{domain.RoleCoordinator, "user", "read"},
	{domain.RoleCoordinator, "user", "approve"},
	{domain.RoleCoordinator, "ojt", "*"},
	{domain.RoleCoordinator, "evaluation", "*"},
	{domain.RoleCoordinator, "report", "*"},
	{domain.RoleCoordinator, "prediction", "*"},
	{domain.RoleCoordinator, "chatbot", "*"},

	{domain.RoleSupervisor, "attendance", "read"},
	{domain.RoleSupervisor, "attendance", "verify"},
	{domain.RoleSupervisor, "ojt", "read"},
	{domain.RoleSupervisor, "evaluation", "read"},
	{domain.RoleSupervisor, "evaluation", "create"},
	{domain.RoleSupervisor, "evaluation", "update"},
	{domain.RoleSupervisor, "report", "read"},
	{domain.RoleSupervisor, "report", "create"},
	{domain.RoleSupervisor, "prediction", "read"},
	{domain.RoleSupervisor, "prediction", "create"},
	{domain.RoleSupervisor, "chatbot", "*"},

	{domain.RoleStudent, "attendance", "read"},
	{domain.RoleStudent, "attendance", "create"},
	{domain.RoleStudent, "ojt", "read"},
	{domain.RoleStudent, "evaluation", "read"},
	{domain.RoleStudent, "prediction", "read"},
	{domain.RoleStudent, "chatbot", "*"},
}
