package rbac

import (
	"github.com/hxben0103/ojt-ai-system/internal/domain"
	"github.com/hxben0103/ojt-ai-system/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("/enforce", handler.Enforce)

		manage := middleware.RBACAuthorize(service, "role", "manage")
		group.GET("/permissions", manage, handler.ListPermissions)

		// Granted permissions can be delegated, but only an Admin may change them.
		adminOnly := middleware.RoleMiddleware(domain.RoleAdmin)
		group.POST("/permissions", manage, adminOnly, handler.GrantPermission)
		group.DELETE("/permissions", manage, adminOnly, handler.RevokePermission)
	}
}
