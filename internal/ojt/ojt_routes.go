package ojt

import (
	"github.com/hxben0103/ojt-ai-system/internal/middleware"
	"github.com/hxben0103/ojt-ai-system/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	records := r.Group("/ojt/records")
	records.Use(middleware.AuthMiddleware())
	{
		records.GET("", middleware.RBACAuthorize(rbacService, "ojt", "read"), h.GetAll)
		records.GET("/:id", middleware.RBACAuthorize(rbacService, "ojt", "read"), h.GetByID)
		records.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "ojt", "create"),
			h.Create,
		)
		records.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "ojt", "update"),
			h.Update,
		)
		records.DELETE("/:id", middleware.RBACAuthorize(rbacService, "ojt", "delete"), h.Delete)
	}
}
