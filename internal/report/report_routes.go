package report

import (
	"github.com/hxben0103/ojt-ai-system/internal/middleware"
	"github.com/hxben0103/ojt-ai-system/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("", middleware.RBACAuthorize(rbacService, "report", "read"), h.GetAll)
		reports.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "report", "create"),
			h.Create,
		)
		reports.GET("/:id", middleware.RBACAuthorize(rbacService, "report", "read"), h.GetByID)
		reports.GET("/:id/pdf",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "report", "read"),
			h.PDF,
		)
	}
}
