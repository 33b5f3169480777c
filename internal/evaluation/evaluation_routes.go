package evaluation

import (
	"github.com/hxben0103/ojt-ai-system/internal/middleware"
	"github.com/hxben0103/ojt-ai-system/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	evaluations := r.Group("/evaluations")
	evaluations.Use(middleware.AuthMiddleware())
	{
		evaluations.GET("", middleware.RBACAuthorize(rbacService, "evaluation", "read"), h.GetAll)
		evaluations.GET("/:id", middleware.RBACAuthorize(rbacService, "evaluation", "read"), h.GetByID)
		evaluations.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "evaluation", "create"),
			middleware.Idempotency(rdb),
			h.Create,
		)
		evaluations.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "evaluation", "update"),
			h.Update,
		)
	}
}
