package attendance

import (
	"github.com/hxben0103/ojt-ai-system/internal/middleware"
	"github.com/hxben0103/ojt-ai-system/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	{
		attendance.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetAll)
		attendance.GET("/summary", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.Summary)
		attendance.POST("/time-in",
			middleware.RateLimitByUser(rate.Limit(1), 5),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			middleware.Idempotency(rdb),
			h.TimeIn,
		)
		attendance.PUT("/time-out",
			middleware.RateLimitByUser(rate.Limit(1), 5),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			h.TimeOut,
		)
		attendance.PUT("/verify/:id", middleware.RBACAuthorize(rbacService, "attendance", "verify"), h.Verify)
	}
}
