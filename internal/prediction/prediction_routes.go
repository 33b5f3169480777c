package prediction

import (
	"github.com/hxben0103/ojt-ai-system/internal/middleware"
	"github.com/hxben0103/ojt-ai-system/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	p := r.Group("/prediction")
	p.Use(middleware.AuthMiddleware())
	{
		p.GET("/insights", middleware.RBACAuthorize(rbacService, "prediction", "read"), h.GetInsights)
		p.POST("/insights",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "prediction", "create"),
			h.CreateInsight,
		)
		p.GET("/performance", middleware.RBACAuthorize(rbacService, "prediction", "read"), h.GetPerformance)
		p.POST("/performance/generate",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "prediction", "create"),
			h.GeneratePerformance,
		)
		p.GET("/risk-assessment/:student_id", middleware.RBACAuthorize(rbacService, "prediction", "read"), h.AssessRisk)
		p.GET("/at-risk", middleware.RBACAuthorize(rbacService, "prediction", "read"), h.GetAtRisk)
		p.POST("/batch",
			middleware.RateLimitByUser(0.1, 2),
			middleware.RBACAuthorize(rbacService, "prediction", "create"),
			h.RunBatch,
		)
		p.GET("/daily/:student_id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "prediction", "read"),
			h.DailyPrediction,
		)
	}
}
