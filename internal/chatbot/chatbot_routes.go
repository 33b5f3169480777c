package chatbot

import (
	"github.com/hxben0103/ojt-ai-system/internal/middleware"
	"github.com/hxben0103/ojt-ai-system/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	logs := r.Group("/chatbot/logs")
	logs.Use(middleware.AuthMiddleware())
	{
		logs.GET("", middleware.RBACAuthorize(rbacService, "chatbot", "read"), h.GetAll)
		logs.GET("/:user_id", middleware.RBACAuthorize(rbacService, "chatbot", "read"), h.GetByUser)
		logs.POST("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "chatbot", "create"),
			h.Create,
		)
	}
}
