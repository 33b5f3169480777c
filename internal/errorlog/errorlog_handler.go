package errorlog

import (
	"net/http"

	"github.com/hxben0103/ojt-ai-system/internal/middleware"
	"github.com/hxben0103/ojt-ai-system/internal/rbac"
	"github.com/hxben0103/ojt-ai-system/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetRecent(c *gin.Context) {
	resp, err := h.service.GetRecent(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginate(c, http.StatusOK, resp)
}

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	r.GET("/error-logs",
		middleware.AuthMiddleware(),
		middleware.RBACAuthorize(rbacService, "error_log", "read"),
		h.GetRecent,
	)
}
