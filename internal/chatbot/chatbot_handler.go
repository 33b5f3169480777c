package chatbot

import (
	"net/http"

	"github.com/hxben0103/ojt-ai-system/internal/domain"
	"github.com/hxben0103/ojt-ai-system/internal/middleware"
	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"
	"github.com/hxben0103/ojt-ai-system/internal/shared/request"
	"github.com/hxben0103/ojt-ai-system/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetAll lists the newest logs. Only coordinators and admins may read
// other users' conversations.
func (h *Handler) GetAll(c *gin.Context) {
	userID, err := request.OptionalID(c, "user_id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	if actor, ok := middleware.CurrentActor(c); ok && !canReadOthers(actor.Role) {
		userID = &actor.UserID
	}
	h.list(c, userID)
}

func (h *Handler) GetByUser(c *gin.Context) {
	id, err := request.PathID(c, "user_id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	if actor, ok := middleware.CurrentActor(c); ok && !canReadOthers(actor.Role) && actor.UserID != id {
		response.FromError(c, apperror.ErrForbidden)
		return
	}
	h.list(c, &id)
}

func (h *Handler) list(c *gin.Context, userID *int64) {
	resp, err := h.service.GetLogs(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}
	if req.UserID == 0 {
		req.UserID = actor.UserID
	}
	if req.UserID != actor.UserID && !canReadOthers(actor.Role) {
		response.FromError(c, apperror.ErrForbidden)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func canReadOthers(role string) bool {
	return role == domain.RoleAdmin || role == domain.RoleCoordinator
}
