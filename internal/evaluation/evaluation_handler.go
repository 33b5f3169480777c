package evaluation

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

func (h *Handler) GetAll(c *gin.Context) {
	var (
		filter ListFilter
		err    error
	)
	if filter.StudentID, err = request.OptionalID(c, "student_id"); err != nil {
		response.FromError(c, err)
		return
	}
	if filter.SupervisorID, err = request.OptionalID(c, "supervisor_id"); err != nil {
		response.FromError(c, err)
		return
	}
	if actor, ok := middleware.CurrentActor(c); ok && actor.Role == domain.RoleStudent {
		filter.StudentID = &actor.UserID
	}

	resp, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginate(c, http.StatusOK, resp)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if actor, ok := middleware.CurrentActor(c); ok && actor.Role == domain.RoleStudent && resp.StudentID != actor.UserID {
		response.FromError(c, apperror.ErrForbidden)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if req.SupervisorID == 0 {
		actor, ok := middleware.CurrentActor(c)
		if !ok {
			response.FromError(c, apperror.ErrUnauthorized)
			return
		}
		req.SupervisorID = actor.UserID
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req UpdateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
