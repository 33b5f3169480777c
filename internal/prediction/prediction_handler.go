package prediction

import (
	"net/http"
	"strings"

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

func (h *Handler) GetInsights(c *gin.Context) {
	studentID, err := h.studentScope(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp, err := h.service.GetInsights(c.Request.Context(), ListFilter{
		StudentID:   studentID,
		InsightType: strings.TrimSpace(c.Query("insight_type")),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginate(c, http.StatusOK, resp)
}

func (h *Handler) CreateInsight(c *gin.Context) {
	var req CreateInsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.service.CreateInsight(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetPerformance(c *gin.Context) {
	studentID, err := h.studentScope(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp, err := h.service.GetPerformance(c.Request.Context(), studentID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginate(c, http.StatusOK, resp)
}

func (h *Handler) GeneratePerformance(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.service.GeneratePerformance(c.Request.Context(), req.StudentID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) AssessRisk(c *gin.Context) {
	id, err := h.studentParam(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp, err := h.service.AssessRisk(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAtRisk(c *gin.Context) {
	resp, err := h.service.GetAtRisk(c.Request.Context(), c.Query("level"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginate(c, http.StatusOK, resp)
}

func (h *Handler) RunBatch(c *gin.Context) {
	resp, err := h.service.RunBatch(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DailyPrediction(c *gin.Context) {
	id, err := h.studentParam(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp, err := h.service.DailyPrediction(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// studentScope reads ?student_id; students only ever see their own rows.
func (h *Handler) studentScope(c *gin.Context) (*int64, error) {
	if actor, ok := middleware.CurrentActor(c); ok && actor.Role == domain.RoleStudent {
		return &actor.UserID, nil
	}
	return request.OptionalID(c, "student_id")
}

func (h *Handler) studentParam(c *gin.Context) (int64, error) {
	id, err := request.PathID(c, "student_id")
	if err != nil {
		return 0, err
	}
	if actor, ok := middleware.CurrentActor(c); ok && actor.Role == domain.RoleStudent && actor.UserID != id {
		return 0, apperror.ErrForbidden
	}
	return id, nil
}
