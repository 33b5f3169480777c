package attendance

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hxben0103/ojt-ai-system/internal/domain"
	"github.com/hxben0103/ojt-ai-system/internal/middleware"
	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"
	"github.com/hxben0103/ojt-ai-system/internal/shared/clock"
	"github.com/hxben0103/ojt-ai-system/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) TimeIn(c *gin.Context) {
	var req TimeInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if actor, ok := studentActor(c); ok && req.StudentID != nil && *req.StudentID != actor.UserID {
		response.FromError(c, apperror.ErrForbidden)
		return
	}

	resp, err := h.service.RecordTimeIn(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) TimeOut(c *gin.Context) {
	var req TimeOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if actor, ok := studentActor(c); ok {
		if req.StudentID != nil && *req.StudentID != actor.UserID {
			response.FromError(c, apperror.ErrForbidden)
			return
		}
		req.OwnerID = &actor.UserID
	}

	resp, err := h.service.RecordTimeOut(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	var filter ListFilter

	studentID, err := h.studentFilter(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	filter.StudentID = studentID

	if raw := c.Query("date"); raw != "" {
		d, err := time.Parse(clock.DateLayout, raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", "date must be formatted as YYYY-MM-DD")
			return
		}
		filter.Date = &d
	}

	resp, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginate(c, http.StatusOK, resp)
}

func (h *Handler) Summary(c *gin.Context) {
	studentID, err := h.studentFilter(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp, err := h.service.GetSummary(c.Request.Context(), studentID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Verify(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", "id must be a positive integer")
		return
	}

	resp, err := h.service.Verify(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// studentFilter reads ?student_id=. Students are always pinned to their own
// rows.
func (h *Handler) studentFilter(c *gin.Context) (*int64, error) {
	if actor, ok := studentActor(c); ok {
		return &actor.UserID, nil
	}
	raw := c.Query("student_id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperror.InvalidField("student_id")
	}
	return &id, nil
}

func studentActor(c *gin.Context) (middleware.Actor, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok || actor.Role != domain.RoleStudent {
		return middleware.Actor{}, false
	}
	return actor, true
}
