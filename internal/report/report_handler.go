package report

import (
	"net/http"
	"strings"

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
	generatedBy, err := request.OptionalID(c, "generated_by")
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), ListFilter{
		ReportType:  strings.TrimSpace(c.Query("report_type")),
		GeneratedBy: generatedBy,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginate(c, http.StatusOK, resp)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if req.GeneratedBy == 0 {
		actor, ok := middleware.CurrentActor(c)
		if !ok {
			response.FromError(c, apperror.ErrUnauthorized)
			return
		}
		req.GeneratedBy = actor.UserID
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
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
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) PDF(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	pdf, err := h.service.RenderPDF(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+pdf.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf.Body)
}
