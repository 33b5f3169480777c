package user

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/hxben0103/ojt-ai-system/internal/middleware"
	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"
	"github.com/hxben0103/ojt-ai-system/internal/shared/contextutil"
	"github.com/hxben0103/ojt-ai-system/internal/shared/response"
	usererrors "github.com/hxben0103/ojt-ai-system/internal/user/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{svc: service, logger: l}
}

func (h *Handler) GetAll(c *gin.Context) {
	filter := ListFilter{
		Role:   strings.TrimSpace(c.Query("role")),
		Status: strings.TrimSpace(c.Query("status")),
	}
	h.logger.Debug("http get all users", zap.String("role", filter.Role), zap.String("status", filter.Status))

	resp, err := h.svc.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	q := strings.TrimSpace(strings.ToLower(c.Query("q")))
	if q != "" {
		filtered := make([]UserResponse, 0, len(resp))
		for _, u := range resp {
			if strings.Contains(strings.ToLower(u.Email), q) || strings.Contains(strings.ToLower(u.FullName), q) {
				filtered = append(filtered, u)
			}
		}
		resp = filtered
	}

	sortBy := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_by", "date_created")))
	desc := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_dir", "desc"))) != "asc"
	if sortBy != "date_created" {
		sort.SliceStable(resp, func(i, j int) bool {
			var less bool
			switch sortBy {
			case "full_name":
				less = strings.ToLower(resp[i].FullName) < strings.ToLower(resp[j].FullName)
			case "user_id":
				less = resp[i].ID < resp[j].ID
			default:
				less = strings.ToLower(resp[i].Email) < strings.ToLower(resp[j].Email)
			}
			if desc {
				return !less
			}
			return less
		})
	}

	response.Paginate(c, http.StatusOK, resp)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	ctx := contextutil.WithLogger(c.Request.Context(), h.logger)
	res, err := h.svc.GetByID(ctx, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) GetPending(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	res, err := h.svc.GetPending(c.Request.Context(), actor.Role)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginate(c, http.StatusOK, res)
}

func (h *Handler) Approve(c *gin.Context) {
	h.review(c, h.svc.Approve)
}

func (h *Handler) Reject(c *gin.Context) {
	h.review(c, h.svc.Reject)
}

func (h *Handler) review(c *gin.Context, fn func(ctx context.Context, actorRole string, id int64) (UserResponse, error)) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	ctx := contextutil.WithLogger(c.Request.Context(), h.logger)
	res, err := fn(ctx, actor.Role, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	var body ChangePasswordRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	ctx := contextutil.WithLogger(c.Request.Context(), h.logger)
	if err := h.svc.ChangePassword(ctx, actor.UserID, body.CurrentPassword, body.NewPassword); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password updated"}, nil)
}

func userIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.FromError(c, usererrors.ErrInvalidUserID)
		return 0, false
	}
	return id, true
}
