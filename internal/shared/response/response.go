package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type PaginationMeta struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

type ApiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error *ErrorBody      `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{Ok: true, Data: data, Meta: meta})
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Ok: false,
		Error: &ErrorBody{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
	})
}

// FromError writes a service error through apperror.ToHTTP and attaches it
// to the gin context so the error-log middleware can see the cause.
func FromError(c *gin.Context, err error) {
	_ = c.Error(err)
	httpErr := apperror.ToHTTP(err)
	Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Paginate slices an already loaded list with the page/page_size query
// parameters (defaults 1 and 10, page_size capped at 100). A page past the
// end yields an empty slice.
func Paginate[T any](c *gin.Context, status int, rows []T) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	start, end := len(rows), len(rows)
	if page-1 <= len(rows)/pageSize {
		start = min((page-1)*pageSize, len(rows))
		end = min(start+pageSize, len(rows))
	}

	meta := NewPaginationMeta(int64(len(rows)), page, pageSize)
	Success(c, status, rows[start:end], &meta)
}

// BindError reports a request binding failure as VALIDATION_ERROR. Validator
// failures name the first bad field and list all of them in details.
func BindError(c *gin.Context, err error) {
	var fields validator.ValidationErrors
	if errors.As(err, &fields) {
		var appErr *apperror.AppError
		if errors.As(apperror.MapValidationError(err), &appErr) {
			Error(c, http.StatusBadRequest, "VALIDATION_ERROR", appErr.Message, appErr.Details)
			return
		}
	}
	Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
}
