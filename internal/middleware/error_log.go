package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"
	"github.com/hxben0103/ojt-ai-system/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIError struct {
	Endpoint     string
	Method       string
	StatusCode   int
	ErrorMessage string
	UserID       string
	RequestID    string
}

// ErrorRecorder is satisfied by errorlog.Service.
type ErrorRecorder interface {
	Record(ctx context.Context, e APIError) error
}

// ErrorLog persists every 5xx response. A panic further down the chain is
// recovered here, answered with a 500 envelope and recorded like any other
// server error. Recording failures are only logged.
func ErrorLog(recorder ErrorRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				contextutil.GetLogger(c.Request.Context(), zap.L()).Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				_ = c.Error(fmt.Errorf("panic: %v", r))
				if !c.Writer.Written() {
					abortWith(c, apperror.ErrInternal)
				} else {
					c.Abort()
				}
				recordServerError(c, recorder, http.StatusInternalServerError)
			}
		}()

		c.Next()
		recordServerError(c, recorder, c.Writer.Status())
	}
}

func recordServerError(c *gin.Context, recorder ErrorRecorder, status int) {
	if status < http.StatusInternalServerError {
		return
	}

	msg := http.StatusText(status)
	if last := c.Errors.Last(); last != nil {
		msg = last.Error()
	}

	ctx := c.Request.Context()
	entry := APIError{
		Endpoint:     c.Request.URL.Path,
		Method:       c.Request.Method,
		StatusCode:   status,
		ErrorMessage: msg,
		UserID:       contextutil.GetUserID(ctx),
		RequestID:    contextutil.GetRequestID(ctx),
	}
	if err := recorder.Record(context.WithoutCancel(ctx), entry); err != nil {
		contextutil.GetLogger(ctx, zap.L()).Warn("api error log persist failed", zap.Error(err))
	}
}
