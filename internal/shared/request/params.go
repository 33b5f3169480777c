package request

import (
	"strconv"
	"strings"

	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// OptionalID reads a positive integer query parameter. An absent or blank
// parameter yields nil.
func OptionalID(c *gin.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperror.InvalidField(name)
	}
	return &id, nil
}

// PathID reads a positive integer path parameter.
func PathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.InvalidField(name)
	}
	return id, nil
}
