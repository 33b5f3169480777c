package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type Actor struct {
	UserID int64
	Role   string
	Email  string
}

// CurrentActor reads what AuthMiddleware stored on the gin context.
func CurrentActor(c *gin.Context) (Actor, bool) {
	raw := c.GetString("user_id")
	if raw == "" {
		return Actor{}, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return Actor{}, false
	}
	return Actor{
		UserID: id,
		Role:   c.GetString("role"),
		Email:  c.GetString("email"),
	}, true
}
