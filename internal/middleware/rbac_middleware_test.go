package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hxben0103/ojt-ai-system/internal/domain"
	"github.com/stretchr/testify/assert"
)

type fakeEnforcer struct {
	enforceFn func(req domain.EnforceRequest) (bool, error)
}

func (f *fakeEnforcer) Enforce(req domain.EnforceRequest) (bool, error) {
	return f.enforceFn(req)
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeEnforcer{enforceFn: func(req domain.EnforceRequest) (bool, error) {
		switch req.Role {
		case "Coordinator":
			return req.Resource == "attendance" && req.Action == "verify", nil
		case "Broken":
			return false, errors.New("policy store down")
		}
		return false, nil
	}}

	run := func(role string) *httptest.ResponseRecorder {
		r := gin.New()
		r.PUT("/verify", func(c *gin.Context) {
			if role != "" {
				c.Set("role", role)
			}
			c.Next()
		}, RBACAuthorize(svc, "attendance", "verify"), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/verify", nil))
		return w
	}

	assert.Equal(t, http.StatusNoContent, run("Coordinator").Code)

	denied := run("Student")
	assert.Equal(t, http.StatusForbidden, denied.Code)
	assert.Contains(t, denied.Body.String(), "attendance:verify")

	assert.Equal(t, http.StatusUnauthorized, run("").Code)
	assert.Equal(t, http.StatusInternalServerError, run("Broken").Code)
}
