package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "middleware-test-secret"

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return tok
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.UserID, "role": actor.Role})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	router := newAuthRouter()

	valid := signTestToken(t, jwt.MapClaims{
		"user_id": "42",
		"role":    "Coordinator",
		"email":   "coord@school.edu",
		"typ":     TokenTypeAccess,
		"exp":     time.Now().Add(time.Minute).Unix(),
	})
	expired := signTestToken(t, jwt.MapClaims{
		"user_id": "42",
		"typ":     TokenTypeAccess,
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	refresh := signTestToken(t, jwt.MapClaims{
		"user_id": "42",
		"typ":     TokenTypeRefresh,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
		wantBody   string
	}{
		{name: "bearer token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: `"role":"Coordinator"`},
		{name: "cookie token", cookie: valid, wantStatus: http.StatusOK, wantBody: `"id":42`},
		{name: "missing token", wantStatus: http.StatusUnauthorized, wantBody: "UNAUTHORIZED"},
		{name: "expired token", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized, wantBody: "TOKEN_EXPIRED"},
		{name: "refresh token rejected", header: "Bearer " + refresh, wantStatus: http.StatusUnauthorized, wantBody: "INVALID_TOKEN"},
		{name: "garbage token", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized, wantBody: "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { c.Set("role", "Student"); c.Next() }, RoleMiddleware("Admin", "Coordinator"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCurrentActor_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set("user_id", "not-a-number")

	_, ok := CurrentActor(c)
	assert.False(t, ok)
}
