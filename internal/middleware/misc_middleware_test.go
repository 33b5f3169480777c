package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hxben0103/ojt-ai-system/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIsAllowedOrigin(t *testing.T) {
	allowed := map[string]struct{}{"https://ojt.example.com": {}}

	assert.True(t, IsAllowedOrigin("http://localhost:3000", allowed))
	assert.True(t, IsAllowedOrigin("http://127.0.0.1:5173", allowed))
	assert.True(t, IsAllowedOrigin("https://ojt.example.com", allowed))
	assert.False(t, IsAllowedOrigin("https://evil.example.com", allowed))
	assert.False(t, IsAllowedOrigin("ftp://localhost", allowed))
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimitByIP(0.01, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/login", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/login", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

type fakeRecorder struct {
	entries []APIError
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, e APIError) error {
	f.entries = append(f.entries, e)
	return f.err
}

func TestErrorLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := &fakeRecorder{}

	r := gin.New()
	r.Use(RequestID(), ErrorLog(rec))
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("db timeout"))
		c.Status(http.StatusInternalServerError)
	})
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	if assert.Len(t, rec.entries, 1) {
		assert.Equal(t, "/boom", rec.entries[0].Endpoint)
		assert.Equal(t, http.StatusInternalServerError, rec.entries[0].StatusCode)
		assert.Equal(t, "db timeout", rec.entries[0].ErrorMessage)
		assert.NotEmpty(t, rec.entries[0].RequestID)
	}
}

func TestErrorLog_RecoversPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := &fakeRecorder{}

	r := gin.New()
	r.Use(RequestID(), ErrorLog(rec))
	r.GET("/panics", func(c *gin.Context) {
		var rows []int
		_ = rows[5]
	})

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panics", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	if assert.Len(t, rec.entries, 1) {
		assert.Equal(t, "/panics", rec.entries[0].Endpoint)
		assert.Equal(t, http.StatusInternalServerError, rec.entries[0].StatusCode)
		assert.Contains(t, rec.entries[0].ErrorMessage, "panic: runtime error")
		assert.NotEmpty(t, rec.entries[0].RequestID)
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, contextutil.GetRequestID(c.Request.Context()))
	})

	t.Run("keeps a well-formed caller id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-42", w.Body.String())
		assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
	})

	t.Run("replaces an unsafe id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(RequestIDHeader, "bad id\nInjected: 1")
		r.ServeHTTP(w, req)

		assert.NotEqual(t, "bad id\nInjected: 1", w.Body.String())
		assert.Len(t, w.Body.String(), 36)
	})
}
