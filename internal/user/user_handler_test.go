package user_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hxben0103/ojt-ai-system/internal/domain"
	"github.com/hxben0103/ojt-ai-system/internal/user"
	usererrors "github.com/hxben0103/ojt-ai-system/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeUserService struct {
	GetAllFn         func(ctx context.Context, filter user.ListFilter) ([]user.UserResponse, error)
	GetByIDFn        func(ctx context.Context, id int64) (user.UserResponse, error)
	GetPendingFn     func(ctx context.Context, actorRole string) ([]user.UserResponse, error)
	ApproveFn        func(ctx context.Context, actorRole string, id int64) (user.UserResponse, error)
	RejectFn         func(ctx context.Context, actorRole string, id int64) (user.UserResponse, error)
	ChangePasswordFn func(ctx context.Context, userID int64, current, next string) error
}

func (f *fakeUserService) GetAll(ctx context.Context, filter user.ListFilter) ([]user.UserResponse, error) {
	return f.GetAllFn(ctx, filter)
}
func (f *fakeUserService) GetByID(ctx context.Context, id int64) (user.UserResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeUserService) GetPending(ctx context.Context, actorRole string) ([]user.UserResponse, error) {
	return f.GetPendingFn(ctx, actorRole)
}
func (f *fakeUserService) Approve(ctx context.Context, actorRole string, id int64) (user.UserResponse, error) {
	return f.ApproveFn(ctx, actorRole, id)
}
func (f *fakeUserService) Reject(ctx context.Context, actorRole string, id int64) (user.UserResponse, error) {
	return f.RejectFn(ctx, actorRole, id)
}
func (f *fakeUserService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	return f.ChangePasswordFn(ctx, userID, current, next)
}

func setupHandler(svc user.Service) *user.Handler {
	return user.NewHandler(svc, zap.NewNop())
}

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestUserHandler_GetAll(t *testing.T) {
	svc := &fakeUserService{
		GetAllFn: func(ctx context.Context, filter user.ListFilter) ([]user.UserResponse, error) {
			assert.Equal(t, domain.RoleStudent, filter.Role)
			return []user.UserResponse{
				{ID: 1, Email: "b@school.edu", FullName: "Ben"},
				{ID: 2, Email: "a@school.edu", FullName: "Ana"},
			}, nil
		},
	}
	h := setupHandler(svc)

	c, w := newContext(http.MethodGet, "/users?role=Student&sort_by=email&sort_dir=asc&q=school", "")
	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Less(t, strings.Index(body, "a@school.edu"), strings.Index(body, "b@school.edu"))
	assert.NotContains(t, body, "password")
}

func TestUserHandler_Approve(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeUserService{
			ApproveFn: func(ctx context.Context, actorRole string, id int64) (user.UserResponse, error) {
				assert.Equal(t, domain.RoleCoordinator, actorRole)
				assert.Equal(t, int64(9), id)
				return user.UserResponse{ID: 9, Status: user.StatusActive}, nil
			},
		}
		h := setupHandler(svc)

		c, w := newContext(http.MethodPut, "/users/9/approve", "")
		c.Set("user_id", "2")
		c.Set("role", domain.RoleCoordinator)
		c.Params = gin.Params{{Key: "id", Value: "9"}}
		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"Active"`)
	})

	t.Run("not allowed", func(t *testing.T) {
		svc := &fakeUserService{
			RejectFn: func(ctx context.Context, actorRole string, id int64) (user.UserResponse, error) {
				return user.UserResponse{}, usererrors.ErrApprovalNotAllowed
			},
		}
		h := setupHandler(svc)

		c, w := newContext(http.MethodPut, "/users/9/reject", "")
		c.Set("user_id", "1")
		c.Set("role", domain.RoleAdmin)
		c.Params = gin.Params{{Key: "id", Value: "9"}}
		h.Reject(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		h := setupHandler(&fakeUserService{})

		c, w := newContext(http.MethodPut, "/users/abc/approve", "")
		c.Set("user_id", "1")
		c.Set("role", domain.RoleAdmin)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		h.Approve(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		h := setupHandler(&fakeUserService{})

		c, w := newContext(http.MethodPut, "/users/9/approve", "")
		c.Params = gin.Params{{Key: "id", Value: "9"}}
		h.Approve(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUserHandler_ChangePassword(t *testing.T) {
	svc := &fakeUserService{
		ChangePasswordFn: func(ctx context.Context, userID int64, current, next string) error {
			assert.Equal(t, int64(4), userID)
			assert.Equal(t, "newsecret", next)
			return nil
		},
	}
	h := setupHandler(svc)

	c, w := newContext(http.MethodPut, "/users/me/password", `{"current_password":"old","new_password":"newsecret"}`)
	c.Set("user_id", "4")
	c.Set("role", domain.RoleStudent)
	h.ChangePassword(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
