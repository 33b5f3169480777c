package ojt_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hxben0103/ojt-ai-system/internal/domain"
	"github.com/hxben0103/ojt-ai-system/internal/ojt"
	ojterrors "github.com/hxben0103/ojt-ai-system/internal/ojt/errors"
	ojtMock "github.com/hxben0103/ojt-ai-system/internal/ojt/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newHandlerContext(method, target, body, userID, role string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if userID != "" {
		c.Set("user_id", userID)
		c.Set("role", role)
	}
	return c, w
}

func TestHandler_GetAll(t *testing.T) {
	t.Run("coordinator filters by query", func(t *testing.T) {
		svc := ojtMock.NewMockService(gomock.NewController(t))
		h := ojt.NewHandler(svc)

		svc.EXPECT().GetAll(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, f ojt.ListFilter) ([]ojt.RecordResponse, error) {
				assert.Equal(t, int64(30), *f.SupervisorID)
				assert.Nil(t, f.StudentID)
				assert.Equal(t, ojt.StatusOngoing, f.Status)
				return []ojt.RecordResponse{{ID: 1}}, nil
			})

		c, w := newHandlerContext(http.MethodGet, "/ojt/records?supervisor_id=30&status=Ongoing", "", "2", domain.RoleCoordinator)
		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"record_id":1`)
	})

	t.Run("student is pinned to own records", func(t *testing.T) {
		svc := ojtMock.NewMockService(gomock.NewController(t))
		h := ojt.NewHandler(svc)

		svc.EXPECT().GetAll(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, f ojt.ListFilter) ([]ojt.RecordResponse, error) {
				assert.Equal(t, int64(7), *f.StudentID)
				return nil, nil
			})

		c, w := newHandlerContext(http.MethodGet, "/ojt/records?student_id=8", "", "7", domain.RoleStudent)
		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad id filter", func(t *testing.T) {
		svc := ojtMock.NewMockService(gomock.NewController(t))
		h := ojt.NewHandler(svc)

		c, w := newHandlerContext(http.MethodGet, "/ojt/records?coordinator_id=x", "", "2", domain.RoleCoordinator)
		h.GetAll(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := ojtMock.NewMockService(gomock.NewController(t))
		h := ojt.NewHandler(svc)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req ojt.CreateRecordRequest) (ojt.RecordResponse, error) {
				assert.Equal(t, "Acme", req.CompanyName)
				return ojt.RecordResponse{ID: 3, ReferenceNo: "OJT-000003"}, nil
			})

		body := `{"student_id":10,"coordinator_id":20,"supervisor_id":30,"company_name":"Acme","start_date":"2026-01-05"}`
		c, w := newHandlerContext(http.MethodPost, "/ojt/records", body, "2", domain.RoleCoordinator)
		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "OJT-000003")
	})

	t.Run("ongoing conflict", func(t *testing.T) {
		svc := ojtMock.NewMockService(gomock.NewController(t))
		h := ojt.NewHandler(svc)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ojt.RecordResponse{}, ojterrors.ErrOngoingRecordExists)

		c, w := newHandlerContext(http.MethodPost, "/ojt/records", `{"student_id":10}`, "2", domain.RoleCoordinator)
		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := ojtMock.NewMockService(gomock.NewController(t))
		h := ojt.NewHandler(svc)

		c, w := newHandlerContext(http.MethodPost, "/ojt/records", `{"student_id":"ten"}`, "2", domain.RoleCoordinator)
		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})
}

func TestHandler_UpdateAndDelete(t *testing.T) {
	t.Run("update invalid transition", func(t *testing.T) {
		svc := ojtMock.NewMockService(gomock.NewController(t))
		h := ojt.NewHandler(svc)

		svc.EXPECT().Update(gomock.Any(), int64(5), gomock.Any()).Return(ojt.RecordResponse{}, ojterrors.ErrInvalidTransition)

		c, w := newHandlerContext(http.MethodPut, "/ojt/records/5", `{"status":"Ongoing"}`, "2", domain.RoleCoordinator)
		c.Params = gin.Params{{Key: "id", Value: "5"}}
		h.Update(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("delete not found", func(t *testing.T) {
		svc := ojtMock.NewMockService(gomock.NewController(t))
		h := ojt.NewHandler(svc)

		svc.EXPECT().Delete(gomock.Any(), int64(9)).Return(ojterrors.ErrRecordNotFound)

		c, w := newHandlerContext(http.MethodDelete, "/ojt/records/9", "", "1", domain.RoleAdmin)
		c.Params = gin.Params{{Key: "id", Value: "9"}}
		h.Delete(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("get by invalid id", func(t *testing.T) {
		svc := ojtMock.NewMockService(gomock.NewController(t))
		h := ojt.NewHandler(svc)

		c, w := newHandlerContext(http.MethodGet, "/ojt/records/abc", "", "1", domain.RoleAdmin)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		h.GetByID(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
