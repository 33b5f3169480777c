package attendance_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hxben0103/ojt-ai-system/internal/attendance"
	attendanceerrors "github.com/hxben0103/ojt-ai-system/internal/attendance/errors"
	attendanceMock "github.com/hxben0103/ojt-ai-system/internal/attendance/mock"
	"github.com/hxben0103/ojt-ai-system/internal/domain"

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

func TestHandler_TimeIn(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := attendanceMock.NewMockService(gomock.NewController(t))
		h := attendance.NewHandler(svc)

		svc.EXPECT().
			RecordTimeIn(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req attendance.TimeInRequest) (attendance.AttendanceResponse, error) {
				assert.Equal(t, int64(7), *req.StudentID)
				assert.Equal(t, "MORNING_IN", *req.Segment)
				return attendance.AttendanceResponse{ID: 1, StudentID: 7}, nil
			})

		c, w := newHandlerContext(http.MethodPost, "/attendance/time-in", `{"student_id":7,"segment":"MORNING_IN"}`, "7", domain.RoleStudent)
		h.TimeIn(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"attendance_id":1`)
	})

	t.Run("student recording for someone else", func(t *testing.T) {
		svc := attendanceMock.NewMockService(gomock.NewController(t))
		h := attendance.NewHandler(svc)

		c, w := newHandlerContext(http.MethodPost, "/attendance/time-in", `{"student_id":8}`, "7", domain.RoleStudent)
		h.TimeIn(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("duplicate segment", func(t *testing.T) {
		svc := attendanceMock.NewMockService(gomock.NewController(t))
		h := attendance.NewHandler(svc)

		svc.EXPECT().RecordTimeIn(gomock.Any(), gomock.Any()).Return(attendance.AttendanceResponse{}, attendanceerrors.ErrTimeInAlreadyRecorded)

		c, w := newHandlerContext(http.MethodPost, "/attendance/time-in", `{"student_id":7}`, "1", domain.RoleCoordinator)
		h.TimeIn(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "DUPLICATE_SEGMENT")
		assert.Contains(t, w.Body.String(), "Time-in already recorded for this segment")
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := attendanceMock.NewMockService(gomock.NewController(t))
		h := attendance.NewHandler(svc)

		c, w := newHandlerContext(http.MethodPost, "/attendance/time-in", `{"student_id":"x"`, "1", domain.RoleAdmin)
		h.TimeIn(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})
}

func TestHandler_TimeOut(t *testing.T) {
	t.Run("student is pinned as owner", func(t *testing.T) {
		svc := attendanceMock.NewMockService(gomock.NewController(t))
		h := attendance.NewHandler(svc)

		svc.EXPECT().
			RecordTimeOut(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req attendance.TimeOutRequest) (attendance.AttendanceResponse, error) {
				assert.Equal(t, int64(7), *req.OwnerID)
				assert.Equal(t, int64(3), *req.AttendanceID)
				return attendance.AttendanceResponse{ID: 3}, nil
			})

		c, w := newHandlerContext(http.MethodPut, "/attendance/time-out", `{"attendance_id":3,"time_out":"17:00"}`, "7", domain.RoleStudent)
		h.TimeOut(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := attendanceMock.NewMockService(gomock.NewController(t))
		h := attendance.NewHandler(svc)

		svc.EXPECT().
			RecordTimeOut(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req attendance.TimeOutRequest) (attendance.AttendanceResponse, error) {
				assert.Nil(t, req.OwnerID)
				return attendance.AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
			})

		c, w := newHandlerContext(http.MethodPut, "/attendance/time-out", `{"attendance_id":3,"time_out":"17:00"}`, "2", domain.RoleSupervisor)
		h.TimeOut(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_GetAll(t *testing.T) {
	t.Run("paginates and filters", func(t *testing.T) {
		svc := attendanceMock.NewMockService(gomock.NewController(t))
		h := attendance.NewHandler(svc)

		svc.EXPECT().
			GetAll(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, f attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
				assert.Equal(t, int64(7), *f.StudentID)
				assert.Equal(t, "2026-03-02", f.Date.Format("2006-01-02"))
				return []attendance.AttendanceResponse{{ID: 1}, {ID: 2}}, nil
			})

		c, w := newHandlerContext(http.MethodGet, "/attendance?student_id=7&date=2026-03-02&page=1&page_size=1", "", "1", domain.RoleCoordinator)
		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"meta"`)
		assert.Contains(t, w.Body.String(), `"total":2`)
	})

	t.Run("student only sees own rows", func(t *testing.T) {
		svc := attendanceMock.NewMockService(gomock.NewController(t))
		h := attendance.NewHandler(svc)

		svc.EXPECT().
			GetAll(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, f attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
				assert.Equal(t, int64(7), *f.StudentID)
				return nil, nil
			})

		c, w := newHandlerContext(http.MethodGet, "/attendance?student_id=8", "", "7", domain.RoleStudent)
		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad date", func(t *testing.T) {
		svc := attendanceMock.NewMockService(gomock.NewController(t))
		h := attendance.NewHandler(svc)

		c, w := newHandlerContext(http.MethodGet, "/attendance?date=yesterday", "", "1", domain.RoleAdmin)
		h.GetAll(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Verify(t *testing.T) {
	svc := attendanceMock.NewMockService(gomock.NewController(t))
	h := attendance.NewHandler(svc)

	svc.EXPECT().Verify(gomock.Any(), int64(4)).Return(attendance.AttendanceResponse{ID: 4, Verified: true}, nil)

	c, w := newHandlerContext(http.MethodPut, "/attendance/verify/4", "", "2", domain.RoleSupervisor)
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	h.Verify(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"verified":true`)
}
