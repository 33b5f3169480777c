package evaluation_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hxben0103/ojt-ai-system/internal/domain"
	"github.com/hxben0103/ojt-ai-system/internal/evaluation"
	evaluationMock "github.com/hxben0103/ojt-ai-system/internal/evaluation/mock"

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

func TestHandler_Create(t *testing.T) {
	t.Run("evaluator defaults to the caller", func(t *testing.T) {
		svc := evaluationMock.NewMockService(gomock.NewController(t))
		h := evaluation.NewHandler(svc)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req evaluation.CreateEvaluationRequest) (evaluation.EvaluationResponse, error) {
				assert.Equal(t, int64(30), req.SupervisorID)
				assert.JSONEq(t, `{"quality":4}`, string(req.Criteria))
				return evaluation.EvaluationResponse{ID: 2}, nil
			})

		c, w := newHandlerContext(http.MethodPost, "/evaluations", `{"student_id":10,"criteria":{"quality":4},"total_score":88}`, "30", domain.RoleSupervisor)
		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"eval_id":2`)
	})

	t.Run("total_score is required", func(t *testing.T) {
		svc := evaluationMock.NewMockService(gomock.NewController(t))
		h := evaluation.NewHandler(svc)

		c, w := newHandlerContext(http.MethodPost, "/evaluations", `{"student_id":10}`, "30", domain.RoleSupervisor)
		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetByID(t *testing.T) {
	t.Run("student cannot read another student's evaluation", func(t *testing.T) {
		svc := evaluationMock.NewMockService(gomock.NewController(t))
		h := evaluation.NewHandler(svc)

		svc.EXPECT().GetByID(gomock.Any(), int64(4)).Return(evaluation.EvaluationResponse{ID: 4, StudentID: 11}, nil)

		c, w := newHandlerContext(http.MethodGet, "/evaluations/4", "", "10", domain.RoleStudent)
		c.Params = gin.Params{{Key: "id", Value: "4"}}
		h.GetByID(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("student lists only own evaluations", func(t *testing.T) {
		svc := evaluationMock.NewMockService(gomock.NewController(t))
		h := evaluation.NewHandler(svc)

		svc.EXPECT().GetAll(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, f evaluation.ListFilter) ([]evaluation.EvaluationResponse, error) {
				assert.Equal(t, int64(10), *f.StudentID)
				return nil, nil
			})

		c, w := newHandlerContext(http.MethodGet, "/evaluations", "", "10", domain.RoleStudent)
		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
