package report_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hxben0103/ojt-ai-system/internal/domain"
	"github.com/hxben0103/ojt-ai-system/internal/report"
	reporterrors "github.com/hxben0103/ojt-ai-system/internal/report/errors"
	reportMock "github.com/hxben0103/ojt-ai-system/internal/report/mock"

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

func TestHandler_Create_DefaultsGeneratorToCaller(t *testing.T) {
	svc := reportMock.NewMockService(gomock.NewController(t))
	h := report.NewHandler(svc)

	svc.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req report.CreateReportRequest) (report.ReportResponse, error) {
			assert.Equal(t, int64(2), req.GeneratedBy)
			return report.ReportResponse{ID: 1}, nil
		})

	c, w := newHandlerContext(http.MethodPost, "/reports", `{"report_type":"attendance","content":{"days":3}}`, "2", domain.RoleCoordinator)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_PDF(t *testing.T) {
	t.Run("streams the document", func(t *testing.T) {
		svc := reportMock.NewMockService(gomock.NewController(t))
		h := report.NewHandler(svc)

		svc.EXPECT().RenderPDF(gomock.Any(), int64(3)).Return(report.RenderedPDF{Filename: "report-3.pdf", Body: []byte("%PDF-1.4")}, nil)

		c, w := newHandlerContext(http.MethodGet, "/reports/3/pdf", "", "2", domain.RoleCoordinator)
		c.Params = gin.Params{{Key: "id", Value: "3"}}
		h.PDF(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "report-3.pdf")
		assert.Equal(t, "%PDF-1.4", w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		svc := reportMock.NewMockService(gomock.NewController(t))
		h := report.NewHandler(svc)

		svc.EXPECT().RenderPDF(gomock.Any(), int64(4)).Return(report.RenderedPDF{}, reporterrors.ErrReportNotFound)

		c, w := newHandlerContext(http.MethodGet, "/reports/4/pdf", "", "2", domain.RoleCoordinator)
		c.Params = gin.Params{{Key: "id", Value: "4"}}
		h.PDF(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
