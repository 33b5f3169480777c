package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/hxben0103/ojt-ai-system/internal/report"
	reporterrors "github.com/hxben0103/ojt-ai-system/internal/report/errors"
	reportMock "github.com/hxben0103/ojt-ai-system/internal/report/mock"
	"github.com/hxben0103/ojt-ai-system/internal/user"
	userMock "github.com/hxben0103/ojt-ai-system/internal/user/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores content and joins the generator name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := reportMock.NewMockRepository(ctrl)
		users := userMock.NewMockRepository(ctrl)
		svc := report.NewService(repo, users)

		users.EXPECT().FindByID(ctx, int64(2)).Return(&user.User{ID: 2, FullName: "Maria"}, nil)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r *report.SystemReport) error {
			assert.Equal(t, "attendance", r.ReportType)
			r.ID = 8
			return nil
		})

		resp, err := svc.Create(ctx, report.CreateReportRequest{
			ReportType:  " attendance ",
			GeneratedBy: 2,
			Content:     json.RawMessage(`{"days":20}`),
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(8), resp.ID)
		assert.Equal(t, "Maria", resp.GeneratedByName)
	})

	t.Run("content must be json", func(t *testing.T) {
		svc := report.NewService(reportMock.NewMockRepository(gomock.NewController(t)), nil)

		_, err := svc.Create(ctx, report.CreateReportRequest{ReportType: "x", GeneratedBy: 2, Content: json.RawMessage(`{oops`)})

		assert.ErrorIs(t, err, reporterrors.ErrInvalidContent)
	})

	t.Run("unknown generator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMock.NewMockRepository(ctrl)
		svc := report.NewService(reportMock.NewMockRepository(ctrl), users)

		users.EXPECT().FindByID(ctx, int64(99)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Create(ctx, report.CreateReportRequest{ReportType: "x", GeneratedBy: 99})

		assert.ErrorIs(t, err, reporterrors.ErrGeneratorNotFound)
	})
}

func TestService_RenderPDF(t *testing.T) {
	ctx := context.Background()

	t.Run("renders", func(t *testing.T) {
		repo := reportMock.NewMockRepository(gomock.NewController(t))
		svc := report.NewService(repo, nil)

		repo.EXPECT().FindByID(ctx, int64(3)).Return(&report.SystemReport{ID: 3, ReportType: "summary", Content: json.RawMessage(`{}`)}, nil)

		pdf, err := svc.RenderPDF(ctx, 3)

		assert.NoError(t, err)
		assert.Equal(t, "report-3.pdf", pdf.Filename)
		assert.True(t, bytes.HasPrefix(pdf.Body, []byte("%PDF")))
	})

	t.Run("missing report", func(t *testing.T) {
		repo := reportMock.NewMockRepository(gomock.NewController(t))
		svc := report.NewService(repo, nil)

		repo.EXPECT().FindByID(ctx, int64(3)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.RenderPDF(ctx, 3)

		assert.ErrorIs(t, err, reporterrors.ErrReportNotFound)
	})
}
