package errorlog_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hxben0103/ojt-ai-system/internal/errorlog"
	errorlogMock "github.com/hxben0103/ojt-ai-system/internal/errorlog/mock"
	"github.com/hxben0103/ojt-ai-system/internal/middleware"
	"github.com/hxben0103/ojt-ai-system/internal/shared/clock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func TestService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the failed request", func(t *testing.T) {
		repo := errorlogMock.NewMockRepository(gomock.NewController(t))
		svc := errorlog.NewService(repo, clock.Fixed{At: fixedNow})

		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *errorlog.Entry) error {
			assert.Equal(t, "/api/v1/attendance/time-in", e.Route)
			assert.Equal(t, "POST", e.Method)
			assert.Equal(t, 500, e.StatusCode)
			assert.Equal(t, int64(12), *e.UserID)
			assert.Equal(t, fixedNow, e.CreatedAt)
			assert.Len(t, e.ErrorMessage, 2000)
			return nil
		})

		err := svc.Record(ctx, middleware.APIError{
			Endpoint:     "/api/v1/attendance/time-in",
			Method:       "POST",
			StatusCode:   500,
			ErrorMessage: strings.Repeat("x", 2500),
			UserID:       "12",
			RequestID:    "req-1",
		})

		assert.NoError(t, err)
	})

	t.Run("anonymous request and persist failure", func(t *testing.T) {
		repo := errorlogMock.NewMockRepository(gomock.NewController(t))
		svc := errorlog.NewService(repo, clock.Fixed{At: fixedNow})

		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *errorlog.Entry) error {
			assert.Nil(t, e.UserID)
			return errors.New("db down")
		})

		err := svc.Record(ctx, middleware.APIError{Endpoint: "/api/health", Method: "GET", StatusCode: 503})

		assert.Error(t, err)
	})
}

func TestService_GetRecent(t *testing.T) {
	repo := errorlogMock.NewMockRepository(gomock.NewController(t))
	svc := errorlog.NewService(repo, clock.Fixed{At: fixedNow})

	repo.EXPECT().FindRecent(gomock.Any(), 200).Return([]errorlog.Entry{
		{ID: 1, Route: "/x", Method: "GET", StatusCode: 500, CreatedAt: fixedNow},
	}, nil)

	got, err := svc.GetRecent(context.Background())

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "2026-03-02T10:00:00Z", got[0].CreatedAt)
}
