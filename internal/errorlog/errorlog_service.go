package errorlog

import (
	"context"
	"strconv"
	"time"

	"github.com/hxben0103/ojt-ai-system/internal/middleware"
	"github.com/hxben0103/ojt-ai-system/internal/shared/clock"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	maxMessageLen = 2000
	recentLimit   = 200
)

var recordedErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ojt_api_errors_total",
	Help: "Server errors persisted to api_error_logs, by method and status.",
}, []string{"method", "status"})

type Service interface {
	middleware.ErrorRecorder
	GetRecent(ctx context.Context) ([]EntryResponse, error)
}

type service struct {
	repo   Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(repo Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("errorlog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("errorlog.service")
	}
	return &service{repo: repo, clock: clk, logger: l}
}

func (s *service) Record(ctx context.Context, e middleware.APIError) error {
	entry := Entry{
		Route:        e.Endpoint,
		Method:       e.Method,
		StatusCode:   e.StatusCode,
		ErrorMessage: truncate(e.ErrorMessage, maxMessageLen),
		RequestID:    e.RequestID,
		CreatedAt:    s.clock.Now(),
	}
	if id, err := strconv.ParseInt(e.UserID, 10, 64); err == nil && id > 0 {
		entry.UserID = &id
	}

	recordedErrors.WithLabelValues(e.Method, strconv.Itoa(e.StatusCode)).Inc()
	if err := s.repo.Create(ctx, &entry); err != nil {
		s.logger.Error("api error log persist failed", zap.String("route", e.Endpoint), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) GetRecent(ctx context.Context) ([]EntryResponse, error) {
	rows, err := s.repo.FindRecent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	out := make([]EntryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, EntryResponse{
			ID:           r.ID,
			Route:        r.Route,
			Method:       r.Method,
			StatusCode:   r.StatusCode,
			ErrorMessage: r.ErrorMessage,
			UserID:       r.UserID,
			RequestID:    r.RequestID,
			CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
