package chatbot

import (
	"context"
	"errors"
	"strings"
	"time"

	chatboterrors "github.com/hxben0103/ojt-ai-system/internal/chatbot/errors"
	"github.com/hxben0103/ojt-ai-system/internal/shared/clock"
	"github.com/hxben0103/ojt-ai-system/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=chatbot_service.go -destination=mock/chatbot_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLogRequest) (LogResponse, error)
	GetLogs(ctx context.Context, userID *int64) ([]LogResponse, error)
}

type service struct {
	repo   Repository
	users  user.Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(repo Repository, users user.Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("chatbot.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("chatbot.service")
	}
	return &service{repo: repo, users: users, clock: clk, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLogRequest) (LogResponse, error) {
	s.logger.Debug("create chatbot log requested", zap.Int64("user_id", req.UserID))

	if req.UserID <= 0 {
		return LogResponse{}, chatboterrors.ErrUserIDRequired
	}
	if strings.TrimSpace(req.Query) == "" {
		return LogResponse{}, chatboterrors.ErrQueryRequired
	}
	if strings.TrimSpace(req.Response) == "" {
		return LogResponse{}, chatboterrors.ErrResponseRequired
	}
	model := strings.TrimSpace(req.ModelUsed)
	if model == "" {
		model = DefaultModel
	}

	u, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LogResponse{}, chatboterrors.ErrUserNotFound
		}
		return LogResponse{}, err
	}

	l := Log{
		UserID:    req.UserID,
		Query:     req.Query,
		Response:  req.Response,
		ModelUsed: model,
		Timestamp: s.clock.Now(),
	}
	if err := s.repo.Create(ctx, &l); err != nil {
		s.logger.Error("create chatbot log persist failed", zap.Error(err))
		return LogResponse{}, err
	}
	l.User = &UserRef{ID: u.ID, FullName: u.FullName, Role: u.Role}

	s.logger.Info("create chatbot log success", zap.Int64("chat_id", l.ID))
	return mapToResponse(l), nil
}

func (s *service) GetLogs(ctx context.Context, userID *int64) ([]LogResponse, error) {
	rows, err := s.repo.FindRecent(ctx, userID, RecentLimit)
	if err != nil {
		s.logger.Error("get chatbot logs failed", zap.Error(err))
		return nil, err
	}
	out := make([]LogResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToResponse(r))
	}
	return out, nil
}

func mapToResponse(l Log) LogResponse {
	resp := LogResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		Query:     l.Query,
		Response:  l.Response,
		ModelUsed: l.ModelUsed,
		Timestamp: l.Timestamp.Format(time.RFC3339),
	}
	if l.User != nil {
		resp.FullName = l.User.FullName
		resp.Role = l.User.Role
	}
	return resp
}
