package chatbot_test

import (
	"context"
	"testing"
	"time"

	"github.com/hxben0103/ojt-ai-system/internal/chatbot"
	chatboterrors "github.com/hxben0103/ojt-ai-system/internal/chatbot/errors"
	chatbotMock "github.com/hxben0103/ojt-ai-system/internal/chatbot/mock"
	"github.com/hxben0103/ojt-ai-system/internal/domain"
	"github.com/hxben0103/ojt-ai-system/internal/shared/clock"
	"github.com/hxben0103/ojt-ai-system/internal/user"
	userMock "github.com/hxben0103/ojt-ai-system/internal/user/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 3, 2, 14, 5, 0, 0, time.UTC)

func setup(t *testing.T) (chatbot.Service, *chatbotMock.MockRepository, *userMock.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := chatbotMock.NewMockRepository(ctrl)
	users := userMock.NewMockRepository(ctrl)
	return chatbot.NewService(repo, users, clock.Fixed{At: fixedNow}), repo, users
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults the model", func(t *testing.T) {
		svc, repo, users := setup(t)
		users.EXPECT().FindByID(ctx, int64(7)).Return(&user.User{ID: 7, FullName: "Ana", Role: domain.RoleStudent}, nil)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, l *chatbot.Log) error {
			assert.Equal(t, chatbot.DefaultModel, l.ModelUsed)
			assert.Equal(t, fixedNow, l.Timestamp)
			l.ID = 3
			return nil
		})

		got, err := svc.Create(ctx, chatbot.CreateLogRequest{UserID: 7, Query: "How many hours left?", Response: "120 hours."})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), got.ID)
		assert.Equal(t, "Ana", got.FullName)
		assert.Equal(t, "2026-03-02T14:05:00Z", got.Timestamp)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _, users := setup(t)
		users.EXPECT().FindByID(ctx, int64(7)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Create(ctx, chatbot.CreateLogRequest{UserID: 7, Query: "q", Response: "r", ModelUsed: "gpt"})

		assert.ErrorIs(t, err, chatboterrors.ErrUserNotFound)
	})

	t.Run("blank query", func(t *testing.T) {
		svc, _, _ := setup(t)

		_, err := svc.Create(ctx, chatbot.CreateLogRequest{UserID: 7, Query: "  ", Response: "r"})

		assert.ErrorIs(t, err, chatboterrors.ErrQueryRequired)
	})
}

func TestService_GetLogs(t *testing.T) {
	svc, repo, _ := setup(t)
	uid := int64(7)
	repo.EXPECT().FindRecent(gomock.Any(), &uid, chatbot.RecentLimit).Return([]chatbot.Log{
		{ID: 2, UserID: 7, Query: "q", Response: "r", ModelUsed: "rule-based", Timestamp: fixedNow},
	}, nil)

	got, err := svc.GetLogs(context.Background(), &uid)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "rule-based", got[0].ModelUsed)
}
