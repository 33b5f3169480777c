package evaluation_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hxben0103/ojt-ai-system/internal/domain"
	"github.com/hxben0103/ojt-ai-system/internal/evaluation"
	evaluationerrors "github.com/hxben0103/ojt-ai-system/internal/evaluation/errors"
	evaluationMock "github.com/hxben0103/ojt-ai-system/internal/evaluation/mock"
	"github.com/hxben0103/ojt-ai-system/internal/events"
	"github.com/hxben0103/ojt-ai-system/internal/messaging/kafka"
	kafkaMock "github.com/hxben0103/ojt-ai-system/internal/messaging/kafka/mock"
	"github.com/hxben0103/ojt-ai-system/internal/shared/clock"
	"github.com/hxben0103/ojt-ai-system/internal/user"
	userMock "github.com/hxben0103/ojt-ai-system/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service evaluation.Service
	repo    *evaluationMock.MockRepository
	users   *userMock.MockRepository
	outbox  *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := evaluationMock.NewMockRepository(ctrl)
	users := userMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: evaluation.NewService(db, repo, users, outbox, clock.Fixed{At: fixedNow}),
		repo:    repo,
		users:   users,
		outbox:  outbox,
	}
}

func score(v float64) *float64 { return &v }

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and queues the submitted event", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.users.EXPECT().FindByID(ctx, int64(10)).Return(&user.User{ID: 10, FullName: "Juan", Role: domain.RoleStudent}, nil)
		deps.users.EXPECT().FindByID(ctx, int64(30)).Return(&user.User{ID: 30, FullName: "Ms. Reyes", Role: domain.RoleSupervisor}, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *evaluation.Evaluation) error {
			assert.JSONEq(t, `{"punctuality":5}`, string(e.Criteria))
			assert.Equal(t, 87.46, e.TotalScore)
			e.ID = 4
			return nil
		})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
			assert.Equal(t, events.EventEvaluationSubmitted, ev.EventType)
			assert.Equal(t, events.EvaluationSubmittedTopic, ev.Topic)
			assert.Equal(t, "10", ev.AggregateID)
			var payload events.EvaluationSubmittedEvent
			assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
			assert.Equal(t, int64(4), payload.EvaluationID)
			return nil
		})

		resp, err := deps.service.Create(ctx, evaluation.CreateEvaluationRequest{
			StudentID:    10,
			SupervisorID: 30,
			Criteria:     json.RawMessage(` {"punctuality":5} `),
			TotalScore:   score(87.456),
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(4), resp.ID)
		assert.Equal(t, "Juan", resp.StudentName)
		assert.Equal(t, domain.RoleSupervisor, resp.EvaluatorRole)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("missing criteria defaults to an empty object", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.users.EXPECT().FindByID(ctx, int64(10)).Return(&user.User{ID: 10, Role: domain.RoleStudent}, nil)
		deps.users.EXPECT().FindByID(ctx, int64(20)).Return(&user.User{ID: 20, Role: domain.RoleCoordinator}, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *evaluation.Evaluation) error {
			assert.Equal(t, "{}", string(e.Criteria))
			return nil
		})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		_, err := deps.service.Create(ctx, evaluation.CreateEvaluationRequest{StudentID: 10, SupervisorID: 20, TotalScore: score(90)})

		assert.NoError(t, err)
	})

	t.Run("evaluator must be a supervisor or coordinator", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.users.EXPECT().FindByID(ctx, int64(10)).Return(&user.User{ID: 10, Role: domain.RoleStudent}, nil)
		deps.users.EXPECT().FindByID(ctx, int64(11)).Return(&user.User{ID: 11, Role: domain.RoleStudent}, nil)

		_, err := deps.service.Create(ctx, evaluation.CreateEvaluationRequest{StudentID: 10, SupervisorID: 11, TotalScore: score(90)})

		assert.ErrorIs(t, err, evaluationerrors.ErrEvaluatorNotAllowed)
	})

	t.Run("unknown student", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.users.EXPECT().FindByID(ctx, int64(10)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Create(ctx, evaluation.CreateEvaluationRequest{StudentID: 10, SupervisorID: 30, TotalScore: score(90)})

		assert.ErrorIs(t, err, evaluationerrors.ErrStudentNotFound)
	})

	validation := []struct {
		name    string
		req     evaluation.CreateEvaluationRequest
		wantErr error
	}{
		{"missing student", evaluation.CreateEvaluationRequest{SupervisorID: 30, TotalScore: score(80)}, evaluationerrors.ErrStudentIDRequired},
		{"criteria array", evaluation.CreateEvaluationRequest{StudentID: 10, Criteria: json.RawMessage(`[1,2]`), TotalScore: score(80)}, evaluationerrors.ErrInvalidCriteria},
		{"score above range", evaluation.CreateEvaluationRequest{StudentID: 10, TotalScore: score(100.5)}, evaluationerrors.ErrInvalidScore},
		{"negative score", evaluation.CreateEvaluationRequest{StudentID: 10, TotalScore: score(-1)}, evaluationerrors.ErrInvalidScore},
		{"missing score", evaluation.CreateEvaluationRequest{StudentID: 10}, evaluationerrors.ErrInvalidScore},
	}
	for _, tt := range validation {
		t.Run(tt.name, func(t *testing.T) {
			deps := setupServiceTest(t)

			_, err := deps.service.Create(ctx, tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("outbox failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.users.EXPECT().FindByID(ctx, int64(10)).Return(&user.User{ID: 10, Role: domain.RoleStudent}, nil)
		deps.users.EXPECT().FindByID(ctx, int64(30)).Return(&user.User{ID: 30, Role: domain.RoleSupervisor}, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("outbox down"))

		_, err := deps.service.Create(ctx, evaluation.CreateEvaluationRequest{StudentID: 10, SupervisorID: 30, TotalScore: score(70)})

		assert.EqualError(t, err, "outbox down")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().Update(ctx, int64(4), map[string]any{"total_score": 75.5}).Return(true, nil)
		deps.repo.EXPECT().FindByID(ctx, int64(4)).Return(&evaluation.Evaluation{ID: 4, TotalScore: 75.5}, nil)

		resp, err := deps.service.Update(ctx, 4, evaluation.UpdateEvaluationRequest{TotalScore: score(75.5)})

		assert.NoError(t, err)
		assert.Equal(t, 75.5, resp.TotalScore)
	})

	t.Run("missing evaluation", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().Update(ctx, int64(9), gomock.Any()).Return(false, nil)

		_, err := deps.service.Update(ctx, 9, evaluation.UpdateEvaluationRequest{Feedback: ptr("ok")})

		assert.ErrorIs(t, err, evaluationerrors.ErrEvaluationNotFound)
	})

	t.Run("get missing evaluation", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(ctx, int64(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, 9)

		assert.ErrorIs(t, err, evaluationerrors.ErrEvaluationNotFound)
	})
}

func ptr[T any](v T) *T { return &v }
