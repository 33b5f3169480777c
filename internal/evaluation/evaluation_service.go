package evaluation

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/hxben0103/ojt-ai-system/internal/domain"
	evaluationerrors "github.com/hxben0103/ojt-ai-system/internal/evaluation/errors"
	"github.com/hxben0103/ojt-ai-system/internal/events"
	"github.com/hxben0103/ojt-ai-system/internal/messaging/kafka"
	"github.com/hxben0103/ojt-ai-system/internal/shared/clock"
	"github.com/hxben0103/ojt-ai-system/internal/shared/contextutil"
	"github.com/hxben0103/ojt-ai-system/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=evaluation_service.go -destination=mock/evaluation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEvaluationRequest) (EvaluationResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]EvaluationResponse, error)
	GetByID(ctx context.Context, id int64) (EvaluationResponse, error)
	Update(ctx context.Context, id int64, req UpdateEvaluationRequest) (EvaluationResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	users  user.Repository
	outbox kafka.OutboxRepository
	clock  clock.Clock
	logger *zap.Logger
}

// NewService wires evaluations. outbox may be nil, in which case no
// EvaluationSubmittedEvent is queued.
func NewService(db *sql.DB, repo Repository, users user.Repository, outbox kafka.OutboxRepository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("evaluation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("evaluation.service")
	}
	return &service{db: db, repo: repo, users: users, outbox: outbox, clock: clk, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEvaluationRequest) (EvaluationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create evaluation requested",
		zap.String("request_id", rid),
		zap.Int64("student_id", req.StudentID),
		zap.Int64("supervisor_id", req.SupervisorID),
	)

	if req.StudentID <= 0 {
		return EvaluationResponse{}, evaluationerrors.ErrStudentIDRequired
	}
	criteria, err := normalizeCriteria(req.Criteria)
	if err != nil {
		s.logger.Warn("create evaluation validation failed", zap.String("request_id", rid), zap.Error(err))
		return EvaluationResponse{}, err
	}
	if req.TotalScore == nil || !validScore(*req.TotalScore) {
		return EvaluationResponse{}, evaluationerrors.ErrInvalidScore
	}

	student, err := s.users.FindByID(ctx, req.StudentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return EvaluationResponse{}, err
	}
	if student == nil || student.Role != domain.RoleStudent {
		return EvaluationResponse{}, evaluationerrors.ErrStudentNotFound
	}
	evaluator, err := s.users.FindByID(ctx, req.SupervisorID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return EvaluationResponse{}, err
	}
	if evaluator == nil || (evaluator.Role != domain.RoleSupervisor && evaluator.Role != domain.RoleCoordinator) {
		return EvaluationResponse{}, evaluationerrors.ErrEvaluatorNotAllowed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create evaluation begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EvaluationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e := &Evaluation{
		StudentID:     req.StudentID,
		SupervisorID:  req.SupervisorID,
		Criteria:      criteria,
		TotalScore:    round2(*req.TotalScore),
		Feedback:      req.Feedback,
		DateEvaluated: s.clock.Now(),
	}
	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create evaluation persist failed", zap.String("request_id", rid), zap.Error(err))
		return EvaluationResponse{}, err
	}

	if s.outbox != nil {
		event, err := kafka.NewEvent(rid, "evaluation", strconv.FormatInt(e.StudentID, 10),
			events.EventEvaluationSubmitted, events.EvaluationSubmittedTopic,
			events.EvaluationSubmittedEvent{
				EventType:    events.EventEvaluationSubmitted,
				RequestID:    rid,
				EvaluationID: e.ID,
				StudentID:    e.StudentID,
				SupervisorID: e.SupervisorID,
				TotalScore:   e.TotalScore,
				OccurredAt:   s.clock.Now().UTC(),
			})
		if err != nil {
			return EvaluationResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("create evaluation outbox persist failed", zap.Int64("eval_id", e.ID), zap.Error(err))
			return EvaluationResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create evaluation commit failed", zap.String("request_id", rid), zap.Error(err))
		return EvaluationResponse{}, err
	}

	e.Student = &UserRef{ID: student.ID, FullName: student.FullName, Role: student.Role}
	e.Supervisor = &UserRef{ID: evaluator.ID, FullName: evaluator.FullName, Role: evaluator.Role}

	s.logger.Info("create evaluation success", zap.String("request_id", rid), zap.Int64("eval_id", e.ID))
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]EvaluationResponse, error) {
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all evaluations failed", zap.Error(err))
		return nil, err
	}
	resp := make([]EvaluationResponse, 0, len(rows))
	for _, e := range rows {
		resp = append(resp, mapToResponse(e))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (EvaluationResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EvaluationResponse{}, evaluationerrors.ErrEvaluationNotFound
		}
		return EvaluationResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateEvaluationRequest) (EvaluationResponse, error) {
	s.logger.Debug("update evaluation requested", zap.Int64("eval_id", id))

	changes := map[string]any{}
	if len(req.Criteria) > 0 {
		criteria, err := normalizeCriteria(req.Criteria)
		if err != nil {
			return EvaluationResponse{}, err
		}
		changes["criteria"] = criteria
	}
	if req.TotalScore != nil {
		if !validScore(*req.TotalScore) {
			return EvaluationResponse{}, evaluationerrors.ErrInvalidScore
		}
		changes["total_score"] = round2(*req.TotalScore)
	}
	if req.Feedback != nil {
		changes["feedback"] = *req.Feedback
	}

	if len(changes) > 0 {
		ok, err := s.repo.Update(ctx, id, changes)
		if err != nil {
			s.logger.Error("update evaluation persist failed", zap.Int64("eval_id", id), zap.Error(err))
			return EvaluationResponse{}, err
		}
		if !ok {
			return EvaluationResponse{}, evaluationerrors.ErrEvaluationNotFound
		}
	}

	resp, err := s.GetByID(ctx, id)
	if err != nil {
		return EvaluationResponse{}, err
	}
	s.logger.Info("update evaluation success", zap.Int64("eval_id", id))
	return resp, nil
}

// normalizeCriteria accepts a JSON object and defaults a missing value to {}.
func normalizeCriteria(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage("{}"), nil
	}
	var obj map[string]any
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, evaluationerrors.ErrInvalidCriteria
	}
	return json.RawMessage(trimmed), nil
}

func validScore(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func mapToResponse(e Evaluation) EvaluationResponse {
	resp := EvaluationResponse{
		ID:            e.ID,
		StudentID:     e.StudentID,
		SupervisorID:  e.SupervisorID,
		Criteria:      e.Criteria,
		TotalScore:    e.TotalScore,
		Feedback:      e.Feedback,
		DateEvaluated: e.DateEvaluated.Format(time.RFC3339),
	}
	if e.Student != nil {
		resp.StudentName = e.Student.FullName
	}
	if e.Supervisor != nil {
		resp.SupervisorName = e.Supervisor.FullName
		resp.EvaluatorRole = e.Supervisor.Role
	}
	return resp
}
