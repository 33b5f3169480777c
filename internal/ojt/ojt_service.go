package ojt

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hxben0103/ojt-ai-system/internal/domain"
	ojterrors "github.com/hxben0103/ojt-ai-system/internal/ojt/errors"
	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"
	"github.com/hxben0103/ojt-ai-system/internal/shared/clock"
	"github.com/hxben0103/ojt-ai-system/internal/shared/contextutil"
	"github.com/hxben0103/ojt-ai-system/internal/shared/counter"
	"github.com/hxben0103/ojt-ai-system/internal/user"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=ojt_service.go -destination=mock/ojt_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateRecordRequest) (RecordResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]RecordResponse, error)
	GetByID(ctx context.Context, id int64) (RecordResponse, error)
	Update(ctx context.Context, id int64, req UpdateRecordRequest) (RecordResponse, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	users   user.Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, users user.Repository, counter counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("ojt.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ojt.service")
	}
	return &service{db: db, repo: repo, users: users, counter: counter, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateRecordRequest) (RecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create ojt record requested",
		zap.String("request_id", rid),
		zap.Int64("student_id", req.StudentID),
		zap.String("company_name", req.CompanyName),
	)

	if req.StudentID <= 0 || req.CoordinatorID <= 0 || req.SupervisorID <= 0 {
		s.logger.Warn("create ojt record validation failed", zap.String("request_id", rid), zap.String("reason", "participants missing"))
		return RecordResponse{}, ojterrors.ErrParticipantsRequired
	}
	if strings.TrimSpace(req.CompanyName) == "" {
		return RecordResponse{}, ojterrors.ErrCompanyNameRequired
	}
	if strings.TrimSpace(req.StartDate) == "" {
		return RecordResponse{}, ojterrors.ErrStartDateRequired
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return RecordResponse{}, err
	}
	end, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return RecordResponse{}, err
	}
	if end != nil && end.Before(start) {
		return RecordResponse{}, ojterrors.ErrEndBeforeStart
	}
	hours := DefaultRequiredHours
	if req.RequiredHours != nil {
		hours = *req.RequiredHours
	}
	if hours <= 0 {
		return RecordResponse{}, ojterrors.ErrInvalidRequiredHours
	}

	for _, p := range []struct {
		field string
		id    int64
		role  string
	}{
		{"student_id", req.StudentID, domain.RoleStudent},
		{"coordinator_id", req.CoordinatorID, domain.RoleCoordinator},
		{"supervisor_id", req.SupervisorID, domain.RoleSupervisor},
	} {
		if err := s.checkParticipant(ctx, p.field, p.id, p.role); err != nil {
			s.logger.Warn("create ojt record validation failed", zap.String("request_id", rid), zap.String("field", p.field), zap.Error(err))
			return RecordResponse{}, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create ojt record begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	ongoing, err := qtx.HasOngoing(ctx, req.StudentID)
	if err != nil {
		s.logger.Error("create ojt record ongoing check failed", zap.String("request_id", rid), zap.Error(err))
		return RecordResponse{}, err
	}
	if ongoing {
		return RecordResponse{}, ojterrors.ErrOngoingRecordExists
	}

	next, err := s.counter.GetNextValue(ctx, counter.CounterOJTRecord)
	if err != nil {
		s.logger.Error("create ojt record generate reference failed", zap.String("request_id", rid), zap.Error(err))
		return RecordResponse{}, err
	}

	rec := &Record{
		ReferenceNo:    fmt.Sprintf("OJT-%06d", next),
		StudentID:      req.StudentID,
		CoordinatorID:  req.CoordinatorID,
		SupervisorID:   req.SupervisorID,
		CompanyName:    strings.TrimSpace(req.CompanyName),
		CompanyAddress: req.CompanyAddress,
		CompanyContact: req.CompanyContact,
		StartDate:      start,
		EndDate:        end,
		RequiredHours:  hours,
		Status:         StatusOngoing,
	}
	if err := qtx.Create(ctx, rec); err != nil {
		s.logger.Error("create ojt record persist failed", zap.String("request_id", rid), zap.Error(err))
		return RecordResponse{}, mapRepositoryError(err)
	}

	created, err := qtx.FindByID(ctx, rec.ID)
	if err != nil {
		return RecordResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create ojt record commit failed", zap.String("request_id", rid), zap.Error(err))
		return RecordResponse{}, err
	}

	s.logger.Info("create ojt record success",
		zap.String("request_id", rid),
		zap.Int64("record_id", created.ID),
		zap.String("reference_no", created.ReferenceNo),
	)
	return mapToResponse(*created), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]RecordResponse, error) {
	if filter.Status != "" && !IsValidStatus(filter.Status) {
		return nil, ojterrors.ErrInvalidStatus
	}
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all ojt records failed", zap.Error(err))
		return nil, err
	}
	resp := make([]RecordResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, mapToResponse(r))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (RecordResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return RecordResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*rec), nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRecordRequest) (RecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update ojt record requested", zap.String("request_id", rid), zap.Int64("record_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update ojt record begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return RecordResponse{}, mapRepositoryError(err)
	}

	if err := applyUpdate(rec, req); err != nil {
		s.logger.Warn("update ojt record validation failed", zap.String("request_id", rid), zap.Int64("record_id", id), zap.Error(err))
		return RecordResponse{}, err
	}

	if err := qtx.Update(ctx, rec); err != nil {
		s.logger.Error("update ojt record persist failed", zap.String("request_id", rid), zap.Error(err))
		return RecordResponse{}, mapRepositoryError(err)
	}

	updated, err := qtx.FindByID(ctx, id)
	if err != nil {
		return RecordResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update ojt record commit failed", zap.String("request_id", rid), zap.Error(err))
		return RecordResponse{}, err
	}

	s.logger.Info("update ojt record success", zap.String("request_id", rid), zap.Int64("record_id", id), zap.String("status", updated.Status))
	return mapToResponse(*updated), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	s.logger.Debug("delete ojt record requested", zap.Int64("record_id", id))

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete ojt record failed", zap.Int64("record_id", id), zap.Error(err))
		return err
	}
	if !ok {
		return ojterrors.ErrRecordNotFound
	}

	s.logger.Info("delete ojt record success", zap.Int64("record_id", id))
	return nil
}

func (s *service) checkParticipant(ctx context.Context, field string, id int64, role string) error {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ojterrors.ErrParticipantNotFound.WithDetails(map[string]any{"field": field, "user_id": id})
		}
		return err
	}
	if u.Role != role {
		return ojterrors.ErrParticipantRole.WithDetails(map[string]any{"field": field, "expected_role": role, "actual_role": u.Role})
	}
	return nil
}

// applyUpdate copies the present fields onto rec and checks the result.
func applyUpdate(rec *Record, req UpdateRecordRequest) error {
	if req.CompanyName != nil {
		name := strings.TrimSpace(*req.CompanyName)
		if name == "" {
			return ojterrors.ErrCompanyNameRequired
		}
		rec.CompanyName = name
	}
	if req.CompanyAddress != nil {
		rec.CompanyAddress = req.CompanyAddress
	}
	if req.CompanyContact != nil {
		rec.CompanyContact = req.CompanyContact
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			return err
		}
		rec.StartDate = start
	}
	if req.EndDate != nil {
		end, err := parseOptionalDate(req.EndDate)
		if err != nil {
			return err
		}
		rec.EndDate = end
	}
	if rec.EndDate != nil && rec.EndDate.Before(rec.StartDate) {
		return ojterrors.ErrEndBeforeStart
	}
	if req.RequiredHours != nil {
		if *req.RequiredHours <= 0 {
			return ojterrors.ErrInvalidRequiredHours
		}
		rec.RequiredHours = *req.RequiredHours
	}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if !IsValidStatus(status) {
			return ojterrors.ErrInvalidStatus
		}
		if !CanTransition(rec.Status, status) {
			return ojterrors.ErrInvalidTransition.WithDetails(map[string]string{"from": rec.Status, "to": status})
		}
		rec.Status = status
	}
	return nil
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(clock.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ojterrors.ErrInvalidDate.WithDetails(map[string]string{"value": raw})
	}
	return t, nil
}

// parseOptionalDate treats nil and blank as "no date".
func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := parseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ojterrors.ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_ojt_ongoing_student":
			return ojterrors.ErrOngoingRecordExists
		case "uq_ojt_reference_no":
			return ojterrors.ErrReferenceNoExists
		}
	}
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return apperror.Wrap(err, apperror.CodeInvalidInput, "Referenced user does not exist", http.StatusBadRequest)
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") && strings.Contains(msg, "uq_ojt_ongoing_student") {
		return ojterrors.ErrOngoingRecordExists
	}
	return err
}

func mapToResponse(r Record) RecordResponse {
	resp := RecordResponse{
		ID:             r.ID,
		ReferenceNo:    r.ReferenceNo,
		StudentID:      r.StudentID,
		CoordinatorID:  r.CoordinatorID,
		SupervisorID:   r.SupervisorID,
		CompanyName:    r.CompanyName,
		CompanyAddress: r.CompanyAddress,
		CompanyContact: r.CompanyContact,
		StartDate:      r.StartDate.Format(clock.DateLayout),
		RequiredHours:  r.RequiredHours,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      r.UpdatedAt.Format(time.RFC3339),
	}
	if r.EndDate != nil {
		end := r.EndDate.Format(clock.DateLayout)
		resp.EndDate = &end
	}
	if r.Student != nil {
		resp.StudentName = r.Student.FullName
	}
	if r.Coordinator != nil {
		resp.CoordinatorName = r.Coordinator.FullName
	}
	if r.Supervisor != nil {
		resp.SupervisorName = r.Supervisor.FullName
	}
	return resp
}
