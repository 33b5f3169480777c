package attendance

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	attendanceerrors "github.com/hxben0103/ojt-ai-system/internal/attendance/errors"
	"github.com/hxben0103/ojt-ai-system/internal/events"
	"github.com/hxben0103/ojt-ai-system/internal/messaging/kafka"
	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"
	"github.com/hxben0103/ojt-ai-system/internal/shared/clock"
	"github.com/hxben0103/ojt-ai-system/internal/shared/contextutil"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	RecordTimeIn(ctx context.Context, req TimeInRequest) (AttendanceResponse, error)
	RecordTimeOut(ctx context.Context, req TimeOutRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)
	GetSummary(ctx context.Context, studentID *int64) ([]SummaryResponse, error)
	Verify(ctx context.Context, id int64) (AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	clock  clock.Clock
	logger *zap.Logger
}

// NewService wires the recorder. outbox may be nil, in which case no
// AttendanceRecordedEvent is queued.
func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, clock: clk, logger: l}
}

func (s *service) RecordTimeIn(ctx context.Context, req TimeInRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	segment := ParseSegment(req.Segment)
	s.logger.Debug("record time-in requested",
		zap.String("request_id", rid),
		zap.Any("student_id", req.StudentID),
		zap.String("segment", string(segment)),
	)

	if req.StudentID == nil || *req.StudentID <= 0 {
		s.logger.Warn("record time-in validation failed", zap.String("request_id", rid), zap.String("reason", "student_id missing"))
		return AttendanceResponse{}, attendanceerrors.ErrStudentIDRequired
	}
	field, err := segment.TimeInField()
	if err != nil {
		s.logger.Warn("record time-in validation failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return AttendanceResponse{}, err
	}
	at, err := s.resolveTime(req.TimeIn)
	if err != nil {
		return AttendanceResponse{}, err
	}

	studentID := *req.StudentID
	now := s.clock.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("record time-in begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByStudentAndDate(ctx, studentID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("record time-in lookup failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	var id int64
	if existing == nil {
		row := &Attendance{
			StudentID: studentID,
			Date:      date,
			CreatedAt: now,
			UpdatedAt: now,
		}
		field.Set(row, at)
		if err := qtx.Create(ctx, row); err != nil {
			s.logger.Warn("record time-in persist failed", zap.String("request_id", rid), zap.Error(err))
			return AttendanceResponse{}, mapCreateError(err)
		}
		id = row.ID
	} else {
		if field.IsSet(existing) {
			recordEvent(opTimeIn, segment, resultDuplicate)
			return AttendanceResponse{}, attendanceerrors.ErrTimeInAlreadyRecorded
		}
		ok, err := qtx.UpdateFields(ctx, existing.ID, field, map[string]any{
			field.Column(): at,
			"updated_at":   now,
		})
		if err != nil {
			s.logger.Error("record time-in persist failed", zap.String("request_id", rid), zap.Error(err))
			return AttendanceResponse{}, err
		}
		if !ok {
			recordEvent(opTimeIn, segment, resultDuplicate)
			return AttendanceResponse{}, attendanceerrors.ErrTimeInAlreadyRecorded
		}
		id = existing.ID
	}

	row, err := s.finish(ctx, tx, qtx, id, events.EventAttendanceTimeIn, segment, field)
	if err != nil {
		return AttendanceResponse{}, err
	}

	recordEvent(opTimeIn, segment, resultRecorded)
	s.logger.Info("record time-in success",
		zap.String("request_id", rid),
		zap.Int64("attendance_id", row.ID),
		zap.String("field", field.Column()),
	)
	return mapToResponse(*row), nil
}

func (s *service) RecordTimeOut(ctx context.Context, req TimeOutRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	segment := ParseSegment(req.Segment)
	s.logger.Debug("record time-out requested",
		zap.String("request_id", rid),
		zap.Any("attendance_id", req.AttendanceID),
		zap.Any("student_id", req.StudentID),
		zap.String("segment", string(segment)),
	)

	if req.TimeOut == nil || strings.TrimSpace(*req.TimeOut) == "" {
		s.logger.Warn("record time-out validation failed", zap.String("request_id", rid), zap.String("reason", "time_out missing"))
		return AttendanceResponse{}, attendanceerrors.ErrTimeOutRequired
	}
	at, err := ParseClockTime(*req.TimeOut)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidTime.WithDetails(map[string]string{"time_out": *req.TimeOut})
	}
	field, err := segment.TimeOutField()
	if err != nil {
		s.logger.Warn("record time-out validation failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	var (
		byID      bool
		studentID int64
		date      time.Time
	)
	switch {
	case req.AttendanceID != nil:
		if *req.AttendanceID <= 0 {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidAttendanceID
		}
		byID = true
	case req.StudentID != nil && *req.StudentID > 0 && req.Date != nil && strings.TrimSpace(*req.Date) != "":
		studentID = *req.StudentID
		if date, err = parseDate(*req.Date); err != nil {
			return AttendanceResponse{}, err
		}
	default:
		s.logger.Warn("record time-out validation failed", zap.String("request_id", rid), zap.String("reason", "record key missing"))
		return AttendanceResponse{}, attendanceerrors.ErrRecordKeyRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("record time-out begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var existing *Attendance
	if byID {
		existing, err = qtx.FindByID(ctx, *req.AttendanceID)
	} else {
		existing, err = qtx.FindByStudentAndDate(ctx, studentID, date)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		s.logger.Error("record time-out lookup failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	if req.OwnerID != nil && existing.StudentID != *req.OwnerID {
		return AttendanceResponse{}, apperror.ErrForbidden
	}
	if field.IsSet(existing) {
		recordEvent(opTimeOut, segment, resultDuplicate)
		return AttendanceResponse{}, attendanceerrors.ErrTimeOutAlreadyRecorded
	}

	changes := map[string]any{
		field.Column(): at,
		"updated_at":   s.clock.Now(),
	}
	if segment.IsLegacy() && FieldTimeIn.IsSet(existing) {
		hours, err := hoursBetween(*existing.TimeIn, at)
		if err != nil {
			s.logger.Error("record time-out stored time_in unreadable", zap.Int64("attendance_id", existing.ID), zap.Error(err))
			return AttendanceResponse{}, err
		}
		changes["total_hours"] = hours
	}

	ok, err := qtx.UpdateFields(ctx, existing.ID, field, changes)
	if err != nil {
		s.logger.Error("record time-out persist failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if !ok {
		recordEvent(opTimeOut, segment, resultDuplicate)
		return AttendanceResponse{}, attendanceerrors.ErrTimeOutAlreadyRecorded
	}

	row, err := s.finish(ctx, tx, qtx, existing.ID, events.EventAttendanceTimeOut, segment, field)
	if err != nil {
		return AttendanceResponse{}, err
	}

	recordEvent(opTimeOut, segment, resultRecorded)
	s.logger.Info("record time-out success",
		zap.String("request_id", rid),
		zap.Int64("attendance_id", row.ID),
		zap.String("field", field.Column()),
	)
	return mapToResponse(*row), nil
}

// finish queues the outbox event, reads the row back and commits.
func (s *service) finish(
	ctx context.Context,
	tx *sql.Tx,
	qtx Repository,
	id int64,
	eventType string,
	segment Segment,
	field Field,
) (*Attendance, error) {
	rid := contextutil.GetRequestID(ctx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("attendance read back failed", zap.Int64("attendance_id", id), zap.Error(err))
		return nil, err
	}

	if s.outbox != nil {
		event, err := kafka.NewEvent(rid, "attendance", strconv.FormatInt(row.StudentID, 10), eventType, events.AttendanceRecordedTopic,
			events.AttendanceRecordedEvent{
				EventType:    eventType,
				RequestID:    rid,
				AttendanceID: row.ID,
				StudentID:    row.StudentID,
				Date:         row.Date.Format(clock.DateLayout),
				Segment:      string(segment),
				Field:        field.Column(),
				OccurredAt:   s.clock.Now().UTC(),
			})
		if err != nil {
			return nil, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("attendance outbox persist failed", zap.Int64("attendance_id", id), zap.Error(err))
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("attendance commit failed", zap.String("request_id", rid), zap.Error(err))
		return nil, err
	}
	return row, nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error) {
	s.logger.Debug("get all attendance requested", zap.Any("student_id", filter.StudentID))

	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all attendance failed", zap.Error(err))
		return nil, err
	}

	resp := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

// GetSummary aggregates worked hours per student, in the order students
// first appear in the date-descending listing.
func (s *service) GetSummary(ctx context.Context, studentID *int64) ([]SummaryResponse, error) {
	rows, err := s.repo.FindAll(ctx, ListFilter{StudentID: studentID})
	if err != nil {
		s.logger.Error("attendance summary failed", zap.Error(err))
		return nil, err
	}

	index := make(map[int64]int)
	summaries := make([]SummaryResponse, 0)
	for _, r := range rows {
		i, ok := index[r.StudentID]
		if !ok {
			i = len(summaries)
			index[r.StudentID] = i
			sum := SummaryResponse{StudentID: r.StudentID}
			if r.Student != nil {
				sum.FullName = r.Student.FullName
			}
			summaries = append(summaries, sum)
		}
		summaries[i].TotalDays++
		summaries[i].TotalHours += WorkedHours(r)
	}

	for i := range summaries {
		summaries[i].TotalHours = round2(summaries[i].TotalHours)
		if summaries[i].TotalDays > 0 {
			summaries[i].AvgHoursPerDay = round2(summaries[i].TotalHours / float64(summaries[i].TotalDays))
		}
	}
	return summaries, nil
}

func (s *service) Verify(ctx context.Context, id int64) (AttendanceResponse, error) {
	s.logger.Debug("verify attendance requested", zap.Int64("attendance_id", id))

	ok, err := s.repo.Verify(ctx, id, s.clock.Now())
	if err != nil {
		s.logger.Error("verify attendance persist failed", zap.Int64("attendance_id", id), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if !ok {
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}

	s.logger.Info("verify attendance success", zap.Int64("attendance_id", id))
	return mapToResponse(*row), nil
}

func (s *service) resolveDate(raw *string) (time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return clock.Today(s.clock), nil
	}
	return parseDate(*raw)
}

func (s *service) resolveTime(raw *string) (ClockTime, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return ClockTime(clock.TimeOfDay(s.clock)), nil
	}
	t, err := ParseClockTime(*raw)
	if err != nil {
		return "", attendanceerrors.ErrInvalidTime.WithDetails(map[string]string{"time": *raw})
	}
	return t, nil
}

func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse(clock.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDate.WithDetails(map[string]string{"date": raw})
	}
	return d, nil
}

// hoursBetween is out-in in hours rounded to two decimals. Negative results
// are kept as-is.
func hoursBetween(in, out ClockTime) (float64, error) {
	inSec, err := in.Seconds()
	if err != nil {
		return 0, err
	}
	outSec, err := out.Seconds()
	if err != nil {
		return 0, err
	}
	return round2(float64(outSec-inSec) / 3600), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WorkedHours is total_hours when the legacy path computed it, otherwise
// the sum of the completed segment pairs.
func WorkedHours(a Attendance) float64 {
	if a.TotalHours != nil {
		return *a.TotalHours
	}
	var total float64
	for _, pair := range [][2]Field{
		{FieldMorningIn, FieldMorningOut},
		{FieldAfternoonIn, FieldAfternoonOut},
		{FieldOvertimeIn, FieldOvertimeOut},
	} {
		if !pair[0].IsSet(&a) || !pair[1].IsSet(&a) {
			continue
		}
		h, err := hoursBetween(*pair[0].Get(&a), *pair[1].Get(&a))
		if err != nil {
			continue
		}
		total += h
	}
	return round2(total)
}

// mapCreateError turns integrity-constraint violations (SQLSTATE class 23)
// into a validation error carrying the store's field-level reasons.
func mapCreateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		field := pgErr.ColumnName
		if pgErr.ConstraintName == "uq_attendance_student_date" {
			field = "student_id,date"
		}
		if field == "" {
			field = pgErr.ConstraintName
		}
		return attendanceerrors.ErrAttendanceRejected.WithDetails([]FieldError{{
			Field:      field,
			Constraint: pgErr.ConstraintName,
			Message:    pgErr.Message,
		}})
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attendance_student_date") {
		return attendanceerrors.ErrAttendanceRejected.WithDetails([]FieldError{{
			Field:      "student_id,date",
			Constraint: "uq_attendance_student_date",
			Message:    "attendance already exists for this student and date",
		}})
	}
	return err
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID,
		StudentID:    a.StudentID,
		Date:         a.Date.Format(clock.DateLayout),
		TimeIn:       a.TimeIn,
		TimeOut:      a.TimeOut,
		MorningIn:    a.MorningIn,
		MorningOut:   a.MorningOut,
		AfternoonIn:  a.AfternoonIn,
		AfternoonOut: a.AfternoonOut,
		OvertimeIn:   a.OvertimeIn,
		OvertimeOut:  a.OvertimeOut,
		TotalHours:   a.TotalHours,
		Verified:     a.Verified,
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
	if a.Student != nil {
		resp.FullName = a.Student.FullName
	}
	return resp
}
