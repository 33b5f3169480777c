package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/hxben0103/ojt-ai-system/internal/aiclient"
	"github.com/hxben0103/ojt-ai-system/internal/attendance"
	"github.com/hxben0103/ojt-ai-system/internal/domain"
	"github.com/hxben0103/ojt-ai-system/internal/evaluation"
	"github.com/hxben0103/ojt-ai-system/internal/ojt"
	predictionerrors "github.com/hxben0103/ojt-ai-system/internal/prediction/errors"
	"github.com/hxben0103/ojt-ai-system/internal/shared/clock"
	"github.com/hxben0103/ojt-ai-system/internal/shared/contextutil"
	"github.com/hxben0103/ojt-ai-system/internal/user"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	AtRiskKeyPrefix = "prediction:at-risk:"
	atRiskCacheTTL  = 10 * time.Minute
)

// AtRiskKey is the cache key for an at-risk listing; an empty level means
// High and Medium together.
func AtRiskKey(level string) string {
	if level == "" {
		return AtRiskKeyPrefix + "all"
	}
	return AtRiskKeyPrefix + strings.ToLower(level)
}

func atRiskKeys() []string {
	return []string{AtRiskKey(""), AtRiskKey(RiskHigh), AtRiskKey(RiskMedium)}
}

//go:generate mockgen -source=prediction_service.go -destination=mock/prediction_service_mock.go -package=mock
type Service interface {
	GetInsights(ctx context.Context, filter ListFilter) ([]InsightResponse, error)
	CreateInsight(ctx context.Context, req CreateInsightRequest) (InsightResponse, error)
	GetPerformance(ctx context.Context, studentID *int64) ([]InsightResponse, error)
	GeneratePerformance(ctx context.Context, studentID int64) (PerformancePrediction, error)
	AssessRisk(ctx context.Context, studentID int64) (RiskAssessment, error)
	GetAtRisk(ctx context.Context, level string) ([]RiskAssessment, error)
	RunBatch(ctx context.Context) (BatchResult, error)
	DailyPrediction(ctx context.Context, studentID int64) (DailyPrediction, error)
}

// Deps are the repositories the scoring rules read from.
type Deps struct {
	Users       user.Repository
	OJT         ojt.Repository
	Evaluations evaluation.Repository
	Attendance  attendance.Repository
}

type service struct {
	repo   Repository
	deps   Deps
	ai     aiclient.Predictor
	rdb    *redis.Client
	sf     *singleflight.Group
	clock  clock.Clock
	logger *zap.Logger
}

// NewService wires the prediction service. rdb may be nil, which disables
// the at-risk cache.
func NewService(repo Repository, deps Deps, ai aiclient.Predictor, rdb *redis.Client, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("prediction.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("prediction.service")
	}
	if ai == nil {
		ai = aiclient.Disabled()
	}
	return &service{
		repo:   repo,
		deps:   deps,
		ai:     ai,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		clock:  clk,
		logger: l,
	}
}

func (s *service) GetInsights(ctx context.Context, filter ListFilter) ([]InsightResponse, error) {
	s.logger.Debug("get insights requested", zap.Any("student_id", filter.StudentID), zap.String("insight_type", filter.InsightType))
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get insights failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) CreateInsight(ctx context.Context, req CreateInsightRequest) (InsightResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create insight requested", zap.String("request_id", rid), zap.Int64("student_id", req.StudentID))

	req.ModelName = strings.TrimSpace(req.ModelName)
	req.InsightType = strings.TrimSpace(req.InsightType)
	result := bytes.TrimSpace(req.Result)
	if req.StudentID <= 0 || req.ModelName == "" || req.InsightType == "" ||
		len(result) == 0 || bytes.Equal(result, []byte("null")) || !json.Valid(result) {
		s.logger.Warn("create insight validation failed", zap.String("request_id", rid))
		return InsightResponse{}, predictionerrors.ErrInvalidInsight
	}
	if req.Confidence != nil && (*req.Confidence < 0 || *req.Confidence > 1) {
		return InsightResponse{}, predictionerrors.ErrInvalidConfidence
	}

	student, err := s.findStudent(ctx, req.StudentID)
	if err != nil {
		return InsightResponse{}, err
	}

	in := Insight{
		StudentID:   req.StudentID,
		ModelName:   req.ModelName,
		InsightType: req.InsightType,
		Result:      json.RawMessage(result),
		Confidence:  req.Confidence,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.Create(ctx, &in); err != nil {
		s.logger.Error("create insight persist failed", zap.String("request_id", rid), zap.Error(err))
		return InsightResponse{}, err
	}
	in.Student = &UserRef{ID: student.ID, FullName: student.FullName}

	s.logger.Info("create insight success", zap.String("request_id", rid), zap.Int64("insight_id", in.ID))
	return mapToResponse(in), nil
}

func (s *service) GetPerformance(ctx context.Context, studentID *int64) ([]InsightResponse, error) {
	return s.GetInsights(ctx, ListFilter{StudentID: studentID, InsightType: InsightPerformance})
}

func (s *service) GeneratePerformance(ctx context.Context, studentID int64) (PerformancePrediction, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("generate performance requested", zap.String("request_id", rid), zap.Int64("student_id", studentID))

	if studentID <= 0 {
		return PerformancePrediction{}, predictionerrors.ErrStudentIDRequired
	}
	p, err := s.progressOf(ctx, studentID)
	if err != nil {
		return PerformancePrediction{}, err
	}
	pred := predictPerformance(p)

	result, err := json.Marshal(pred)
	if err != nil {
		return PerformancePrediction{}, err
	}
	confidence := pred.Confidence
	in := Insight{
		StudentID:   studentID,
		ModelName:   ModelPerformance,
		InsightType: InsightPerformance,
		Result:      result,
		Confidence:  &confidence,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.Create(ctx, &in); err != nil {
		s.logger.Error("generate performance persist failed", zap.String("request_id", rid), zap.Error(err))
		return PerformancePrediction{}, err
	}

	s.logger.Info("generate performance success",
		zap.String("request_id", rid),
		zap.Int64("student_id", studentID),
		zap.Float64("predicted_score", pred.PredictedScore),
	)
	return pred, nil
}

func (s *service) AssessRisk(ctx context.Context, studentID int64) (RiskAssessment, error) {
	s.logger.Debug("assess risk requested", zap.Int64("student_id", studentID))
	if studentID <= 0 {
		return RiskAssessment{}, predictionerrors.ErrStudentIDRequired
	}
	p, err := s.progressOf(ctx, studentID)
	if err != nil {
		return RiskAssessment{}, err
	}
	return assessRisk(p, clock.Today(s.clock)), nil
}

func (s *service) GetAtRisk(ctx context.Context, level string) ([]RiskAssessment, error) {
	level, err := normalizeLevel(level)
	if err != nil {
		return nil, err
	}
	cacheKey := AtRiskKey(level)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []RiskAssessment
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		all, err := s.assessOngoing(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]RiskAssessment, 0, len(all))
		for _, a := range all {
			if matchesLevel(a.RiskLevel, level) {
				resp = append(resp, a)
			}
		}

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, data, atRiskCacheTTL).Err(); err != nil {
					s.logger.Warn("at-risk cache store failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get at-risk students failed", zap.Error(err))
		return nil, err
	}
	return v.([]RiskAssessment), nil
}

func (s *service) RunBatch(ctx context.Context) (BatchResult, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("risk batch requested", zap.String("request_id", rid))

	records, err := s.deps.OJT.FindAll(ctx, ojt.ListFilter{Status: ojt.StatusOngoing})
	if err != nil {
		s.logger.Error("risk batch load records failed", zap.String("request_id", rid), zap.Error(err))
		return BatchResult{}, err
	}

	now := s.clock.Now()
	today := clock.Today(s.clock)
	res := BatchResult{Failed: []int64{}, Results: []RiskAssessment{}}
	insights := make([]Insight, 0, len(records))
	for _, rec := range records {
		p, err := s.progressFor(ctx, rec, today)
		if err != nil {
			s.logger.Warn("risk batch student skipped", zap.Int64("student_id", rec.StudentID), zap.Error(err))
			res.Failed = append(res.Failed, rec.StudentID)
			continue
		}
		a := assessRisk(p, today)
		result, err := json.Marshal(a)
		if err != nil {
			res.Failed = append(res.Failed, rec.StudentID)
			continue
		}
		insights = append(insights, Insight{
			StudentID:   rec.StudentID,
			ModelName:   ModelRisk,
			InsightType: InsightRisk,
			Result:      result,
			CreatedAt:   now,
		})
		res.Results = append(res.Results, a)
		switch a.RiskLevel {
		case RiskHigh:
			res.High++
		case RiskMedium:
			res.Medium++
		default:
			res.Low++
		}
	}
	res.Processed = len(res.Results)

	if err := s.repo.CreateBatch(ctx, insights); err != nil {
		s.logger.Error("risk batch persist failed", zap.String("request_id", rid), zap.Error(err))
		return BatchResult{}, err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, atRiskKeys()...).Err(); err != nil {
			s.logger.Warn("at-risk cache invalidation failed", zap.Error(err))
		}
	}

	s.logger.Info("risk batch success",
		zap.String("request_id", rid),
		zap.Int("processed", res.Processed),
		zap.Int("high", res.High),
		zap.Int("medium", res.Medium),
	)
	return res, nil
}

func (s *service) DailyPrediction(ctx context.Context, studentID int64) (DailyPrediction, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("daily prediction requested", zap.String("request_id", rid), zap.Int64("student_id", studentID))

	if studentID <= 0 {
		return DailyPrediction{}, predictionerrors.ErrStudentIDRequired
	}
	if _, err := s.findStudent(ctx, studentID); err != nil {
		return DailyPrediction{}, err
	}

	snap, err := s.snapshot(ctx, studentID)
	if err != nil {
		s.logger.Error("daily prediction snapshot failed", zap.String("request_id", rid), zap.Error(err))
		return DailyPrediction{}, err
	}

	out, err := s.ai.Predict(ctx, snap)
	if err != nil {
		s.logger.Warn("daily prediction ai call failed", zap.String("request_id", rid), zap.Error(err))
		var statusErr *aiclient.StatusError
		switch {
		case errors.Is(err, aiclient.ErrUnavailable):
			return DailyPrediction{}, predictionerrors.ErrAIServiceUnavailable.WithDetails(map[string]any{"snapshot": snap})
		case errors.As(err, &statusErr):
			return DailyPrediction{}, predictionerrors.ErrAIServiceBadResponse.WithDetails(map[string]any{
				"status":   statusErr.StatusCode,
				"snapshot": snap,
			})
		default:
			return DailyPrediction{}, predictionerrors.ErrAIServiceBadResponse.WithDetails(map[string]any{"snapshot": snap})
		}
	}

	now := s.clock.Now()
	s.saveDaily(ctx, studentID, snap, out, now)

	s.logger.Info("daily prediction success",
		zap.String("request_id", rid),
		zap.Int64("student_id", studentID),
		zap.String("risk_level", out.Prediction.RiskLevel),
	)
	return DailyPrediction{
		StudentID:    studentID,
		Snapshot:     snap,
		AIPrediction: out.Raw,
		GeneratedAt:  now.Format(time.RFC3339),
	}, nil
}

// saveDaily stores the prediction; failures are logged only.
func (s *service) saveDaily(ctx context.Context, studentID int64, snap aiclient.Snapshot, out aiclient.PredictResult, at time.Time) {
	input, err := json.Marshal(snap)
	if err != nil {
		s.logger.Warn("daily prediction insight not saved", zap.Error(err))
		return
	}
	result := out.Raw
	if len(result) == 0 {
		if result, err = json.Marshal(out.Prediction); err != nil {
			s.logger.Warn("daily prediction insight not saved", zap.Error(err))
			return
		}
	}
	confidence := out.Prediction.Probability
	in := Insight{
		StudentID:   studentID,
		ModelName:   ModelDailyRisk,
		InsightType: InsightDailyRisk,
		Result:      result,
		Confidence:  &confidence,
		InputData:   input,
		CreatedAt:   at,
	}
	if err := s.repo.Create(ctx, &in); err != nil {
		s.logger.Warn("daily prediction insight not saved", zap.Int64("student_id", studentID), zap.Error(err))
	}
}

func (s *service) snapshot(ctx context.Context, studentID int64) (aiclient.Snapshot, error) {
	stats, err := s.deps.Evaluations.StatsByStudent(ctx, studentID)
	if err != nil {
		return aiclient.Snapshot{}, err
	}
	rows, err := s.deps.Attendance.FindAll(ctx, attendance.ListFilter{StudentID: &studentID})
	if err != nil {
		return aiclient.Snapshot{}, err
	}

	today := clock.Today(s.clock)
	var total, todayHours float64
	for _, a := range rows {
		h := attendance.WorkedHours(a)
		total += h
		if sameDay(a.Date, today) {
			todayHours += h
		}
	}

	coord := derefOrZero(stats.CoordinatorAvg)
	progressScore := coord
	if progressScore <= 0 {
		progressScore = stats.Average
	}
	return aiclient.Snapshot{
		DailyProgressScore:    round2(progressScore),
		NarrativeScore:        round2(stats.Average),
		CoordEvalScore:        round2(coord),
		PartnerEvalScore:      round2(derefOrZero(stats.SupervisorAvg)),
		AttendanceDaysPresent: float64(len(rows)),
		AttendanceTodayHours:  round2(todayHours),
		TotalHoursCompleted:   round2(total),
	}, nil
}

func (s *service) assessOngoing(ctx context.Context) ([]RiskAssessment, error) {
	records, err := s.deps.OJT.FindAll(ctx, ojt.ListFilter{Status: ojt.StatusOngoing})
	if err != nil {
		return nil, err
	}
	today := clock.Today(s.clock)
	out := make([]RiskAssessment, 0, len(records))
	for _, rec := range records {
		p, err := s.progressFor(ctx, rec, today)
		if err != nil {
			return nil, err
		}
		out = append(out, assessRisk(p, today))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RiskScore > out[j].RiskScore })
	return out, nil
}

func (s *service) progressOf(ctx context.Context, studentID int64) (progress, error) {
	rec, err := s.deps.OJT.FindLatestByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return progress{}, predictionerrors.ErrNoOJTRecord
		}
		return progress{}, err
	}
	return s.progressFor(ctx, *rec, clock.Today(s.clock))
}

func (s *service) progressFor(ctx context.Context, rec ojt.Record, today time.Time) (progress, error) {
	rows, err := s.deps.Attendance.FindAll(ctx, attendance.ListFilter{StudentID: &rec.StudentID})
	if err != nil {
		return progress{}, err
	}
	stats, err := s.deps.Evaluations.StatsByStudent(ctx, rec.StudentID)
	if err != nil {
		return progress{}, err
	}
	return summarize(rec, rows, stats, today), nil
}

func (s *service) findStudent(ctx context.Context, id int64) (*user.User, error) {
	u, err := s.deps.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, predictionerrors.ErrStudentNotFound
		}
		return nil, err
	}
	if u.Role != domain.RoleStudent {
		return nil, predictionerrors.ErrStudentNotFound
	}
	return u, nil
}

func normalizeLevel(level string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return "", nil
	case "high":
		return RiskHigh, nil
	case "medium":
		return RiskMedium, nil
	default:
		return "", predictionerrors.ErrInvalidRiskLevel
	}
}

func matchesLevel(got, want string) bool {
	if want == "" {
		return got == RiskHigh || got == RiskMedium
	}
	return got == want
}

func derefOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func mapToResponse(in Insight) InsightResponse {
	resp := InsightResponse{
		ID:          in.ID,
		StudentID:   in.StudentID,
		ModelName:   in.ModelName,
		InsightType: in.InsightType,
		Result:      in.Result,
		Confidence:  in.Confidence,
		InputData:   in.InputData,
		CreatedAt:   in.CreatedAt.Format(time.RFC3339),
	}
	if in.Student != nil {
		resp.StudentName = in.Student.FullName
	}
	return resp
}

func mapToListResponse(rows []Insight) []InsightResponse {
	out := make([]InsightResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToResponse(r))
	}
	return out
}
