package prediction

import (
	"testing"
	"time"

	"github.com/hxben0103/ojt-ai-system/internal/attendance"
	"github.com/hxben0103/ojt-ai-system/internal/evaluation"
	"github.com/hxben0103/ojt-ai-system/internal/ojt"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func hours(v float64) *float64 { return &v }

func record(required int) ojt.Record {
	return ojt.Record{ID: 1, StudentID: 10, StartDate: day(1), RequiredHours: required, Status: ojt.StatusOngoing}
}

func present(d int, h float64, verified bool) attendance.Attendance {
	return attendance.Attendance{StudentID: 10, Date: day(d), TotalHours: hours(h), Verified: verified}
}

func TestWeekdaysBetween(t *testing.T) {
	assert.Equal(t, 5, weekdaysBetween(day(1), day(7)))
	assert.Equal(t, 6, weekdaysBetween(day(1), day(8)))
	assert.Equal(t, 0, weekdaysBetween(day(6), day(7)))
	assert.Equal(t, 0, weekdaysBetween(day(8), day(1)))
}

func TestSummarize(t *testing.T) {
	rows := []attendance.Attendance{
		{StudentID: 10, Date: time.Date(2023, 12, 29, 0, 0, 0, 0, time.UTC), TotalHours: hours(8)},
		present(2, 8, true),
		present(5, 4.5, false),
	}
	p := summarize(record(300), rows, evaluation.Stats{}, day(5))

	assert.Equal(t, 12.5, p.CompletedHours)
	assert.Equal(t, 2, p.DaysPresent)
	assert.Equal(t, 1, p.Unverified)
	assert.Equal(t, 4.5, p.TodayHours)
	assert.Equal(t, day(5), *p.LastAttendance)
}

func TestAssessRisk(t *testing.T) {
	t.Run("on track student is low risk", func(t *testing.T) {
		rows := []attendance.Attendance{
			present(1, 8, true), present(2, 8, true), present(3, 8, true), present(4, 8, true), present(5, 8, true),
		}
		p := summarize(record(300), rows, evaluation.Stats{Count: 2, Average: 85}, day(5))

		got := assessRisk(p, day(5))

		assert.Equal(t, 0.0, got.RiskScore)
		assert.Equal(t, RiskLow, got.RiskLevel)
		assert.Empty(t, got.Factors)
		assert.Equal(t, 40.0, got.ExpectedHours)
		assert.Equal(t, 13.33, got.CompletionRate)
		assert.Equal(t, 85.0, *got.AverageScore)
	})

	t.Run("behind schedule with low scores is medium", func(t *testing.T) {
		rows := []attendance.Attendance{present(4, 8, true), present(5, 8, true)}
		p := summarize(record(300), rows, evaluation.Stats{Count: 1, Average: 60}, day(5))

		got := assessRisk(p, day(5))

		assert.Equal(t, 30.0, got.RiskScore)
		assert.Equal(t, RiskMedium, got.RiskLevel)
		assert.Len(t, got.Factors, 2)
		assert.Equal(t, "hours_behind_schedule", got.Factors[0].Factor)
		assert.Equal(t, 24.0, got.Factors[0].Points)
		assert.Equal(t, "low_evaluation_scores", got.Factors[1].Factor)
		assert.Equal(t, 6.0, got.Factors[1].Points)
	})

	t.Run("absent and unevaluated student is high risk", func(t *testing.T) {
		rows := []attendance.Attendance{present(2, 8, false)}
		p := summarize(record(300), rows, evaluation.Stats{}, day(19))

		got := assessRisk(p, day(19))

		assert.Equal(t, RiskHigh, got.RiskLevel)
		assert.Equal(t, 120.0, got.ExpectedHours)
		assert.Equal(t, 17, got.DaysSinceLastAttendance)
		assert.Nil(t, got.AverageScore)
		assert.Equal(t, 77.33, got.RiskScore)

		points := map[string]float64{}
		for _, f := range got.Factors {
			points[f.Factor] = f.Points
		}
		assert.Equal(t, map[string]float64{
			"hours_behind_schedule": 37.33,
			"no_evaluations":        10,
			"attendance_gap":        20,
			"unverified_attendance": 10,
		}, points)
	})

	t.Run("no attendance counts the gap from the start date", func(t *testing.T) {
		p := summarize(record(300), nil, evaluation.Stats{Count: 1, Average: 90}, day(8))

		got := assessRisk(p, day(8))

		assert.Equal(t, 7, got.DaysSinceLastAttendance)
		assert.Equal(t, 56.0, got.RiskScore)
		assert.Equal(t, RiskMedium, got.RiskLevel)
	})
}

func TestPredictPerformance(t *testing.T) {
	t.Run("blends evaluation average and completion", func(t *testing.T) {
		rows := []attendance.Attendance{
			present(1, 8, true), present(2, 8, true), present(3, 8, true), present(4, 8, true), present(5, 8, true),
		}
		p := summarize(record(300), rows, evaluation.Stats{Count: 2, Average: 90}, day(5))

		got := predictPerformance(p)

		assert.Equal(t, 59.33, got.PredictedScore)
		assert.Equal(t, "Needs Improvement", got.PredictedGrade)
		assert.Equal(t, 0.65, got.Confidence)
		assert.Equal(t, int64(2), got.EvaluationCount)
	})

	t.Run("completed hours and strong scores is excellent", func(t *testing.T) {
		rows := []attendance.Attendance{present(1, 50, true), present(2, 50, true)}
		p := summarize(record(100), rows, evaluation.Stats{Count: 12, Average: 90}, day(5))

		got := predictPerformance(p)

		assert.Equal(t, 94.0, got.PredictedScore)
		assert.Equal(t, "Excellent", got.PredictedGrade)
		assert.Equal(t, 100.0, got.CompletionRate)
		assert.Equal(t, 0.95, got.Confidence)
	})

	t.Run("without evaluations only completion counts", func(t *testing.T) {
		rows := []attendance.Attendance{present(1, 80, true)}
		p := summarize(record(100), rows, evaluation.Stats{}, day(5))

		got := predictPerformance(p)

		assert.Equal(t, 80.0, got.PredictedScore)
		assert.Equal(t, "Very Good", got.PredictedGrade)
		assert.Nil(t, got.AverageEvaluation)
	})
}

func TestGrade(t *testing.T) {
	assert.Equal(t, "Excellent", grade(90))
	assert.Equal(t, "Very Good", grade(89.99))
	assert.Equal(t, "Passed", grade(75))
	assert.Equal(t, "Needs Improvement", grade(74.99))
}
