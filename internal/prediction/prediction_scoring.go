package prediction

import (
	"fmt"
	"math"
	"time"

	"github.com/hxben0103/ojt-ai-system/internal/attendance"
	"github.com/hxben0103/ojt-ai-system/internal/evaluation"
	"github.com/hxben0103/ojt-ai-system/internal/ojt"
)

const (
	RiskHigh   = "High"
	RiskMedium = "Medium"
	RiskLow    = "Low"

	hoursPerDay        = 8
	passingScore       = 75.0
	recencyGraceDays   = 3
	hoursGapWeight     = 40.0
	evaluationWeight   = 30.0
	noEvaluationPoints = 10.0
	recencyMaxPoints   = 20.0
	recencyPerDay      = 4.0
	unverifiedWeight   = 10.0
)

// progress is everything the scoring rules read about one student's OJT.
type progress struct {
	Record         ojt.Record
	CompletedHours float64
	DaysPresent    int
	TodayHours     float64
	LastAttendance *time.Time
	Unverified     int
	Stats          evaluation.Stats
}

func summarize(record ojt.Record, rows []attendance.Attendance, stats evaluation.Stats, today time.Time) progress {
	p := progress{Record: record, Stats: stats}
	for i := range rows {
		a := rows[i]
		if a.Date.Before(record.StartDate) {
			continue
		}
		h := attendance.WorkedHours(a)
		p.CompletedHours += h
		p.DaysPresent++
		if !a.Verified {
			p.Unverified++
		}
		if sameDay(a.Date, today) {
			p.TodayHours += h
		}
		if p.LastAttendance == nil || a.Date.After(*p.LastAttendance) {
			d := a.Date
			p.LastAttendance = &d
		}
	}
	p.CompletedHours = round2(p.CompletedHours)
	p.TodayHours = round2(p.TodayHours)
	return p
}

func (p progress) completionRate() float64 {
	if p.Record.RequiredHours <= 0 {
		return 0
	}
	return round2(math.Min(100, p.CompletedHours/float64(p.Record.RequiredHours)*100))
}

func (p progress) averageScore() *float64 {
	if p.Stats.Count == 0 {
		return nil
	}
	v := round2(p.Stats.Average)
	return &v
}

func assessRisk(p progress, today time.Time) RiskAssessment {
	res := RiskAssessment{
		StudentID:      p.Record.StudentID,
		RecordID:       p.Record.ID,
		CompletedHours: p.CompletedHours,
		RequiredHours:  p.Record.RequiredHours,
		CompletionRate: p.completionRate(),
		AverageScore:   p.averageScore(),
		Factors:        []RiskFactor{},
	}
	if p.Record.Student != nil {
		res.StudentName = p.Record.Student.FullName
	}

	var score float64
	add := func(factor string, points float64, detail string) {
		points = round2(points)
		if points <= 0 {
			return
		}
		score += points
		res.Factors = append(res.Factors, RiskFactor{Factor: factor, Points: points, Detail: detail})
	}

	end := today
	if p.Record.EndDate != nil && p.Record.EndDate.Before(end) {
		end = *p.Record.EndDate
	}
	expected := math.Min(float64(p.Record.RequiredHours), float64(weekdaysBetween(p.Record.StartDate, end)*hoursPerDay))
	res.ExpectedHours = round2(expected)
	if expected > 0 && p.CompletedHours < expected {
		add("hours_behind_schedule",
			hoursGapWeight*(expected-p.CompletedHours)/expected,
			fmt.Sprintf("%.2f of %.2f expected hours completed", p.CompletedHours, expected))
	}

	if p.Stats.Count == 0 {
		add("no_evaluations", noEvaluationPoints, "no evaluations recorded yet")
	} else if p.Stats.Average < passingScore {
		add("low_evaluation_scores",
			(passingScore-p.Stats.Average)/passingScore*evaluationWeight,
			fmt.Sprintf("average evaluation score %.2f is below %.0f", p.Stats.Average, passingScore))
	}

	ref := p.Record.StartDate
	if p.LastAttendance != nil {
		ref = *p.LastAttendance
	}
	days := daysBetween(ref, today)
	res.DaysSinceLastAttendance = days
	if days > recencyGraceDays {
		add("attendance_gap",
			math.Min(recencyMaxPoints, float64(days-recencyGraceDays)*recencyPerDay),
			fmt.Sprintf("%d days since last attendance", days))
	}

	if p.DaysPresent > 0 && p.Unverified > 0 {
		add("unverified_attendance",
			unverifiedWeight*float64(p.Unverified)/float64(p.DaysPresent),
			fmt.Sprintf("%d of %d attendance days unverified", p.Unverified, p.DaysPresent))
	}

	res.RiskScore = round2(math.Max(0, math.Min(100, score)))
	res.RiskLevel = riskLevel(res.RiskScore)
	return res
}

func riskLevel(score float64) string {
	switch {
	case score >= 60:
		return RiskHigh
	case score >= 30:
		return RiskMedium
	default:
		return RiskLow
	}
}

func predictPerformance(p progress) PerformancePrediction {
	completion := p.completionRate()
	predicted := completion
	if p.Stats.Count > 0 {
		predicted = 0.6*p.Stats.Average + 0.4*completion
	}
	predicted = round2(math.Max(0, math.Min(100, predicted)))

	confidence := math.Min(0.95, 0.5+0.05*float64(p.Stats.Count)+0.01*float64(p.DaysPresent))

	return PerformancePrediction{
		StudentID:         p.Record.StudentID,
		RecordID:          p.Record.ID,
		PredictedScore:    predicted,
		PredictedGrade:    grade(predicted),
		CompletionRate:    completion,
		AverageEvaluation: p.averageScore(),
		EvaluationCount:   p.Stats.Count,
		DaysPresent:       p.DaysPresent,
		Confidence:        round2(confidence),
	}
}

func grade(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 80:
		return "Very Good"
	case score >= passingScore:
		return "Passed"
	default:
		return "Needs Improvement"
	}
}

// weekdaysBetween counts Monday to Friday dates in [from, to].
func weekdaysBetween(from, to time.Time) int {
	from, to = dateOnly(from), dateOnly(to)
	n := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return n
}

func daysBetween(from, to time.Time) int {
	d := int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return dateOnly(a).Equal(dateOnly(b))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
