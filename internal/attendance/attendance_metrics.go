package attendance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opTimeIn  = "time_in"
	opTimeOut = "time_out"

	resultRecorded  = "recorded"
	resultDuplicate = "duplicate"
)

var recorderEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ojt_attendance_clock_events_total",
	Help: "Attendance clock events by operation, segment and outcome.",
}, []string{"operation", "segment", "result"})

func recordEvent(op string, segment Segment, result string) {
	label := string(segment)
	if segment.IsLegacy() {
		label = "LEGACY"
	}
	recorderEvents.WithLabelValues(op, label, result).Inc()
}
