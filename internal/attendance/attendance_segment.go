package attendance

import (
	"strings"

	attendanceerrors "github.com/hxben0103/ojt-ai-system/internal/attendance/errors"
)

// Segment tags a clock event. The empty segment is the legacy, untagged
// time_in/time_out pair.
type Segment string

const (
	SegmentLegacy       Segment = ""
	SegmentMorningIn    Segment = "MORNING_IN"
	SegmentMorningOut   Segment = "MORNING_OUT"
	SegmentAfternoonIn  Segment = "AFTERNOON_IN"
	SegmentAfternoonOut Segment = "AFTERNOON_OUT"
	SegmentOvertimeIn   Segment = "OVERTIME_IN"
	SegmentOvertimeOut  Segment = "OVERTIME_OUT"
)

func ParseSegment(raw *string) Segment {
	if raw == nil {
		return SegmentLegacy
	}
	return Segment(strings.ToUpper(strings.TrimSpace(*raw)))
}

func (s Segment) IsLegacy() bool {
	return s == SegmentLegacy
}

// TimeInField resolves the write-once field a time-in event targets.
func (s Segment) TimeInField() (Field, error) {
	switch s {
	case SegmentLegacy:
		return FieldTimeIn, nil
	case SegmentMorningIn:
		return FieldMorningIn, nil
	case SegmentAfternoonIn:
		return FieldAfternoonIn, nil
	case SegmentOvertimeIn:
		return FieldOvertimeIn, nil
	default:
		return 0, attendanceerrors.ErrInvalidSegment.WithDetails(map[string]any{
			"segment": string(s),
			"allowed": []Segment{SegmentMorningIn, SegmentAfternoonIn, SegmentOvertimeIn},
		})
	}
}

// TimeOutField resolves the write-once field a time-out event targets.
func (s Segment) TimeOutField() (Field, error) {
	switch s {
	case SegmentLegacy:
		return FieldTimeOut, nil
	case SegmentMorningOut:
		return FieldMorningOut, nil
	case SegmentAfternoonOut:
		return FieldAfternoonOut, nil
	case SegmentOvertimeOut:
		return FieldOvertimeOut, nil
	default:
		return 0, attendanceerrors.ErrInvalidSegment.WithDetails(map[string]any{
			"segment": string(s),
			"allowed": []Segment{SegmentMorningOut, SegmentAfternoonOut, SegmentOvertimeOut},
		})
	}
}

// Field is one of the eight write-once clock columns of an Attendance row.
type Field int

const (
	FieldTimeIn Field = iota + 1
	FieldTimeOut
	FieldMorningIn
	FieldMorningOut
	FieldAfternoonIn
	FieldAfternoonOut
	FieldOvertimeIn
	FieldOvertimeOut
)

func (f Field) Column() string {
	switch f {
	case FieldTimeIn:
		return "time_in"
	case FieldTimeOut:
		return "time_out"
	case FieldMorningIn:
		return "morning_in"
	case FieldMorningOut:
		return "morning_out"
	case FieldAfternoonIn:
		return "afternoon_in"
	case FieldAfternoonOut:
		return "afternoon_out"
	case FieldOvertimeIn:
		return "overtime_in"
	case FieldOvertimeOut:
		return "overtime_out"
	}
	panic("attendance: unknown field")
}

func (f Field) String() string {
	return f.Column()
}

// slot returns the address of the struct field backing f.
func (f Field) slot(a *Attendance) **ClockTime {
	switch f {
	case FieldTimeIn:
		return &a.TimeIn
	case FieldTimeOut:
		return &a.TimeOut
	case FieldMorningIn:
		return &a.MorningIn
	case FieldMorningOut:
		return &a.MorningOut
	case FieldAfternoonIn:
		return &a.AfternoonIn
	case FieldAfternoonOut:
		return &a.AfternoonOut
	case FieldOvertimeIn:
		return &a.OvertimeIn
	case FieldOvertimeOut:
		return &a.OvertimeOut
	}
	panic("attendance: unknown field")
}

func (f Field) Get(a *Attendance) *ClockTime {
	return *f.slot(a)
}

func (f Field) Set(a *Attendance, v ClockTime) {
	*f.slot(a) = clockPtr(v)
}

func (f Field) IsSet(a *Attendance) bool {
	v := f.Get(a)
	return v != nil && *v != ""
}
