package attendance

import (
	"errors"
	"testing"

	attendanceerrors "github.com/hxben0103/ojt-ai-system/internal/attendance/errors"

	"github.com/stretchr/testify/assert"
)

func TestSegmentFieldResolution(t *testing.T) {
	tests := []struct {
		raw     *string
		in, out Field
	}{
		{nil, FieldTimeIn, FieldTimeOut},
		{strPtr("morning_in"), FieldMorningIn, 0},
		{strPtr(" AFTERNOON_OUT "), 0, FieldAfternoonOut},
		{strPtr("OVERTIME_IN"), FieldOvertimeIn, 0},
		{strPtr("OVERTIME_OUT"), 0, FieldOvertimeOut},
	}

	for _, tt := range tests {
		seg := ParseSegment(tt.raw)

		in, err := seg.TimeInField()
		if tt.in == 0 {
			assert.True(t, errors.Is(err, attendanceerrors.ErrInvalidSegment), "segment %q", seg)
		} else {
			assert.NoError(t, err)
			assert.Equal(t, tt.in, in)
		}

		out, err := seg.TimeOutField()
		if tt.out == 0 {
			assert.True(t, errors.Is(err, attendanceerrors.ErrInvalidSegment), "segment %q", seg)
		} else {
			assert.NoError(t, err)
			assert.Equal(t, tt.out, out)
		}
	}
}

func TestFieldSetOnlyTouchesItsColumn(t *testing.T) {
	var a Attendance
	FieldAfternoonIn.Set(&a, "13:00:00")

	assert.True(t, FieldAfternoonIn.IsSet(&a))
	for _, f := range []Field{FieldTimeIn, FieldTimeOut, FieldMorningIn, FieldMorningOut, FieldAfternoonOut, FieldOvertimeIn, FieldOvertimeOut} {
		assert.False(t, f.IsSet(&a), f.Column())
	}
}

func TestParseClockTime(t *testing.T) {
	got, err := ParseClockTime("8:05")
	assert.NoError(t, err)
	assert.Equal(t, ClockTime("08:05:00"), got)

	_, err = ParseClockTime("24:00")
	assert.Error(t, err)

	var c ClockTime
	assert.NoError(t, c.Scan([]byte("17:30:00")))
	assert.Equal(t, ClockTime("17:30:00"), c)
}

func TestWorkedHours(t *testing.T) {
	total := 7.25
	assert.Equal(t, 7.25, WorkedHours(Attendance{TotalHours: &total}))

	a := Attendance{}
	FieldMorningIn.Set(&a, "08:00:00")
	FieldMorningOut.Set(&a, "11:45:00")
	FieldAfternoonIn.Set(&a, "13:00:00")
	assert.Equal(t, 3.75, WorkedHours(a))
}

func strPtr(s string) *string { return &s }
