package clock

import (
	"time"

	"go.uber.org/zap"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewSystem returns a wall clock in the named IANA location. An unknown name
// falls back to UTC.
func NewSystem(timezone string) Clock {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		zap.L().Named("clock").Warn("unknown timezone, using UTC", zap.String("timezone", timezone), zap.Error(err))
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}

// Today is the calendar date of c.Now() at midnight UTC, the form gorm
// writes to a date column.
func Today(c Clock) time.Time {
	y, m, d := c.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TimeOfDay(c Clock) string {
	return c.Now().Format(TimeLayout)
}
