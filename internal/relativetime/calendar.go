package relativetime

import (
	"time"
)

const timeFormat = "2006-01-02 15:04:05"

// Field is a calendar field that offsets and truncation operate on.
type Field int

const (
	FieldYear Field = iota
	FieldMonth
	FieldDay
	FieldHour
	FieldMinute
	FieldSecond
	FieldMillisecond
)

var now = time.Now

// currentTime reads the clock in local time at millisecond precision.
func currentTime(clock func() time.Time) time.Time {
	return clock().Round(0).Local().Truncate(time.Millisecond)
}

func parseLiteral(s string) (time.Time, error) {
	return time.ParseInLocation(timeFormat, s, time.Local)
}

func getField(t time.Time, f Field) int {
	switch f {
	case FieldYear:
		return t.Year()
	case FieldMonth:
		return int(t.Month())
	case FieldDay:
		return t.Day()
	case FieldHour:
		return t.Hour()
	case FieldMinute:
		return t.Minute()
	case FieldSecond:
		return t.Second()
	case FieldMillisecond:
		return t.Nanosecond() / int(time.Millisecond)
	}
	return 0
}

// setField replaces a single wall clock field. Out of range values overflow
// into the neighbouring fields the same way time.Date normalizes them.
func setField(t time.Time, f Field, v int) time.Time {
	var (
		year, month, day  = t.Year(), int(t.Month()), t.Day()
		hour, minute, sec = t.Clock()
		nsec              = t.Nanosecond()
	)

	switch f {
	case FieldYear:
		year = v
	case FieldMonth:
		month = v
	case FieldDay:
		day = v
	case FieldHour:
		hour = v
	case FieldMinute:
		minute = v
	case FieldSecond:
		sec = v
	case FieldMillisecond:
		nsec = v * int(time.Millisecond)
	}

	return time.Date(year, time.Month(month), day, hour, minute, sec, nsec, t.Location())
}

// addField shifts a wall clock field by n, carrying into higher fields.
func addField(t time.Time, f Field, n int) time.Time {
	return setField(t, f, getField(t, f)+n)
}
