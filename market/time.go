package market

import "time"

const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
	HourLayout      = "15"
)

// DayOf returns the local calendar date of t as YYYY-MM-DD.
func DayOf(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseTimestamp parses a stored timestamp in local wall-clock time.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, time.Local)
}
