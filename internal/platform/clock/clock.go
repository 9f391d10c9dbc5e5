package clock

import "time"

// Clock provides the current date for due-date, overdue, and fine computations.
// Date granularity only: implementations return midnight UTC.
type Clock interface {
	Today() time.Time
}

// System reads the real wall clock.
type System struct{}

func (System) Today() time.Time {
	return Midnight(time.Now())
}

// Fixed always returns the same date. Intended for tests.
type Fixed struct {
	Date time.Time
}

func (f Fixed) Today() time.Time {
	return Midnight(f.Date)
}

// Midnight truncates t to 00:00:00 UTC on the same calendar day.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
