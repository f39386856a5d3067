package worker

import "time"

// Schedule describes a recurring wall-clock trigger in a fixed time zone.
// When Weekday is nil the schedule fires daily; otherwise weekly on the
// given weekday.
type Schedule struct {
	Hour     int
	Minute   int
	Weekday  *time.Weekday
	Location *time.Location
}

// Next returns the first trigger time strictly after the given instant
func (s Schedule) Next(after time.Time) time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}

	t := after.In(loc)
	next := time.Date(t.Year(), t.Month(), t.Day(), s.Hour, s.Minute, 0, 0, loc)

	if s.Weekday == nil {
		if !next.After(t) {
			next = next.AddDate(0, 0, 1)
		}
		return next
	}

	for next.Weekday() != *s.Weekday || !next.After(t) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
