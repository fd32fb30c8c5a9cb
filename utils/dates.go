// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func SameDay(a, b time.Time) bool {
	return BeginningOfDay(a).Equal(BeginningOfDay(b))
}

// MinutesIntoDay returns the minute offset of t from its midnight.
func MinutesIntoDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
