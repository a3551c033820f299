// Package week computes the Monday-to-Sunday windows the progress core
// aggregates against.
package week

import "time"

// Window is a single ISO week: Monday 00:00:00 through Sunday 23:59:59.999.
// Windows are computed on demand and never persisted.
type Window struct {
	Start time.Time `json:"week_start"`
	End   time.Time `json:"week_end"`
}

// StartOf returns the Monday 00:00:00 of the week containing t, in t's
// location.
func StartOf(t time.Time) time.Time {
	day := int(t.Weekday())
	diff := 1 - day
	if day == 0 { // Sunday belongs to the week that started 6 days earlier
		diff = -6
	}
	t = t.AddDate(0, 0, diff)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WindowAt returns the window offset weeks before the week containing now.
// Offset 0 is the current week. The offset is applied before normalizing to
// Monday.
func WindowAt(now time.Time, offset int) Window {
	start := StartOf(now.AddDate(0, 0, -7*offset))
	end := start.AddDate(0, 0, 6)
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), end.Location())
	return Window{Start: start, End: end}
}

// Contains reports whether t falls inside the window, inclusive at both ends.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// DaysLeft returns the number of whole days remaining in the current week
// after today, with Sunday counting as zero days left.
func DaysLeft(today time.Time) int {
	return (7 - int(today.Weekday())) % 7
}
