package timeutil

import "time"

// DateLayout defines the canonical upstream date format (YYYYMMDD).
const DateLayout = "20060102"

// ParseDate parses a YYYYMMDD date string in the given location.
// A nil location defaults to the local zone, since upstream date windows
// are local-day boundaries.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, value, loc)
}

// FormatDate formats a time as YYYYMMDD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// SameLocalDay reports whether t falls on the same calendar day as day,
// evaluated in day's location. This is the only defense against upstream
// date-window spillover, so it compares year, month and day explicitly.
func SameLocalDay(t, day time.Time) bool {
	t = t.In(day.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
