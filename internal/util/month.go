package util

import "time"

// MonthBounds returns the inclusive window covering one calendar month, from
// day 1 00:00:00 through the last day 23:59:59 UTC.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Second)
	return start, end
}

// WholeMonthsBetween counts the calendar months elapsed from one date to
// another, ignoring the day of month. Negative when to precedes from.
func WholeMonthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
