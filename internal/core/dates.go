package core

import "time"

// AddMonths advances t by n calendar months with end-of-month clamping: the
// day of month is preserved unless the target month is shorter, in which case
// it clamps to the last valid day (Jan 31 + 1 month -> Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	months := int(t.Month()) - 1 + n
	year := t.Year() + floorDiv(months, 12)
	month := time.Month(mod(months, 12) + 1)
	day := t.Day()
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day zero of the next month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
