package period

import "time"

// PreviousDay is yesterday's calendar day relative to now.
func PreviousDay(now time.Time, loc *time.Location) Range {
	today := startOfDay(now, loc)
	return days(Yesterday, today.AddDate(0, 0, -1), 1)
}

// PreviousWeek is the Monday-aligned calendar week before the current one.
func PreviousWeek(now time.Time, loc *time.Location) Range {
	today := startOfDay(now, loc)
	sinceMonday := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -sinceMonday)
	return days("previous_week", monday.AddDate(0, 0, -7), 7)
}

// PreviousMonth is the calendar month before the current one.
func PreviousMonth(now time.Time, loc *time.Location) Range {
	first := firstOfMonth(now, loc)
	start := first.AddDate(0, -1, 0)
	return Range{Start: &start, End: &first, Label: "previous_month"}
}

// TrailingMonths covers the current calendar month and the n-1 before it.
func TrailingMonths(now time.Time, loc *time.Location, n int) Range {
	first := firstOfMonth(now, loc)
	start := first.AddDate(0, -(n - 1), 0)
	end := first.AddDate(0, 1, 0)
	return Range{Start: &start, End: &end, Label: "trailing_months"}
}

func firstOfMonth(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}
