package clock

import "time"

// WeekStart returns the Monday 00:00 of the given ISO (year, week) in loc.
func WeekStart(year, week int, loc *time.Location) time.Time {
	// January 4th is always inside ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	daysSinceMonday := (int(jan4.Weekday()) + 6) % 7
	monday := jan4.AddDate(0, 0, -daysSinceMonday)

	return monday.AddDate(0, 0, (week-1)*7)
}

// WeeksInYear returns 52 or 53 for the given ISO year.
func WeeksInYear(year int) int {
	// December 28th is always inside the last ISO week of its year.
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()

	return week
}

// PurchaseDeadline computes the instant after which boards for the given ISO
// (year, week) can no longer be bought: the configured weekday of that week
// at the configured hour, in the club's civil time zone. The arithmetic works
// on wall-clock dates, so daylight-saving shifts inside the week do not move
// the deadline.
func PurchaseDeadline(year, week int, weekday time.Weekday, hour int, loc *time.Location) time.Time {
	monday := WeekStart(year, week, loc)
	daysFromMonday := (int(weekday) + 6) % 7
	day := monday.AddDate(0, 0, daysFromMonday)

	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, loc)
}
