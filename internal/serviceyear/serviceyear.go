// Package serviceyear maps calendar dates onto the September–August
// reporting year every statistical form is aligned to. All functions are
// pure; identical input always yields identical output.
package serviceyear

import "time"

// Start is the month the service year begins.
const Start = time.September

// YearMonth identifies one calendar month without a day component.
type YearMonth struct {
	Year  int
	Month time.Month
}

// Of returns the service year a date belongs to. September through December
// already count toward the following year's statistics.
func Of(d time.Time) int {
	if d.Month() >= Start {
		return d.Year() + 1
	}
	return d.Year()
}

// MonthSlot returns the 1-based position of a date's month inside the
// service year: September = 1 ... August = 12.
func MonthSlot(d time.Time) int {
	return (int(d.Month())+3)%12 + 1
}

// MonthAt is the inverse of MonthSlot for a given service year: slot 1
// yields September 1 of the preceding calendar year.
func MonthAt(year, slot int) time.Time {
	return time.Date(year-1, Start, 1, 0, 0, 0, 0, time.UTC).AddDate(0, slot-1, 0)
}

// Bounds returns the inclusive first day and exclusive end day of a service
// year: [September 1, year-1 .. September 1, year).
func Bounds(year int) (time.Time, time.Time) {
	start := time.Date(year-1, Start, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// FirstOfMonth truncates a date to the first day of its month in UTC. The
// (publisher, month) natural key always stores months in this form.
func FirstOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
