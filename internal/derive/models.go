// Package derive turns stored report, attendance and publisher rows into
// the denominational statistical forms. Every Build* function is pure; the
// Service wraps them with store reads and parameter validation.
package derive

import (
	"time"

	"secretario/internal/activity"
	"secretario/internal/publisher"
)

// TypeTotals aggregates one publisher type's activity for a period.
type TypeTotals struct {
	Type         publisher.Type `json:"type"`
	Label        string         `json:"label"`
	Reports      int            `json:"reports"`
	Hours        int            `json:"hours"`
	BibleCourses int            `json:"bible_courses"`
}

// S1 is the monthly congregation statistics form.
type S1 struct {
	Month              time.Time    `json:"month"`
	ServiceYear        int          `json:"service_year"`
	ActivePublishers   int          `json:"active_publishers"`
	InactivePublishers int          `json:"inactive_publishers"`
	Totals             []TypeTotals `json:"totals"`
	Territories        int          `json:"territories"`
}

// CardSlot is one month line of the S-21 card. Slot 1 is September.
type CardSlot struct {
	Slot             int       `json:"slot"`
	Month            time.Time `json:"month"`
	Reported         bool      `json:"reported"`
	Participated     bool      `json:"participated"`
	AuxiliaryPioneer bool      `json:"auxiliary_pioneer"`
	BibleCourses     int       `json:"bible_courses"`
	Hours            int       `json:"hours"`
	Notes            string    `json:"notes"`
}

// Card is the S-21 per-publisher annual service record.
type Card struct {
	Publisher    publisher.Publisher `json:"publisher"`
	ServiceYear  int                 `json:"service_year"`
	Slots        [12]CardSlot        `json:"slots"`
	TotalHours   int                 `json:"total_hours"`
	TotalCourses int                 `json:"total_courses"`
	Status       activity.Status     `json:"status"`
}

// MonthlyAttendance is one month row of the S-88 / S-3 attendance tables.
type MonthlyAttendance struct {
	Slot     int       `json:"slot"`
	Month    time.Time `json:"month"`
	Meetings int       `json:"meetings"`
	Total    int       `json:"total"`
	Average  float64   `json:"average"`
}

// AttendanceSummary is the S-88 form: monthly averages per meeting kind and
// the year figure computed as the average of the monthly averages.
type AttendanceSummary struct {
	ServiceYear    int                 `json:"service_year"`
	Weekend        []MonthlyAttendance `json:"weekend"`
	Midweek        []MonthlyAttendance `json:"midweek"`
	WeekendAverage float64             `json:"weekend_average"`
	MidweekAverage float64             `json:"midweek_average"`
}

// S3Week is a single meeting line on the S-3 sheet.
type S3Week struct {
	HeldOn    time.Time `json:"held_on"`
	Attendees int       `json:"attendees"`
}

// S3Month groups one month's weekend meetings.
type S3Month struct {
	Slot    int       `json:"slot"`
	Month   time.Time `json:"month"`
	Weeks   []S3Week  `json:"weeks"`
	Average float64   `json:"average"`
}

// S3 is the annual weekend attendance by week.
type S3 struct {
	ServiceYear int       `json:"service_year"`
	Months      []S3Month `json:"months"`
}

// S10 is the annual summary: per-type yearly totals plus reporter peaks.
type S10 struct {
	ServiceYear      int          `json:"service_year"`
	Totals           []TypeTotals `json:"totals"`
	PeakReporters    int          `json:"peak_reporters"`
	AverageReporters float64      `json:"average_reporters"`
	ActiveAtClose    int          `json:"active_at_close"`
}
