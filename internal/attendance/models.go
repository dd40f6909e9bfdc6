package attendance

import (
	"time"

	dErrors "secretario/pkg/domain-errors"
)

// Kind classifies a meeting by its weekday. Saturday and Sunday meetings
// count as weekend; everything else is midweek.
type Kind string

const (
	KindWeekend Kind = "weekend"
	KindMidweek Kind = "midweek"
)

// KindOf returns the meeting kind for a date.
func KindOf(d time.Time) Kind {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return KindWeekend
	default:
		return KindMidweek
	}
}

// Attendance is one meeting date's attendee count. HeldOn is unique.
type Attendance struct {
	ID        int64     `json:"id"`
	HeldOn    time.Time `json:"held_on"`
	Attendees int       `json:"attendees"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Kind is derived, never stored.
func (a Attendance) Kind() Kind {
	return KindOf(a.HeldOn)
}

// Normalize truncates the meeting date to midnight UTC so the unique key
// ignores time-of-day noise from spreadsheet cells.
func (a *Attendance) Normalize() {
	a.HeldOn = time.Date(a.HeldOn.Year(), a.HeldOn.Month(), a.HeldOn.Day(), 0, 0, 0, 0, time.UTC)
}

func (a Attendance) Validate() error {
	if a.HeldOn.IsZero() {
		return dErrors.New(dErrors.CodeBadRequest, "meeting date is required")
	}
	if a.Attendees < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "attendees must not be negative")
	}
	return nil
}
