// Package activity derives the Active/Inactive state of a publisher from
// their trailing six months of reported participation.
package activity

import (
	"fmt"
	"time"

	"secretario/internal/serviceyear"
)

// Status is the derived publisher state. It is never stored; every consumer
// recomputes it from report rows.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Standard annotations written onto the card when the state flips. The
// Spanish strings match the printed forms.
const (
	NoteBecameInactive = "Se hizo inactivo"
	NoteActiveAgain    = "Vuelve a predicar"
)

// MonthParticipation is the slice of a report the resolver needs.
type MonthParticipation struct {
	Month        time.Time
	Participated bool
}

// Resolution pairs the state at the evaluated month with the state one
// month earlier so callers can detect transitions.
type Resolution struct {
	Status   Status
	Previous Status
}

// Transition reports whether the state flipped at the evaluated month.
func (r Resolution) Transition() bool {
	return r.Status != r.Previous
}

// Resolve evaluates a publisher's state at the given month. Active means at
// least one participated report inside the rolling six-month window ending
// at (and including) the month; Previous uses the window shifted back one
// month. An empty history resolves to Inactive with no transition.
func Resolve(history []MonthParticipation, month time.Time) Resolution {
	m := serviceyear.FirstOfMonth(month)
	return Resolution{
		Status:   statusIn(history, m.AddDate(0, -5, 0), m),
		Previous: statusIn(history, m.AddDate(0, -6, 0), m.AddDate(0, -1, 0)),
	}
}

// statusIn scans [from, to] inclusive for any participated month.
func statusIn(history []MonthParticipation, from, to time.Time) Status {
	for _, h := range history {
		m := serviceyear.FirstOfMonth(h.Month)
		if h.Participated && !m.Before(from) && !m.After(to) {
			return StatusActive
		}
	}
	return StatusInactive
}

// ExceptionList holds months whose auto-generated "active again" note is
// suppressed. These are one-off historical data corrections supplied by
// configuration, not a general rule.
type ExceptionList map[serviceyear.YearMonth]struct{}

// ParseExceptions reads "YYYY-MM" entries.
func ParseExceptions(entries []string) (ExceptionList, error) {
	out := make(ExceptionList, len(entries))
	for _, e := range entries {
		t, err := time.Parse("2006-01", e)
		if err != nil {
			return nil, fmt.Errorf("parse note suppression %q: %w", e, err)
		}
		out[serviceyear.YearMonth{Year: t.Year(), Month: t.Month()}] = struct{}{}
	}
	return out, nil
}

func (l ExceptionList) contains(month time.Time) bool {
	_, ok := l[serviceyear.YearMonth{Year: month.Year(), Month: month.Month()}]
	return ok
}

// TransitionNote returns the annotation for a state flip at the given
// month, or "" when there is no flip or the month is suppressed. Callers
// only apply it when the report carries no explicit note.
func TransitionNote(res Resolution, month time.Time, exceptions ExceptionList) string {
	if !res.Transition() {
		return ""
	}
	if res.Status == StatusActive {
		if exceptions.contains(serviceyear.FirstOfMonth(month)) {
			return ""
		}
		return NoteActiveAgain
	}
	return NoteBecameInactive
}
