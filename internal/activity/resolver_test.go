package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func participation(months ...time.Time) []MonthParticipation {
	out := make([]MonthParticipation, 0, len(months))
	for _, m := range months {
		out = append(out, MonthParticipation{Month: m, Participated: true})
	}
	return out
}

func TestResolveNoHistory(t *testing.T) {
	res := Resolve(nil, month(2025, time.March))
	assert.Equal(t, StatusInactive, res.Status)
	assert.Equal(t, StatusInactive, res.Previous)
	assert.False(t, res.Transition())
}

func TestResolveActiveWithinWindow(t *testing.T) {
	// Last participation exactly five months back still counts.
	history := participation(month(2024, time.October))
	res := Resolve(history, month(2025, time.March))
	assert.Equal(t, StatusActive, res.Status)
	assert.Equal(t, StatusActive, res.Previous)
	assert.False(t, res.Transition())
}

func TestResolveBecomesInactive(t *testing.T) {
	// Participation six months back has just slipped out of the current
	// window but is still inside the previous one: a transition month.
	history := participation(month(2024, time.September))
	res := Resolve(history, month(2025, time.March))
	assert.Equal(t, StatusInactive, res.Status)
	assert.Equal(t, StatusActive, res.Previous)
	assert.True(t, res.Transition())
}

func TestResolveActiveAgain(t *testing.T) {
	// Long gap, then a participated report in the evaluated month.
	history := participation(month(2024, time.January), month(2025, time.March))
	res := Resolve(history, month(2025, time.March))
	assert.Equal(t, StatusActive, res.Status)
	assert.Equal(t, StatusInactive, res.Previous)
	assert.True(t, res.Transition())
}

func TestResolveIgnoresNonParticipatedRows(t *testing.T) {
	history := []MonthParticipation{
		{Month: month(2025, time.January), Participated: false},
		{Month: month(2025, time.February), Participated: false},
	}
	res := Resolve(history, month(2025, time.March))
	assert.Equal(t, StatusInactive, res.Status)
}

func TestTransitionNote(t *testing.T) {
	inactive := Resolution{Status: StatusInactive, Previous: StatusActive}
	active := Resolution{Status: StatusActive, Previous: StatusInactive}
	steady := Resolution{Status: StatusActive, Previous: StatusActive}

	assert.Equal(t, NoteBecameInactive, TransitionNote(inactive, month(2025, time.March), nil))
	assert.Equal(t, NoteActiveAgain, TransitionNote(active, month(2025, time.March), nil))
	assert.Equal(t, "", TransitionNote(steady, month(2025, time.March), nil))
}

func TestTransitionNoteSuppression(t *testing.T) {
	exceptions, err := ParseExceptions([]string{"2023-09"})
	require.NoError(t, err)

	active := Resolution{Status: StatusActive, Previous: StatusInactive}
	// The suppressed month stays blank; other months are unaffected.
	assert.Equal(t, "", TransitionNote(active, month(2023, time.September), exceptions))
	assert.Equal(t, NoteActiveAgain, TransitionNote(active, month(2023, time.October), exceptions))

	// Suppression never silences the inactive note.
	inactive := Resolution{Status: StatusInactive, Previous: StatusActive}
	assert.Equal(t, NoteBecameInactive, TransitionNote(inactive, month(2023, time.September), exceptions))
}

func TestParseExceptionsRejectsGarbage(t *testing.T) {
	_, err := ParseExceptions([]string{"septiembre"})
	require.Error(t, err)
}
