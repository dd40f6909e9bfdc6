package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretario/internal/attendance"
	"secretario/internal/report"
)

func TestSweepRemovesOnlyExpiredRows(t *testing.T) {
	ctx := context.Background()
	reports := report.NewInMemoryStore()
	meetings := attendance.NewInMemoryStore()
	service := NewService(reports, meetings, nil, nil, nil)

	old := time.Date(2022, time.October, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, reports.Upsert(ctx, &report.Report{PublisherID: 1, Month: old, Participated: true}))
	require.NoError(t, reports.Upsert(ctx, &report.Report{PublisherID: 1, Month: recent, Participated: true}))
	require.NoError(t, meetings.Upsert(ctx, &attendance.Attendance{HeldOn: old, Attendees: 80}))
	require.NoError(t, meetings.Upsert(ctx, &attendance.Attendance{HeldOn: recent, Attendees: 90}))

	// Two years before March 2025 is March 2023; only the 2022 rows are
	// past the threshold.
	now := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	res, err := service.Sweep(ctx, now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC), res.Cutoff)
	assert.EqualValues(t, 1, res.ReportsDeleted)
	assert.EqualValues(t, 1, res.AttendanceDeleted)

	left, err := reports.ListRange(ctx, time.Time{}, time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, recent, left[0].Month)
}

func TestSweepKeepsRowsYoungerThanTwoYears(t *testing.T) {
	ctx := context.Background()
	reports := report.NewInMemoryStore()
	meetings := attendance.NewInMemoryStore()
	service := NewService(reports, meetings, nil, nil, nil)

	// 13 months old at sweep time: well inside the retention window.
	august := time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, reports.Upsert(ctx, &report.Report{PublisherID: 1, Month: august, Participated: true}))
	// Exactly two years old: month-aligned cutoff keeps it too.
	boundary := time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, reports.Upsert(ctx, &report.Report{PublisherID: 1, Month: boundary, Participated: true}))

	res, err := service.Sweep(ctx, time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC), res.Cutoff)
	assert.Zero(t, res.ReportsDeleted)

	left, err := reports.ListRange(ctx, time.Time{}, time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, left, 2)
}

func TestSweepOnEmptyStores(t *testing.T) {
	service := NewService(report.NewInMemoryStore(), attendance.NewInMemoryStore(), nil, nil, nil)
	res, err := service.Sweep(context.Background(), time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, res.ReportsDeleted)
	assert.Zero(t, res.AttendanceDeleted)
}
