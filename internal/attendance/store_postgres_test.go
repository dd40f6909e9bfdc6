//go:build integration

package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"secretario/internal/attendance"
	"secretario/pkg/platform/sentinel"
	"secretario/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *attendance.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = attendance.NewPostgresStore(s.pg.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(context.Background(), "attendance"))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *PostgresStoreSuite) TestUpsertKeysOnDate() {
	ctx := context.Background()

	a := &attendance.Attendance{HeldOn: day(2024, time.September, 8), Attendees: 80}
	s.Require().NoError(s.store.Upsert(ctx, a))
	s.NotZero(a.ID)

	// A correction for the same meeting overwrites the count.
	again := &attendance.Attendance{HeldOn: day(2024, time.September, 8), Attendees: 85}
	s.Require().NoError(s.store.Upsert(ctx, again))
	s.Equal(a.ID, again.ID)

	got, err := s.store.FindByDate(ctx, day(2024, time.September, 8))
	s.Require().NoError(err)
	s.Equal(85, got.Attendees)
}

func (s *PostgresStoreSuite) TestListRange() {
	ctx := context.Background()
	for _, d := range []time.Time{
		day(2024, time.September, 5),
		day(2024, time.September, 8),
		day(2024, time.October, 6),
	} {
		s.Require().NoError(s.store.Upsert(ctx, &attendance.Attendance{HeldOn: d, Attendees: 70}))
	}

	september, err := s.store.ListRange(ctx, day(2024, time.September, 1), day(2024, time.October, 1))
	s.Require().NoError(err)
	s.Len(september, 2)
	// Chronological order.
	s.True(september[0].HeldOn.Before(september[1].HeldOn))
}

func (s *PostgresStoreSuite) TestDeleteOlderThan() {
	ctx := context.Background()
	s.Require().NoError(s.store.Upsert(ctx, &attendance.Attendance{HeldOn: day(2022, time.October, 2), Attendees: 60}))
	s.Require().NoError(s.store.Upsert(ctx, &attendance.Attendance{HeldOn: day(2024, time.October, 6), Attendees: 75}))

	n, err := s.store.DeleteOlderThan(ctx, day(2023, time.September, 1))
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	_, err = s.store.FindByDate(ctx, day(2022, time.October, 2))
	s.ErrorIs(err, sentinel.ErrNotFound)
}
