package derive

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"secretario/internal/attendance"
	"secretario/internal/publisher"
	"secretario/internal/report"
	dErrors "secretario/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctx        context.Context
	reports    *report.InMemoryStore
	publishers *publisher.InMemoryStore
	attendance *attendance.InMemoryStore
	service    *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.reports = report.NewInMemoryStore()
	s.publishers = publisher.NewInMemoryStore()
	s.attendance = attendance.NewInMemoryStore()
	s.service = NewService(s.reports, s.publishers, s.attendance, nil, nil, nil)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) seedPublisher(given, family string, typ publisher.Type) *publisher.Publisher {
	p := &publisher.Publisher{GivenName: given, FamilyName: family, Sex: publisher.SexMale, Type: typ}
	s.Require().NoError(s.publishers.Upsert(s.ctx, p))
	return p
}

func (s *ServiceSuite) TestYearFloor() {
	_, err := s.service.S1(s.ctx, month(1890, time.March))
	s.True(dErrors.Is(err, dErrors.CodeBadRequest))

	_, err = s.service.S10(s.ctx, 1890)
	s.True(dErrors.Is(err, dErrors.CodeBadRequest))

	_, err = s.service.AttendanceSummary(s.ctx, 1890)
	s.True(dErrors.Is(err, dErrors.CodeBadRequest))
}

func (s *ServiceSuite) TestS1EmptyMonth() {
	s1, err := s.service.S1(s.ctx, month(2025, time.March))
	s.Require().NoError(err)
	s.Zero(s1.ActivePublishers)
	s.Zero(s1.InactivePublishers)
	s.Empty(s1.Totals)
}

func (s *ServiceSuite) TestS1CountsWindowActivity() {
	p := s.seedPublisher("Juan", "Pérez", publisher.TypePublisher)
	idle := s.seedPublisher("Ana", "García", publisher.TypePublisher)
	_ = idle

	// The only participation is two months before the requested month; the
	// publisher is active that month without a current-month row.
	s.Require().NoError(s.reports.Upsert(s.ctx, &report.Report{
		PublisherID:  p.ID,
		Month:        month(2025, time.January),
		Participated: true,
		Type:         publisher.TypePublisher,
	}))

	s1, err := s.service.S1(s.ctx, month(2025, time.March))
	s.Require().NoError(err)
	s.Equal(1, s1.ActivePublishers)
	s.Equal(1, s1.InactivePublishers)
	s.Empty(s1.Totals, "totals only cover the requested month")
}

func (s *ServiceSuite) TestCardNotFound() {
	_, err := s.service.Card(s.ctx, 99, 2025)
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestCardAcrossYearBoundary() {
	p := s.seedPublisher("Juan", "Pérez", publisher.TypeRegularPioneer)
	for _, m := range []time.Time{month(2024, time.August), month(2024, time.September)} {
		s.Require().NoError(s.reports.Upsert(s.ctx, &report.Report{
			PublisherID:  p.ID,
			Month:        m,
			Participated: true,
			Type:         publisher.TypeRegularPioneer,
			Hours:        50,
		}))
	}

	card, err := s.service.Card(s.ctx, p.ID, 2025)
	s.Require().NoError(err)
	s.True(card.Slots[0].Reported)
	s.Equal(50, card.TotalHours, "the August row belongs to the previous service year")
}

func (s *ServiceSuite) TestCardsCoverEveryPublisher() {
	s.seedPublisher("Juan", "Pérez", publisher.TypePublisher)
	s.seedPublisher("Ana", "García", publisher.TypePublisher)

	cards, err := s.service.Cards(s.ctx, 2025)
	s.Require().NoError(err)
	s.Len(cards, 2)
	s.Equal("García, Ana", cards[0].Publisher.DisplayName())
}

func (s *ServiceSuite) TestS3AndSummaryShareMeetings() {
	s.Require().NoError(s.attendance.Upsert(s.ctx, &attendance.Attendance{
		HeldOn:    time.Date(2024, time.September, 8, 0, 0, 0, 0, time.UTC),
		Attendees: 30,
	}))

	sum, err := s.service.AttendanceSummary(s.ctx, 2025)
	s.Require().NoError(err)
	s.Require().Len(sum.Weekend, 1)
	s.InDelta(30, sum.WeekendAverage, 0.001)

	s3, err := s.service.S3(s.ctx, 2025)
	s.Require().NoError(err)
	s.Require().Len(s3.Months, 1)
	s.Len(s3.Months[0].Weeks, 1)
}
