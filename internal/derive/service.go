package derive

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"secretario/internal/activity"
	"secretario/internal/attendance"
	"secretario/internal/platform/metrics"
	"secretario/internal/publisher"
	"secretario/internal/report"
	"secretario/internal/serviceyear"
	dErrors "secretario/pkg/domain-errors"
	"secretario/pkg/platform/sentinel"
)

// Records older than this year predate the congregation's books; parameters
// below it are typos, not data.
const minYear = 1950

// SettingsReader supplies numeric congregation settings. A nil reader means
// the setting's fallback is used.
type SettingsReader interface {
	Int(ctx context.Context, key string, fallback int) (int, error)
}

// Service reads stored rows and runs the pure builders over them.
type Service struct {
	reports    report.Store
	publishers publisher.Store
	attendance attendance.Store
	settings   SettingsReader
	exceptions activity.ExceptionList
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

func NewService(reports report.Store, publishers publisher.Store, att attendance.Store, settings SettingsReader, exceptions activity.ExceptionList, m *metrics.Metrics) *Service {
	return &Service{
		reports:    reports,
		publishers: publishers,
		attendance: att,
		settings:   settings,
		exceptions: exceptions,
		metrics:    m,
		tracer:     otel.Tracer("secretario/derive"),
	}
}

func validYear(year int) error {
	if year < minYear {
		return dErrors.New(dErrors.CodeBadRequest, "service year out of range")
	}
	return nil
}

// histories buckets participation rows per publisher.
func histories(rows []*report.Report) map[int64][]activity.MonthParticipation {
	out := map[int64][]activity.MonthParticipation{}
	for _, r := range rows {
		out[r.PublisherID] = append(out[r.PublisherID], activity.MonthParticipation{
			Month:        r.Month,
			Participated: r.Participated,
		})
	}
	return out
}

// S1 derives the monthly congregation statistics for the given month. A
// month with no stored reports yields a zero-valued form, not an error.
func (s *Service) S1(ctx context.Context, month time.Time) (S1, error) {
	ctx, span := s.tracer.Start(ctx, "derive.S1",
		trace.WithAttributes(attribute.String("month", month.Format("2006-01"))))
	defer span.End()

	if err := validYear(month.Year()); err != nil {
		return S1{}, err
	}
	month = serviceyear.FirstOfMonth(month)

	rows, err := s.reports.ListByMonth(ctx, month)
	if err != nil {
		return S1{}, dErrors.Wrap(dErrors.CodeInternal, "list reports", err)
	}
	// The activity window reaches six months behind the previous month.
	window, err := s.reports.ListRange(ctx, month.AddDate(0, -6, 0), month.AddDate(0, 1, 0))
	if err != nil {
		return S1{}, dErrors.Wrap(dErrors.CodeInternal, "list report window", err)
	}
	pubs, err := s.publishers.List(ctx, publisher.Filter{})
	if err != nil {
		return S1{}, dErrors.Wrap(dErrors.CodeInternal, "list publishers", err)
	}
	territories, err := s.territories(ctx)
	if err != nil {
		return S1{}, err
	}

	s.metrics.RecordReport("s1")
	return BuildS1(month, rows, pubs, histories(window), territories), nil
}

// Card derives one publisher's S-21 for a service year.
func (s *Service) Card(ctx context.Context, publisherID int64, year int) (Card, error) {
	ctx, span := s.tracer.Start(ctx, "derive.Card",
		trace.WithAttributes(attribute.Int64("publisher_id", publisherID), attribute.Int("year", year)))
	defer span.End()

	if err := validYear(year); err != nil {
		return Card{}, err
	}
	p, err := s.publishers.FindByID(ctx, publisherID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Card{}, dErrors.New(dErrors.CodeNotFound, "publisher not found")
		}
		return Card{}, dErrors.Wrap(dErrors.CodeInternal, "load publisher", err)
	}

	start, end := serviceyear.Bounds(year)
	rows, err := s.reports.ListByPublisherRange(ctx, publisherID, start.AddDate(0, -6, 0), end)
	if err != nil {
		return Card{}, dErrors.Wrap(dErrors.CodeInternal, "list reports", err)
	}

	history := make([]activity.MonthParticipation, 0, len(rows))
	for _, r := range rows {
		history = append(history, activity.MonthParticipation{Month: r.Month, Participated: r.Participated})
	}

	s.metrics.RecordReport("s21")
	return BuildCard(p, rows, year, history, s.exceptions), nil
}

// Cards derives the S-21 card of every publisher for a service year,
// ordered the way the publisher listing orders them.
func (s *Service) Cards(ctx context.Context, year int) ([]Card, error) {
	ctx, span := s.tracer.Start(ctx, "derive.Cards", trace.WithAttributes(attribute.Int("year", year)))
	defer span.End()

	if err := validYear(year); err != nil {
		return nil, err
	}
	pubs, err := s.publishers.List(ctx, publisher.Filter{})
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list publishers", err)
	}

	start, end := serviceyear.Bounds(year)
	rows, err := s.reports.ListRange(ctx, start.AddDate(0, -6, 0), end)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list reports", err)
	}
	byPublisher := map[int64][]*report.Report{}
	for _, r := range rows {
		byPublisher[r.PublisherID] = append(byPublisher[r.PublisherID], r)
	}

	cards := make([]Card, 0, len(pubs))
	for _, p := range pubs {
		pr := byPublisher[p.ID]
		history := make([]activity.MonthParticipation, 0, len(pr))
		for _, r := range pr {
			history = append(history, activity.MonthParticipation{Month: r.Month, Participated: r.Participated})
		}
		cards = append(cards, BuildCard(p, pr, year, history, s.exceptions))
	}
	s.metrics.RecordReport("s21")
	return cards, nil
}

// AttendanceSummary derives the S-88 for a service year.
func (s *Service) AttendanceSummary(ctx context.Context, year int) (AttendanceSummary, error) {
	ctx, span := s.tracer.Start(ctx, "derive.AttendanceSummary", trace.WithAttributes(attribute.Int("year", year)))
	defer span.End()

	if err := validYear(year); err != nil {
		return AttendanceSummary{}, err
	}
	meetings, err := s.yearMeetings(ctx, year)
	if err != nil {
		return AttendanceSummary{}, err
	}
	s.metrics.RecordReport("s88")
	return BuildAttendanceSummary(year, meetings), nil
}

// S3 derives the week-by-week weekend attendance sheet for a service year.
func (s *Service) S3(ctx context.Context, year int) (S3, error) {
	ctx, span := s.tracer.Start(ctx, "derive.S3", trace.WithAttributes(attribute.Int("year", year)))
	defer span.End()

	if err := validYear(year); err != nil {
		return S3{}, err
	}
	meetings, err := s.yearMeetings(ctx, year)
	if err != nil {
		return S3{}, err
	}
	s.metrics.RecordReport("s3")
	return BuildS3(year, meetings), nil
}

// S10 derives the annual summary for a service year.
func (s *Service) S10(ctx context.Context, year int) (S10, error) {
	ctx, span := s.tracer.Start(ctx, "derive.S10", trace.WithAttributes(attribute.Int("year", year)))
	defer span.End()

	if err := validYear(year); err != nil {
		return S10{}, err
	}
	start, end := serviceyear.Bounds(year)
	rows, err := s.reports.ListRange(ctx, start.AddDate(0, -6, 0), end)
	if err != nil {
		return S10{}, dErrors.Wrap(dErrors.CodeInternal, "list reports", err)
	}
	pubs, err := s.publishers.List(ctx, publisher.Filter{})
	if err != nil {
		return S10{}, dErrors.Wrap(dErrors.CodeInternal, "list publishers", err)
	}

	s.metrics.RecordReport("s10")
	return BuildS10(year, rows, pubs, histories(rows)), nil
}

func (s *Service) yearMeetings(ctx context.Context, year int) ([]*attendance.Attendance, error) {
	start, end := serviceyear.Bounds(year)
	meetings, err := s.attendance.ListRange(ctx, start, end)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list attendance", err)
	}
	return meetings, nil
}

func (s *Service) territories(ctx context.Context) (int, error) {
	if s.settings == nil {
		return 0, nil
	}
	n, err := s.settings.Int(ctx, "territories", 0)
	if err != nil {
		return 0, dErrors.Wrap(dErrors.CodeInternal, "read territories setting", err)
	}
	return n, nil
}
