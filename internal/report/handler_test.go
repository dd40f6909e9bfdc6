package report

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"secretario/internal/publisher"
	"secretario/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	reports    *InMemoryStore
	publishers *publisher.InMemoryStore
	router     chi.Router
	juan       int64
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.reports = NewInMemoryStore()
	s.publishers = publisher.NewInMemoryStore()

	p := &publisher.Publisher{GivenName: "Juan", FamilyName: "Pérez", Sex: publisher.SexMale, Type: publisher.TypeRegularPioneer}
	s.Require().NoError(s.publishers.Upsert(context.Background(), p))
	s.juan = p.ID

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(NewService(s.reports, s.publishers, nil), logger)
	s.router = chi.NewRouter()
	handler.Register(s.router)
}

func (s *HandlerSuite) TestSaveAndListMonth() {
	body := map[string]any{
		"publisher_id": s.juan,
		"month":        time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
		"participated": true,
		"type":         int(publisher.TypeRegularPioneer),
		"hours":        55,
	}
	rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/reports/", body))
	s.Require().Equal(http.StatusOK, rr.Code)

	rr = testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/reports/month/2024-09", nil))
	s.Require().Equal(http.StatusOK, rr.Code)

	out := testutil.DecodeData[[]Report](s.T(), rr)
	s.Require().Len(out, 1)
	s.Equal(55, out[0].Hours)
}

func (s *HandlerSuite) TestSaveRejectsUnknownPublisher() {
	body := map[string]any{
		"publisher_id": int64(999),
		"month":        time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
		"participated": true,
		"type":         int(publisher.TypePublisher),
	}
	rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/reports/", body))

	s.Equal(http.StatusNotFound, rr.Code)
	s.Equal("not_found", testutil.DecodeErrorCode(s.T(), rr))
}

func (s *HandlerSuite) TestSaveDropsHoursForNonPioneers() {
	body := map[string]any{
		"publisher_id": s.juan,
		"month":        time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC),
		"participated": true,
		"type":         int(publisher.TypePublisher),
		"hours":        30,
	}
	rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/reports/", body))
	s.Require().Equal(http.StatusOK, rr.Code)

	saved := testutil.DecodeData[Report](s.T(), rr)
	s.Zero(saved.Hours)
}

func (s *HandlerSuite) TestMonthRejectsBadFormat() {
	rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/reports/month/septiembre", nil))

	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *HandlerSuite) TestEmptyMonthIsAnEmptyList() {
	rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/reports/month/2024-12", nil))

	s.Require().Equal(http.StatusOK, rr.Code)
	s.Empty(testutil.DecodeData[[]Report](s.T(), rr))
}

func (s *HandlerSuite) TestDelete() {
	r := &Report{PublisherID: s.juan, Month: time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC), Participated: true, Type: publisher.TypeRegularPioneer}
	s.Require().NoError(s.reports.Upsert(context.Background(), r))

	rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodDelete, "/reports/1", nil))
	s.Equal(http.StatusNoContent, rr.Code)

	rr = testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodDelete, "/reports/1", nil))
	s.Equal(http.StatusNotFound, rr.Code)
}
