package importer

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"

	"secretario/internal/publisher"
	"secretario/internal/report"
)

type ReconcilerSuite struct {
	suite.Suite
	ctx        context.Context
	publishers *publisher.InMemoryStore
	reports    *report.InMemoryStore
	service    *Service
}

func (s *ReconcilerSuite) SetupTest() {
	s.ctx = context.Background()
	s.publishers = publisher.NewInMemoryStore()
	s.reports = report.NewInMemoryStore()
	s.service = NewService(nil, s.publishers, s.reports, nil, nil)
}

func TestReconcilerSuite(t *testing.T) {
	suite.Run(t, new(ReconcilerSuite))
}

func (s *ReconcilerSuite) TestPublisherRowCreatesResolvedPublisher() {
	rows := []Row{{
		colName:      "Pérez, Juan",
		colSex:       "M",
		colType:      "Precursor regular",
		colPrivilege: "Anciano",
		colGroup:     "2",
	}}

	summary, err := s.service.ReconcilePublishers(s.ctx, rows, nil)
	s.Require().NoError(err)
	s.Equal(1, summary.Imported)
	s.Empty(summary.Errors)

	p, err := s.publishers.FindByName(s.ctx, "Juan", "Pérez")
	s.Require().NoError(err)
	s.Equal("Pérez", p.FamilyName)
	s.Equal("Juan", p.GivenName)
	s.Equal(publisher.TypeRegularPioneer, p.Type)
	s.Equal(publisher.PrivilegeElder, p.Privilege)
	s.Equal(2, p.Group)
}

func (s *ReconcilerSuite) TestFooterRowAlwaysSkipped() {
	rows := []Row{
		{colName: "Total", colHours: "482"},
	}

	pubSummary, err := s.service.ReconcilePublishers(s.ctx, rows, nil)
	s.Require().NoError(err)
	s.Equal(1, pubSummary.Skipped)
	s.Empty(pubSummary.Errors)

	repSummary, err := s.service.ReconcileReports(s.ctx, rows, nil)
	s.Require().NoError(err)
	s.Equal(1, repSummary.Skipped)
	s.Empty(repSummary.Errors)

	all, err := s.publishers.List(s.ctx, publisher.Filter{})
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *ReconcilerSuite) TestReportRowsMatchByNameAndMonth() {
	_, err := s.service.ReconcilePublishers(s.ctx, []Row{
		{colName: "Pérez, Juan", colSex: "M", colType: "Publicador"},
	}, nil)
	s.Require().NoError(err)

	rows := []Row{
		{colName: "Pérez, Juan", colMonth: "2025-03-01", colParticipated: "Sí", colCourses: "2"},
		// Unknown publisher: skipped, never an error.
		{colName: "García, Ana", colMonth: "2025-03-01", colParticipated: "Sí"},
	}

	summary, err := s.service.ReconcileReports(s.ctx, rows, nil)
	s.Require().NoError(err)
	s.Equal(1, summary.Imported)
	s.Equal(1, summary.Skipped)
	s.Empty(summary.Errors)

	p, err := s.publishers.FindByName(s.ctx, "Juan", "Pérez")
	s.Require().NoError(err)
	r, err := s.reports.FindByKey(s.ctx, p.ID, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.True(r.Participated)
	s.Equal(2, r.BibleCourses)
	s.Zero(r.Hours, "stray hours never survive on a non-pioneer row")
}

func (s *ReconcilerSuite) TestIdempotentReimport() {
	pubRows := []Row{{colName: "Pérez, Juan", colSex: "M", colType: "Precursor regular"}}
	repRows := []Row{{
		colName:          "Pérez, Juan",
		colMonth:         "2025-03-01",
		colParticipated:  "Sí",
		colType:          "Precursor regular",
		colHours:         "40",
		colSupplementary: "20",
	}}

	for run := 0; run < 2; run++ {
		_, err := s.service.ReconcilePublishers(s.ctx, pubRows, nil)
		s.Require().NoError(err)
		_, err = s.service.ReconcileReports(s.ctx, repRows, nil)
		s.Require().NoError(err)
	}

	pubs, err := s.publishers.List(s.ctx, publisher.Filter{})
	s.Require().NoError(err)
	s.Require().Len(pubs, 1, "re-import must not duplicate the publisher")

	reports, err := s.reports.ListByMonth(s.ctx, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.Require().Len(reports, 1, "re-import must not duplicate the report")
	s.Equal(40, reports[0].Hours)
	s.Equal(20, reports[0].SupplementaryHours)
}

func (s *ReconcilerSuite) TestBadRowsAreCollectedNotFatal() {
	rows := []Row{
		{colName: "Pérez, Juan", colMonth: "marzo"},
		{colName: "SinComa"},
	}

	pubSummary, err := s.service.ReconcilePublishers(s.ctx, []Row{{colName: "SinComa"}}, nil)
	s.Require().NoError(err)
	s.Len(pubSummary.Errors, 1)
	s.Zero(pubSummary.Imported)

	repSummary, err := s.service.ReconcileReports(s.ctx, rows, nil)
	s.Require().NoError(err)
	s.Len(repSummary.Errors, 2, "bad month and missing month both fail their row only")
}

func (s *ReconcilerSuite) TestProgressCallbackIsOptionalButCalled() {
	var calls int
	progress := func(percent int, message string) {
		calls++
		s.LessOrEqual(percent, 100)
		s.NotEmpty(message)
	}

	_, err := s.service.ReconcilePublishers(s.ctx, []Row{
		{colName: "Pérez, Juan", colSex: "M"},
		{colName: "García, Ana", colSex: "F"},
	}, progress)
	s.Require().NoError(err)
	s.GreaterOrEqual(calls, 2)
}

func TestReadSheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	data := [][]any{
		{"Nombre", "Mes", "Horas"},
		{"Pérez, Juan", "2025-03-01", 12},
		{},
		{"Total", "", 12},
	}
	for i, line := range data {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	rows, err := ReadSheet(&buf, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (blank line dropped)", len(rows))
	}
	if rows[0]["Nombre"] != "Pérez, Juan" || rows[0]["Horas"] != "12" {
		t.Fatalf("unexpected first row: %v", rows[0])
	}
	if rows[1]["Nombre"] != "Total" {
		t.Fatalf("footer row should survive decoding: %v", rows[1])
	}
}
