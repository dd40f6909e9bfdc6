package importer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"secretario/internal/platform/metrics"
	"secretario/internal/publisher"
	"secretario/internal/report"
	"secretario/pkg/platform/sentinel"
	"secretario/pkg/platform/tx"
)

// Spreadsheet column headers as the congregation's sheets name them.
const (
	colName          = "Nombre"
	colSex           = "Sexo"
	colBirthDate     = "Fecha Nacimiento"
	colBaptismDate   = "Fecha Bautismo"
	colGroup         = "Grupo"
	colPrivilege     = "Privilegio"
	colType          = "Tipo Publicador"
	colAnointed      = "Ungido"
	colPhone         = "Teléfono"
	colAddress       = "Dirección"
	colMonth         = "Mes"
	colParticipated  = "Participó"
	colHours         = "Horas"
	colSupplementary = "Horas Adicionales"
	colCourses       = "Cursos Bíblicos"
	colNotes         = "Notas"
)

// footerMarker flags the spreadsheet's totals footer; such rows are always
// dropped without error.
const footerMarker = "Total"

const lookupConcurrency = 8

// Service reconciles parsed rows into the stores. All writes of one run
// share a transaction; parse failures only cost their own row.
type Service struct {
	db         *sql.DB
	publishers publisher.Store
	reports    report.Store
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewService(db *sql.DB, publishers publisher.Store, reports report.Store, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{db: db, publishers: publishers, reports: reports, metrics: m, logger: logger}
}

// inTx wraps fn in a transaction when a database is attached. Memory-backed
// stores run fn directly.
func (s *Service) inTx(ctx context.Context, fn func(context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return tx.Run(ctx, s.db, fn)
}

// ReconcilePublishers merges a publishers sheet into the store. Each row
// either updates the publisher matched by name or inserts a new one.
func (s *Service) ReconcilePublishers(ctx context.Context, rows []Row, progress Progress) (Summary, error) {
	s.metrics.RecordImport()
	var summary Summary

	type entry struct {
		row int
		pub *publisher.Publisher
	}
	var entries []entry
	for i, row := range rows {
		n := i + 1
		name := row[colName]
		if name == footerMarker {
			summary.Skipped++
			s.metrics.RecordImportRow("skipped")
			continue
		}
		p, err := parsePublisher(row)
		if err != nil {
			summary.Errors = append(summary.Errors, RowError{Row: n, Message: err.Error()})
			s.metrics.RecordImportRow("failed")
			continue
		}
		entries = append(entries, entry{row: n, pub: p})
	}

	err := s.inTx(ctx, func(ctx context.Context) error {
		for i, e := range entries {
			if err := s.publishers.Upsert(ctx, e.pub); err != nil {
				return fmt.Errorf("row %d: upsert publisher: %w", e.row, err)
			}
			summary.Imported++
			s.metrics.RecordImportRow("imported")
			progress.report((i+1)*100/len(entries), fmt.Sprintf("publicadores %d/%d", i+1, len(entries)))
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	s.log(ctx, "publishers import reconciled", summary)
	progress.report(100, "publicadores listos")
	return summary, nil
}

// ReconcileReports merges a monthly-reports sheet into the store. Rows whose
// publisher cannot be resolved by name are skipped, not failed; the sheet's
// author fixes the publishers sheet and re-runs.
func (s *Service) ReconcileReports(ctx context.Context, rows []Row, progress Progress) (Summary, error) {
	s.metrics.RecordImport()
	var summary Summary

	type entry struct {
		row    int
		given  string
		family string
		rep    *report.Report
	}
	var entries []entry
	names := map[[2]string]int64{}
	for i, row := range rows {
		n := i + 1
		name := row[colName]
		if name == footerMarker {
			summary.Skipped++
			s.metrics.RecordImportRow("skipped")
			continue
		}
		given, family := publisher.SplitDisplayName(name)
		rep, err := parseReport(row)
		if err != nil {
			summary.Errors = append(summary.Errors, RowError{Row: n, Message: err.Error()})
			s.metrics.RecordImportRow("failed")
			continue
		}
		names[[2]string{given, family}] = 0
		entries = append(entries, entry{row: n, given: given, family: family, rep: rep})
	}

	// Name lookups touch disjoint rows, so they run in parallel ahead of the
	// write transaction.
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)
	for key := range names {
		g.Go(func() error {
			p, err := s.publishers.FindByName(gctx, key[0], key[1])
			if err != nil {
				if errors.Is(err, sentinel.ErrNotFound) {
					return nil
				}
				return fmt.Errorf("resolve %q: %w", key[1]+", "+key[0], err)
			}
			mu.Lock()
			names[key] = p.ID
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	err := s.inTx(ctx, func(ctx context.Context) error {
		for i, e := range entries {
			id := names[[2]string{e.given, e.family}]
			if id == 0 {
				summary.Skipped++
				s.metrics.RecordImportRow("skipped")
				continue
			}
			e.rep.PublisherID = id
			if err := s.reports.Upsert(ctx, e.rep); err != nil {
				return fmt.Errorf("row %d: upsert report: %w", e.row, err)
			}
			summary.Imported++
			s.metrics.RecordImportRow("imported")
			progress.report((i+1)*100/len(entries), fmt.Sprintf("informes %d/%d", i+1, len(entries)))
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	s.log(ctx, "reports import reconciled", summary)
	progress.report(100, "informes listos")
	return summary, nil
}

func (s *Service) log(ctx context.Context, msg string, summary Summary) {
	if s.logger == nil {
		return
	}
	s.logger.InfoContext(ctx, msg,
		"imported", summary.Imported,
		"skipped", summary.Skipped,
		"errors", len(summary.Errors))
}

func parsePublisher(row Row) (*publisher.Publisher, error) {
	given, family := publisher.SplitDisplayName(row[colName])
	p := &publisher.Publisher{
		GivenName:  given,
		FamilyName: family,
		Sex:        publisher.Sex(strings.ToUpper(row[colSex])),
		Privilege:  publisher.ParsePrivilege(row[colPrivilege]),
		Type:       publisher.ParseType(row[colType]),
		Anointed:   parseBool(row[colAnointed]),
		Phone:      row[colPhone],
		Address:    row[colAddress],
	}
	var err error
	if p.Group, err = parseCount(row[colGroup]); err != nil {
		return nil, fmt.Errorf("grupo: %w", err)
	}
	if p.BirthDate, err = parseDate(row[colBirthDate]); err != nil {
		return nil, fmt.Errorf("fecha nacimiento: %w", err)
	}
	if p.BaptismDate, err = parseDate(row[colBaptismDate]); err != nil {
		return nil, fmt.Errorf("fecha bautismo: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func parseReport(row Row) (*report.Report, error) {
	monthCell := row[colMonth]
	if monthCell == "" {
		return nil, fmt.Errorf("mes vacío")
	}
	month, err := parseDate(monthCell)
	if err != nil {
		return nil, fmt.Errorf("mes: %w", err)
	}

	r := &report.Report{
		Month:        *month,
		Participated: parseBool(row[colParticipated]),
		Type:         publisher.ParseType(row[colType]),
		Notes:        row[colNotes],
	}
	if r.Hours, err = parseCount(row[colHours]); err != nil {
		return nil, fmt.Errorf("horas: %w", err)
	}
	if r.SupplementaryHours, err = parseCount(row[colSupplementary]); err != nil {
		return nil, fmt.Errorf("horas adicionales: %w", err)
	}
	if r.BibleCourses, err = parseCount(row[colCourses]); err != nil {
		return nil, fmt.Errorf("cursos: %w", err)
	}
	// Stray hours on non-pioneer rows appear in historical sheets; drop them
	// instead of failing the row.
	if !r.Type.ReportsHours() {
		r.Hours = 0
		r.SupplementaryHours = 0
	}
	r.Normalize()
	return r, nil
}

func parseBool(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "sí", "si", "s", "x", "1", "true", "yes":
		return true
	default:
		return false
	}
}

func parseCount(cell string) (int, error) {
	if cell == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(cell)
	if err != nil {
		return 0, fmt.Errorf("número inválido %q", cell)
	}
	if n < 0 {
		return 0, fmt.Errorf("número negativo %q", cell)
	}
	return n, nil
}

// dateLayouts covers ISO dates, year-month cells and the default numeric
// format excelize renders date cells with.
var dateLayouts = []string{"2006-01-02", "2006-01", "01-02-06", "2/1/2006", "02/01/2006"}

func parseDate(cell string) (*time.Time, error) {
	if cell == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("fecha inválida %q", cell)
}
