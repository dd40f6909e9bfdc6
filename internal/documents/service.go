package documents

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"secretario/internal/derive"
	"secretario/internal/platform/metrics"
	dErrors "secretario/pkg/domain-errors"
)

const renderConcurrency = 8

// BatchError records one card that failed to render. The batch carries on.
type BatchError struct {
	Publisher string `json:"publisher"`
	Message   string `json:"message"`
}

// Batch is the outcome of a bundle render.
type Batch struct {
	Archive  []byte       `json:"-"`
	Rendered int          `json:"rendered"`
	Errors   []BatchError `json:"errors,omitempty"`
}

// Service renders derived forms to files.
type Service struct {
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewService(m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{metrics: m, logger: logger}
}

// Card renders a single S-21 card.
func (s *Service) Card(_ context.Context, card derive.Card) ([]byte, error) {
	out, err := RenderCard(card)
	if err != nil {
		s.metrics.RecordDocument("s21", "failed")
		return nil, err
	}
	s.metrics.RecordDocument("s21", "rendered")
	return out, nil
}

// CardsBundle renders every card into one zip archive. A malformed card
// costs only its own entry; its error is collected and the batch continues.
func (s *Service) CardsBundle(ctx context.Context, cards []derive.Card) (Batch, error) {
	if len(cards) == 0 {
		return Batch{}, dErrors.New(dErrors.CodeNotFound, "no cards to render")
	}

	rendered := make([][]byte, len(cards))
	failures := make([]error, len(cards))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(renderConcurrency)
	for i := range cards {
		g.Go(func() error {
			out, err := RenderCard(cards[i])
			if err != nil {
				failures[i] = err
				return nil
			}
			rendered[i] = out
			return nil
		})
	}
	_ = g.Wait()

	var batch Batch
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i, card := range cards {
		if failures[i] != nil {
			batch.Errors = append(batch.Errors, BatchError{
				Publisher: card.Publisher.DisplayName(),
				Message:   dErrors.MessageOf(failures[i]),
			})
			s.metrics.RecordDocument("s21", "failed")
			continue
		}
		name := fmt.Sprintf("S-21 %s.fdf", sanitizeFilename(card.Publisher.DisplayName()))
		w, err := zw.Create(name)
		if err != nil {
			return Batch{}, dErrors.Wrap(dErrors.CodeInternal, "write archive", err)
		}
		if _, err := w.Write(rendered[i]); err != nil {
			return Batch{}, dErrors.Wrap(dErrors.CodeInternal, "write archive", err)
		}
		batch.Rendered++
		s.metrics.RecordDocument("s21", "rendered")
	}
	if err := zw.Close(); err != nil {
		return Batch{}, dErrors.Wrap(dErrors.CodeInternal, "close archive", err)
	}
	batch.Archive = buf.Bytes()

	if s.logger != nil {
		s.logger.InfoContext(ctx, "card bundle rendered",
			"rendered", batch.Rendered, "failed", len(batch.Errors))
	}
	return batch, nil
}

// AttendanceWorkbook exports the S-88 summary as a spreadsheet.
func (s *Service) AttendanceWorkbook(_ context.Context, summary derive.AttendanceSummary) ([]byte, error) {
	out, err := renderAttendanceWorkbook(summary)
	if err != nil {
		s.metrics.RecordDocument("s88", "failed")
		return nil, dErrors.Wrap(dErrors.CodeInternal, "render attendance workbook", err)
	}
	s.metrics.RecordDocument("s88", "rendered")
	return out, nil
}

// WeekendWorkbook exports the S-3 week-by-week sheet as a spreadsheet.
func (s *Service) WeekendWorkbook(_ context.Context, sheet derive.S3) ([]byte, error) {
	out, err := renderWeekendWorkbook(sheet)
	if err != nil {
		s.metrics.RecordDocument("s3", "failed")
		return nil, dErrors.Wrap(dErrors.CodeInternal, "render weekend workbook", err)
	}
	s.metrics.RecordDocument("s3", "rendered")
	return out, nil
}

func sanitizeFilename(name string) string {
	r := strings.NewReplacer("/", "-", `\`, "-", ":", "-", "*", "", "?", "", `"`, "", "<", "", ">", "", "|", "")
	return r.Replace(name)
}
