// Package maintenance removes report and attendance rows past the retention
// window. The branch office only asks for the current and previous service
// year, so anything older than two full years is disposable.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"secretario/internal/attendance"
	"secretario/internal/platform/metrics"
	"secretario/internal/report"
	"secretario/internal/serviceyear"
	dErrors "secretario/pkg/domain-errors"
)

const retainYears = 2

// Result reports what one sweep removed.
type Result struct {
	Cutoff            time.Time `json:"cutoff"`
	ReportsDeleted    int64     `json:"reports_deleted"`
	AttendanceDeleted int64     `json:"attendance_deleted"`
}

// Auditor matches the audit recorder's surface.
type Auditor interface {
	Record(ctx context.Context, action, subject string)
}

// Service runs retention sweeps on demand.
type Service struct {
	reports    report.Store
	attendance attendance.Store
	auditor    Auditor
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewService(reports report.Store, att attendance.Store, auditor Auditor, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{reports: reports, attendance: att, auditor: auditor, metrics: m, logger: logger}
}

// Sweep deletes rows more than retainYears older than now. The cutoff is
// month-aligned so a monthly report is only removed once the whole month
// has passed the threshold; nothing younger than two years ever goes.
func (s *Service) Sweep(ctx context.Context, now time.Time) (Result, error) {
	cutoff := serviceyear.FirstOfMonth(now.AddDate(-retainYears, 0, 0))
	res := Result{Cutoff: cutoff}

	var err error
	if res.ReportsDeleted, err = s.reports.DeleteOlderThan(ctx, cutoff); err != nil {
		return Result{}, dErrors.Wrap(dErrors.CodeInternal, "sweep reports", err)
	}
	if res.AttendanceDeleted, err = s.attendance.DeleteOlderThan(ctx, cutoff); err != nil {
		return Result{}, dErrors.Wrap(dErrors.CodeInternal, "sweep attendance", err)
	}

	s.metrics.RecordSweep(res.ReportsDeleted + res.AttendanceDeleted)
	if s.auditor != nil {
		s.auditor.Record(ctx, "maintenance.swept", cutoff.Format("2006-01"))
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "retention sweep completed",
			"cutoff", cutoff.Format("2006-01-02"),
			"reports_deleted", res.ReportsDeleted,
			"attendance_deleted", res.AttendanceDeleted)
	}
	return res, nil
}
