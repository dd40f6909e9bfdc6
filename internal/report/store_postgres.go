package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"secretario/internal/publisher"
	"secretario/pkg/platform/sentinel"
	txcontext "secretario/pkg/platform/tx"
)

// PostgresStore persists monthly reports.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const reportColumns = `
	id, publisher_id, month, submitted_month, participated, bible_courses,
	publisher_type_id, hours, supplementary_hours, notes, created_at, updated_at
`

// Upsert inserts a report or overwrites the mutable columns of the existing
// (publisher, month) row. Re-importing the same sheet is a no-op beyond
// updated_at.
func (s *PostgresStore) Upsert(ctx context.Context, r *Report) error {
	r.Normalize()
	query := `
		INSERT INTO reports (
			publisher_id, month, submitted_month, participated, bible_courses,
			publisher_type_id, hours, supplementary_hours, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		ON CONFLICT (publisher_id, month) DO UPDATE SET
			submitted_month = EXCLUDED.submitted_month,
			participated = EXCLUDED.participated,
			bible_courses = EXCLUDED.bible_courses,
			publisher_type_id = EXCLUDED.publisher_type_id,
			hours = EXCLUDED.hours,
			supplementary_hours = EXCLUDED.supplementary_hours,
			notes = EXCLUDED.notes,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`
	err := s.execer(ctx).QueryRowContext(ctx, query,
		r.PublisherID,
		r.Month,
		r.SubmittedMonth,
		r.Participated,
		r.BibleCourses,
		int(r.Type),
		r.Hours,
		r.SupplementaryHours,
		r.Notes,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert report: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByKey(ctx context.Context, publisherID int64, month time.Time) (*Report, error) {
	row := s.execer(ctx).QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE publisher_id = $1 AND month = $2`,
		publisherID, month)
	return scanReport(row)
}

func (s *PostgresStore) ListByMonth(ctx context.Context, month time.Time) ([]*Report, error) {
	return s.queryReports(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE month = $1 ORDER BY month, publisher_id`,
		month)
}

func (s *PostgresStore) ListByPublisherRange(ctx context.Context, publisherID int64, from, to time.Time) ([]*Report, error) {
	return s.queryReports(ctx,
		`SELECT `+reportColumns+` FROM reports
		 WHERE publisher_id = $1 AND month >= $2 AND month < $3
		 ORDER BY month`,
		publisherID, from, to)
}

func (s *PostgresStore) ListRange(ctx context.Context, from, to time.Time) ([]*Report, error) {
	return s.queryReports(ctx,
		`SELECT `+reportColumns+` FROM reports
		 WHERE month >= $1 AND month < $2
		 ORDER BY month, publisher_id`,
		from, to)
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// DeleteOlderThan removes reports whose month precedes the cutoff. Used by
// the retention sweep.
func (s *PostgresStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM reports WHERE month < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweep reports: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sweep reports: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) queryReports(ctx context.Context, query string, args ...any) ([]*Report, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var out []*Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*Report, error) {
	var (
		r     Report
		ptype int
	)
	err := row.Scan(
		&r.ID,
		&r.PublisherID,
		&r.Month,
		&r.SubmittedMonth,
		&r.Participated,
		&r.BibleCourses,
		&ptype,
		&r.Hours,
		&r.SupplementaryHours,
		&r.Notes,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan report: %w", err)
	}
	r.Type = publisher.Type(ptype)
	r.Month = r.Month.UTC()
	return &r, nil
}
