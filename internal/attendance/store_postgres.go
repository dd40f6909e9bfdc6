package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"secretario/pkg/platform/sentinel"
	txcontext "secretario/pkg/platform/tx"
)

// PostgresStore persists meeting attendance.
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

// Upsert inserts or overwrites the count for one meeting date.
func (s *PostgresStore) Upsert(ctx context.Context, a *Attendance) error {
	a.Normalize()
	query := `
		INSERT INTO attendance (held_on, attendees, notes, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (held_on) DO UPDATE SET
			attendees = EXCLUDED.attendees,
			notes = EXCLUDED.notes,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`
	err := s.execer(ctx).QueryRowContext(ctx, query, a.HeldOn, a.Attendees, a.Notes).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByDate(ctx context.Context, heldOn time.Time) (*Attendance, error) {
	row := s.execer(ctx).QueryRowContext(ctx,
		`SELECT id, held_on, attendees, notes, created_at, updated_at
		 FROM attendance WHERE held_on = $1`, heldOn)
	return scanAttendance(row)
}

func (s *PostgresStore) ListRange(ctx context.Context, from, to time.Time) ([]*Attendance, error) {
	rows, err := s.execer(ctx).QueryContext(ctx,
		`SELECT id, held_on, attendees, notes, created_at, updated_at
		 FROM attendance WHERE held_on >= $1 AND held_on < $2
		 ORDER BY held_on`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var out []*Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM attendance WHERE held_on < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweep attendance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sweep attendance: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttendance(row rowScanner) (*Attendance, error) {
	var a Attendance
	err := row.Scan(&a.ID, &a.HeldOn, &a.Attendees, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan attendance: %w", err)
	}
	a.HeldOn = a.HeldOn.UTC()
	return &a, nil
}
