package reference

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore persists the lookup tables.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// SeedDefaults inserts the canonical rows, leaving existing ones untouched.
// Startup runs it unconditionally.
func (s *PostgresStore) SeedDefaults(ctx context.Context) error {
	if err := s.seed(ctx, "privileges", defaultPrivileges()); err != nil {
		return err
	}
	return s.seed(ctx, "publisher_types", defaultPublisherTypes())
}

func (s *PostgresStore) seed(ctx context.Context, table string, entries []Entry) error {
	for _, e := range entries {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO `+table+` (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			e.ID, e.Name)
		if err != nil {
			return fmt.Errorf("seed %s: %w", table, err)
		}
	}
	return nil
}

func (s *PostgresStore) ListPrivileges(ctx context.Context) ([]Entry, error) {
	return s.list(ctx, "privileges")
}

func (s *PostgresStore) ListPublisherTypes(ctx context.Context) ([]Entry, error) {
	return s.list(ctx, "publisher_types")
}

func (s *PostgresStore) list(ctx context.Context, table string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM `+table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}
