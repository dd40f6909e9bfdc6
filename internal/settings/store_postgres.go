package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"secretario/pkg/platform/sentinel"
)

// PostgresStore persists settings rows.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (*Setting, error) {
	var out Setting
	err := s.db.QueryRowContext(ctx,
		`SELECT key, value, value_type, updated_at FROM settings WHERE key = $1`, key).
		Scan(&out.Key, &out.Value, &out.ValueType, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return &out, nil
}

func (s *PostgresStore) Set(ctx context.Context, setting *Setting) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO settings (key, value, value_type, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			value_type = EXCLUDED.value_type,
			updated_at = now()
		RETURNING updated_at`,
		setting.Key, setting.Value, string(setting.ValueType)).
		Scan(&setting.UpdatedAt)
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*Setting, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value, value_type, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var out []*Setting
	for rows.Next() {
		var setting Setting
		if err := rows.Scan(&setting.Key, &setting.Value, &setting.ValueType, &setting.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out = append(out, &setting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete setting: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete setting: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
