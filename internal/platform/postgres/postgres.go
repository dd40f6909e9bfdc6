package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Migrate applies the schema. Every statement is idempotent so startup can
// run it unconditionally.
func Migrate(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS privileges (
			id   INT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS publisher_types (
			id   INT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS publishers (
			id                BIGSERIAL PRIMARY KEY,
			given_name        TEXT NOT NULL,
			family_name       TEXT NOT NULL,
			birth_date        DATE,
			baptism_date      DATE,
			group_number      INT NOT NULL DEFAULT 0,
			group_role        INT NOT NULL DEFAULT 0,
			sex               TEXT NOT NULL DEFAULT 'M',
			privilege_id      INT NOT NULL DEFAULT 0,
			publisher_type_id INT NOT NULL DEFAULT 1,
			anointed          BOOLEAN NOT NULL DEFAULT FALSE,
			deaf              BOOLEAN NOT NULL DEFAULT FALSE,
			blind             BOOLEAN NOT NULL DEFAULT FALSE,
			incarcerated      BOOLEAN NOT NULL DEFAULT FALSE,
			phone             TEXT NOT NULL DEFAULT '',
			address           TEXT NOT NULL DEFAULT '',
			created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (given_name, family_name)
		)`,
		`CREATE TABLE IF NOT EXISTS reports (
			id                BIGSERIAL PRIMARY KEY,
			publisher_id      BIGINT NOT NULL REFERENCES publishers(id) ON DELETE CASCADE,
			month             DATE NOT NULL,
			submitted_month   DATE,
			participated      BOOLEAN NOT NULL DEFAULT FALSE,
			bible_courses     INT NOT NULL DEFAULT 0,
			publisher_type_id INT NOT NULL DEFAULT 1,
			hours             INT NOT NULL DEFAULT 0,
			supplementary_hours INT NOT NULL DEFAULT 0,
			notes             TEXT NOT NULL DEFAULT '',
			created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (publisher_id, month)
		)`,
		`CREATE INDEX IF NOT EXISTS reports_month_idx ON reports (month)`,
		`CREATE TABLE IF NOT EXISTS attendance (
			id         BIGSERIAL PRIMARY KEY,
			held_on    DATE NOT NULL UNIQUE,
			attendees  INT NOT NULL DEFAULT 0,
			notes      TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			value_type TEXT NOT NULL DEFAULT 'string',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'secretary',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS outbox (
			id             UUID PRIMARY KEY,
			aggregate_type TEXT NOT NULL,
			aggregate_id   TEXT NOT NULL,
			event_type     TEXT NOT NULL,
			payload        JSONB NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
			published_at   TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS outbox_unpublished_idx ON outbox (created_at) WHERE published_at IS NULL`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
