package publisher

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"secretario/pkg/platform/sentinel"
	txcontext "secretario/pkg/platform/tx"
)

// PostgresStore persists publishers. Privilege, type and group role travel
// as their integer encodings only inside this file.
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

const publisherColumns = `
	id, given_name, family_name, birth_date, baptism_date,
	group_number, group_role, sex, privilege_id, publisher_type_id,
	anointed, deaf, blind, incarcerated, phone, address,
	created_at, updated_at
`

// Upsert inserts a publisher or, when the (given, family) pair already
// exists, overwrites the mutable columns in place. Identity columns and
// created_at are preserved.
func (s *PostgresStore) Upsert(ctx context.Context, p *Publisher) error {
	query := `
		INSERT INTO publishers (
			given_name, family_name, birth_date, baptism_date,
			group_number, group_role, sex, privilege_id, publisher_type_id,
			anointed, deaf, blind, incarcerated, phone, address,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now(), now())
		ON CONFLICT (given_name, family_name) DO UPDATE SET
			birth_date = EXCLUDED.birth_date,
			baptism_date = EXCLUDED.baptism_date,
			group_number = EXCLUDED.group_number,
			group_role = EXCLUDED.group_role,
			sex = EXCLUDED.sex,
			privilege_id = EXCLUDED.privilege_id,
			publisher_type_id = EXCLUDED.publisher_type_id,
			anointed = EXCLUDED.anointed,
			deaf = EXCLUDED.deaf,
			blind = EXCLUDED.blind,
			incarcerated = EXCLUDED.incarcerated,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`
	err := s.execer(ctx).QueryRowContext(ctx, query,
		p.GivenName,
		p.FamilyName,
		p.BirthDate,
		p.BaptismDate,
		p.Group,
		int(p.GroupRole),
		string(p.Sex),
		int(p.Privilege),
		int(p.Type),
		p.Anointed,
		p.Deaf,
		p.Blind,
		p.Incarcerated,
		p.Phone,
		p.Address,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert publisher: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*Publisher, error) {
	row := s.execer(ctx).QueryRowContext(ctx,
		`SELECT `+publisherColumns+` FROM publishers WHERE id = $1`, id)
	return scanPublisher(row)
}

func (s *PostgresStore) FindByName(ctx context.Context, given, family string) (*Publisher, error) {
	row := s.execer(ctx).QueryRowContext(ctx,
		`SELECT `+publisherColumns+` FROM publishers WHERE given_name = $1 AND family_name = $2`,
		given, family)
	return scanPublisher(row)
}

func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]*Publisher, error) {
	query := `SELECT ` + publisherColumns + ` FROM publishers
		WHERE ($1 = 0 OR group_number = $1)
		  AND ($2 = 0 OR publisher_type_id = $2)
		ORDER BY family_name, given_name`
	rows, err := s.execer(ctx).QueryContext(ctx, query, filter.Group, int(filter.Type))
	if err != nil {
		return nil, fmt.Errorf("list publishers: %w", err)
	}
	defer rows.Close()

	var out []*Publisher
	for rows.Next() {
		p, err := scanPublisher(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate publishers: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM publishers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete publisher: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete publisher: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPublisher(row rowScanner) (*Publisher, error) {
	var (
		p         Publisher
		groupRole int
		sex       string
		privilege int
		ptype     int
	)
	err := row.Scan(
		&p.ID,
		&p.GivenName,
		&p.FamilyName,
		&p.BirthDate,
		&p.BaptismDate,
		&p.Group,
		&groupRole,
		&sex,
		&privilege,
		&ptype,
		&p.Anointed,
		&p.Deaf,
		&p.Blind,
		&p.Incarcerated,
		&p.Phone,
		&p.Address,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan publisher: %w", err)
	}
	p.GroupRole = GroupRole(groupRole)
	p.Sex = Sex(sex)
	p.Privilege = Privilege(privilege)
	p.Type = Type(ptype)
	return &p, nil
}
