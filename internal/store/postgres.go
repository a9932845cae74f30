package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/a3tai/mcp-planning-hours/internal/schedule"
)

// DBTX is the subset of *pgxpool.Pool used by PostgresStore.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresStore keeps records in the weekly_hours table.
type PostgresStore struct {
	db DBTX
}

// NewPostgresStore wraps an open pool or connection.
func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres connects to databaseURL, applies pending migrations and
// returns the store together with the pool to close on shutdown.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, *pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("pinging database: %w", err)
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return NewPostgresStore(pool), pool, nil
}

const upsertWeekSQL = `
	INSERT INTO weekly_hours (id, person, week, year, hours, import_id, recorded_at)
	VALUES ($1, $2, $3, $4, $5, $6, now())
	ON CONFLICT (id) DO UPDATE SET
		person = EXCLUDED.person,
		week = EXCLUDED.week,
		year = EXCLUDED.year,
		hours = EXCLUDED.hours,
		import_id = EXCLUDED.import_id,
		recorded_at = now()
`

func (s *PostgresStore) UpsertWeeks(ctx context.Context, person string, importID uuid.UUID, weeks schedule.WeeklyHours) (int, error) {
	if len(weeks) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}

	for _, week := range weeks.Weeks() {
		_, err := tx.Exec(ctx, upsertWeekSQL,
			RecordID(person, week),
			person,
			string(week),
			week.Year(),
			schedule.Round2(weeks[week]),
			importID,
		)
		if err != nil {
			_ = tx.Rollback(ctx)
			return 0, fmt.Errorf("upserting week %s for %s: %w", week, person, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing weeks for %s: %w", person, err)
	}
	return len(weeks), nil
}

func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]Record, error) {
	query := `SELECT id, person, week, hours, import_id, recorded_at FROM weekly_hours`

	var (
		conds []string
		args  []any
	)
	if filter.Person != "" {
		args = append(args, filter.Person)
		conds = append(conds, fmt.Sprintf("person = $%d", len(args)))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		conds = append(conds, fmt.Sprintf("year = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY person, week"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing weekly hours: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r    Record
			week string
		)
		if err := rows.Scan(&r.ID, &r.Person, &week, &r.Hours, &r.ImportID, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning weekly hours: %w", err)
		}
		r.Week = schedule.WeekID(week)
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *PostgresStore) Persons(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT DISTINCT person FROM weekly_hours ORDER BY person`)
	if err != nil {
		return nil, fmt.Errorf("listing persons: %w", err)
	}
	defer rows.Close()

	var persons []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

func (s *PostgresStore) DeletePerson(ctx context.Context, person string) (int, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM weekly_hours WHERE person = $1`, person)
	if err != nil {
		return 0, fmt.Errorf("deleting %s: %w", person, err)
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	return int(tag.RowsAffected()), nil
}
