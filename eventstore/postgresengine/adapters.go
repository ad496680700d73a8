package postgresengine

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

// dbRows abstracts result iteration over the supported drivers.
type dbRows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// dbAdapter abstracts query execution over the supported drivers.
type dbAdapter interface {
	Query(ctx context.Context, sqlQuery string) (dbRows, error)
	Exec(ctx context.Context, sqlQuery string) (rowsAffected int64, err error)
}

/*
 * pgxpool adapter
 */

type pgxAdapter struct {
	pool *pgxpool.Pool
}

func (a pgxAdapter) Query(ctx context.Context, sqlQuery string) (dbRows, error) {
	rows, err := a.pool.Query(ctx, sqlQuery)
	if err != nil {
		return nil, err
	}

	return pgxRows{rows: rows}, nil
}

func (a pgxAdapter) Exec(ctx context.Context, sqlQuery string) (int64, error) {
	tag, err := a.pool.Exec(ctx, sqlQuery)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

type pgxRows struct {
	rows interface {
		Next() bool
		Scan(dest ...any) error
		Close()
		Err() error
	}
}

func (r pgxRows) Next() bool             { return r.rows.Next() }
func (r pgxRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r pgxRows) Err() error             { return r.rows.Err() }

func (r pgxRows) Close() error {
	r.rows.Close()
	return nil
}

/*
 * sqlx adapter (lib/pq driver)
 */

type sqlxAdapter struct {
	db *sqlx.DB
}

func (a sqlxAdapter) Query(ctx context.Context, sqlQuery string) (dbRows, error) {
	rows, err := a.db.QueryContext(ctx, sqlQuery)
	if err != nil {
		return nil, err
	}

	return sqlRows{rows: rows}, nil
}

func (a sqlxAdapter) Exec(ctx context.Context, sqlQuery string) (int64, error) {
	result, err := a.db.ExecContext(ctx, sqlQuery)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

type sqlRows struct {
	rows *sql.Rows
}

func (r sqlRows) Next() bool             { return r.rows.Next() }
func (r sqlRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r sqlRows) Close() error           { return r.rows.Close() }
func (r sqlRows) Err() error             { return r.rows.Err() }
