// Package postgreswrapper provides a small harness for integration tests that
// run against a real Postgres instance. The engine under test is selected with
// the EVENTSTORE_TEST_ENGINE environment variable ("pgx" or "sqlx") and the
// database with EVENTSTORE_TEST_DSN; tests are skipped when no DSN is set.
package postgreswrapper

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"exlibris/eventstore/postgresengine"
	"exlibris/shell/config"
)

const (
	enginePGXPool = "pgx"
	engineSQLX    = "sqlx"
)

// Wrapper abstracts over the supported database engines in integration tests.
type Wrapper interface {
	GetEventStore() postgresengine.EventStore
	CleanUp(t testing.TB)
	Close()
}

type pgxPoolWrapper struct {
	pool *pgxpool.Pool
	es   postgresengine.EventStore
}

func (w *pgxPoolWrapper) GetEventStore() postgresengine.EventStore {
	return w.es
}

func (w *pgxPoolWrapper) CleanUp(t testing.TB) {
	_, err := w.pool.Exec(context.Background(), "TRUNCATE TABLE events RESTART IDENTITY")
	require.NoError(t, err, "error cleaning up the events table")
}

func (w *pgxPoolWrapper) Close() {
	w.pool.Close()
}

type sqlxWrapper struct {
	db *sqlx.DB
	es postgresengine.EventStore
}

func (w *sqlxWrapper) GetEventStore() postgresengine.EventStore {
	return w.es
}

func (w *sqlxWrapper) CleanUp(t testing.TB) {
	_, err := w.db.Exec("TRUNCATE TABLE events RESTART IDENTITY")
	require.NoError(t, err, "error cleaning up the events table")
}

func (w *sqlxWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// CreateWrapper connects to the test database and builds an event store with
// the engine selected via the environment. It skips the calling test when
// EVENTSTORE_TEST_DSN is not set, so the unit test suite stays self-contained.
func CreateWrapper(t testing.TB, options ...postgresengine.Option) Wrapper {
	dsn := os.Getenv("EVENTSTORE_TEST_DSN")
	if dsn == "" {
		t.Skip("EVENTSTORE_TEST_DSN not set, skipping integration test")
	}

	engineTypeFromEnv := strings.ToLower(os.Getenv("EVENTSTORE_TEST_ENGINE"))

	switch engineTypeFromEnv {
	case enginePGXPool, "":
		pool, err := config.PostgresPGXPool(context.Background(), dsn)
		require.NoError(t, err, "error connecting to DB pool in test setup")

		es, err := postgresengine.NewEventStoreFromPGXPool(pool, options...)
		require.NoError(t, err, "error creating event store")

		return &pgxPoolWrapper{pool: pool, es: es}

	case engineSQLX:
		db, err := config.PostgresSQLX(context.Background(), dsn)
		require.NoError(t, err, "error connecting to DB in test setup")

		es, err := postgresengine.NewEventStoreFromSQLX(db, options...)
		require.NoError(t, err, "error creating event store")

		return &sqlxWrapper{db: db, es: es}

	default:
		panic(fmt.Sprintf("unsupported engine type from env: %s", engineTypeFromEnv))
	}
}
