// Package postgresengine implements the eventstore surface on PostgreSQL.
//
// Events live in one append-only table; a dynamic stream is whatever an
// eventstore.Filter selects from it. Optimistic concurrency works without
// locks: the insert is conditional on the stream's max sequence number still
// being the one observed at query time, so a lost race simply inserts zero
// rows and surfaces as eventstore.ErrConcurrencyConflict.
package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"exlibris/eventstore"
)

const (
	defaultEventTableName = "events"

	colEventType      = "event_type"
	colOccurredAt     = "occurred_at"
	colPayload        = "payload"
	colMetadata       = "metadata"
	colSequenceNumber = "sequence_number"

	cteContext  = "context"
	aliasMaxSeq = "max_seq"

	dialectPostgres = "postgres"
	castText        = "?::text"
	castTimestamp   = "?::timestamp with time zone"
	castJsonb       = "?::jsonb"
)

// EventStore queries and appends events for dynamic event streams on PostgreSQL.
type EventStore struct {
	db             dbAdapter
	eventTableName string
	logger         *zap.Logger
}

// NewEventStoreFromPGXPool creates a new EventStore using a pgxpool.Pool with optional configuration.
func NewEventStoreFromPGXPool(pool *pgxpool.Pool, options ...Option) (EventStore, error) {
	if pool == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(pgxAdapter{pool: pool}, options...)
}

// NewEventStoreFromSQLX creates a new EventStore using a sqlx.DB with optional configuration.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(sqlxAdapter{db: db}, options...)
}

func newEventStore(db dbAdapter, options ...Option) (EventStore, error) {
	es := EventStore{
		db:             db,
		eventTableName: defaultEventTableName,
	}

	for _, option := range options {
		if err := option(&es); err != nil {
			return EventStore{}, err
		}
	}

	return es, nil
}

// Query retrieves the events matching the filter in sequence order, together
// with the stream's max sequence number at the time of the query.
func (es EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	sqlQuery, buildErr := es.buildSelectQuery(filter)
	if buildErr != nil {
		return nil, 0, buildErr
	}

	start := time.Now()
	rows, queryErr := es.db.Query(ctx, sqlQuery)
	if queryErr != nil {
		es.logError("querying events failed", queryErr, sqlQuery)
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, queryErr)
	}
	defer es.closeRows(rows)

	eventStream, maxSequenceNumber, scanErr := es.scanRows(rows)
	if scanErr != nil {
		return nil, 0, scanErr
	}

	es.logDebug("query completed",
		zap.Int("event_count", len(eventStream)),
		zap.Duration("duration", time.Since(start)))

	return eventStream, maxSequenceNumber, nil
}

// Append attempts to append one or multiple events onto the stream selected by
// the filter, expecting the stream not to have advanced past
// expectedMaxSequenceNumber since the preceding Query. The filter must be the
// same one used for that Query.
func (es EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	allEvents := eventstore.StorableEvents{event}
	allEvents = append(allEvents, additionalEvents...)

	sqlQuery, buildErr := es.buildInsertQuery(allEvents, filter, expectedMaxSequenceNumber)
	if buildErr != nil {
		return buildErr
	}

	rowsAffected, execErr := es.db.Exec(ctx, sqlQuery)
	if execErr != nil {
		es.logError("appending events failed", execErr, sqlQuery)
		return errors.Join(eventstore.ErrAppendingEventsFailed, execErr)
	}

	if rowsAffected < int64(len(allEvents)) {
		es.logDebug("concurrency conflict detected",
			zap.Int("expected_events", len(allEvents)),
			zap.Int64("rows_affected", rowsAffected),
			zap.Uint("expected_sequence", expectedMaxSequenceNumber))

		return eventstore.ErrConcurrencyConflict
	}

	return nil
}

func (es EventStore) buildSelectQuery(filter eventstore.Filter) (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.eventTableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Order(goqu.I(colSequenceNumber).Asc())

	if whereClause, ok := buildWhereClause(filter); ok {
		selectStmt = selectStmt.Where(whereClause)
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// buildInsertQuery builds a single conditional INSERT ... SELECT statement:
// the new rows are only inserted while the stream's max sequence number still
// equals the expected one.
func (es EventStore) buildInsertQuery(
	events eventstore.StorableEvents,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (string, error) {

	builder := goqu.Dialect(dialectPostgres)

	cteStmt := builder.
		From(es.eventTableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq))

	if whereClause, ok := buildWhereClause(filter); ok {
		cteStmt = cteStmt.Where(whereClause)
	}

	valueStatements := make([]*goqu.SelectDataset, len(events))
	for i, e := range events {
		valueStatements[i] = builder.
			Select(
				goqu.L(castText, e.EventType).As(colEventType),
				goqu.L(castTimestamp, e.OccurredAt).As(colOccurredAt),
				goqu.L(castJsonb, e.PayloadJSON).As(colPayload),
				goqu.L(castJsonb, e.MetadataJSON).As(colMetadata),
			)
	}

	valuesStmt := valueStatements[0]
	for i := 1; i < len(valueStatements); i++ {
		valuesStmt = valuesStmt.UnionAll(valueStatements[i])
	}

	insertStmt := builder.
		Insert(es.eventTableName).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		With(cteContext, cteStmt).
		With("vals", valuesStmt).
		FromQuery(
			builder.From(cteContext, goqu.T("vals")).
				Select(
					fmt.Sprintf("vals.%s", colEventType),
					fmt.Sprintf("vals.%s", colOccurredAt),
					fmt.Sprintf("vals.%s", colPayload),
					fmt.Sprintf("vals.%s", colMetadata),
				).
				Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber))),
		)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func buildWhereClause(filter eventstore.Filter) (exp.Expression, bool) {
	expressions := make([]exp.Expression, 0)

	if eventTypes := filter.EventTypes(); len(eventTypes) > 0 {
		typeExpressions := make([]exp.Expression, 0, len(eventTypes))
		for _, eventType := range eventTypes {
			typeExpressions = append(typeExpressions, goqu.Ex{colEventType: eventType})
		}
		expressions = append(expressions, goqu.Or(typeExpressions...))
	}

	if predicates := filter.Predicates(); len(predicates) > 0 {
		predicateExpressions := make([]exp.Expression, 0, len(predicates))
		for _, predicate := range predicates {
			predicateExpressions = append(
				predicateExpressions,
				goqu.L(fmt.Sprintf(`%s @> '{"%s": "%s"}'`, colPayload, predicate.Key(), predicate.Val())),
			)
		}
		expressions = append(expressions, goqu.Or(predicateExpressions...))
	}

	if len(expressions) == 0 {
		return nil, false
	}

	return goqu.And(expressions...), true
}

func (es EventStore) scanRows(rows dbRows) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	eventStream := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	var (
		eventType      string
		occurredAt     time.Time
		payload        []byte
		metadata       []byte
		sequenceNumber uint
	)

	for rows.Next() {
		if scanErr := rows.Scan(&eventType, &occurredAt, &payload, &metadata, &sequenceNumber); scanErr != nil {
			es.logError("scanning row failed", scanErr, "")
			return nil, 0, errors.Join(eventstore.ErrScanningDBRowFailed, scanErr)
		}

		storableEvent, buildErr := eventstore.BuildStorableEvent(eventType, occurredAt, payload, metadata)
		if buildErr != nil {
			return nil, 0, buildErr
		}

		eventStream = append(eventStream, storableEvent)
		// rows come back in sequence order, the last one carries the max
		maxSequenceNumber = sequenceNumber
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, rowsErr)
	}

	return eventStream, maxSequenceNumber, nil
}

func (es EventStore) closeRows(rows dbRows) {
	if closeErr := rows.Close(); closeErr != nil {
		es.logDebug("closing rows failed", zap.Error(closeErr))
	}
}

func (es EventStore) logError(msg string, err error, sqlQuery string) {
	if es.logger == nil {
		return
	}

	fields := []zap.Field{zap.Error(err)}
	if sqlQuery != "" {
		fields = append(fields, zap.String("query", sqlQuery))
	}
	es.logger.Error(msg, fields...)
}

func (es EventStore) logDebug(msg string, fields ...zap.Field) {
	if es.logger == nil {
		return
	}

	es.logger.Debug(msg, fields...)
}
