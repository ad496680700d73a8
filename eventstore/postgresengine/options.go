package postgresengine

import (
	"errors"

	"go.uber.org/zap"
)

// ErrEmptyTableName is returned when an empty event table name is configured.
var ErrEmptyTableName = errors.New("event table name must not be empty")

// Option configures an EventStore.
type Option func(*EventStore) error

// WithTableName overrides the default event table name.
func WithTableName(tableName string) Option {
	return func(es *EventStore) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		es.eventTableName = tableName
		return nil
	}
}

// WithLogger attaches a zap logger for query timing and error diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(es *EventStore) error {
		es.logger = logger
		return nil
	}
}
