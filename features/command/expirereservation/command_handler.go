package expirereservation

import (
	"context"

	"github.com/google/uuid"

	"exlibris/core"
	"exlibris/eventstore"
	"exlibris/shell"
)

// EventStore defines the interface needed by the CommandHandler for event store operations.
type EventStore interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		event eventstore.StorableEvent,
		additionalEvents ...eventstore.StorableEvent,
	) error
}

// EventPublisher hands successfully appended events to in-process reactors.
type EventPublisher interface {
	Publish(events ...core.DomainEvent)
}

// CommandHandler orchestrates the complete command processing workflow:
// Query -> Unmarshal -> Decide -> Append, with retry on concurrency conflicts.
type CommandHandler struct {
	eventStore   EventStore
	publisher    EventPublisher
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithEventPublisher publishes appended events to the given publisher after a
// successful append, so reactive coordinators see them without polling.
func WithEventPublisher(publisher EventPublisher) Option {
	return func(h *CommandHandler) {
		h.publisher = publisher
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(eventStore EventStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		eventStore: eventStore,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
// Returns HandlerResult containing business outcomes and execution metadata for observability.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var isIdempotent bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, execErr := h.executeCommand(retryCtx, command)
		isIdempotent = idempotent

		return execErr
	}, h.retryOptions...)

	switch {
	case isIdempotent:
		shell.CommandsHandledTotal.WithLabelValues(command.CommandType(), "idempotent").Inc()
		return shell.NewIdempotentResult(retryMetrics), err

	case err != nil:
		outcome := "error"
		if core.IsRejection(err) {
			outcome = "rejected"
		}
		shell.CommandsHandledTotal.WithLabelValues(command.CommandType(), outcome).Inc()

		return shell.NewErrorResult(retryMetrics), err

	default:
		shell.CommandsHandledTotal.WithLabelValues(command.CommandType(), "success").Inc()
		return shell.NewSuccessResult(retryMetrics), nil
	}
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, error) {
	filter := shell.BuildInventoryEventFilter(command.BookID)

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return false, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return false, err
	}

	result := Decide(history, command)

	if !result.HasEventsToAppend() {
		return true, nil // idempotent success, nothing to append
	}

	uid := uuid.New()
	eventMetadata := shell.BuildEventMetadata(uid, uid, uid)

	eventsToAppend, marshalErr := shell.StorableEventsFrom(result.Events, eventMetadata)
	if marshalErr != nil {
		return false, marshalErr
	}

	appendErr := h.eventStore.Append(ctx, filter, maxSequenceNumber, eventsToAppend[0], eventsToAppend[1:]...)
	if appendErr != nil {
		return false, appendErr
	}

	if h.publisher != nil {
		h.publisher.Publish(result.Events...)
	}

	return false, result.HasError()
}
