package borrowcopy_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exlibris/core"
	"exlibris/eventstore"
	"exlibris/features/command/borrowcopy"
	"exlibris/shell"
)

// fakeEventStore is an in-memory stand-in for the postgres engine. It can be
// primed to report a number of concurrency conflicts before accepting an
// append, to exercise the retry path.
type fakeEventStore struct {
	events    eventstore.StorableEvents
	appended  eventstore.StorableEvents
	conflicts int
}

func (f *fakeEventStore) Query(_ context.Context, _ eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {
	return f.events, eventstore.MaxSequenceNumberUint(len(f.events)), nil
}

func (f *fakeEventStore) Append(
	_ context.Context,
	_ eventstore.Filter,
	_ eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {
	if f.conflicts > 0 {
		f.conflicts--
		return eventstore.ErrConcurrencyConflict
	}

	f.appended = append(f.appended, event)
	f.appended = append(f.appended, additionalEvents...)
	f.events = append(f.events, event)
	f.events = append(f.events, additionalEvents...)

	return nil
}

func seedEvents(t *testing.T, events ...core.DomainEvent) eventstore.StorableEvents {
	t.Helper()

	uid := uuid.New()
	storable, err := shell.StorableEventsFrom(events, shell.BuildEventMetadata(uid, uid, uid))
	require.NoError(t, err)

	return storable
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	bookID := uuid.New()
	itemID := uuid.New()
	borrowerID := uuid.New()
	now := time.Now()

	es := &fakeEventStore{
		events: seedEvents(t, core.BuildCopyAppended(bookID, itemID, "shelf", now.Add(-time.Hour))),
	}
	handler := borrowcopy.NewCommandHandler(es)

	// act
	result, err := handler.Handle(context.Background(), borrowcopy.BuildCommand(bookID, itemID, borrowerID, now))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	require.Len(t, es.appended, 1)
	assert.Equal(t, core.CopyBorrowedEventType, es.appended[0].EventType)
}

func Test_CommandHandler_Handle_RetriesOnConcurrencyConflict(t *testing.T) {
	// arrange
	bookID := uuid.New()
	itemID := uuid.New()
	borrowerID := uuid.New()
	now := time.Now()

	es := &fakeEventStore{
		events:    seedEvents(t, core.BuildCopyAppended(bookID, itemID, "shelf", now.Add(-time.Hour))),
		conflicts: 2,
	}
	handler := borrowcopy.NewCommandHandler(es,
		borrowcopy.WithRetryOptions(shell.WithBaseDelay(time.Millisecond)))

	// act
	result, err := handler.Handle(context.Background(), borrowcopy.BuildCommand(bookID, itemID, borrowerID, now))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, result.RetryAttempts)
	require.Len(t, es.appended, 1)
}

func Test_CommandHandler_Handle_Idempotent(t *testing.T) {
	// arrange - copy already borrowed by this borrower
	bookID := uuid.New()
	itemID := uuid.New()
	borrowerID := uuid.New()
	now := time.Now()

	es := &fakeEventStore{
		events: seedEvents(t,
			core.BuildCopyAppended(bookID, itemID, "shelf", now.Add(-2*time.Hour)),
			core.BuildCopyBorrowed(bookID, itemID, uuid.New(), borrowerID, now.Add(-time.Hour)),
		),
	}
	handler := borrowcopy.NewCommandHandler(es)

	// act
	result, err := handler.Handle(context.Background(), borrowcopy.BuildCommand(bookID, itemID, borrowerID, now))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Empty(t, es.appended)
}

func Test_CommandHandler_Handle_RejectionAppendsFailureEventAndReturnsError(t *testing.T) {
	// arrange - no such copy
	bookID := uuid.New()
	now := time.Now()

	es := &fakeEventStore{}
	handler := borrowcopy.NewCommandHandler(es)

	rejectedBefore := promtestutil.ToFloat64(
		shell.CommandsHandledTotal.WithLabelValues("BorrowCopy", "rejected"))

	// act
	_, err := handler.Handle(context.Background(),
		borrowcopy.BuildCommand(bookID, uuid.New(), uuid.New(), now))

	// assert - the rejection surfaces AND its failure event lands in the log
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNoSuchCopy)
	require.Len(t, es.appended, 1)
	assert.Equal(t, core.BorrowingCopyFailedEventType, es.appended[0].EventType)

	rejectedAfter := promtestutil.ToFloat64(
		shell.CommandsHandledTotal.WithLabelValues("BorrowCopy", "rejected"))
	assert.Equal(t, rejectedBefore+1, rejectedAfter)
}

func Test_CommandHandler_Handle_PublishesAppendedEvents(t *testing.T) {
	// arrange
	bookID := uuid.New()
	itemID := uuid.New()
	borrowerID := uuid.New()
	now := time.Now()

	es := &fakeEventStore{
		events: seedEvents(t, core.BuildCopyAppended(bookID, itemID, "shelf", now.Add(-time.Hour))),
	}

	published := &recordingPublisher{}
	handler := borrowcopy.NewCommandHandler(es, borrowcopy.WithEventPublisher(published))

	// act
	_, err := handler.Handle(context.Background(), borrowcopy.BuildCommand(bookID, itemID, borrowerID, now))

	// assert
	require.NoError(t, err)
	require.Len(t, published.events, 1)
	assert.Equal(t, core.CopyBorrowedEventType, published.events[0].IsEventType())
}

type recordingPublisher struct {
	events core.DomainEvents
}

func (r *recordingPublisher) Publish(events ...core.DomainEvent) {
	r.events = append(r.events, events...)
}
