package postgresengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exlibris/core"
	"exlibris/eventstore"
	"exlibris/eventstore/postgresengine"
	"exlibris/shell"
	"exlibris/testutil/postgreswrapper"
)

func toStorable(t testing.TB, event core.DomainEvent) eventstore.StorableEvent {
	t.Helper()

	uid := uuid.New()
	storable, err := shell.StorableEventsFrom(core.DomainEvents{event}, shell.BuildEventMetadata(uid, uid, uid))
	require.NoError(t, err, "error in converting domain event to storable event")

	return storable[0]
}

func queryMaxSequenceNumber(
	t testing.TB,
	ctx context.Context,
	es postgresengine.EventStore,
	filter eventstore.Filter,
) eventstore.MaxSequenceNumberUint {

	t.Helper()

	_, maxSequenceNumber, err := es.Query(ctx, filter)
	require.NoError(t, err, "error in querying the event store")

	return maxSequenceNumber
}

func Test_Append_When_NoEvent_MatchesTheFilter_BeforeAppend(t *testing.T) {
	// setup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := postgreswrapper.CreateWrapper(t)
	defer wrapper.Close()
	es := wrapper.GetEventStore()

	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	wrapper.CleanUp(t)
	bookID := uuid.New()
	filter := shell.BuildInventoryEventFilter(bookID)
	maxSequenceNumberBeforeAppend := queryMaxSequenceNumber(t, ctx, es, filter)

	// act
	err := es.Append(
		ctx,
		filter,
		maxSequenceNumberBeforeAppend,
		toStorable(t, core.BuildCopyAppended(bookID, uuid.New(), "main shelf", fakeClock)),
	)

	// assert
	assert.NoError(t, err, "error in appending the event")
}

func Test_Append_When_SomeEvents_MatchTheFilter_BeforeAppend(t *testing.T) {
	// setup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := postgreswrapper.CreateWrapper(t)
	defer wrapper.Close()
	es := wrapper.GetEventStore()

	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	wrapper.CleanUp(t)
	bookID := uuid.New()
	itemID := uuid.New()
	filter := shell.BuildInventoryEventFilter(bookID)

	err := es.Append(ctx, filter, 0,
		toStorable(t, core.BuildCopyAppended(bookID, itemID, "main shelf", fakeClock)))
	require.NoError(t, err, "error in arranging test data")

	maxSequenceNumberBeforeAppend := queryMaxSequenceNumber(t, ctx, es, filter)

	// act
	fakeClock = fakeClock.Add(time.Second)
	appendErr := es.Append(
		ctx,
		filter,
		maxSequenceNumberBeforeAppend,
		toStorable(t, core.BuildCopyBorrowed(bookID, itemID, uuid.New(), uuid.New(), fakeClock)),
	)

	// assert
	assert.NoError(t, appendErr, "error in appending the event")
}

func Test_Append_When_A_ConcurrencyConflict_ShouldHappen(t *testing.T) {
	// setup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := postgreswrapper.CreateWrapper(t)
	defer wrapper.Close()
	es := wrapper.GetEventStore()

	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	wrapper.CleanUp(t)
	bookID := uuid.New()
	itemID := uuid.New()
	filter := shell.BuildInventoryEventFilter(bookID)

	err := es.Append(ctx, filter, 0,
		toStorable(t, core.BuildCopyAppended(bookID, itemID, "main shelf", fakeClock)))
	require.NoError(t, err, "error in arranging test data")

	maxSequenceNumberBeforeAppend := queryMaxSequenceNumber(t, ctx, es, filter)

	// concurrent append advances the stream past the observed sequence number
	fakeClock = fakeClock.Add(time.Second)
	err = es.Append(ctx, filter, maxSequenceNumberBeforeAppend,
		toStorable(t, core.BuildCopyBorrowed(bookID, itemID, uuid.New(), uuid.New(), fakeClock)))
	require.NoError(t, err, "error in arranging test data")

	// act
	fakeClock = fakeClock.Add(time.Second)
	appendErr := es.Append(
		ctx,
		filter,
		maxSequenceNumberBeforeAppend,
		toStorable(t, core.BuildCopyBorrowed(bookID, itemID, uuid.New(), uuid.New(), fakeClock)),
	)

	// assert
	assert.ErrorIs(t, appendErr, eventstore.ErrConcurrencyConflict)
}

func Test_Append_MultipleEvents_InOneCall(t *testing.T) {
	// setup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := postgreswrapper.CreateWrapper(t)
	defer wrapper.Close()
	es := wrapper.GetEventStore()

	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	wrapper.CleanUp(t)
	bookID := uuid.New()
	itemID := uuid.New()
	borrowerID := uuid.New()
	filter := shell.BuildInventoryEventFilter(bookID)

	err := es.Append(ctx, filter, 0,
		toStorable(t, core.BuildCopyAppended(bookID, itemID, "main shelf", fakeClock)))
	require.NoError(t, err, "error in arranging test data")

	err = es.Append(ctx, filter, 1,
		toStorable(t, core.BuildReservationAdded(bookID, borrowerID, fakeClock.Add(time.Second))))
	require.NoError(t, err, "error in arranging test data")

	// act - a borrow that also consumes the reservation appends two events atomically
	fakeClock = fakeClock.Add(2 * time.Second)
	appendErr := es.Append(
		ctx,
		filter,
		2,
		toStorable(t, core.BuildCopyBorrowed(bookID, itemID, uuid.New(), borrowerID, fakeClock)),
		toStorable(t, core.BuildReservationBecameLoan(bookID, borrowerID, fakeClock)),
	)

	// assert
	require.NoError(t, appendErr, "error in appending the events")

	storableEvents, maxSequenceNumber, queryErr := es.Query(ctx, filter)
	require.NoError(t, queryErr, "error in querying the event store")
	assert.Len(t, storableEvents, 4)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(4), maxSequenceNumber)
}

func Test_Query_ReturnsEventsInSequenceOrder_AndRoundTrips(t *testing.T) {
	// setup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := postgreswrapper.CreateWrapper(t)
	defer wrapper.Close()
	es := wrapper.GetEventStore()

	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	wrapper.CleanUp(t)
	bookID := uuid.New()
	otherBookID := uuid.New()
	itemID := uuid.New()
	borrowerID := uuid.New()
	loanID := uuid.New()
	filter := shell.BuildInventoryEventFilter(bookID)

	err := es.Append(ctx, shell.BuildInventoryEventFilter(otherBookID), 0,
		toStorable(t, core.BuildCopyAppended(otherBookID, uuid.New(), "annex", fakeClock)))
	require.NoError(t, err, "error in arranging test data")

	history := core.DomainEvents{
		core.BuildCopyAppended(bookID, itemID, "main shelf", fakeClock.Add(time.Second)),
		core.BuildCopyBorrowed(bookID, itemID, loanID, borrowerID, fakeClock.Add(2*time.Second)),
		core.BuildCopyReturned(bookID, itemID, borrowerID, fakeClock.Add(3*time.Second)),
	}

	expectedMaxSequenceNumber := eventstore.MaxSequenceNumberUint(1) // the other book's event
	for _, event := range history {
		err = es.Append(ctx, filter, queryMaxSequenceNumber(t, ctx, es, filter), toStorable(t, event))
		require.NoError(t, err, "error in arranging test data")
		expectedMaxSequenceNumber++
	}

	// act
	storableEvents, maxSequenceNumber, queryErr := es.Query(ctx, filter)

	// assert - only this book's events come back, in append order
	require.NoError(t, queryErr, "error in querying the event store")
	require.Len(t, storableEvents, len(history))
	assert.Equal(t, expectedMaxSequenceNumber, maxSequenceNumber)

	domainEvents, unmarshalErr := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, unmarshalErr, "error in unmarshaling the events")

	for i, event := range domainEvents {
		assert.Equal(t, history[i].IsEventType(), event.IsEventType())
		assert.Equal(t, bookID.String(), event.AffectsBook())
	}
}

func Test_NewEventStore_WithNilConnection_Fails(t *testing.T) {
	// act
	_, pgxErr := postgresengine.NewEventStoreFromPGXPool(nil)
	_, sqlxErr := postgresengine.NewEventStoreFromSQLX(nil)

	// assert
	assert.ErrorIs(t, pgxErr, eventstore.ErrNilDatabaseConnection)
	assert.ErrorIs(t, sqlxErr, eventstore.ErrNilDatabaseConnection)
}
