package reservationqueue_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"exlibris/core"
	"exlibris/features/command/markbookavailable"
	"exlibris/features/command/satisfyreservation"
	"exlibris/features/query/bookinventory"
	"exlibris/process/reservationqueue"
	"exlibris/shell"
)

type fakeLookup struct {
	state core.InventoryState
	err   error
}

func (f *fakeLookup) Handle(_ context.Context, _ bookinventory.Query) (core.InventoryState, error) {
	return f.state, f.err
}

type fakeSatisfyHandler struct {
	commands []satisfyreservation.Command
	err      error
}

func (f *fakeSatisfyHandler) Handle(_ context.Context, command satisfyreservation.Command) (shell.HandlerResult, error) {
	f.commands = append(f.commands, command)
	return shell.HandlerResult{}, f.err
}

type fakeAnnounceHandler struct {
	commands []markbookavailable.Command
	err      error
}

func (f *fakeAnnounceHandler) Handle(_ context.Context, command markbookavailable.Command) (shell.HandlerResult, error) {
	f.commands = append(f.commands, command)
	return shell.HandlerResult{}, f.err
}

func newSatisfierUnderTest(
	state core.InventoryState,
	now time.Time,
) (*reservationqueue.Satisfier, *fakeSatisfyHandler, *fakeAnnounceHandler) {

	satisfy := &fakeSatisfyHandler{}
	announce := &fakeAnnounceHandler{}

	s := reservationqueue.NewSatisfier(
		&fakeLookup{state: state},
		satisfy,
		announce,
		zap.NewNop(),
		reservationqueue.WithClock(func() time.Time { return now }),
	)

	return s, satisfy, announce
}

func Test_React_SatisfiesHeadOfQueueOnReturn(t *testing.T) {
	// arrange
	bookID := uuid.New()
	itemID := uuid.New()
	borrower := uuid.New()
	first := uuid.New()
	second := uuid.New()
	now := time.Now()

	state := core.ProjectInventory([]core.DomainEvent{
		core.BuildCopyAppended(bookID, itemID, "shelf", now.Add(-5*time.Hour)),
		core.BuildCopyBorrowed(bookID, itemID, uuid.New(), borrower, now.Add(-4*time.Hour)),
		core.BuildReservationAdded(bookID, first, now.Add(-3*time.Hour)),
		core.BuildReservationAdded(bookID, second, now.Add(-2*time.Hour)),
		core.BuildCopyReturned(bookID, itemID, borrower, now.Add(-time.Minute)),
	})

	s, satisfy, announce := newSatisfierUnderTest(state, now)

	// act
	err := s.React(context.Background(), core.BuildCopyReturned(bookID, itemID, borrower, now.Add(-time.Minute)))

	// assert - the oldest unsatisfied reservation wins
	require.NoError(t, err)
	require.Len(t, satisfy.commands, 1)
	assert.Equal(t, first, satisfy.commands[0].BorrowerID)
	assert.Empty(t, announce.commands)
}

func Test_React_AnnouncesAvailabilityWhenNobodyWaits(t *testing.T) {
	// arrange
	bookID := uuid.New()
	itemID := uuid.New()
	borrower := uuid.New()
	now := time.Now()

	state := core.ProjectInventory([]core.DomainEvent{
		core.BuildCopyAppended(bookID, itemID, "shelf", now.Add(-3*time.Hour)),
		core.BuildCopyBorrowed(bookID, itemID, uuid.New(), borrower, now.Add(-2*time.Hour)),
		core.BuildCopyReturned(bookID, itemID, borrower, now.Add(-time.Minute)),
	})

	s, satisfy, announce := newSatisfierUnderTest(state, now)

	// act
	err := s.React(context.Background(), core.BuildCopyReturned(bookID, itemID, borrower, now.Add(-time.Minute)))

	// assert
	require.NoError(t, err)
	assert.Empty(t, satisfy.commands)
	require.Len(t, announce.commands, 1)
	assert.Equal(t, bookID, announce.commands[0].BookID)
}

func Test_React_DoesNothingOnRedeliveryAfterAnnouncement(t *testing.T) {
	// arrange - availability already announced, a redelivered trigger is a no-op
	bookID := uuid.New()
	itemID := uuid.New()
	borrower := uuid.New()
	now := time.Now()

	state := core.ProjectInventory([]core.DomainEvent{
		core.BuildCopyAppended(bookID, itemID, "shelf", now.Add(-3*time.Hour)),
		core.BuildCopyBorrowed(bookID, itemID, uuid.New(), borrower, now.Add(-2*time.Hour)),
		core.BuildCopyReturned(bookID, itemID, borrower, now.Add(-time.Hour)),
		core.BuildBookBecameAvailable(bookID, 1, now.Add(-time.Minute)),
	})

	s, satisfy, announce := newSatisfierUnderTest(state, now)

	// act
	err := s.React(context.Background(), core.BuildCopyReturned(bookID, itemID, borrower, now.Add(-time.Hour)))

	// assert
	require.NoError(t, err)
	assert.Empty(t, satisfy.commands)
	assert.Empty(t, announce.commands)
}

func Test_React_DoesNothingWithoutVacancy(t *testing.T) {
	// arrange - sole copy is earmarked by an unexpired hold
	bookID := uuid.New()
	itemID := uuid.New()
	held := uuid.New()
	waiting := uuid.New()
	now := time.Now()

	state := core.ProjectInventory([]core.DomainEvent{
		core.BuildCopyAppended(bookID, itemID, "shelf", now.Add(-4*time.Hour)),
		core.BuildReservationAdded(bookID, held, now.Add(-3*time.Hour)),
		core.BuildReservationAdded(bookID, waiting, now.Add(-2*time.Hour)),
		core.BuildBookReadyToPickup(bookID, held, now.Add(-time.Hour)),
	})

	s, satisfy, announce := newSatisfierUnderTest(state, now)

	// act
	err := s.React(context.Background(), core.BuildCopyAppended(bookID, itemID, "shelf", now.Add(-4*time.Hour)))

	// assert
	require.NoError(t, err)
	assert.Empty(t, satisfy.commands)
	assert.Empty(t, announce.commands)
}

func Test_React_PickupExpiryPromotesNextInOrder(t *testing.T) {
	// arrange - the head's hold expired and was removed; the second entry is next
	bookID := uuid.New()
	itemID := uuid.New()
	expired := uuid.New()
	second := uuid.New()
	now := time.Now()

	state := core.ProjectInventory([]core.DomainEvent{
		core.BuildCopyAppended(bookID, itemID, "shelf", now.Add(-5*time.Hour)),
		core.BuildReservationAdded(bookID, expired, now.Add(-4*time.Hour)),
		core.BuildReservationAdded(bookID, second, now.Add(-3*time.Hour)),
		core.BuildBookReadyToPickup(bookID, expired, now.Add(-2*time.Hour)),
		core.BuildReservationPickUpPeriodExpired(bookID, expired, now.Add(-time.Minute)),
	})

	s, satisfy, _ := newSatisfierUnderTest(state, now)

	// act
	err := s.React(context.Background(), core.BuildReservationPickUpPeriodExpired(bookID, expired, now.Add(-time.Minute)))

	// assert
	require.NoError(t, err)
	require.Len(t, satisfy.commands, 1)
	assert.Equal(t, second, satisfy.commands[0].BorrowerID)
}

func Test_React_IgnoresCancellationOfUnsatisfiedReservation(t *testing.T) {
	// arrange
	bookID := uuid.New()
	now := time.Now()

	state := core.ProjectInventory([]core.DomainEvent{
		core.BuildCopyAppended(bookID, uuid.New(), "shelf", now.Add(-time.Hour)),
	})

	s, satisfy, announce := newSatisfierUnderTest(state, now)

	// act
	err := s.React(context.Background(),
		core.BuildReservationCanceled(bookID, uuid.New(), false, now))

	// assert - no lookup-driven action at all
	require.NoError(t, err)
	assert.Empty(t, satisfy.commands)
	assert.Empty(t, announce.commands)
}

func Test_React_SatisfiedCancellationRetriggersScan(t *testing.T) {
	// arrange - canceling a satisfied reservation frees its hold
	bookID := uuid.New()
	itemID := uuid.New()
	canceled := uuid.New()
	waiting := uuid.New()
	now := time.Now()

	state := core.ProjectInventory([]core.DomainEvent{
		core.BuildCopyAppended(bookID, itemID, "shelf", now.Add(-5*time.Hour)),
		core.BuildReservationAdded(bookID, canceled, now.Add(-4*time.Hour)),
		core.BuildReservationAdded(bookID, waiting, now.Add(-3*time.Hour)),
		core.BuildBookReadyToPickup(bookID, canceled, now.Add(-2*time.Hour)),
		core.BuildReservationCanceled(bookID, canceled, true, now.Add(-time.Minute)),
	})

	s, satisfy, _ := newSatisfierUnderTest(state, now)

	// act
	err := s.React(context.Background(),
		core.BuildReservationCanceled(bookID, canceled, true, now.Add(-time.Minute)))

	// assert
	require.NoError(t, err)
	require.Len(t, satisfy.commands, 1)
	assert.Equal(t, waiting, satisfy.commands[0].BorrowerID)
}

func Test_React_MissingInventoryIsFatal(t *testing.T) {
	// arrange
	bookID := uuid.New()
	now := time.Now()

	s, _, _ := newSatisfierUnderTest(core.InventoryState{}, now)

	// act
	err := s.React(context.Background(), core.BuildCopyReturned(bookID, uuid.New(), uuid.New(), now))

	// assert
	assert.ErrorIs(t, err, reservationqueue.ErrInventoryNotFound)
}

func Test_React_RacedSatisfyRejectionIsDroppedAndCounted(t *testing.T) {
	// arrange - someone else already consumed the reservation, the corrective
	// command comes back rejected
	bookID := uuid.New()
	itemID := uuid.New()
	borrower := uuid.New()
	waiting := uuid.New()
	now := time.Now()

	state := core.ProjectInventory([]core.DomainEvent{
		core.BuildCopyAppended(bookID, itemID, "shelf", now.Add(-5*time.Hour)),
		core.BuildReservationAdded(bookID, waiting, now.Add(-3*time.Hour)),
	})

	s, satisfy, announce := newSatisfierUnderTest(state, now)
	satisfy.err = fmt.Errorf("BookReadyToPickup: %w", core.ErrNoSuchReservation)

	droppedBefore := promtestutil.ToFloat64(
		shell.CoordinatorReactionsTotal.WithLabelValues("reservation_satisfier", "dropped_rejection"))

	// act
	err := s.React(context.Background(), core.BuildCopyReturned(bookID, itemID, borrower, now.Add(-time.Minute)))

	// assert - rejection means "already fixed", never an error, never a retry
	require.NoError(t, err)
	require.Len(t, satisfy.commands, 1)
	assert.Empty(t, announce.commands)

	droppedAfter := promtestutil.ToFloat64(
		shell.CoordinatorReactionsTotal.WithLabelValues("reservation_satisfier", "dropped_rejection"))
	assert.Equal(t, droppedBefore+1, droppedAfter)
}
