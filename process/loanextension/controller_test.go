package loanextension_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"exlibris/core"
	"exlibris/features/command/allowloansextension"
	"exlibris/features/command/forbidloansextension"
	"exlibris/features/query/bookinventory"
	"exlibris/process/loanextension"
	"exlibris/shell"
)

type fakeLookup struct {
	state core.InventoryState
	err   error
}

func (f *fakeLookup) Handle(_ context.Context, _ bookinventory.Query) (core.InventoryState, error) {
	return f.state, f.err
}

type fakeForbidHandler struct {
	commands []forbidloansextension.Command
	err      error
}

func (f *fakeForbidHandler) Handle(_ context.Context, command forbidloansextension.Command) (shell.HandlerResult, error) {
	f.commands = append(f.commands, command)
	return shell.HandlerResult{}, f.err
}

type fakeAllowHandler struct {
	commands []allowloansextension.Command
	err      error
}

func (f *fakeAllowHandler) Handle(_ context.Context, command allowloansextension.Command) (shell.HandlerResult, error) {
	f.commands = append(f.commands, command)
	return shell.HandlerResult{}, f.err
}

func newControllerUnderTest(state core.InventoryState) (*loanextension.Controller, *fakeForbidHandler, *fakeAllowHandler) {
	forbid := &fakeForbidHandler{}
	allow := &fakeAllowHandler{}

	c := loanextension.NewController(&fakeLookup{state: state}, forbid, allow, zap.NewNop())

	return c, forbid, allow
}

func Test_React_FirstReservationForbidsOldestLoan(t *testing.T) {
	// arrange - one loan, one new reservation: diff = 1 - 0 = 1
	bookID := uuid.New()
	itemID := uuid.New()
	borrower := uuid.New()
	reserver := uuid.New()
	now := time.Now()

	state := core.ProjectInventory([]core.DomainEvent{
		core.BuildCopyAppended(bookID, itemID, "shelf", now.Add(-3*time.Hour)),
		core.BuildCopyBorrowed(bookID, itemID, uuid.New(), borrower, now.Add(-2*time.Hour)),
		core.BuildReservationAdded(bookID, reserver, now.Add(-time.Minute)),
	})

	c, forbid, allow := newControllerUnderTest(state)

	// act
	err := c.React(context.Background(), core.BuildReservationAdded(bookID, reserver, now.Add(-time.Minute)))

	// assert
	require.NoError(t, err)
	require.Len(t, forbid.commands, 1)
	assert.Equal(t, []core.BorrowerIDString{borrower.String()}, forbid.commands[0].BorrowerIDs)
	assert.Empty(t, allow.commands)
}

func Test_React_ForbidsOldestLoansFirst(t *testing.T) {
	// arrange - three loans, two reservations: the two oldest loans lose extension
	bookID := uuid.New()
	items := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	borrowers := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	now := time.Now()

	events := []core.DomainEvent{}
	for i := range items {
		events = append(events,
			core.BuildCopyAppended(bookID, items[i], "shelf", now.Add(-10*time.Hour)),
			core.BuildCopyBorrowed(bookID, items[i], uuid.New(), borrowers[i], now.Add(time.Duration(i-9)*time.Hour)),
		)
	}
	events = append(events,
		core.BuildReservationAdded(bookID, uuid.New(), now.Add(-2*time.Minute)),
		core.BuildReservationAdded(bookID, uuid.New(), now.Add(-time.Minute)),
	)

	state := core.ProjectInventory(events)
	c, forbid, _ := newControllerUnderTest(state)

	// act
	err := c.React(context.Background(), core.BuildReservationAdded(bookID, uuid.New(), now))

	// assert
	require.NoError(t, err)
	require.Len(t, forbid.commands, 1)
	assert.Equal(t,
		[]core.BorrowerIDString{borrowers[0].String(), borrowers[1].String()},
		forbid.commands[0].BorrowerIDs)
}

func Test_React_CancellationRestoresMostRecentlyForbidden(t *testing.T) {
	// arrange - two forbidden loans, queue emptied: diff = 0 - 2 = -2
	bookID := uuid.New()
	items := []uuid.UUID{uuid.New(), uuid.New()}
	borrowers := []uuid.UUID{uuid.New(), uuid.New()}
	canceled := uuid.New()
	now := time.Now()

	events := []core.DomainEvent{}
	for i := range items {
		events = append(events,
			core.BuildCopyAppended(bookID, items[i], "shelf", now.Add(-10*time.Hour)),
			core.BuildCopyBorrowed(bookID, items[i], uuid.New(), borrowers[i], now.Add(time.Duration(i-9)*time.Hour)),
		)
	}
	events = append(events,
		core.BuildLoansExtensionForbidden(bookID,
			[]core.BorrowerIDString{borrowers[0].String(), borrowers[1].String()}, now.Add(-time.Hour)),
	)

	state := core.ProjectInventory(events)
	c, forbid, allow := newControllerUnderTest(state)

	// act
	err := c.React(context.Background(), core.BuildReservationCanceled(bookID, canceled, false, now))

	// assert - last forbidden, first restored
	require.NoError(t, err)
	assert.Empty(t, forbid.commands)
	require.Len(t, allow.commands, 1)
	assert.Equal(t,
		[]core.BorrowerIDString{borrowers[1].String(), borrowers[0].String()},
		allow.commands[0].BorrowerIDs)
}

func Test_React_IgnoresSatisfiedCancellation(t *testing.T) {
	// arrange - a satisfied-then-canceled reservation is hold bookkeeping,
	// not backlog change
	bookID := uuid.New()
	now := time.Now()

	c, forbid, allow := newControllerUnderTest(core.InventoryState{Exists: true})

	// act
	err := c.React(context.Background(), core.BuildReservationCanceled(bookID, uuid.New(), true, now))

	// assert
	require.NoError(t, err)
	assert.Empty(t, forbid.commands)
	assert.Empty(t, allow.commands)
}

func Test_React_BalancedStateDispatchesNothing(t *testing.T) {
	// arrange - one unsatisfied reservation, one already-forbidden loan: diff = 0
	bookID := uuid.New()
	itemID := uuid.New()
	borrower := uuid.New()
	now := time.Now()

	state := core.ProjectInventory([]core.DomainEvent{
		core.BuildCopyAppended(bookID, itemID, "shelf", now.Add(-4*time.Hour)),
		core.BuildCopyBorrowed(bookID, itemID, uuid.New(), borrower, now.Add(-3*time.Hour)),
		core.BuildReservationAdded(bookID, uuid.New(), now.Add(-2*time.Hour)),
		core.BuildLoansExtensionForbidden(bookID, []core.BorrowerIDString{borrower.String()}, now.Add(-time.Hour)),
	})

	c, forbid, allow := newControllerUnderTest(state)

	// act
	err := c.React(context.Background(), core.BuildReservationAdded(bookID, uuid.New(), now.Add(-2*time.Hour)))

	// assert
	require.NoError(t, err)
	assert.Empty(t, forbid.commands)
	assert.Empty(t, allow.commands)
}

func Test_React_PickupSatisfactionShrinksBacklog(t *testing.T) {
	// arrange - the head reservation got satisfied, backlog shrinks to zero
	// while one loan is still forbidden: diff = 0 - 1 = -1
	bookID := uuid.New()
	items := []uuid.UUID{uuid.New(), uuid.New()}
	borrower := uuid.New()
	reserver := uuid.New()
	now := time.Now()

	state := core.ProjectInventory([]core.DomainEvent{
		core.BuildCopyAppended(bookID, items[0], "shelf", now.Add(-5*time.Hour)),
		core.BuildCopyAppended(bookID, items[1], "shelf", now.Add(-5*time.Hour)),
		core.BuildCopyBorrowed(bookID, items[0], uuid.New(), borrower, now.Add(-4*time.Hour)),
		core.BuildReservationAdded(bookID, reserver, now.Add(-3*time.Hour)),
		core.BuildLoansExtensionForbidden(bookID, []core.BorrowerIDString{borrower.String()}, now.Add(-2*time.Hour)),
		core.BuildBookReadyToPickup(bookID, reserver, now.Add(-time.Minute)),
	})

	c, _, allow := newControllerUnderTest(state)

	// act
	err := c.React(context.Background(), core.BuildBookReadyToPickup(bookID, reserver, now.Add(-time.Minute)))

	// assert
	require.NoError(t, err)
	require.Len(t, allow.commands, 1)
	assert.Equal(t, []core.BorrowerIDString{borrower.String()}, allow.commands[0].BorrowerIDs)
}

func Test_React_MissingInventoryIsFatal(t *testing.T) {
	// arrange
	bookID := uuid.New()
	now := time.Now()

	c, _, _ := newControllerUnderTest(core.InventoryState{})

	// act
	err := c.React(context.Background(), core.BuildReservationAdded(bookID, uuid.New(), now))

	// assert
	assert.ErrorIs(t, err, loanextension.ErrInventoryNotFound)
}
