package satisfyreservation_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exlibris/core"
	"exlibris/features/command/satisfyreservation"
)

func Test_Decide_Success_TurnsVacantCopyIntoHold(t *testing.T) {
	// arrange
	bookID := uuid.New()
	borrowerID := uuid.New()
	now := time.Now()

	events := []core.DomainEvent{
		core.BuildCopyAppended(bookID, uuid.New(), "shelf-K1", now.Add(-2*time.Hour)),
		core.BuildReservationAdded(bookID, borrowerID, now.Add(-time.Hour)),
	}

	command := satisfyreservation.BuildCommand(bookID, borrowerID, now)

	// act
	result := satisfyreservation.Decide(events, command)

	// assert
	require.True(t, result.HasEventsToAppend())
	require.Len(t, result.Events, 1)
	assert.NoError(t, result.HasError())

	event, ok := result.Events[0].(core.BookReadyToPickup)
	require.True(t, ok)
	assert.Equal(t, borrowerID.String(), event.BorrowerID)
	assert.Equal(t, event.OccurredAt.Add(core.PickupPeriod), event.PickupDeadline)
}

func Test_Decide_Idempotent_OnRedeliveredTrigger(t *testing.T) {
	// arrange - the hold already exists, a redelivered trigger must do nothing
	bookID := uuid.New()
	borrowerID := uuid.New()
	now := time.Now()

	events := []core.DomainEvent{
		core.BuildCopyAppended(bookID, uuid.New(), "shelf-K1", now.Add(-3*time.Hour)),
		core.BuildReservationAdded(bookID, borrowerID, now.Add(-2*time.Hour)),
		core.BuildBookReadyToPickup(bookID, borrowerID, now.Add(-time.Hour)),
	}

	command := satisfyreservation.BuildCommand(bookID, borrowerID, now)

	// act
	result := satisfyreservation.Decide(events, command)

	// assert
	assert.False(t, result.HasEventsToAppend())
	assert.NoError(t, result.HasError())
}

func Test_Decide_Idempotent_WhenReservationGone(t *testing.T) {
	// arrange
	bookID := uuid.New()
	borrowerID := uuid.New()
	now := time.Now()

	events := []core.DomainEvent{
		core.BuildCopyAppended(bookID, uuid.New(), "shelf-K1", now.Add(-3*time.Hour)),
		core.BuildReservationAdded(bookID, borrowerID, now.Add(-2*time.Hour)),
		core.BuildReservationCanceled(bookID, borrowerID, false, now.Add(-time.Hour)),
	}

	command := satisfyreservation.BuildCommand(bookID, borrowerID, now)

	// act
	result := satisfyreservation.Decide(events, command)

	// assert
	assert.False(t, result.HasEventsToAppend())
}

func Test_Decide_Idempotent_WhenNoVacantCopyAnymore(t *testing.T) {
	// arrange - another writer took the copy between trigger and apply
	bookID := uuid.New()
	itemID := uuid.New()
	borrowerID := uuid.New()
	now := time.Now()

	events := []core.DomainEvent{
		core.BuildCopyAppended(bookID, itemID, "shelf-K1", now.Add(-3*time.Hour)),
		core.BuildReservationAdded(bookID, borrowerID, now.Add(-2*time.Hour)),
		core.BuildCopyBorrowed(bookID, itemID, uuid.New(), uuid.New(), now.Add(-time.Hour)),
	}

	command := satisfyreservation.BuildCommand(bookID, borrowerID, now)

	// act
	result := satisfyreservation.Decide(events, command)

	// assert
	assert.False(t, result.HasEventsToAppend())
}
