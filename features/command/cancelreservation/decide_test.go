package cancelreservation_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exlibris/core"
	"exlibris/features/command/cancelreservation"
)

func Test_Decide_Success_CancelsUnsatisfiedReservation(t *testing.T) {
	// arrange
	bookID := uuid.New()
	borrowerID := uuid.New()
	now := time.Now()

	events := []core.DomainEvent{
		core.BuildCopyAppended(bookID, uuid.New(), "shelf-G1", now.Add(-3*time.Hour)),
		core.BuildReservationAdded(bookID, borrowerID, now.Add(-time.Hour)),
	}

	command := cancelreservation.BuildCommand(bookID, borrowerID, now)

	// act
	result := cancelreservation.Decide(events, command)

	// assert
	require.True(t, result.HasEventsToAppend())
	require.Len(t, result.Events, 1)
	assert.NoError(t, result.HasError())

	event, ok := result.Events[0].(core.ReservationCanceled)
	require.True(t, ok)
	assert.False(t, event.WasSatisfied)
}

func Test_Decide_Success_CancelingSatisfiedReservationCarriesFlag(t *testing.T) {
	// arrange
	bookID := uuid.New()
	borrowerID := uuid.New()
	now := time.Now()

	events := []core.DomainEvent{
		core.BuildCopyAppended(bookID, uuid.New(), "shelf-G1", now.Add(-3*time.Hour)),
		core.BuildReservationAdded(bookID, borrowerID, now.Add(-2*time.Hour)),
		core.BuildBookReadyToPickup(bookID, borrowerID, now.Add(-time.Hour)),
	}

	command := cancelreservation.BuildCommand(bookID, borrowerID, now)

	// act
	result := cancelreservation.Decide(events, command)

	// assert - downstream reactors use the flag to re-trigger queue advancement
	require.True(t, result.HasEventsToAppend())

	event, ok := result.Events[0].(core.ReservationCanceled)
	require.True(t, ok)
	assert.True(t, event.WasSatisfied)
}

func Test_Decide_Error_WhenNoReservationExists(t *testing.T) {
	// arrange
	bookID := uuid.New()
	borrowerID := uuid.New()
	now := time.Now()

	command := cancelreservation.BuildCommand(bookID, borrowerID, now)

	// act
	result := cancelreservation.Decide(nil, command)

	// assert
	require.True(t, result.HasEventsToAppend())
	assert.True(t, result.Events[0].IsErrorEvent())
	assert.ErrorIs(t, result.HasError(), core.ErrNoSuchReservation)
}
