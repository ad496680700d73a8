package writeoffcopy_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exlibris/core"
	"exlibris/features/command/writeoffcopy"
)

func Test_Decide_Success_WritesOffFreeCopy(t *testing.T) {
	// arrange
	bookID := uuid.New()
	itemID := uuid.New()
	now := time.Now()

	events := []core.DomainEvent{
		core.BuildCopyAppended(bookID, itemID, "shelf-B1", now.Add(-time.Hour)),
	}

	command := writeoffcopy.BuildCommand(bookID, itemID, "water damage", now)

	// act
	result := writeoffcopy.Decide(events, command)

	// assert
	require.True(t, result.HasEventsToAppend())
	require.Len(t, result.Events, 1)
	assert.NoError(t, result.HasError())

	event, ok := result.Events[0].(core.CopyWrittenOff)
	require.True(t, ok)
	assert.Equal(t, itemID.String(), event.ItemID)
	assert.Equal(t, "water damage", event.Reason)
}

func Test_Decide_Idempotent_WhenCopyAlreadyWrittenOff(t *testing.T) {
	// arrange
	bookID := uuid.New()
	itemID := uuid.New()
	now := time.Now()

	events := []core.DomainEvent{
		core.BuildCopyAppended(bookID, itemID, "shelf-B1", now.Add(-2*time.Hour)),
		core.BuildCopyWrittenOff(bookID, itemID, "water damage", now.Add(-time.Hour)),
	}

	command := writeoffcopy.BuildCommand(bookID, itemID, "water damage", now)

	// act
	result := writeoffcopy.Decide(events, command)

	// assert
	assert.False(t, result.HasEventsToAppend())
	assert.NoError(t, result.HasError())
}

func Test_Decide_BusinessErrors(t *testing.T) {
	bookID := uuid.New()
	itemID := uuid.New()
	borrowerID := uuid.New()
	loanID := uuid.New()
	now := time.Now()

	testCases := []struct {
		name        string
		events      []core.DomainEvent
		reason      string
		expectedErr error
	}{
		{
			name:        "reason missing",
			events:      []core.DomainEvent{core.BuildCopyAppended(bookID, itemID, "shelf-B1", now.Add(-time.Hour))},
			reason:      "",
			expectedErr: core.ErrRemovalReasonRequired,
		},
		{
			name:        "copy never appended",
			events:      nil,
			reason:      "water damage",
			expectedErr: core.ErrNoSuchCopy,
		},
		{
			name: "copy currently borrowed",
			events: []core.DomainEvent{
				core.BuildCopyAppended(bookID, itemID, "shelf-B1", now.Add(-2*time.Hour)),
				core.BuildCopyBorrowed(bookID, itemID, loanID, borrowerID, now.Add(-time.Hour)),
			},
			reason:      "water damage",
			expectedErr: core.ErrCopyAlreadyBorrowed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := writeoffcopy.BuildCommand(bookID, itemID, tc.reason, now)

			// act
			result := writeoffcopy.Decide(tc.events, command)

			// assert
			require.True(t, result.HasEventsToAppend())
			require.Len(t, result.Events, 1)
			assert.True(t, result.Events[0].IsErrorEvent())
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
		})
	}
}
