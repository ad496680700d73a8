package returncopy_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exlibris/core"
	"exlibris/features/command/returncopy"
)

func Test_Decide_Success_ReturnsBorrowedCopy(t *testing.T) {
	// arrange
	bookID := uuid.New()
	itemID := uuid.New()
	borrowerID := uuid.New()
	now := time.Now()

	events := []core.DomainEvent{
		core.BuildCopyAppended(bookID, itemID, "shelf-D1", now.Add(-2*time.Hour)),
		core.BuildCopyBorrowed(bookID, itemID, uuid.New(), borrowerID, now.Add(-time.Hour)),
	}

	command := returncopy.BuildCommand(bookID, itemID, borrowerID, now)

	// act
	result := returncopy.Decide(events, command)

	// assert
	require.True(t, result.HasEventsToAppend())
	require.Len(t, result.Events, 1)
	assert.NoError(t, result.HasError())

	event, ok := result.Events[0].(core.CopyReturned)
	require.True(t, ok)
	assert.Equal(t, itemID.String(), event.ItemID)
	assert.Equal(t, borrowerID.String(), event.BorrowerID)
}

func Test_Decide_RoundTrip_BorrowThenReturnRestoresPreBorrowShape(t *testing.T) {
	// arrange
	bookID := uuid.New()
	itemID := uuid.New()
	borrowerID := uuid.New()
	now := time.Now()

	preBorrow := core.ProjectInventory([]core.DomainEvent{
		core.BuildCopyAppended(bookID, itemID, "shelf-D1", now.Add(-3*time.Hour)),
	})

	afterRoundTrip := core.ProjectInventory([]core.DomainEvent{
		core.BuildCopyAppended(bookID, itemID, "shelf-D1", now.Add(-3*time.Hour)),
		core.BuildCopyBorrowed(bookID, itemID, uuid.New(), borrowerID, now.Add(-2*time.Hour)),
		core.BuildCopyReturned(bookID, itemID, borrowerID, now.Add(-time.Hour)),
	})

	// assert - loan removed, copy free again
	assert.Equal(t, preBorrow.Items, afterRoundTrip.Items)
	assert.Empty(t, afterRoundTrip.Loans)
	assert.Equal(t, preBorrow.AvailableCopyCount(), afterRoundTrip.AvailableCopyCount())
}

func Test_Decide_BusinessErrors(t *testing.T) {
	bookID := uuid.New()
	itemID := uuid.New()
	borrowerID := uuid.New()
	otherBorrowerID := uuid.New()
	now := time.Now()

	testCases := []struct {
		name        string
		events      []core.DomainEvent
		expectedErr error
	}{
		{
			name:        "copy never appended",
			events:      nil,
			expectedErr: core.ErrNoSuchCopy,
		},
		{
			name: "copy not borrowed at all",
			events: []core.DomainEvent{
				core.BuildCopyAppended(bookID, itemID, "shelf-D1", now.Add(-time.Hour)),
			},
			expectedErr: core.ErrNotBorrowed,
		},
		{
			name: "copy borrowed by someone else",
			events: []core.DomainEvent{
				core.BuildCopyAppended(bookID, itemID, "shelf-D1", now.Add(-2*time.Hour)),
				core.BuildCopyBorrowed(bookID, itemID, uuid.New(), otherBorrowerID, now.Add(-time.Hour)),
			},
			expectedErr: core.ErrNotBorrowed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := returncopy.BuildCommand(bookID, itemID, borrowerID, now)

			// act
			result := returncopy.Decide(tc.events, command)

			// assert
			require.True(t, result.HasEventsToAppend())
			assert.True(t, result.Events[0].IsErrorEvent())
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
		})
	}
}
