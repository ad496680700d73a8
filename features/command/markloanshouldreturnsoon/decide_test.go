package markloanshouldreturnsoon_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exlibris/core"
	"exlibris/features/command/markloanshouldreturnsoon"
)

func Test_Decide_Success_FlagsLoanAsDueSoon(t *testing.T) {
	// arrange
	bookID := uuid.New()
	itemID := uuid.New()
	loanID := uuid.New()
	borrowerID := uuid.New()
	now := time.Now()

	events := []core.DomainEvent{
		core.BuildCopyAppended(bookID, itemID, "shelf-H3", now.Add(-14*24*time.Hour)),
		core.BuildCopyBorrowed(bookID, itemID, loanID, borrowerID, now.Add(-12*24*time.Hour)),
	}

	command := markloanshouldreturnsoon.BuildCommand(bookID, loanID, now)

	// act
	result := markloanshouldreturnsoon.Decide(events, command)

	// assert
	require.True(t, result.HasEventsToAppend())
	require.Len(t, result.Events, 1)
	assert.NoError(t, result.HasError())

	event, ok := result.Events[0].(core.LoanBecameShouldReturnSoon)
	require.True(t, ok)
	assert.Equal(t, loanID.String(), event.LoanID)
}

func Test_Decide_Success_AfterExtensionResetsTheFlag(t *testing.T) {
	// arrange - an extension resets the loan to recent, so the reminder can fire again
	bookID := uuid.New()
	itemID := uuid.New()
	loanID := uuid.New()
	borrowerID := uuid.New()
	now := time.Now()

	borrowed := core.BuildCopyBorrowed(bookID, itemID, loanID, borrowerID, now.Add(-12*24*time.Hour))

	events := []core.DomainEvent{
		core.BuildCopyAppended(bookID, itemID, "shelf-H3", now.Add(-14*24*time.Hour)),
		borrowed,
		core.BuildLoanBecameShouldReturnSoon(bookID, loanID.String(), now.Add(-3*24*time.Hour)),
		core.BuildLoanPeriodExtended(bookID, loanID.String(), borrowed.WhenDue.Add(core.LoanPeriod), now.Add(-2*24*time.Hour)),
	}

	command := markloanshouldreturnsoon.BuildCommand(bookID, loanID, now)

	// act
	result := markloanshouldreturnsoon.Decide(events, command)

	// assert
	require.True(t, result.HasEventsToAppend())
	_, ok := result.Events[0].(core.LoanBecameShouldReturnSoon)
	assert.True(t, ok)
}

func Test_Decide_Idempotent_WhenLoanAlreadyFlagged(t *testing.T) {
	// arrange
	bookID := uuid.New()
	itemID := uuid.New()
	loanID := uuid.New()
	borrowerID := uuid.New()
	now := time.Now()

	events := []core.DomainEvent{
		core.BuildCopyAppended(bookID, itemID, "shelf-H3", now.Add(-14*24*time.Hour)),
		core.BuildCopyBorrowed(bookID, itemID, loanID, borrowerID, now.Add(-12*24*time.Hour)),
		core.BuildLoanBecameShouldReturnSoon(bookID, loanID.String(), now.Add(-24*time.Hour)),
	}

	command := markloanshouldreturnsoon.BuildCommand(bookID, loanID, now)

	// act
	result := markloanshouldreturnsoon.Decide(events, command)

	// assert
	assert.False(t, result.HasEventsToAppend())
	assert.NoError(t, result.HasError())
}

func Test_Decide_Error_WhenLoanUnknown(t *testing.T) {
	// arrange
	bookID := uuid.New()
	now := time.Now()

	command := markloanshouldreturnsoon.BuildCommand(bookID, uuid.New(), now)

	// act
	result := markloanshouldreturnsoon.Decide(nil, command)

	// assert
	require.True(t, result.HasEventsToAppend())
	assert.True(t, result.Events[0].IsErrorEvent())
	assert.ErrorIs(t, result.HasError(), core.ErrNoSuchLoan)
}
