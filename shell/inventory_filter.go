package shell

import (
	"github.com/google/uuid"

	"exlibris/core"
	"exlibris/eventstore"
)

// BuildInventoryEventFilter creates the filter selecting the complete event
// stream of one book's inventory. Every command feature and both coordinators
// fold the same stream, so the filter lives here instead of being repeated
// per feature package.
func BuildInventoryEventFilter(bookID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.CopyAppendedEventType,
			core.CopyWrittenOffEventType,
			core.CopyBorrowedEventType,
			core.CopyReturnedEventType,
			core.CopyReportedLostEventType,
			core.ReservationAddedEventType,
			core.ReservationCanceledEventType,
			core.ReservationPickUpPeriodExpiredEventType,
			core.ReservationBecameLoanEventType,
			core.BookReadyToPickupEventType,
			core.BookBecameAvailableEventType,
			core.LoanPeriodExtendedEventType,
			core.LoanBecameShouldReturnSoonEventType,
			core.LoanBecameOverdueEventType,
			core.LoansExtensionForbiddenEventType,
			core.LoansExtensionAllowedEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("BookID", bookID.String()),
		).
		Finalize()
}
