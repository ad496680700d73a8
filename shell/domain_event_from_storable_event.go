package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"exlibris/core"
	"exlibris/eventstore"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0)

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.CopyAppendedEventType:
		return unmarshalEvent[core.CopyAppended](storableEvent.PayloadJSON)

	case core.CopyWrittenOffEventType:
		return unmarshalEvent[core.CopyWrittenOff](storableEvent.PayloadJSON)

	case core.CopyBorrowedEventType:
		return unmarshalEvent[core.CopyBorrowed](storableEvent.PayloadJSON)

	case core.CopyReturnedEventType:
		return unmarshalEvent[core.CopyReturned](storableEvent.PayloadJSON)

	case core.CopyReportedLostEventType:
		return unmarshalEvent[core.CopyReportedLost](storableEvent.PayloadJSON)

	case core.ReservationAddedEventType:
		return unmarshalEvent[core.ReservationAdded](storableEvent.PayloadJSON)

	case core.ReservationCanceledEventType:
		return unmarshalEvent[core.ReservationCanceled](storableEvent.PayloadJSON)

	case core.ReservationPickUpPeriodExpiredEventType:
		return unmarshalEvent[core.ReservationPickUpPeriodExpired](storableEvent.PayloadJSON)

	case core.ReservationBecameLoanEventType:
		return unmarshalEvent[core.ReservationBecameLoan](storableEvent.PayloadJSON)

	case core.BookReadyToPickupEventType:
		return unmarshalEvent[core.BookReadyToPickup](storableEvent.PayloadJSON)

	case core.BookBecameAvailableEventType:
		return unmarshalEvent[core.BookBecameAvailable](storableEvent.PayloadJSON)

	case core.LoanPeriodExtendedEventType:
		return unmarshalEvent[core.LoanPeriodExtended](storableEvent.PayloadJSON)

	case core.LoansExtensionForbiddenEventType:
		return unmarshalEvent[core.LoansExtensionForbidden](storableEvent.PayloadJSON)

	case core.LoansExtensionAllowedEventType:
		return unmarshalEvent[core.LoansExtensionAllowed](storableEvent.PayloadJSON)

	case core.LoanBecameShouldReturnSoonEventType:
		return unmarshalEvent[core.LoanBecameShouldReturnSoon](storableEvent.PayloadJSON)

	case core.LoanBecameOverdueEventType:
		return unmarshalEvent[core.LoanBecameOverdue](storableEvent.PayloadJSON)

	case core.BorrowingCopyFailedEventType,
		core.ReturningCopyFailedEventType,
		core.ReservingBookFailedEventType,
		core.CancelingReservationFailedEventType,
		core.ExtendingLoanFailedEventType,
		core.WritingOffCopyFailedEventType,
		core.ReportingLostCopyFailedEventType,
		core.ExpiringReservationFailedEventType,
		core.MarkingLoanOverdueFailedEventType,
		core.MarkingLoanShouldReturnSoonFailedEventType:
		return unmarshalEvent[core.OperationFailed](storableEvent.PayloadJSON)

	default:
		return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
	}
}

func unmarshalEvent[T core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var payload T

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &payload); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return payload, nil
}
