// Package reservationqueue keeps a book's reservation queue moving. Whenever a
// copy frees up or the queue composition changes, the satisfier decides whether
// the next waiting borrower gets a pickup hold or the copy enters the general
// availability pool.
package reservationqueue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"exlibris/core"
	"exlibris/features/command/markbookavailable"
	"exlibris/features/command/satisfyreservation"
	"exlibris/features/query/bookinventory"
	"exlibris/shell"
)

const coordinatorName = "reservation_satisfier"

// ErrInventoryNotFound is returned when a trigger event references a book with
// no inventory history at all. This cannot happen through normal operation and
// is surfaced as fatal for the operator.
var ErrInventoryNotFound = errors.New("no inventory exists for this book")

// InventoryLookup reads the book's current state before a decision.
type InventoryLookup interface {
	Handle(ctx context.Context, query bookinventory.Query) (core.InventoryState, error)
}

// SatisfyReservationHandler dispatches the SatisfyReservation corrective command.
type SatisfyReservationHandler interface {
	Handle(ctx context.Context, command satisfyreservation.Command) (shell.HandlerResult, error)
}

// MarkBookAvailableHandler dispatches the MarkBookAsAvailable corrective command.
type MarkBookAvailableHandler interface {
	Handle(ctx context.Context, command markbookavailable.Command) (shell.HandlerResult, error)
}

// Satisfier is the stateless reactive coordinator advancing reservation queues.
// All of its state lives in the book's event stream; a crashed satisfier
// resumes simply by reacting to the next trigger event.
type Satisfier struct {
	lookup   InventoryLookup
	satisfy  SatisfyReservationHandler
	announce MarkBookAvailableHandler
	logger   *zap.Logger
	clock    func() time.Time
}

// Option configures a Satisfier.
type Option func(*Satisfier)

// WithClock replaces the wall clock, for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Satisfier) {
		s.clock = clock
	}
}

// NewSatisfier creates a Satisfier with the provided dependencies.
func NewSatisfier(
	lookup InventoryLookup,
	satisfy SatisfyReservationHandler,
	announce MarkBookAvailableHandler,
	logger *zap.Logger,
	opts ...Option,
) *Satisfier {

	s := &Satisfier{
		lookup:   lookup,
		satisfy:  satisfy,
		announce: announce,
		logger:   logger,
		clock:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register subscribes the satisfier to its trigger events on the bus.
func (s *Satisfier) Register(bus *shell.Bus) {
	bus.Subscribe(core.CopyReturnedEventType, s.React)
	bus.Subscribe(core.CopyAppendedEventType, s.React)
	bus.Subscribe(core.ReservationPickUpPeriodExpiredEventType, s.React)
	bus.Subscribe(core.ReservationCanceledEventType, s.React)
}

// React inspects one trigger event and issues at most one corrective command.
// A ReservationCanceled with WasSatisfied=false changes nothing about
// availability and is ignored.
func (s *Satisfier) React(ctx context.Context, event core.DomainEvent) error {
	switch e := event.(type) {
	case core.CopyReturned, core.CopyAppended, core.ReservationPickUpPeriodExpired:
		return s.rescan(ctx, event.AffectsBook())

	case core.ReservationCanceled:
		if !e.WasSatisfied {
			return nil
		}

		return s.rescan(ctx, e.BookID)

	default:
		return nil
	}
}

func (s *Satisfier) rescan(ctx context.Context, bookIDString core.BookIDString) error {
	bookID, err := uuid.Parse(bookIDString)
	if err != nil {
		return fmt.Errorf("parsing book id %q: %w", bookIDString, err)
	}

	state, err := s.lookup.Handle(ctx, bookinventory.BuildQuery(bookID))
	if err != nil {
		return err
	}

	if !state.Exists {
		shell.CoordinatorFatalTotal.WithLabelValues(coordinatorName).Inc()
		return fmt.Errorf("book %s: %w", bookIDString, ErrInventoryNotFound)
	}

	now := s.clock()

	if state.VacantCopyCount(now) <= 0 {
		shell.CoordinatorReactionsTotal.WithLabelValues(coordinatorName, "noop").Inc()
		return nil
	}

	if next, found := state.NextUnsatisfiedReservation(); found {
		return s.satisfyNext(ctx, bookID, next, now)
	}

	if !state.AvailabilityAnnounced {
		return s.announceAvailability(ctx, bookID, now)
	}

	shell.CoordinatorReactionsTotal.WithLabelValues(coordinatorName, "noop").Inc()

	return nil
}

func (s *Satisfier) satisfyNext(ctx context.Context, bookID uuid.UUID, next core.Reservation, now time.Time) error {
	borrowerID, err := uuid.Parse(next.BorrowerID)
	if err != nil {
		return fmt.Errorf("parsing borrower id %q: %w", next.BorrowerID, err)
	}

	command := satisfyreservation.BuildCommand(bookID, borrowerID, now)

	if _, err = s.satisfy.Handle(ctx, command); err != nil {
		if core.IsRejection(err) {
			shell.CoordinatorReactionsTotal.WithLabelValues(coordinatorName, "dropped_rejection").Inc()
			s.logger.Debug("satisfy reservation raced, dropping",
				zap.String("book_id", bookID.String()),
				zap.String("borrower_id", next.BorrowerID),
				zap.Error(err))

			return nil
		}

		return err
	}

	shell.CoordinatorReactionsTotal.WithLabelValues(coordinatorName, "satisfied").Inc()

	return nil
}

func (s *Satisfier) announceAvailability(ctx context.Context, bookID uuid.UUID, now time.Time) error {
	command := markbookavailable.BuildCommand(bookID, now)

	if _, err := s.announce.Handle(ctx, command); err != nil {
		if core.IsRejection(err) {
			shell.CoordinatorReactionsTotal.WithLabelValues(coordinatorName, "dropped_rejection").Inc()
			s.logger.Debug("availability announcement raced, dropping",
				zap.String("book_id", bookID.String()),
				zap.Error(err))

			return nil
		}

		return err
	}

	shell.CoordinatorReactionsTotal.WithLabelValues(coordinatorName, "announced").Inc()

	return nil
}
