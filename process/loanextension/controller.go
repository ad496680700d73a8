// Package loanextension balances extension permissions against reservation
// backlog: the more borrowers wait for a book, the fewer of its current loans
// may be extended, so the book is not perpetually re-extended away from them.
package loanextension

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"exlibris/core"
	"exlibris/features/command/allowloansextension"
	"exlibris/features/command/forbidloansextension"
	"exlibris/features/query/bookinventory"
	"exlibris/shell"
)

const coordinatorName = "loan_extension_controller"

// ErrInventoryNotFound is returned when a trigger event references a book with
// no inventory history at all. This cannot happen through normal operation and
// is surfaced as fatal for the operator.
var ErrInventoryNotFound = errors.New("no inventory exists for this book")

// InventoryLookup reads the book's current state before a decision.
type InventoryLookup interface {
	Handle(ctx context.Context, query bookinventory.Query) (core.InventoryState, error)
}

// ForbidLoansExtensionHandler dispatches the ForbidLoansExtension administrative command.
type ForbidLoansExtensionHandler interface {
	Handle(ctx context.Context, command forbidloansextension.Command) (shell.HandlerResult, error)
}

// AllowLoansExtensionHandler dispatches the AllowLoansExtension administrative command.
type AllowLoansExtensionHandler interface {
	Handle(ctx context.Context, command allowloansextension.Command) (shell.HandlerResult, error)
}

// Controller is the stateless reactive coordinator balancing extension
// permissions. It recomputes the balance from the book's current state on
// every trigger, so a redelivered event converges to the same outcome.
//
// The balance: diff = unsatisfied reservations - loans already forbidden
// extension. A positive diff forbids that many of the oldest still-allowed
// loans; a negative diff re-allows that many of the most recently forbidden.
type Controller struct {
	lookup InventoryLookup
	forbid ForbidLoansExtensionHandler
	allow  AllowLoansExtensionHandler
	logger *zap.Logger
	now    func() core.OccurredAtTS
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() core.OccurredAtTS) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController creates a Controller with the provided dependencies.
func NewController(
	lookup InventoryLookup,
	forbid ForbidLoansExtensionHandler,
	allow AllowLoansExtensionHandler,
	logger *zap.Logger,
	opts ...Option,
) *Controller {

	c := &Controller{
		lookup: lookup,
		forbid: forbid,
		allow:  allow,
		logger: logger,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Register subscribes the controller to its trigger events on the bus.
func (c *Controller) Register(bus *shell.Bus) {
	bus.Subscribe(core.ReservationAddedEventType, c.React)
	bus.Subscribe(core.BookReadyToPickupEventType, c.React)
	bus.Subscribe(core.ReservationCanceledEventType, c.React)
}

// React inspects one trigger event and rebalances the book's extension
// permissions. A ReservationCanceled with WasSatisfied=true freed a hold, not
// an unsatisfied queue entry, and is the satisfier's business - not ours.
func (c *Controller) React(ctx context.Context, event core.DomainEvent) error {
	switch e := event.(type) {
	case core.ReservationAdded, core.BookReadyToPickup:
		return c.rebalance(ctx, event.AffectsBook())

	case core.ReservationCanceled:
		if e.WasSatisfied {
			return nil
		}

		return c.rebalance(ctx, e.BookID)

	default:
		return nil
	}
}

func (c *Controller) rebalance(ctx context.Context, bookIDString core.BookIDString) error {
	bookID, err := uuid.Parse(bookIDString)
	if err != nil {
		return fmt.Errorf("parsing book id %q: %w", bookIDString, err)
	}

	state, err := c.lookup.Handle(ctx, bookinventory.BuildQuery(bookID))
	if err != nil {
		return err
	}

	if !state.Exists {
		shell.CoordinatorFatalTotal.WithLabelValues(coordinatorName).Inc()
		return fmt.Errorf("book %s: %w", bookIDString, ErrInventoryNotFound)
	}

	diff := state.UnsatisfiedReservationCount() - state.ForbiddenLoanCount()

	switch {
	case diff > 0:
		return c.forbidOldest(ctx, bookID, state, diff)

	case diff < 0:
		return c.allowNewest(ctx, bookID, state, -diff)

	default:
		shell.CoordinatorReactionsTotal.WithLabelValues(coordinatorName, "balanced").Inc()
		return nil
	}
}

func (c *Controller) forbidOldest(ctx context.Context, bookID uuid.UUID, state core.InventoryState, count int) error {
	candidates := state.AllowedBorrowersOldestFirst()
	if len(candidates) == 0 {
		shell.CoordinatorReactionsTotal.WithLabelValues(coordinatorName, "balanced").Inc()
		return nil
	}

	if count > len(candidates) {
		count = len(candidates)
	}

	command := forbidloansextension.BuildCommand(bookID, candidates[:count], c.now())

	if _, err := c.forbid.Handle(ctx, command); err != nil {
		if core.IsRejection(err) {
			shell.CoordinatorReactionsTotal.WithLabelValues(coordinatorName, "dropped_rejection").Inc()
			c.logger.Debug("forbid extension raced, dropping",
				zap.String("book_id", bookID.String()),
				zap.Error(err))

			return nil
		}

		return err
	}

	shell.CoordinatorReactionsTotal.WithLabelValues(coordinatorName, "forbidden").Inc()

	return nil
}

func (c *Controller) allowNewest(ctx context.Context, bookID uuid.UUID, state core.InventoryState, count int) error {
	candidates := state.ForbiddenBorrowersNewestFirst()
	if len(candidates) == 0 {
		shell.CoordinatorReactionsTotal.WithLabelValues(coordinatorName, "balanced").Inc()
		return nil
	}

	if count > len(candidates) {
		count = len(candidates)
	}

	command := allowloansextension.BuildCommand(bookID, candidates[:count], c.now())

	if _, err := c.allow.Handle(ctx, command); err != nil {
		if core.IsRejection(err) {
			shell.CoordinatorReactionsTotal.WithLabelValues(coordinatorName, "dropped_rejection").Inc()
			c.logger.Debug("allow extension raced, dropping",
				zap.String("book_id", bookID.String()),
				zap.Error(err))

			return nil
		}

		return err
	}

	shell.CoordinatorReactionsTotal.WithLabelValues(coordinatorName, "allowed").Inc()

	return nil
}
