package shell

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"go.uber.org/zap"

	"exlibris/core"
)

const defaultShardCount = 16

// EventHandler reacts to one persisted domain event. Delivery is at-least-once:
// handlers must re-check current state instead of trusting the event alone.
type EventHandler func(ctx context.Context, event core.DomainEvent) error

// busShard holds one lane's pending events. The queue is unbounded so a
// handler running on the lane's worker can always publish follow-up events
// for the same book without blocking on its own lane.
type busShard struct {
	mu     sync.Mutex
	queue  []core.DomainEvent
	notify chan struct{}
}

func (s *busShard) enqueue(event core.DomainEvent) {
	s.mu.Lock()
	s.queue = append(s.queue, event)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *busShard) drain() []core.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.queue
	s.queue = nil

	return events
}

func (s *busShard) isEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.queue) == 0
}

// Bus is the in-process event delivery of the substrate. Events are routed to
// one of a fixed number of shards by their book identity, and every shard is
// drained by a single goroutine - so all events of one book are handled in
// publish order, one at a time, while different books proceed concurrently.
// This is the single-writer-per-inventory lane the coordination logic leans on.
type Bus struct {
	shards   []*busShard
	handlers map[core.EventTypeString][]EventHandler
	logger   *zap.Logger
	closing  chan struct{}

	mu      sync.Mutex
	started bool
	closed  bool
	wg      sync.WaitGroup
}

// NewBus creates a Bus with the given number of shards (0 for the default).
func NewBus(shardCount int, logger *zap.Logger) *Bus {
	if shardCount <= 0 {
		shardCount = defaultShardCount
	}

	shards := make([]*busShard, shardCount)
	for i := range shards {
		shards[i] = &busShard{notify: make(chan struct{}, 1)}
	}

	return &Bus{
		shards:   shards,
		handlers: make(map[core.EventTypeString][]EventHandler),
		logger:   logger,
		closing:  make(chan struct{}),
	}
}

// Subscribe registers a handler for one event type. Must be called before Start.
func (b *Bus) Subscribe(eventType core.EventTypeString, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Start launches one worker goroutine per shard. The context cancels all workers.
func (b *Bus) Start(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return
	}
	b.started = true

	for _, shard := range b.shards {
		b.wg.Add(1)

		go func(sh *busShard) {
			defer b.wg.Done()

			for {
				for _, event := range sh.drain() {
					b.dispatch(ctx, event)
				}

				select {
				case <-sh.notify:

				case <-ctx.Done():
					return

				case <-b.closing:
					if sh.isEmpty() {
						return
					}
				}
			}
		}(shard)
	}
}

// Publish routes events to their book's shard. It never blocks, so handlers
// running on a shard worker can publish follow-up events for the same book;
// those land behind the event currently being handled. Events published after
// Close are dropped.
func (b *Bus) Publish(events ...core.DomainEvent) {
	for _, event := range events {
		b.mu.Lock()
		closed := b.closed
		b.mu.Unlock()

		if closed {
			b.logger.Warn("event published after bus close, dropping",
				zap.String("event_type", event.IsEventType()),
				zap.String("book_id", event.AffectsBook()))

			continue
		}

		BusPublishedTotal.WithLabelValues(event.IsEventType()).Inc()
		b.shards[b.shardIndex(event.AffectsBook())].enqueue(event)
	}
}

// Close stops accepting events and waits for the shard workers to drain.
func (b *Bus) Close() {
	b.mu.Lock()

	if !b.started || b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.closing)

	b.mu.Unlock()
	b.wg.Wait()
}

func (b *Bus) dispatch(ctx context.Context, event core.DomainEvent) {
	for _, handler := range b.handlers[event.IsEventType()] {
		start := time.Now()
		err := handler(ctx, event)
		BusHandlerDuration.WithLabelValues(event.IsEventType()).Observe(time.Since(start).Seconds())

		if err != nil {
			b.logger.Error("event handler failed",
				zap.String("event_type", event.IsEventType()),
				zap.String("book_id", event.AffectsBook()),
				zap.Error(err))
		}
	}
}

func (b *Bus) shardIndex(bookID core.BookIDString) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(bookID))

	return int(h.Sum32() % uint32(len(b.shards)))
}
