package events

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"go.uber.org/zap"

	"spacehive/models"
	"spacehive/utils"
)

// Handler reacts to a single event. A returned error is logged and
// never propagated to the publisher.
type Handler func(ctx context.Context, event models.BookingEvent) error

const (
	defaultLaneCount = 8
	laneBufferSize   = 128
	dispatchTimeout  = 30 * time.Second
)

// Bus is an in-process event dispatcher. Publishing is fire-and-forget:
// the caller never waits for handlers. Events are sharded onto lanes by
// booking id, so events for the same booking are handled one at a time
// in publish order, while different bookings proceed in parallel.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler

	lanes  []chan models.BookingEvent
	wg     sync.WaitGroup
	closed bool
	logger *zap.Logger
}

func NewBus() *Bus {
	b := &Bus{
		handlers: make(map[string][]Handler),
		lanes:    make([]chan models.BookingEvent, defaultLaneCount),
		logger:   utils.GetLogger().Named("events"),
	}
	for i := range b.lanes {
		b.lanes[i] = make(chan models.BookingEvent, laneBufferSize)
		b.wg.Add(1)
		go b.drain(b.lanes[i])
	}
	return b
}

// Subscribe registers a handler for a topic. Handlers for the same
// topic run in registration order. Subscribe is meant for wiring at
// startup, before events flow.
func (b *Bus) Subscribe(topic string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Publish enqueues the event for asynchronous delivery and returns
// immediately.
func (b *Bus) Publish(event models.BookingEvent) {
	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()
	if closed {
		b.logger.Warn("Event published after bus shutdown, dropping",
			zap.String("topic", event.Topic),
			zap.String("bookingId", event.BookingID))
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	b.lanes[laneFor(event.BookingID, len(b.lanes))] <- event
}

// Close stops accepting events and waits for in-flight handlers.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	for _, lane := range b.lanes {
		close(lane)
	}
	b.wg.Wait()
}

func laneFor(bookingID string, lanes int) int {
	h := fnv.New32a()
	h.Write([]byte(bookingID))
	return int(h.Sum32() % uint32(lanes))
}

func (b *Bus) drain(lane chan models.BookingEvent) {
	defer b.wg.Done()
	for event := range lane {
		b.dispatch(event)
	}
}

// dispatch runs every handler for the event's topic. A failing or
// panicking handler is logged and the remaining handlers still run;
// the booking state that produced the event is already committed and
// is never rolled back from here.
func (b *Bus) dispatch(event models.BookingEvent) {
	b.mu.RLock()
	handlers := b.handlers[event.Topic]
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.invoke(handler, event)
	}
}

func (b *Bus) invoke(handler Handler, event models.BookingEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Event handler panicked",
				zap.String("topic", event.Topic),
				zap.String("bookingId", event.BookingID),
				zap.Any("panic", r))
		}
	}()

	if err := handler(ctx, event); err != nil {
		b.logger.Error("Event handler failed",
			zap.String("topic", event.Topic),
			zap.String("bookingId", event.BookingID),
			zap.Error(err))
	}
}
