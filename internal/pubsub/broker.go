package pubsub

import (
	"context"
	"sync"
	"time"
)

// Subscriber channels buffer this many events before Publish starts
// dropping. Snapshot reloads are coalescable, the browser only cares
// about the latest one, so a modest buffer is plenty.
const defaultBufferSize = 64

// Broker fans events out to subscribers. One broker serves one stream:
// the menus service publishes assembled snapshots on its own broker, the
// logger publishes entries for the debug overlay on another.
//
// Publish never blocks. A subscriber that stops draining loses events
// instead of stalling assembly.
type Broker[T any] struct {
	mu      sync.RWMutex
	streams map[chan Event[T]]struct{}
	closed  chan struct{}
	buffer  int
}

// NewBroker creates a broker with the default subscriber buffer.
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBufferSize)
}

// NewBrokerWithBuffer creates a broker whose subscriber channels buffer
// size events.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	return &Broker[T]{
		streams: make(map[chan Event[T]]struct{}),
		closed:  make(chan struct{}),
		buffer:  size,
	}
}

func (b *Broker[T]) isClosed() bool {
	select {
	case <-b.closed:
		return true
	default:
		return false
	}
}

// Subscribe registers a new subscriber. The returned channel closes when
// ctx is cancelled or the broker shuts down; subscribing to a closed
// broker yields an already-closed channel.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.isClosed() {
		dead := make(chan Event[T])
		close(dead)
		return dead
	}

	stream := make(chan Event[T], b.buffer)
	b.streams[stream] = struct{}{}
	go b.reapOnCancel(ctx, stream)
	return stream
}

// reapOnCancel detaches and closes stream once ctx ends, unless Close got
// there first.
func (b *Broker[T]) reapOnCancel(ctx context.Context, stream chan Event[T]) {
	<-ctx.Done()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.isClosed() {
		return
	}
	delete(b.streams, stream)
	close(stream)
}

// Publish stamps the payload with the current time and delivers it to
// every subscriber with room. Subscribers whose buffers are full are
// skipped.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.isClosed() {
		return
	}

	evt := Event[T]{Type: eventType, Payload: payload, Timestamp: time.Now()}
	for stream := range b.streams {
		select {
		case stream <- evt:
		default:
			// Full buffer; the subscriber catches up on the next event.
		}
	}
}

// Close shuts the broker down and closes every subscriber channel. Safe to
// call more than once; Publish and Subscribe become no-ops afterwards.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.isClosed() {
		return
	}
	close(b.closed)
	for stream := range b.streams {
		close(stream)
	}
	b.streams = nil
}

// SubscriberCount reports how many subscribers are attached.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.streams)
}
