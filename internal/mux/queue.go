package mux

import (
	"context"
	"sync"
)

// queue is an unbounded multi-producer, single-consumer FIFO. It tracks how
// many producers are still alive so the consumer can tell an idle stream from
// a dead one.
type queue struct {
	mu      sync.Mutex
	items   []Event
	senders int
	closed  bool
	ready   chan struct{}
}

func newQueue() *queue {
	return &queue{ready: make(chan struct{}, 1)}
}

func (q *queue) acquire() {
	q.mu.Lock()
	q.senders++
	q.mu.Unlock()
}

func (q *queue) release() {
	q.mu.Lock()
	if q.senders > 0 {
		q.senders--
	}
	q.mu.Unlock()
	q.signal()
}

func (q *queue) push(evt Event) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrChannelClosed
	}
	q.items = append(q.items, evt)
	q.mu.Unlock()
	q.signal()
	return nil
}

func (q *queue) close() {
	q.mu.Lock()
	q.closed = true
	q.items = nil
	q.mu.Unlock()
	q.signal()
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *queue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// pop blocks until an event is available, the queue is closed, or every
// producer has gone away with nothing left to drain.
func (q *queue) pop(ctx context.Context) (Event, error) {
	for {
		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return nil, ErrChannelClosed
		}
		if len(q.items) > 0 {
			evt := q.items[0]
			q.items[0] = nil
			q.items = q.items[1:]
			q.mu.Unlock()
			return evt, nil
		}
		if q.senders == 0 {
			q.mu.Unlock()
			return nil, ErrDisconnected
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.ready:
		}
	}
}
