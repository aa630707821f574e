package backend

import (
	"context"
	"sync"
	"time"
)

// pacer hands out send slots at most once per interval. A burst of appended
// lines is spread out instead of flooding the event queue ahead of keys.
type pacer struct {
	interval time.Duration

	mu   sync.Mutex
	slot time.Time
}

func newPacer(interval time.Duration) *pacer {
	if interval < 0 {
		interval = 0
	}
	return &pacer{interval: interval}
}

// reserve books the next free slot and returns how long to wait for it.
func (p *pacer) reserve() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	if p.slot.Before(now) {
		p.slot = now
	}
	delay := p.slot.Sub(now)
	p.slot = p.slot.Add(p.interval)
	return delay
}

// wait blocks until the caller's slot arrives or ctx ends.
func (p *pacer) wait(ctx context.Context) error {
	if p == nil || p.interval == 0 {
		return ctx.Err()
	}
	delay := p.reserve()
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
