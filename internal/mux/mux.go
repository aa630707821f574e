// Package mux fuses the keyboard, timer and external-message producers into
// one ordered event stream with a single blocking consumer.
package mux

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atomicstack/zkbrowse/internal/logging/events"
	"github.com/muesli/cancelreader"
)

var (
	// ErrChannelClosed is returned once the consumer side has been closed.
	ErrChannelClosed = errors.New("event channel closed")
	// ErrDisconnected is returned by Next when every producer has
	// terminated and no events remain.
	ErrDisconnected = errors.New("event producers disconnected")
)

const (
	defaultTickRate = time.Second
	readBufferSize  = 256
)

// Config controls the producers started by New.
type Config struct {
	ExitKey     Key
	TickRate    time.Duration
	EnableTicks bool
}

// DefaultConfig exits on 'q' and reserves a one second tick cadence without
// starting the timer.
func DefaultConfig() Config {
	return Config{
		ExitKey:  RuneKey('q'),
		TickRate: defaultTickRate,
	}
}

// Multiplexer owns the shared queue and the producer goroutines feeding it.
type Multiplexer struct {
	cfg   Config
	queue *queue

	ctx    context.Context
	cancel context.CancelFunc
	reader cancelreader.CancelReader

	injectClosed atomic.Bool
	injectOnce   sync.Once
	closeOnce    sync.Once
	wg           sync.WaitGroup
}

// New starts the keyboard producer on input (when non-nil) and the timer
// producer when cfg.EnableTicks is set.
func New(input io.Reader, cfg Config) *Multiplexer {
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaultTickRate
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Multiplexer{
		cfg:    cfg,
		queue:  newQueue(),
		ctx:    ctx,
		cancel: cancel,
	}
	// The multiplexer keeps its own injection sender alive until CloseInject.
	m.queue.acquire()
	if input != nil {
		m.startKeyboard(input)
	}
	if cfg.EnableTicks {
		m.startTicker()
	}
	return m
}

// Config returns the configuration the multiplexer was built with.
func (m *Multiplexer) Config() Config {
	return m.cfg
}

// Next blocks until the next event is available.
func (m *Multiplexer) Next(ctx context.Context) (Event, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return m.queue.pop(ctx)
}

// Inject enqueues an External event without blocking.
func (m *Multiplexer) Inject(message string) error {
	var err error
	if m.injectClosed.Load() {
		err = ErrChannelClosed
	} else {
		err = m.queue.push(External{Message: message})
	}
	events.Mux.Inject(message, err)
	return err
}

// CloseInject drops the injection producer. Once every other producer has
// finished too, Next reports ErrDisconnected.
func (m *Multiplexer) CloseInject() {
	m.injectOnce.Do(func() {
		m.injectClosed.Store(true)
		m.queue.release()
		events.Mux.ProducerStop("inject", "closed")
	})
}

// Close drops the consumer side. Pending events are discarded, producers
// stop on their next send and the keyboard read is cancelled.
func (m *Multiplexer) Close() error {
	m.closeOnce.Do(func() {
		m.cancel()
		m.queue.close()
		if m.reader != nil {
			m.reader.Cancel()
		}
	})
	return nil
}

// Wait blocks until the keyboard and timer producers have exited.
func (m *Multiplexer) Wait() {
	m.wg.Wait()
}

// Pending reports how many events are queued but not yet consumed.
func (m *Multiplexer) Pending() int {
	return m.queue.len()
}

func (m *Multiplexer) startKeyboard(input io.Reader) {
	src := input
	if r, err := cancelreader.NewReader(input); err == nil {
		m.reader = r
		src = r
	}
	m.queue.acquire()
	m.wg.Add(1)
	go m.readKeys(src)
}

func (m *Multiplexer) readKeys(src io.Reader) {
	defer m.wg.Done()
	defer m.queue.release()
	events.Mux.ProducerStart("keyboard")
	reason := "exit-key"
	defer func() {
		events.Mux.ProducerStop("keyboard", reason)
	}()

	buf := make([]byte, readBufferSize)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			keys, skipped := decodeKeys(buf[:n])
			for _, raw := range skipped {
				events.Mux.DecodeSkip(raw)
			}
			for _, key := range keys {
				events.Mux.Key(key.String())
				if perr := m.queue.push(KeyInput{Key: key}); perr != nil {
					reason = "closed"
					return
				}
				if key == m.cfg.ExitKey {
					return
				}
			}
		}
		if err != nil {
			reason = err.Error()
			return
		}
	}
}

func (m *Multiplexer) startTicker() {
	m.queue.acquire()
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer m.queue.release()
		events.Mux.ProducerStart("ticker")
		ticker := time.NewTicker(m.cfg.TickRate)
		defer ticker.Stop()
		for {
			select {
			case <-m.ctx.Done():
				events.Mux.ProducerStop("ticker", "closed")
				return
			case now := <-ticker.C:
				if err := m.queue.push(Tick{At: now}); err != nil {
					events.Mux.ProducerStop("ticker", "closed")
					return
				}
			}
		}
	}()
}
