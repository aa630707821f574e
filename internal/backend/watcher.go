// Package backend bridges sources outside the terminal into the event
// multiplexer as External messages.
package backend

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/atomicstack/zkbrowse/internal/logging"
	"github.com/atomicstack/zkbrowse/internal/logging/events"
	"github.com/fsnotify/fsnotify"
	"github.com/go-zookeeper/zk"
)

// Injector accepts external messages. *mux.Multiplexer satisfies it.
type Injector interface {
	Inject(message string) error
}

// Watcher runs the external sources and forwards what they produce.
type Watcher struct {
	inj   Injector
	pacer *pacer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that injects at most one message per interval.
func NewWatcher(inj Injector, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		inj:    inj,
		pacer:  newPacer(interval),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Stop cancels every source. Sources exit after their current injection;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all source goroutines have exited.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

// TailFile injects every line appended to path from now on. The file is
// created when missing.
func (w *Watcher) TailFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open inject file: %w", err)
	}
	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		f.Close()
		return fmt.Errorf("seek inject file: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		f.Close()
		return fmt.Errorf("watch inject file: %w", err)
	}
	if err := fw.Add(path); err != nil {
		fw.Close()
		f.Close()
		return fmt.Errorf("watch inject file: %w", err)
	}
	events.Backend.SourceStart("tail", path)
	w.wg.Add(1)
	go w.tail(fw, f)
	return nil
}

func (w *Watcher) tail(fw *fsnotify.Watcher, f *os.File) {
	defer w.wg.Done()
	defer f.Close()
	defer fw.Close()

	reader := bufio.NewReader(f)
	var partial strings.Builder
	flush := func() bool {
		for {
			chunk, err := reader.ReadString('\n')
			partial.WriteString(chunk)
			if err != nil {
				return true
			}
			line := strings.TrimRight(partial.String(), "\r\n")
			partial.Reset()
			if line == "" {
				continue
			}
			if !w.emit(line) {
				return false
			}
		}
	}

	for {
		select {
		case <-w.ctx.Done():
			events.Backend.SourceStop("tail", nil)
			return
		case evt, ok := <-fw.Events:
			if !ok {
				events.Backend.SourceStop("tail", nil)
				return
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) {
				continue
			}
			if !flush() {
				events.Backend.SourceStop("tail", nil)
				return
			}
		case err, ok := <-fw.Errors:
			if !ok {
				events.Backend.SourceStop("tail", nil)
				return
			}
			logging.Error(fmt.Errorf("inject file watcher: %w", err))
		}
	}
}

// ForwardSession injects a line for every ZooKeeper session event.
func (w *Watcher) ForwardSession(session <-chan zk.Event) {
	if session == nil {
		return
	}
	events.Backend.SourceStart("zk-session", "")
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.ctx.Done():
				events.Backend.SourceStop("zk-session", nil)
				return
			case evt, ok := <-session:
				if !ok {
					events.Backend.SourceStop("zk-session", nil)
					return
				}
				events.Gateway.Session(evt.State.String(), evt.Type.String(), evt.Path)
				if !w.emit(FormatSessionEvent(evt)) {
					events.Backend.SourceStop("zk-session", nil)
					return
				}
			}
		}
	}()
}

// FormatSessionEvent renders a ZooKeeper event as a log line.
func FormatSessionEvent(evt zk.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "zookeeper %s: %s", evt.Type, evt.State)
	if evt.Path != "" {
		fmt.Fprintf(&b, " %s", evt.Path)
	}
	if evt.Server != "" {
		fmt.Fprintf(&b, " (%s)", evt.Server)
	}
	if evt.Err != nil {
		fmt.Fprintf(&b, ": %v", evt.Err)
	}
	return b.String()
}

func (w *Watcher) emit(message string) bool {
	if err := w.pacer.wait(w.ctx); err != nil {
		return false
	}
	if err := w.inj.Inject(message); err != nil {
		events.Backend.SourceStop("inject", err)
		return false
	}
	return true
}
