// Package browser implements the navigation state machine behind the tree
// browser. A Browser owns the session state (path, children listing,
// selection and message log) and is driven one event at a time by a single
// consumer, so none of it is locked.
package browser

import (
	"github.com/atomicstack/zkbrowse/internal/gateway"
	"github.com/atomicstack/zkbrowse/internal/logging/events"
	"github.com/atomicstack/zkbrowse/internal/mux"
)

const noSelection = -1

// Options tune how a Browser reacts to events.
type Options struct {
	// ExitKey terminates the consumer loop.
	ExitKey mux.Key
	// RollbackOnError restores the path when a Left/Right listing fails.
	// By default the path keeps the attempted move and the listing goes
	// stale until the next successful navigation.
	RollbackOnError bool
	// OnExternal folds External events into the log. A nil hook ignores them.
	OnExternal func(message string) (Message, bool)
}

// DefaultOptions exits on 'q' and ignores external messages.
func DefaultOptions() Options {
	return Options{ExitKey: mux.RuneKey('q')}
}

// Browser is the single "browsing" state, parameterised by session data.
type Browser struct {
	gw       gateway.Reader
	opts     Options
	path     []string
	children []string
	selected int
	log      []Message
}

// New returns a browser positioned at the root with an empty listing. Call
// Load to fetch the root's children.
func New(gw gateway.Reader, opts Options) *Browser {
	return &Browser{
		gw:       gw,
		opts:     opts,
		selected: noSelection,
	}
}

// Load lists the current path. Failures are logged like any other navigation.
func (b *Browser) Load() {
	b.list("load")
}

// Handle applies one event and reports whether the loop should exit.
func (b *Browser) Handle(evt mux.Event) bool {
	switch e := evt.(type) {
	case mux.KeyInput:
		return b.handleKey(e.Key)
	case mux.Tick:
		return false
	case mux.External:
		if b.opts.OnExternal != nil {
			if msg, ok := b.opts.OnExternal(e.Message); ok {
				b.appendMessage(msg)
			}
		}
		return false
	default:
		return false
	}
}

func (b *Browser) handleKey(key mux.Key) bool {
	if key == b.opts.ExitKey {
		events.Nav.Exit(key.String())
		return true
	}
	switch key.Type {
	case mux.KeyDown:
		b.moveDown()
	case mux.KeyUp:
		b.moveUp()
	case mux.KeyLeft:
		b.ascend()
	case mux.KeyRight:
		b.descend()
	case mux.KeyEnter:
		b.read()
	}
	return false
}

// Path returns a copy of the current path segments.
func (b *Browser) Path() []string {
	return cloneStrings(b.path)
}

// PathString renders the current path, "/" at the root.
func (b *Browser) PathString() string {
	return gateway.Join(b.path...)
}

// Children returns a copy of the current listing.
func (b *Browser) Children() []string {
	return cloneStrings(b.children)
}

// Selected returns the selected index and whether a selection exists.
func (b *Browser) Selected() (int, bool) {
	if b.selected == noSelection {
		return 0, false
	}
	return b.selected, true
}

// Messages returns the log in append order.
func (b *Browser) Messages() []Message {
	if len(b.log) == 0 {
		return nil
	}
	out := make([]Message, len(b.log))
	copy(out, b.log)
	return out
}

func (b *Browser) appendMessage(msg Message) {
	b.log = append(b.log, msg)
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
