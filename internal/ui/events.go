package ui

import (
	"context"

	"github.com/atomicstack/zkbrowse/internal/mux"
	tea "github.com/charmbracelet/bubbletea"
)

// Source is the consumer side of the event multiplexer.
type Source interface {
	Next(ctx context.Context) (mux.Event, error)
}

type eventMsg struct {
	event mux.Event
}

type disconnectedMsg struct {
	err error
}

func waitForEvent(ctx context.Context, src Source) tea.Cmd {
	return func() tea.Msg {
		evt, err := src.Next(ctx)
		if err != nil {
			return disconnectedMsg{err: err}
		}
		return eventMsg{event: evt}
	}
}
