package ui

import (
	"context"

	"github.com/atomicstack/zkbrowse/internal/browser"
	"github.com/atomicstack/zkbrowse/internal/logging/events"
	"github.com/atomicstack/zkbrowse/internal/mux"
	"github.com/atomicstack/zkbrowse/internal/theme"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

var styles = theme.Default()

// Model implements the Bubble Tea model for the tree browser.
type Model struct {
	ctx     context.Context
	source  Source
	browser *browser.Browser
	exitKey mux.Key

	width    int
	height   int
	logView  viewport.Model
	err      error
	quitting bool
}

// NewModel wires a browser to an event source. The browser should already
// have loaded its initial listing.
func NewModel(ctx context.Context, src Source, b *browser.Browser, exitKey mux.Key) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Model{
		ctx:     ctx,
		source:  src,
		browser: b,
		exitKey: exitKey,
		width:   defaultWidth,
		height:  defaultHeight,
		logView: viewport.New(0, 0),
	}
	m.syncLog()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.source == nil {
		return nil
	}
	return waitForEvent(m.ctx, m.source)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		if m.browser.Handle(msg.event) {
			m.quitting = true
			return m, tea.Quit
		}
		m.syncLog()
		return m, waitForEvent(m.ctx, m.source)
	case disconnectedMsg:
		m.err = msg.err
		m.quitting = true
		events.UI.Disconnected(msg.err)
		return m, tea.Quit
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		events.UI.Resize(m.width, m.height)
		m.syncLog()
	}
	return m, nil
}

// Err returns the error that ended the event stream, if any.
func (m *Model) Err() error {
	return m.err
}

// Quitting reports whether the model has asked the program to exit.
func (m *Model) Quitting() bool {
	return m.quitting
}

// Browser exposes the underlying browser.
func (m *Model) Browser() *browser.Browser {
	return m.browser
}

func (m *Model) syncLog() {
	l := m.layout()
	m.logView.Width = l.innerWidth(l.rightWidth)
	m.logView.Height = l.bodyRows()
	m.logView.SetContent(renderLog(m.browser.Snapshot().Log, m.logView.Width))
	m.logView.GotoTop()
}
