package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/atomicstack/zkbrowse/internal/browser"
	"github.com/atomicstack/zkbrowse/internal/mux"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestViewRendersBothPanes(t *testing.T) {
	b := seededBrowser(t, browser.DefaultOptions())
	b.Handle(mux.KeyInput{Key: mux.Key{Type: mux.KeyRight}})
	b.Handle(mux.KeyInput{Key: mux.Key{Type: mux.KeyEnter}})
	m := NewModel(context.Background(), nil, b, mux.RuneKey('q'))
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})

	view := m.View()
	for _, want := range []string{"/term", "> data1", "data2", "Messages", "/term/data1 => Valeur de noeud1", "q quit"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if got := lipgloss.Height(view); got != 20 {
		t.Fatalf("expected view height 20, got %d", got)
	}
	if got := lipgloss.Width(view); got != 100 {
		t.Fatalf("expected view width 100, got %d", got)
	}
}

func TestViewBlankWhenQuitting(t *testing.T) {
	b := seededBrowser(t, browser.DefaultOptions())
	m := NewModel(context.Background(), nil, b, mux.RuneKey('q'))
	m.quitting = true
	if m.View() != "" {
		t.Fatalf("expected empty view while quitting")
	}
}

func TestRenderTreeMarksSelection(t *testing.T) {
	view := browser.View{Items: []string{"a", "b", "c"}, Selected: 1}
	got := strings.Split(renderTree(view, 20, 10), "\n")
	if len(got) != 3 {
		t.Fatalf("expected three lines, got %q", got)
	}
	if strings.TrimSpace(got[1]) != "> b" {
		t.Fatalf("expected marker on b, got %q", got[1])
	}
	if strings.Contains(got[0], ">") || strings.Contains(got[2], ">") {
		t.Fatalf("only the selection carries the marker: %q", got)
	}
}

func TestRenderTreeEmptyListing(t *testing.T) {
	got := renderTree(browser.View{Selected: -1}, 20, 5)
	if !strings.Contains(got, emptyListing) {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func TestRenderTreeScrollsToSelection(t *testing.T) {
	items := make([]string, 10)
	for i := range items {
		items[i] = fmt.Sprintf("node-%02d", i)
	}
	got := renderTree(browser.View{Items: items, Selected: 8}, 20, 3)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected three visible rows, got %q", lines)
	}
	if !strings.Contains(lines[2], "> node-08") {
		t.Fatalf("expected selection on the last visible row, got %q", lines)
	}
	if strings.Contains(got, "node-05") {
		t.Fatalf("rows above the window must be hidden: %q", lines)
	}
}

func TestRenderTreeTruncatesLongNames(t *testing.T) {
	got := renderTree(browser.View{Items: []string{strings.Repeat("x", 40)}, Selected: 0}, 10, 5)
	if w := lipgloss.Width(got); w > 10 {
		t.Fatalf("expected width <= 10, got %d (%q)", w, got)
	}
	if !strings.HasSuffix(strings.TrimSpace(got), ellipsis) {
		t.Fatalf("expected ellipsis, got %q", got)
	}
}

func TestRenderLogKeepsOrderAndFlattens(t *testing.T) {
	log := []browser.Message{
		browser.ValueMessage("/a", "line1\nline2"),
		browser.ErrorMessage("boom"),
	}
	lines := strings.Split(renderLog(log, 40), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %q", lines)
	}
	if lines[0] != "/a => line1 line2" {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if lines[1] != "boom" {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}
