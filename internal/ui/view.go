package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/zkbrowse/internal/browser"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	paneBorderSize = 2
	footerRows     = 1
	titleRows      = 1
	messagesTitle  = "Messages"
	emptyListing   = "(no children)"
	ellipsis       = "…"
)

type layout struct {
	width      int
	height     int
	leftWidth  int
	rightWidth int
}

func (m *Model) layout() layout {
	w, h := m.width, m.height
	if w < 2*(paneBorderSize+1) {
		w = 2 * (paneBorderSize + 1)
	}
	if h < paneBorderSize+titleRows+footerRows+1 {
		h = paneBorderSize + titleRows + footerRows + 1
	}
	left := w / 2
	return layout{width: w, height: h, leftWidth: left, rightWidth: w - left}
}

func (l layout) innerWidth(outer int) int {
	return outer - paneBorderSize
}

func (l layout) innerHeight() int {
	return l.height - footerRows - paneBorderSize
}

func (l layout) bodyRows() int {
	return l.innerHeight() - titleRows
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	l := m.layout()
	view := m.browser.Snapshot()

	left := m.renderPane(l.leftWidth, l.innerHeight(), view.Title, renderTree(view, l.innerWidth(l.leftWidth), l.bodyRows()))
	right := m.renderPane(l.rightWidth, l.innerHeight(), messagesTitle, m.logView.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.footer(l.width))
}

func (m *Model) renderPane(outer, inner int, title, content string) string {
	width := outer - paneBorderSize
	header := styles.Title.Render(ansi.Truncate(title, width, ellipsis))
	return styles.Pane.
		Width(width).
		Height(inner).
		MaxHeight(inner + paneBorderSize).
		Render(header + "\n" + content)
}

func (m *Model) footer(width int) string {
	text := fmt.Sprintf("↑/↓ move  ← parent  → open  enter read  %s quit", m.exitKey)
	return styles.Footer.Render(ansi.Truncate(text, width, ellipsis))
}

// renderTree lists the children with a marker on the selection, scrolled so
// the selection stays within rows.
func renderTree(view browser.View, width, rows int) string {
	if len(view.Items) == 0 {
		return styles.Empty.Render(ansi.Truncate(emptyListing, width, ellipsis))
	}
	start := 0
	if rows > 0 && view.HasSelection() && view.Selected >= rows {
		start = view.Selected - rows + 1
	}
	end := len(view.Items)
	if rows > 0 && end-start > rows {
		end = start + rows
	}
	marker := styles.SelectedIndicator
	pad := strings.Repeat(" ", lipgloss.Width(marker)+1)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if i == view.Selected {
			line := ansi.Truncate(marker+" "+view.Items[i], width, ellipsis)
			lines = append(lines, styles.SelectedItem.Render(line))
			continue
		}
		lines = append(lines, styles.Item.Render(ansi.Truncate(pad+view.Items[i], width, ellipsis)))
	}
	return strings.Join(lines, "\n")
}

// renderLog renders log entries one per line in the order given.
func renderLog(log []browser.Message, width int) string {
	lines := make([]string, 0, len(log))
	for _, msg := range log {
		text := ansi.Truncate(flattenLine(msg.String()), width, ellipsis)
		switch msg.Kind {
		case browser.MessageError:
			lines = append(lines, styles.Error.Render(text))
		case browser.MessageValue:
			lines = append(lines, styles.Value.Render(text))
		default:
			lines = append(lines, styles.Info.Render(text))
		}
	}
	return strings.Join(lines, "\n")
}

var lineFlattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

func flattenLine(s string) string {
	return lineFlattener.Replace(s)
}
