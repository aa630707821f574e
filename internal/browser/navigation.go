package browser

import (
	"github.com/atomicstack/zkbrowse/internal/gateway"
	"github.com/atomicstack/zkbrowse/internal/logging/events"
)

func (b *Browser) moveDown() {
	n := len(b.children)
	if n == 0 {
		b.selected = noSelection
		return
	}
	if b.selected == noSelection || b.selected+1 >= n {
		b.selected = 0
	} else {
		b.selected++
	}
	events.Nav.Cursor(b.PathString(), b.selected)
}

func (b *Browser) moveUp() {
	n := len(b.children)
	if n == 0 {
		b.selected = noSelection
		return
	}
	if b.selected > 0 {
		b.selected--
	} else {
		b.selected = n - 1
	}
	events.Nav.Cursor(b.PathString(), b.selected)
}

func (b *Browser) ascend() {
	prev := cloneStrings(b.path)
	if len(b.path) > 0 {
		b.path = b.path[:len(b.path)-1]
	}
	events.Nav.Ascend(b.PathString())
	if !b.list("list") {
		b.rollback(prev)
	}
}

func (b *Browser) descend() {
	if b.selected == noSelection || b.selected >= len(b.children) {
		return
	}
	prev := cloneStrings(b.path)
	b.path = append(b.path, b.children[b.selected])
	events.Nav.Descend(b.PathString())
	if !b.list("list") {
		b.rollback(prev)
	}
}

func (b *Browser) rollback(prev []string) {
	if !b.opts.RollbackOnError {
		return
	}
	b.path = prev
	events.Nav.Rollback(b.PathString())
}

// list replaces the listing for the current path. On failure the previous
// listing and selection are kept and an error is logged.
func (b *Browser) list(op string) bool {
	target := b.PathString()
	kids, err := b.gw.ListChildren(target)
	if err != nil {
		events.Nav.Failure(op, target, err)
		b.appendMessage(ErrorMessage(err.Error()))
		return false
	}
	b.children = cloneStrings(kids)
	if len(b.children) == 0 {
		b.selected = noSelection
	} else {
		b.selected = 0
	}
	events.Nav.Listed(target, len(b.children))
	return true
}

// target is the current path, plus the selected child when there is one.
func (b *Browser) target() string {
	if b.selected == noSelection || b.selected >= len(b.children) {
		return b.PathString()
	}
	return gateway.Join(append(cloneStrings(b.path), b.children[b.selected])...)
}

func (b *Browser) read() {
	target := b.target()
	value, err := b.gw.ReadValue(target)
	if err != nil {
		events.Nav.Failure("read", target, err)
		b.appendMessage(ErrorMessage(err.Error()))
		return
	}
	events.Nav.Read(target, len(value))
	b.appendMessage(ValueMessage(target, value))
}
