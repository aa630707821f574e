package browser

// View is a read-only snapshot handed to the renderer.
type View struct {
	Title    string
	Items    []string
	Selected int
	// Log is ordered most recent first.
	Log []Message
}

// HasSelection reports whether Selected points at an item.
func (v View) HasSelection() bool {
	return v.Selected >= 0 && v.Selected < len(v.Items)
}

// Snapshot copies the session state into a View.
func (b *Browser) Snapshot() View {
	v := View{
		Title:    b.PathString(),
		Items:    cloneStrings(b.children),
		Selected: b.selected,
	}
	if n := len(b.log); n > 0 {
		v.Log = make([]Message, n)
		for i, msg := range b.log {
			v.Log[n-1-i] = msg
		}
	}
	return v
}
