package app

import (
	"os"

	"golang.org/x/term"
)

// enterRawMode switches f to raw mode when it is a terminal so the keyboard
// producer sees individual key presses. The returned func restores it.
func enterRawMode(f *os.File) (func(), error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() { _ = term.Restore(fd, state) }, nil
}
