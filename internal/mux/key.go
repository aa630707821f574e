package mux

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// KeyType identifies the logical key carried by a Key.
type KeyType int

const (
	KeyRune KeyType = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEsc
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
	KeyCtrlC
)

var keyNames = map[KeyType]string{
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyEnter:     "enter",
	KeyEsc:       "esc",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPgUp:      "pgup",
	KeyPgDown:    "pgdown",
	KeyCtrlC:     "ctrl+c",
}

// Key is a decoded terminal key. Keys are comparable, so a configured exit
// key can be matched with ==.
type Key struct {
	Type KeyType
	Rune rune
}

// RuneKey returns the Key for a printable character.
func RuneKey(r rune) Key {
	return Key{Type: KeyRune, Rune: r}
}

// String renders the key using Bubble Tea style names ("q", "up", "ctrl+c").
func (k Key) String() string {
	if k.Type == KeyRune {
		if k.Rune == ' ' {
			return "space"
		}
		return string(k.Rune)
	}
	if name, ok := keyNames[k.Type]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int(k.Type))
}

// ErrUnknownKey is returned by ParseKey for names it cannot map.
var ErrUnknownKey = errors.New("unknown key")

// ParseKey maps a key name, as produced by Key.String, back to a Key.
func ParseKey(name string) (Key, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		if name == " " {
			return RuneKey(' '), nil
		}
		return Key{}, fmt.Errorf("%w: empty name", ErrUnknownKey)
	}
	if trimmed == "space" {
		return RuneKey(' '), nil
	}
	for typ, n := range keyNames {
		if n == trimmed {
			return Key{Type: typ}, nil
		}
	}
	raw := strings.TrimSpace(name)
	if utf8.RuneCountInString(raw) == 1 {
		r, _ := utf8.DecodeRuneInString(raw)
		return RuneKey(r), nil
	}
	return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}
