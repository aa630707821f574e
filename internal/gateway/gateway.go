// Package gateway provides access to hierarchical, path-addressed key/value
// stores. ZooKeeper is the primary backend; SQLite and in-memory stores share
// the same semantics for offline use and tests.
package gateway

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

var (
	// ErrNotFound covers both a missing node and a node without children.
	ErrNotFound = errors.New("node not found")
	// ErrDecode reports a value that is not valid UTF-8 text.
	ErrDecode = errors.New("value is not valid text")
	// ErrConnection reports a transport or session failure.
	ErrConnection = errors.New("connection error")
	// ErrNodeExists is returned when creating a node that already exists.
	ErrNodeExists = errors.New("node already exists")
)

// Reader is the read side consumed by the browser.
type Reader interface {
	ListChildren(path string) ([]string, error)
	ReadValue(path string) (string, error)
}

// Store adds the operations needed to seed and manage a backend.
type Store interface {
	Reader
	Exists(path string) (bool, error)
	Create(path string, data []byte) error
	Close() error
}

// Error records the failing operation and path around one of the error kinds.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func opError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Path: path, Err: err}
}

// children sorts names and turns an empty listing into ErrNotFound.
func children(path string, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, opError("list", path, ErrNotFound)
	}
	out := make([]string, len(names))
	copy(out, names)
	sort.Strings(out)
	return out, nil
}

func decodeValue(path string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", opError("read", path, ErrDecode)
	}
	return string(data), nil
}
