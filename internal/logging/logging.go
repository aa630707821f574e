// Package logging writes to a single log file shared by every component. The
// terminal belongs to the UI, so nothing here ever writes to stdout.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "zkbrowse.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
)

// Error appends err to the log file. Nil errors are ignored.
func Error(err error) {
	if err == nil {
		return
	}
	appendEntry(func(w io.Writer) error {
		log.New(w, "", log.LstdFlags).Println(err.Error())
		return nil
	})
}

// Printf appends a formatted line to the log file.
func Printf(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	appendEntry(func(w io.Writer) error {
		log.New(w, "", log.LstdFlags).Println(line)
		return nil
	})
}

// Logger adapts the log file to printf-style logger interfaces such as
// zk.Logger.
type Logger struct {
	Prefix string
}

func (l Logger) Printf(format string, args ...interface{}) {
	if l.Prefix != "" {
		format = l.Prefix + ": " + format
	}
	Printf(format, args...)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are currently written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

type traceEntry struct {
	Time    time.Time   `json:"time"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Trace appends one JSON line when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	entry := traceEntry{Time: time.Now().UTC(), Event: event, Payload: payload}
	appendEntry(func(w io.Writer) error {
		return json.NewEncoder(w).Encode(entry)
	})
}

// appendEntry opens the log for a single append. Failures go to stderr, which
// the alt screen hides until exit.
func appendEntry(write func(io.Writer) error) {
	f, err := os.OpenFile(currentPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()
	if err := write(f); err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
	}
}

// Configure sets the log destination. Empty values fall back to the default
// path. Missing directories are created.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Path returns the active log destination.
func Path() string {
	return currentPath()
}

func currentPath() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}
