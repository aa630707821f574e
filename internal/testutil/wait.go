package testutil

import (
	"testing"
	"time"
)

const pollInterval = 10 * time.Millisecond

// Eventually polls cond until it holds or timeout elapses, failing the test
// with the formatted message in the latter case.
func Eventually(t *testing.T, timeout time.Duration, cond func() bool, format string, args ...interface{}) {
	t.Helper()
	deadline := time.After(timeout)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timeout: "+format, args...)
		case <-time.After(pollInterval):
		}
	}
}
