package mux

import "time"

// Event is one item of the multiplexed stream. The concrete type is one of
// KeyInput, Tick or External.
type Event interface {
	event()
}

// KeyInput carries a key read by the keyboard producer.
type KeyInput struct {
	Key Key
}

// Tick is emitted by the timer producer on a steady cadence.
type Tick struct {
	At time.Time
}

// External carries a message injected from outside the terminal.
type External struct {
	Message string
}

func (KeyInput) event() {}
func (Tick) event()     {}
func (External) event() {}
