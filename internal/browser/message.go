package browser

import "fmt"

// MessageKind tags the variant carried by a Message.
type MessageKind int

const (
	MessageError MessageKind = iota
	MessageValue
	MessageInfo
)

// Message is one entry of the append-only session log.
type Message struct {
	Kind MessageKind
	Path string
	Text string
}

// ErrorMessage records a failed gateway call.
func ErrorMessage(text string) Message {
	return Message{Kind: MessageError, Text: text}
}

// ValueMessage records the value read at path.
func ValueMessage(path, text string) Message {
	return Message{Kind: MessageValue, Path: path, Text: text}
}

// InfoMessage records a message folded in from outside the browser.
func InfoMessage(text string) Message {
	return Message{Kind: MessageInfo, Text: text}
}

// String renders the message the way it appears in the log pane.
func (m Message) String() string {
	switch m.Kind {
	case MessageValue:
		return fmt.Sprintf("%s => %s", m.Path, m.Text)
	default:
		return m.Text
	}
}
