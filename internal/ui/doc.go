// Package ui contains the Bubble Tea program that renders the tree browser.
//
// The program runs with Bubble Tea's own input reader disabled: the keyboard
// belongs to the event multiplexer, which merges key presses with timer
// ticks and external messages. The model therefore never sees tea.KeyMsg.
//
// Message flow:
//   - Init returns a command that blocks on the multiplexer's Next.
//   - Each eventMsg is applied to the browser. When the browser reports the
//     exit key the model returns tea.Quit, otherwise the wait is re-armed.
//   - A disconnectedMsg means the stream ended; the error is kept for the
//     caller and the program quits.
//
// Rendering reads a browser.View snapshot only. The tree pane shows the
// current path and its children, the message pane shows the log most recent
// first and is clipped by a bubbles viewport.
package ui
