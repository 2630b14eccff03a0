// Package tui implements the interactive CorrectMe editor using Bubble Tea.
//
// # Screens
//
// The editor is a single screen with two overlays:
//
//   - Editor: multi-line input, Submit button, status line while a
//     correction is in flight, and the "Corrected Text:" box once resolved
//   - Settings (ctrl+o): language, history visibility, issue reporting
//   - History (ctrl+y): the resolved submissions of this session
//
// # Architecture
//
// All correction state lives in a submission.Controller; the model only
// mirrors the textarea into it and renders Controller.Snapshot. A
// submission is started synchronously in Update (so the next View already
// shows the in-flight state) and completed in a tea.Cmd:
//
//	sub, ok := controller.Begin(text)
//	cmd := func() tea.Msg { return correctionDoneMsg{state: controller.Complete(ctx, sub)} }
//
// Speech recognition and config file reloads also arrive as messages.
//
// # Layout
//
// Every screen is wrapped by renderContainer, which draws the header with
// the application name and version, and a footer with context help.
package tui
