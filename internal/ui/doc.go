// Package ui renders the styled, non-interactive output of the correctme
// subcommands (check, status, discover, config).
//
// Output is styled with lipgloss only when it goes to a terminal. When it
// is piped, the Printer writes plain text so scripts can consume it:
//
//	$ echo "she go school" | correctme check | tee fixed.txt
//
// # Components
//
//   - Header: command banner with ordered parameters
//   - Result: success, failure or warning box with details and hints
//   - Table: aligned columns for listings such as discovered services
//
// The interactive editor lives in package tui; this package never reads
// input.
package ui
