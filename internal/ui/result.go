package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ResultType indicates success or failure
type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultFailure
	ResultWarning
)

// Result is an outcome box
type Result struct {
	Type            ResultType
	Title           string
	Body            string // free text shown under the title, e.g. corrected text
	Details         []Detail
	Error           error
	Troubleshooting []string
	Width           int
}

// NewSuccessResult creates a success box
func NewSuccessResult(title string, details ...Detail) *Result {
	return &Result{Type: ResultSuccess, Title: title, Details: details, Width: GetTerminalWidth()}
}

// NewFailureResult creates a failure box
func NewFailureResult(title string, err error, troubleshooting ...string) *Result {
	return &Result{Type: ResultFailure, Title: title, Error: err, Troubleshooting: troubleshooting, Width: GetTerminalWidth()}
}

// NewWarningResult creates a warning box
func NewWarningResult(title string, details ...Detail) *Result {
	return &Result{Type: ResultWarning, Title: title, Details: details, Width: GetTerminalWidth()}
}

// WithBody sets the free text section
func (r *Result) WithBody(body string) *Result {
	r.Body = body
	return r
}

// SetWidth sets the render width
func (r *Result) SetWidth(width int) *Result {
	r.Width = width
	return r
}

// Render returns the styled box
func (r *Result) Render() string {
	width := clampWidth(r.Width)

	var (
		color lipgloss.Color
		title string
	)
	switch r.Type {
	case ResultFailure:
		color = ErrorColor
		title = ErrorTitleStyle.Render(fmt.Sprintf("%s  FAILED  ─  %s", FailureMarker, r.Title))
	case ResultWarning:
		color = WarningColor
		title = WarningTitleStyle.Render(fmt.Sprintf("%s  WARNING  ─  %s", WarningMarker, r.Title))
	default:
		color = SuccessColor
		title = SuccessTitleStyle.Render(fmt.Sprintf("%s  %s", SuccessMarker, r.Title))
	}

	inner := width - 8
	lines := []string{title, ""}

	if r.Body != "" {
		lines = append(lines, ValueStyle.Width(inner).Render(r.Body), "")
	}

	if len(r.Details) > 0 {
		for _, d := range r.Details {
			lines = append(lines, KeyStyle.Width(15).Render(d.Key+":")+" "+ValueStyle.Render(d.Value))
		}
		lines = append(lines, "")
	}

	if r.Error != nil {
		lines = append(lines, ErrorMessageStyle.Width(inner).Render(r.Error.Error()), "")
	}

	if len(r.Troubleshooting) > 0 {
		lines = append(lines, KeyStyle.Bold(true).Render("Troubleshooting:"))
		for _, tip := range r.Troubleshooting {
			lines = append(lines, HintStyle.Width(inner).Render("  • "+tip))
		}
		lines = append(lines, "")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(color).
		Width(width-2).
		Padding(0, 2).
		Render(strings.TrimRight(strings.Join(lines, "\n"), "\n"))
}

// Plain renders the result without styling
func (r *Result) Plain() string {
	var b strings.Builder

	switch r.Type {
	case ResultFailure:
		fmt.Fprintf(&b, "Error: %s\n", r.Title)
	case ResultWarning:
		fmt.Fprintf(&b, "Warning: %s\n", r.Title)
	default:
		fmt.Fprintf(&b, "%s\n", r.Title)
	}
	if r.Body != "" {
		fmt.Fprintf(&b, "%s\n", r.Body)
	}
	for _, d := range r.Details {
		fmt.Fprintf(&b, "%s: %s\n", d.Key, d.Value)
	}
	if r.Error != nil {
		fmt.Fprintf(&b, "%s\n", r.Error)
	}
	for _, tip := range r.Troubleshooting {
		fmt.Fprintf(&b, "  - %s\n", tip)
	}
	return strings.TrimRight(b.String(), "\n")
}
