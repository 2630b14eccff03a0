package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a simple column listing
type Table struct {
	Headers []string
	Rows    [][]string
}

func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	return widths
}

// Render returns the table with a styled header row
func (t *Table) Render() string {
	return t.render(true)
}

// Plain returns the table without styling, columns separated by spaces
func (t *Table) Plain() string {
	return t.render(false)
}

func (t *Table) render(styled bool) string {
	widths := t.columnWidths()
	var lines []string

	line := func(cells []string, style *lipgloss.Style) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if i < len(widths)-1 {
				cell += strings.Repeat(" ", pad)
			}
			if style != nil {
				cell = style.Render(cell)
			}
			parts[i] = cell
		}
		return strings.Join(parts, "  ")
	}

	if styled {
		lines = append(lines, line(t.Headers, &TableHeaderStyle))
	} else {
		lines = append(lines, line(t.Headers, nil))
	}
	for _, row := range t.Rows {
		lines = append(lines, line(row, nil))
	}
	return strings.Join(lines, "\n")
}
