package ui

import (
	"fmt"
	"io"
	"os"
)

// Printer writes UI components to a writer, styled only for terminals
type Printer struct {
	out    io.Writer
	width  int
	styled bool
}

// NewPrinter creates a Printer for w. If w is nil, os.Stdout is used.
// Styling is enabled when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	f, isFile := w.(*os.File)
	return &Printer{
		out:    w,
		width:  GetTerminalWidth(),
		styled: isFile && IsTerminal(f),
	}
}

// SetStyled overrides terminal detection
func (p *Printer) SetStyled(styled bool) *Printer {
	p.styled = styled
	return p
}

// Styled reports whether output is styled
func (p *Printer) Styled() bool {
	return p.styled
}

// Width returns the render width
func (p *Printer) Width() int {
	return p.width
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command banner. Nothing is printed when unstyled.
func (p *Printer) PrintHeader(title, command string, params ...Detail) {
	if !p.styled {
		return
	}
	h := NewHeader(title, command, params...)
	h.Width = p.width
	p.Println(h.Render())
}

// PrintResult prints a result box, or its plain form
func (p *Printer) PrintResult(r *Result) {
	if !p.styled {
		p.Println(r.Plain())
		return
	}
	r.Width = p.width
	p.Println(r.Render())
}

// PrintSuccess prints a success box
func (p *Printer) PrintSuccess(title string, details ...Detail) {
	p.PrintResult(NewSuccessResult(title, details...))
}

// PrintError prints a failure box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting ...string) {
	p.PrintResult(NewFailureResult(title, err, troubleshooting...))
}

// PrintWarning prints a warning box
func (p *Printer) PrintWarning(title string, details ...Detail) {
	p.PrintResult(NewWarningResult(title, details...))
}

// PrintTable prints a column listing
func (p *Printer) PrintTable(t *Table) {
	if p.styled {
		p.Println(t.Render())
		return
	}
	p.Println(t.Plain())
}
