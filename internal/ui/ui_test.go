package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestClampWidth(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, MinTerminalWidth},
		{40, MinTerminalWidth},
		{80, 80},
		{300, MaxContentWidth},
	}
	for _, tt := range tests {
		if got := clampWidth(tt.in); got != tt.want {
			t.Errorf("clampWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPrinter_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	if p.Styled() {
		t.Fatal("Styled() = true for a bytes.Buffer")
	}

	p.PrintHeader("Service status", "correctme status")
	if buf.Len() != 0 {
		t.Errorf("header printed when unstyled: %q", buf.String())
	}

	p.PrintSuccess("Service is running", Detail{"URL", "http://127.0.0.1:8000"}, Detail{"Latency", "12ms"})
	want := "Service is running\nURL: http://127.0.0.1:8000\nLatency: 12ms\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPrinter_PlainError(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintError("Service unreachable", errors.New("connection refused"), "Start it with: correctme-stub serve")

	out := buf.String()
	for _, want := range []string{"Error: Service unreachable", "connection refused", "  - Start it with: correctme-stub serve"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestResult_Render(t *testing.T) {
	tests := []struct {
		name   string
		result *Result
		want   []string
	}{
		{
			name:   "success with body",
			result: NewSuccessResult("Corrected Text:").WithBody("She goes to school."),
			want:   []string{SuccessMarker, "Corrected Text:", "She goes to school."},
		},
		{
			name:   "failure with hints",
			result: NewFailureResult("Request failed", errors.New("HTTP 500"), "check the service logs"),
			want:   []string{FailureMarker, "FAILED", "Request failed", "HTTP 500", "Troubleshooting:", "check the service logs"},
		},
		{
			name:   "warning with details",
			result: NewWarningResult("No services found", Detail{"Timeout", "5s"}),
			want:   []string{WarningMarker, "WARNING", "No services found", "Timeout:", "5s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.result.SetWidth(80).Render()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("Render() missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestHeader_RenderKeepsParamOrder(t *testing.T) {
	h := NewHeader("Check", "correctme check", Detail{"Service", "http://a"}, Detail{"Language", "English"})
	h.Width = 80
	out := h.Render()

	if !strings.Contains(out, "CHECK") {
		t.Errorf("title not uppercased:\n%s", out)
	}
	service := strings.Index(out, "Service:")
	language := strings.Index(out, "Language:")
	if service < 0 || language < 0 || service > language {
		t.Errorf("params out of order:\n%s", out)
	}
}

func TestTable_Plain(t *testing.T) {
	table := &Table{
		Headers: []string{"NAME", "URL"},
		Rows: [][]string{
			{"stub", "http://10.0.0.5:8000/spellcheck"},
			{"gpu box", "http://10.0.0.6:9000/spellcheck"},
		},
	}

	want := "NAME     URL\n" +
		"stub     http://10.0.0.5:8000/spellcheck\n" +
		"gpu box  http://10.0.0.6:9000/spellcheck"
	if got := table.Plain(); got != want {
		t.Errorf("Plain() =\n%s\nwant\n%s", got, want)
	}
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintTable(&Table{Headers: []string{"A"}, Rows: [][]string{{"x"}}})

	if got := buf.String(); got != "A\nx\n" {
		t.Errorf("output = %q", got)
	}
}
