package main

import (
	"bytes"
	"context"
	"errors"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/correctme/correctme/internal/config"
	"github.com/correctme/correctme/internal/correction"
	"github.com/correctme/correctme/internal/server"
	"github.com/correctme/correctme/internal/submission"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func newStub(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv, err := server.New(&server.Config{Status: status})
	if err != nil {
		t.Fatalf("server.New() error = %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestReadAll(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trailing newline", "hello\n", "hello"},
		{"crlf", "hello\r\n", "hello"},
		{"inner newlines kept", "a\nb\n", "a\nb"},
		{"no newline", "  spaced  ", "  spaced  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readAll(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("readAll() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("readAll() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadInput_Args(t *testing.T) {
	got, err := readInput([]string{"teh", "cat"}, nil)
	if err != nil {
		t.Fatalf("readInput() error = %v", err)
	}
	if got != "teh cat" {
		t.Errorf("readInput() = %q, want %q", got, "teh cat")
	}
}

func TestCheck_Plain(t *testing.T) {
	ts := newStub(t, 0)
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, "check", "--url", ts.URL, "--config", cfg, "--format", "plain", "hello", "world")
	if err != nil {
		t.Fatalf("check error = %v", err)
	}
	if want := "hello world" + server.CorrectionSuffix; strings.TrimSpace(out) != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestCheck_JSON(t *testing.T) {
	ts := newStub(t, 0)
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, "check", "--url", ts.URL, "--config", cfg, "--format", "json", "hi")
	if err != nil {
		t.Fatalf("check error = %v", err)
	}

	var got checkOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.State != submission.Succeeded.String() {
		t.Errorf("state = %q", got.State)
	}
	if got.CorrectedText != "hi"+server.CorrectionSuffix {
		t.Errorf("correctedText = %q", got.CorrectedText)
	}
}

func TestCheck_ServiceErrorFails(t *testing.T) {
	ts := newStub(t, http.StatusInternalServerError)
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, "check", "--url", ts.URL, "--config", cfg, "--format", "json", "hi")
	if err == nil {
		t.Fatal("check should fail on a service error")
	}
	if !strings.Contains(err.Error(), "HTTP 500") {
		t.Errorf("error = %v, want it to name the status", err)
	}

	var got checkOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.CorrectedText != submission.ErrorMarker {
		t.Errorf("correctedText = %q, want the error marker", got.CorrectedText)
	}
	if !strings.Contains(got.Error, "500") {
		t.Errorf("error = %q, want it to mention the status", got.Error)
	}
}

func TestCheck_InvalidFormat(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	_, err := execute(t, "check", "--config", cfg, "--format", "xml", "hi")
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("error = %v, want invalid format", err)
	}
}

func TestConfigSetAndShow(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	if _, err := execute(t, "config", "set", "language", "hi", "--config", cfg); err != nil {
		t.Fatalf("config set error = %v", err)
	}

	saved, err := config.Load(cfg)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if saved.Language != "hi" {
		t.Errorf("language = %q, want hi", saved.Language)
	}

	if _, err := execute(t, "config", "set", "nope", "x", "--config", cfg); err == nil {
		t.Error("unknown key should fail")
	}

	out, err := execute(t, "config", "show", "--config", cfg, "--url", "", "--language", "")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if !strings.Contains(out, "ui.history_size") {
		t.Errorf("show output should list every key:\n%s", out)
	}
}

func TestConfigInit(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	if _, err := execute(t, "config", "init", "--config", cfg, "--force=false"); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if _, err := execute(t, "config", "init", "--config", cfg, "--force=false"); err == nil {
		t.Error("second init should fail without --force")
	}
	if _, err := execute(t, "config", "init", "--config", cfg, "--force"); err != nil {
		t.Errorf("init --force error = %v", err)
	}
}

func TestFailureError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no cause", nil, "correction failed"},
		{"canceled", correction.NewNetworkError("POST request failed", context.Canceled), "correction canceled"},
		{"http status", correction.NewHTTPError(http.StatusBadGateway, "upstream down"), "correction failed: service returned HTTP 502"},
		{"parse", correction.NewParseError("failed to parse JSON response", nil), "correction failed: service response was not valid JSON"},
		{"network", correction.NewNetworkError("POST request failed", errors.New("reset")), "correction failed: Network error - check connection"},
		{"other", errors.New("boom"), "correction failed: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failureError("correction", tt.err).Error(); got != tt.want {
				t.Errorf("failureError() = %q, want %q", got, tt.want)
			}
		})
	}
}
