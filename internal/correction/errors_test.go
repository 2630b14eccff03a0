package correction

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		et   ErrorType
		want string
	}{
		{ErrTypeNetwork, "Network Error"},
		{ErrTypeHTTP, "HTTP Error"},
		{ErrTypeParse, "Parse Error"},
		{ErrTypeTimeout, "Timeout"},
		{ErrTypeConnectionRefused, "Connection Refused"},
		{ErrTypeDNS, "DNS Error"},
		{ErrTypeCanceled, "Canceled"},
		{ErrTypeUnknown, "Unknown Error"},
		{ErrorType(99), "ErrorType(99)"},
	}

	for _, tt := range tests {
		if got := tt.et.String(); got != tt.want {
			t.Errorf("ErrorType(%d).String() = %q, want %q", tt.et, got, tt.want)
		}
	}
}

func TestServiceError_Error(t *testing.T) {
	err := NewHTTPError(400, "No text provided")
	msg := err.Error()

	if !strings.Contains(msg, "HTTP Error") || !strings.Contains(msg, "400") {
		t.Errorf("Error() = %q, want type and status", msg)
	}
	if !strings.Contains(msg, "No text provided") {
		t.Errorf("Error() = %q, want service detail", msg)
	}

	cause := errors.New("boom")
	wrapped := NewParseError("bad body", cause)
	if !errors.Is(wrapped, cause) {
		t.Error("ServiceError should unwrap to its cause")
	}
}

func TestClassifyNetworkError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"canceled", context.Canceled, ErrTypeCanceled},
		{"deadline", context.DeadlineExceeded, ErrTypeTimeout},
		{"dns", &net.DNSError{Name: "nope.invalid", Err: "no such host"}, ErrTypeDNS},
		{
			"refused",
			&net.OpError{Op: "dial", Net: "tcp", Err: &wrappedSyscall{syscall.ECONNREFUSED}},
			ErrTypeConnectionRefused,
		},
		{
			"url wrapping dns",
			&url.Error{Op: "Post", URL: "http://nope.invalid", Err: &net.DNSError{Name: "nope.invalid"}},
			ErrTypeDNS,
		},
		{"generic", errors.New("something odd"), ErrTypeNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyNetworkError(tt.err)
			if got.Type != tt.want {
				t.Errorf("ClassifyNetworkError() type = %v, want %v", got.Type, tt.want)
			}
		})
	}

	if ClassifyNetworkError(nil) != nil {
		t.Error("ClassifyNetworkError(nil) should be nil")
	}
}

// wrappedSyscall mimics os.SyscallError wrapping an errno
type wrappedSyscall struct{ errno syscall.Errno }

func (w *wrappedSyscall) Error() string { return w.errno.Error() }
func (w *wrappedSyscall) Unwrap() error { return w.errno }

func TestPredicates_WrappedErrors(t *testing.T) {
	err := fmt.Errorf("submit: %w", NewHTTPError(502, ""))

	if !IsHTTPError(err) {
		t.Error("IsHTTPError should see through fmt.Errorf wrapping")
	}
	if IsNetworkError(err) {
		t.Error("HTTP error is not a network error")
	}
	if GetStatusCode(err) != 502 {
		t.Errorf("GetStatusCode() = %d, want 502", GetStatusCode(err))
	}
	if GetStatusCode(errors.New("plain")) != 0 {
		t.Error("GetStatusCode() of a plain error should be 0")
	}
}

func TestUserFriendlyMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"refused", &ServiceError{Type: ErrTypeConnectionRefused}, "not running"},
		{"timeout", &ServiceError{Type: ErrTypeTimeout}, "timeout"},
		{"http with detail", NewHTTPError(400, "No text provided"), "HTTP 400): No text provided"},
		{"http without detail", NewHTTPError(500, ""), "HTTP 500"},
		{"parse", NewParseError("x", nil), "parse"},
		{"plain", errors.New("plain failure"), "plain failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UserFriendlyMessage(tt.err)
			if !strings.Contains(got, tt.want) {
				t.Errorf("UserFriendlyMessage() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestTroubleshootingHint(t *testing.T) {
	hint := TroubleshootingHint(&ServiceError{Type: ErrTypeConnectionRefused})
	if !strings.Contains(hint, "correctme-stub") {
		t.Errorf("refused hint should mention the stub, got %q", hint)
	}

	if !strings.Contains(TroubleshootingHint(NewHTTPError(503, "")), "503") {
		t.Error("5xx hint should include the status code")
	}

	if TroubleshootingHint(errors.New("x")) == "" {
		t.Error("hint for unknown errors should not be empty")
	}
}
