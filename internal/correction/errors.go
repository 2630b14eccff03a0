package correction

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeHTTP indicates the service answered with a non-success status
	ErrTypeHTTP
	// ErrTypeParse indicates the success body could not be decoded
	ErrTypeParse
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates nothing is listening at the service address
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeCanceled indicates the caller's context ended before a response
	ErrTypeCanceled
	// ErrTypeUnknown indicates an unknown or unexpected error
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeCanceled:
		return "Canceled"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ServiceError represents an error that occurred talking to the correction service
type ServiceError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Detail     string    // Error message reported by the service body (if any)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Detail != "" {
		msg += fmt.Sprintf(" (service said: %s)", e.Detail)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (caused by: %v)", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes a transport error and returns a typed ServiceError
func ClassifyNetworkError(err error) *ServiceError {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return &ServiceError{Type: ErrTypeCanceled, Message: "Request canceled", Err: err}
	}

	if os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return &ServiceError{Type: ErrTypeTimeout, Message: "Request timed out", Err: err}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &ServiceError{
			Type:    ErrTypeDNS,
			Message: fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:     err,
		}
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return &ServiceError{Type: ErrTypeConnectionRefused, Message: "Service refused connection", Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != err {
		return ClassifyNetworkError(urlErr.Err)
	}

	return &ServiceError{Type: ErrTypeNetwork, Message: "Network error occurred", Err: err}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error) *ServiceError {
	classified := ClassifyNetworkError(err)
	if classified == nil {
		return &ServiceError{Type: ErrTypeNetwork, Message: message}
	}
	classified.Message = message
	return classified
}

// NewHTTPError creates an error for a non-success status code
func NewHTTPError(statusCode int, detail string) *ServiceError {
	return &ServiceError{
		Type:       ErrTypeHTTP,
		Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		StatusCode: statusCode,
		Detail:     strings.TrimSpace(detail),
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *ServiceError {
	return &ServiceError{Type: ErrTypeParse, Message: message, Err: err}
}

func asServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// IsNetworkError checks if an error is a transport failure (including timeout, connection refused, DNS)
func IsNetworkError(err error) bool {
	if svcErr, ok := asServiceError(err); ok {
		return svcErr.Type == ErrTypeNetwork ||
			svcErr.Type == ErrTypeTimeout ||
			svcErr.Type == ErrTypeConnectionRefused ||
			svcErr.Type == ErrTypeDNS
	}
	return false
}

// IsHTTPError checks if an error is a non-success status
func IsHTTPError(err error) bool {
	if svcErr, ok := asServiceError(err); ok {
		return svcErr.Type == ErrTypeHTTP
	}
	return false
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	if svcErr, ok := asServiceError(err); ok {
		return svcErr.Type == ErrTypeParse
	}
	return false
}

// IsCanceled checks if the request was abandoned by the caller
func IsCanceled(err error) bool {
	if svcErr, ok := asServiceError(err); ok {
		return svcErr.Type == ErrTypeCanceled
	}
	return false
}

// GetStatusCode returns the HTTP status carried by err, or 0
func GetStatusCode(err error) int {
	if svcErr, ok := asServiceError(err); ok {
		return svcErr.StatusCode
	}
	return 0
}

// UserFriendlyMessage returns a concise message suitable for a status line
func UserFriendlyMessage(err error) string {
	svcErr, ok := asServiceError(err)
	if !ok {
		return err.Error()
	}

	switch svcErr.Type {
	case ErrTypeTimeout:
		return "Correction service not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Correction service is not running at the configured address"
	case ErrTypeDNS:
		return "Cannot resolve correction service hostname"
	case ErrTypeNetwork:
		return "Network error - check connection"
	case ErrTypeHTTP:
		if svcErr.Detail != "" {
			return fmt.Sprintf("Service error (HTTP %d): %s", svcErr.StatusCode, svcErr.Detail)
		}
		return fmt.Sprintf("Service error (HTTP %d)", svcErr.StatusCode)
	case ErrTypeParse:
		return "Failed to parse service response"
	case ErrTypeCanceled:
		return "Request canceled"
	default:
		return svcErr.Message
	}
}

// TroubleshootingHint returns advice for the check and status commands
func TroubleshootingHint(err error) string {
	svcErr, ok := asServiceError(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch svcErr.Type {
	case ErrTypeConnectionRefused:
		return strings.Join([]string{
			"Nothing is listening at the service address.",
			"Troubleshooting:",
			"  • Start the correction service (or 'correctme-stub serve' for testing)",
			"  • Check the URL with 'correctme config show'",
			"  • Use 'correctme discover' to find services on the local network",
		}, "\n")

	case ErrTypeDNS:
		return strings.Join([]string{
			"Could not resolve the service hostname.",
			"Troubleshooting:",
			"  • Use an IP address instead of a hostname",
			"  • Check your network DNS settings",
		}, "\n")

	case ErrTypeTimeout:
		return strings.Join([]string{
			"The service did not respond in time.",
			"Troubleshooting:",
			"  • Model-backed services can be slow on first request",
			"  • Raise service.timeout in the config file, or set it to 0 to wait indefinitely",
		}, "\n")

	case ErrTypeHTTP:
		if svcErr.StatusCode >= 500 {
			return fmt.Sprintf("The service failed while correcting the text (HTTP %d). Check the service logs.", svcErr.StatusCode)
		}
		return fmt.Sprintf("The service rejected the request (HTTP %d). Check service.url and service.path.", svcErr.StatusCode)

	case ErrTypeParse:
		return "The service answered with something other than the expected JSON. Check service.path points at the correction endpoint."

	default:
		return "Check your network connection and the configured service URL."
	}
}
