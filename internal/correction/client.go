package correction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/correctme/correctme/internal/logging"
	"github.com/correctme/correctme/internal/version"
)

const (
	// DefaultBaseURL is where the reference correction service listens
	DefaultBaseURL = "http://127.0.0.1:8000"

	// DefaultPath is the correction endpoint path
	DefaultPath = "/spellcheck"

	// RequestIDHeader carries a per-request identifier for log correlation
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody caps how much of an error response is read
	maxErrorBody = 4096
)

// Client represents an HTTP client for the correction service
type Client struct {
	// BaseURL is the service base URL (e.g., "http://127.0.0.1:8000")
	BaseURL string

	// Path is the correction endpoint path (default: "/spellcheck")
	Path string

	// UserAgent is sent with every request
	UserAgent string

	// HTTPClient is the underlying HTTP client. Its Timeout is zero by default:
	// a request waits until the service answers or the context ends.
	HTTPClient *http.Client
}

// NewClient creates a new correction service client
// baseURL: Full base URL (e.g., "http://127.0.0.1:8000"); empty uses DefaultBaseURL
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Path:       DefaultPath,
		UserAgent:  "correctme/" + version.Version,
		HTTPClient: &http.Client{},
	}
}

// SetTimeout sets the HTTP request timeout (0 disables it)
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetPath sets the correction endpoint path
func (c *Client) SetPath(path string) {
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	c.Path = path
}

// Endpoint returns the full correction URL
func (c *Client) Endpoint() string {
	return c.BaseURL + c.Path
}

// Correct sends text to the service and returns the corrected text.
// The text is sent exactly as given, untrimmed.
// An empty return with a nil error means the body had no usable correctedText.
// Only a body that is not JSON, or is JSON null, is a parse error.
func (c *Client) Correct(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(Request{Text: text})
	if err != nil {
		return "", NewParseError("failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", NewNetworkError("failed to create POST request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", NewNetworkError("POST request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		logging.LogServiceCall(c.Endpoint(), requestID, resp.StatusCode, time.Since(start), errBody)
		return "", NewHTTPError(resp.StatusCode, errorDetail(errBody))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewNetworkError("failed to read response body", err)
	}
	logging.LogServiceCall(c.Endpoint(), requestID, resp.StatusCode, time.Since(start), respBody)

	if !json.Valid(respBody) {
		return "", NewParseError("failed to parse JSON response", nil)
	}
	if bytes.Equal(bytes.TrimSpace(respBody), []byte("null")) {
		return "", NewParseError("service returned a null response", nil)
	}

	return correctedText(respBody), nil
}

// correctedText pulls the correctedText field out of a valid JSON body.
// Any other shape yields "" so the caller shows its fallback. Non-zero
// numbers are returned as their literal text.
func correctedText(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	value, ok := fields["correctedText"]
	if !ok {
		return ""
	}

	var text string
	if err := json.Unmarshal(value, &text); err == nil {
		return text
	}

	var number json.Number
	if err := json.Unmarshal(value, &number); err == nil {
		if f, err := number.Float64(); err == nil && f != 0 {
			return number.String()
		}
	}
	return ""
}

// Ping performs a health check against the service root.
// Returns the service banner message when one is provided.
func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/", nil)
	if err != nil {
		return "", NewNetworkError("failed to create ping request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", NewNetworkError("service unreachable", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode != http.StatusOK {
		return "", NewHTTPError(resp.StatusCode, errorDetail(body))
	}

	var health HealthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		// Any 200 counts as alive; the banner is optional
		return "", nil
	}

	return health.Message, nil
}

// errorDetail extracts the service's error message from a failure body.
// Falls back to the raw body when it is not the expected JSON shape.
func errorDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}

	trimmed := strings.TrimSpace(string(body))
	if len(trimmed) > 200 {
		trimmed = trimmed[:200] + "..."
	}
	return trimmed
}

// String describes the client for log and status output
func (c *Client) String() string {
	return fmt.Sprintf("correction service at %s", c.Endpoint())
}
