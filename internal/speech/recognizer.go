package speech

import (
	"context"
	"errors"
	"strings"

	"github.com/correctme/correctme/internal/logging"
)

// ErrUnavailable is returned when speech input cannot be used on this system
var ErrUnavailable = errors.New("speech recognition unavailable")

// Recognizer produces a single final transcript
type Recognizer interface {
	Recognize(ctx context.Context, locale string) (string, error)
}

// Unavailable is the Recognizer used when nothing is configured
type Unavailable struct{}

// Recognize always fails with ErrUnavailable
func (Unavailable) Recognize(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

// Config selects the recognizer built by New
type Config struct {
	// Endpoint is the ws:// or wss:// URL of the streaming service
	Endpoint string
	// CaptureCommand records audio to stdout
	CaptureCommand string
}

// Enabled reports whether both halves of the pipeline are configured
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != "" && strings.TrimSpace(c.CaptureCommand) != ""
}

// New returns a Recognizer for cfg, or Unavailable when it is incomplete
func New(cfg Config) Recognizer {
	if !cfg.Enabled() {
		return Unavailable{}
	}
	return &StreamRecognizer{
		Endpoint: cfg.Endpoint,
		Source:   &CommandSource{Command: cfg.CaptureCommand},
	}
}

// Listen runs one recognition and hands a non-empty transcript to fn.
// ErrUnavailable and empty transcripts return nil without calling fn.
func Listen(ctx context.Context, r Recognizer, locale string, fn func(string)) error {
	transcript, err := r.Recognize(ctx, locale)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			logging.Debug("Speech input unavailable: " + err.Error())
			return nil
		}
		return err
	}

	if strings.TrimSpace(transcript) == "" {
		logging.Debug("Speech recognition returned no transcript")
		return nil
	}

	fn(transcript)
	return nil
}
