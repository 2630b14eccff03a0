package speech

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/correctme/correctme/internal/logging"
)

const (
	// DefaultChunkSize is the audio frame size sent per message (100ms of 16kHz S16LE mono)
	DefaultChunkSize = 3200

	closeStreamMessage = `{"type":"CloseStream"}`
)

// Result is a transcript frame sent by the service
type Result struct {
	Transcript string `json:"transcript"`
	IsFinal    bool   `json:"is_final"`
}

// StreamRecognizer streams audio to a WebSocket speech to text service
type StreamRecognizer struct {
	Endpoint  string
	Source    AudioSource
	Dialer    *websocket.Dialer
	ChunkSize int
}

// URL returns the endpoint with the language parameter applied
func (s *StreamRecognizer) URL(locale string) (string, error) {
	u, err := url.Parse(s.Endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid speech endpoint: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return "", fmt.Errorf("invalid speech endpoint %q: scheme must be ws or wss", s.Endpoint)
	}

	if locale != "" {
		q := u.Query()
		q.Set("language", locale)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// Recognize records from Source until the service sends a final transcript.
// A connection closed normally without a final transcript yields "".
func (s *StreamRecognizer) Recognize(ctx context.Context, locale string) (string, error) {
	endpoint, err := s.URL(locale)
	if err != nil {
		return "", err
	}

	audio, err := s.Source.Open(ctx)
	if err != nil {
		return "", err
	}
	defer audio.Close()

	dialer := s.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	conn, _, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to connect to speech service: %w", err)
	}
	defer conn.Close()

	logging.Debug("Connected to speech service " + endpoint)

	done := make(chan struct{})
	var wg sync.WaitGroup
	defer func() {
		close(done)
		_ = conn.Close()
		_ = audio.Close()
		wg.Wait()
	}()

	// Unblock ReadMessage when the caller gives up
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.pump(conn, audio, done); err != nil {
			logging.Debug("Audio stream stopped: " + err.Error())
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return "", nil
			}
			return "", fmt.Errorf("speech service read failed: %w", err)
		}

		var result Result
		if err := json.Unmarshal(message, &result); err != nil {
			logging.Debug("Ignoring unparsable speech frame: " + logging.Truncate(message))
			continue
		}

		if result.IsFinal && strings.TrimSpace(result.Transcript) != "" {
			return result.Transcript, nil
		}
	}
}

// pump forwards audio as binary frames, then asks the service to finish
func (s *StreamRecognizer) pump(conn *websocket.Conn, audio io.Reader, done <-chan struct{}) error {
	size := s.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	buf := make([]byte, size)

	for {
		select {
		case <-done:
			return nil
		default:
		}

		n, err := audio.Read(buf)
		if n > 0 {
			if werr := conn.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			return conn.WriteMessage(websocket.TextMessage, []byte(closeStreamMessage))
		}
		if err != nil {
			return err
		}
	}
}
