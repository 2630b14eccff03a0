package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/correctme/correctme/internal/correction"
	"github.com/correctme/correctme/internal/logging"
)

const (
	// CorrectionSuffix marks text as processed by the stub
	CorrectionSuffix = " [corrected]"

	HomeMessage = "CorrectMe stub correction API is running"

	maxBodyBytes = 1 << 20
)

// Correct is the stub transformation
func Correct(text string) string {
	return text + CorrectionSuffix
}

// Handler returns the HTTP handler with logging and CORS applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("POST "+s.config.Path, s.handleSpellcheck)

	return withRequestLogging(withCORS(mux))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, correction.HealthResponse{Message: HomeMessage})
}

func (s *Server) handleSpellcheck(w http.ResponseWriter, r *http.Request) {
	if s.config.Delay > 0 {
		select {
		case <-time.After(s.config.Delay):
		case <-r.Context().Done():
			return
		}
	}

	if code := s.config.Status; code != 0 && code != http.StatusOK {
		writeJSON(w, code, correction.ErrorResponse{Error: http.StatusText(code)})
		return
	}

	var req correction.Request
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, correction.ErrorResponse{Error: "Request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, correction.ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeJSON(w, http.StatusBadRequest, correction.ErrorResponse{Error: "No text provided"})
		return
	}

	logging.Debug("Received text", zap.Int("length", len(text)))

	writeJSON(w, http.StatusOK, correction.Response{CorrectedText: Correct(text)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("Failed to write response", zap.Error(err))
	}
}
