package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// CurrentVersion is the config file format version
	CurrentVersion = 1

	DefaultServiceURL  = "http://127.0.0.1:8000"
	DefaultServicePath = "/spellcheck"
	DefaultLanguage    = "en"
	DefaultHistorySize = 20

	maxHistorySize = 1000
)

// Settings is the content of the config file
type Settings struct {
	Version  int             `yaml:"version"`
	Service  ServiceSettings `yaml:"service"`
	Language string          `yaml:"language"`
	Speech   SpeechSettings  `yaml:"speech,omitempty"`
	UI       UISettings      `yaml:"ui"`
}

// ServiceSettings locates the correction service
type ServiceSettings struct {
	URL     string        `yaml:"url"`
	Path    string        `yaml:"path,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"` // 0 waits indefinitely
}

// SpeechSettings configures voice input. Both fields are needed to enable it.
type SpeechSettings struct {
	Endpoint       string `yaml:"endpoint,omitempty"`        // ws:// or wss:// streaming STT URL
	CaptureCommand string `yaml:"capture_command,omitempty"` // e.g. "arecord -q -f S16_LE -r 16000 -c 1 -d 5"
}

// UISettings holds interactive preferences
type UISettings struct {
	ShowHistory bool `yaml:"show_history"`
	HistorySize int  `yaml:"history_size"`
}

// NewSettings returns the default settings
func NewSettings() *Settings {
	return &Settings{
		Version: CurrentVersion,
		Service: ServiceSettings{
			URL:  DefaultServiceURL,
			Path: DefaultServicePath,
		},
		Language: DefaultLanguage,
		UI: UISettings{
			HistorySize: DefaultHistorySize,
		},
	}
}

// applyDefaults fills fields left empty in a file
func (s *Settings) applyDefaults() {
	if s.Version == 0 {
		s.Version = CurrentVersion
	}
	if s.Service.URL == "" {
		s.Service.URL = DefaultServiceURL
	}
	if s.Service.Path == "" {
		s.Service.Path = DefaultServicePath
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
}

// Validate checks that the settings are usable
func (s *Settings) Validate() error {
	if s.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", s.Version, CurrentVersion)
	}

	u, err := url.Parse(s.Service.URL)
	if err != nil {
		return fmt.Errorf("invalid service.url %q: %w", s.Service.URL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid service.url %q: must be an http(s) URL with a host", s.Service.URL)
	}

	if !strings.HasPrefix(s.Service.Path, "/") {
		return fmt.Errorf("invalid service.path %q: must start with /", s.Service.Path)
	}

	if s.Service.Timeout < 0 {
		return fmt.Errorf("invalid service.timeout %s: must not be negative", s.Service.Timeout)
	}

	if _, ok := LookupLanguage(s.Language); !ok {
		return fmt.Errorf("unsupported language %q (supported: %s)", s.Language, strings.Join(LanguageCodes(), ", "))
	}

	if s.Speech.Endpoint != "" {
		u, err := url.Parse(s.Speech.Endpoint)
		if err != nil || (u.Scheme != "ws" && u.Scheme != "wss") {
			return fmt.Errorf("invalid speech.endpoint %q: must be a ws:// or wss:// URL", s.Speech.Endpoint)
		}
	}

	if s.UI.HistorySize < 0 || s.UI.HistorySize > maxHistorySize {
		return fmt.Errorf("invalid ui.history_size %d: must be between 0 and %d", s.UI.HistorySize, maxHistorySize)
	}

	return nil
}

// Keys lists the settings accepted by Set, in file order
var Keys = []string{
	"service.url",
	"service.path",
	"service.timeout",
	"language",
	"speech.endpoint",
	"speech.capture_command",
	"ui.show_history",
	"ui.history_size",
}

// Get returns a setting by dotted key
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case "service.url":
		return s.Service.URL, nil
	case "service.path":
		return s.Service.Path, nil
	case "service.timeout":
		return s.Service.Timeout.String(), nil
	case "language":
		return s.Language, nil
	case "speech.endpoint":
		return s.Speech.Endpoint, nil
	case "speech.capture_command":
		return s.Speech.CaptureCommand, nil
	case "ui.show_history":
		return strconv.FormatBool(s.UI.ShowHistory), nil
	case "ui.history_size":
		return strconv.Itoa(s.UI.HistorySize), nil
	}
	return "", fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys, ", "))
}

// Set assigns a setting by dotted key, parsing value for its type.
// The result is not validated; call Validate before saving.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "service.url":
		s.Service.URL = strings.TrimRight(value, "/")
	case "service.path":
		s.Service.Path = value
	case "service.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q for %s: %w", value, key, err)
		}
		s.Service.Timeout = d
	case "language":
		s.Language = value
	case "speech.endpoint":
		s.Speech.Endpoint = value
	case "speech.capture_command":
		s.Speech.CaptureCommand = value
	case "ui.show_history":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q for %s", value, key)
		}
		s.UI.ShowHistory = b
	case "ui.history_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid number %q for %s", value, key)
		}
		s.UI.HistorySize = n
	default:
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}
