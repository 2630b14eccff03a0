package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	appName    = "correctme"
	configFile = "config.yaml"
	envFile    = ".env"
)

// Environment variables that override the config file
const (
	EnvServiceURL     = "CORRECTME_URL"
	EnvLanguage       = "CORRECTME_LANGUAGE"
	EnvSpeechEndpoint = "CORRECTME_SPEECH_ENDPOINT"
)

// ErrExists is returned by Init when the file is already present
var ErrExists = errors.New("config file already exists")

// Mutex for file writes within this process
var fileMutex sync.Mutex

// GetConfigDir returns the OS-appropriate configuration directory:
//   - Linux: $XDG_CONFIG_HOME/correctme or $HOME/.config/correctme
//   - macOS: $HOME/.config/correctme
//   - Windows: %LOCALAPPDATA%\correctme
func GetConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, appName), nil
		}
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
		}
		return filepath.Join(userProfile, "AppData", "Local", appName), nil

	case "darwin":
		// XDG layout on macOS as well
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil

	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil
	}
}

// GetConfigPath returns the full path to the default configuration file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// ResolvePath returns override when set, otherwise the default path
func ResolvePath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return GetConfigPath()
}

// Load reads settings from path. A missing file yields the defaults.
// Environment overrides are not applied.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	settings := NewSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	settings.applyDefaults()

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return settings, nil
}

// LoadEffective reads path, then applies .env from the same directory and
// the environment on top.
func LoadEffective(path string) (*Settings, error) {
	settings, err := Load(path)
	if err != nil {
		return nil, err
	}

	if err := LoadDotEnv(filepath.Dir(path)); err != nil {
		return nil, err
	}
	ApplyEnv(settings)

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}
	return settings, nil
}

// LoadDefault loads the effective settings from the default location and
// returns the path that was used.
func LoadDefault() (*Settings, string, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get config path: %w", err)
	}
	settings, err := LoadEffective(path)
	if err != nil {
		return nil, path, err
	}
	return settings, path, nil
}

// LoadDotEnv loads dir/.env into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, envFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from CORRECTME_* environment variables
func ApplyEnv(s *Settings) {
	if v := strings.TrimSpace(os.Getenv(EnvServiceURL)); v != "" {
		s.Service.URL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv(EnvLanguage)); v != "" {
		s.Language = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSpeechEndpoint)); v != "" {
		s.Speech.Endpoint = v
	}
}

// Save writes the settings to path atomically
func (s *Settings) Save(path string) error {
	if err := s.Validate(); err != nil {
		return err
	}

	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# CorrectMe configuration
#
# Environment variables ` + EnvServiceURL + `, ` + EnvLanguage + ` and
# ` + EnvSpeechEndpoint + ` override the values below.
#
# Location: ` + path + `

`)
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// Update loads the file at path without environment overrides, applies fn
// and saves the result.
func Update(path string, fn func(*Settings) error) error {
	settings, err := Load(path)
	if err != nil {
		return err
	}
	if err := fn(settings); err != nil {
		return err
	}
	return settings.Save(path)
}

// Init writes a default config file to path.
// It returns ErrExists unless force is set.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
	}
	return NewSettings().Save(path)
}
