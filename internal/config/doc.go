// Package config manages CorrectMe user settings.
//
// Settings live in a YAML file in the platform configuration directory:
//   - Linux: $XDG_CONFIG_HOME/correctme/config.yaml or $HOME/.config/correctme/config.yaml
//   - macOS: $HOME/.config/correctme/config.yaml
//   - Windows: %LOCALAPPDATA%\correctme\config.yaml
//
// Values are resolved in this order, later sources winning:
//
//	defaults < config.yaml < .env in the config directory < environment
//
// The recognised environment variables are CORRECTME_URL,
// CORRECTME_LANGUAGE and CORRECTME_SPEECH_ENDPOINT. Command line flags are
// applied on top by the caller.
//
// # Usage Example
//
//	settings, path, err := config.LoadDefault()
//	if err != nil {
//	    return err
//	}
//
//	client := correction.NewClient(settings.Service.URL)
//
//	// Persist a change without baking environment overrides into the file
//	err = config.Update(path, func(s *config.Settings) error {
//	    s.Language = "hi"
//	    return nil
//	})
//
// Writes go to a temporary file which is then renamed over the original,
// so Watch never observes a half written file.
package config
