package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/correctme/correctme/internal/config"
	"github.com/correctme/correctme/internal/correction"
	"github.com/correctme/correctme/internal/discovery"
	"github.com/correctme/correctme/internal/speech"
	"github.com/correctme/correctme/internal/submission"
	"github.com/correctme/correctme/internal/tui"
	"github.com/correctme/correctme/internal/ui"
)

// Global flags
var (
	serviceURL string
	language   string
	configPath string
	logLevel   string
)

// Command flags
var (
	outputFormat string
	scanTimeout  int
	forceInit    bool
)

const statusTimeout = 10 * time.Second

func init() {
	rootCmd.PersistentFlags().StringVar(&serviceURL, "url", "", "Correction service base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&language, "language", "", "Language code ("+strings.Join(config.LanguageCodes(), ", ")+")")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); logging is off when unset")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings resolves the effective settings: flags over environment over file
func loadSettings() (*config.Settings, string, error) {
	path, err := config.ResolvePath(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve config path: %w", err)
	}

	settings, err := config.LoadEffective(path)
	if err != nil {
		return nil, path, err
	}

	if serviceURL != "" {
		settings.Service.URL = strings.TrimRight(serviceURL, "/")
	}
	if language != "" {
		settings.Language = language
	}
	if err := settings.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid flag: %w", err)
	}

	return settings, path, nil
}

func newClient(settings *config.Settings) *correction.Client {
	client := correction.NewClient(settings.Service.URL)
	client.SetPath(settings.Service.Path)
	client.SetTimeout(settings.Service.Timeout)
	return client
}

// runEditor launches the interactive editor
func runEditor(cmd *cobra.Command, args []string) error {
	settings, path, err := loadSettings()
	if err != nil {
		return err
	}

	controller := submission.NewController(
		newClient(settings),
		submission.WithHistorySize(settings.UI.HistorySize),
	)

	recognizer := speech.New(speech.Config{
		Endpoint:       settings.Speech.Endpoint,
		CaptureCommand: settings.Speech.CaptureCommand,
	})

	err = tui.Run(tui.Options{
		Controller: controller,
		Recognizer: recognizer,
		Settings:   settings,
		ConfigPath: path,
		Context:    cmd.Context(),
	})
	if err != nil {
		return fmt.Errorf("editor error: %w", err)
	}
	return nil
}

// checkCmd corrects a single piece of text
var checkCmd = &cobra.Command{
	Use:   "check [text...]",
	Short: "Correct text once and print the result",
	Long: `Send text to the correction service and print the corrected version.

Text is taken from the arguments, or read from stdin when no arguments are
given and stdin is not a terminal. The command exits non-zero when the
service cannot be reached or answers with an error.`,
	Example: `  # Correct a sentence
  correctme check "teh quick brown fox"

  # Correct a file
  correctme check < draft.txt

  # JSON output for scripting
  echo "recieve" | correctme check --format json`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&outputFormat, "format", "plain", "Output format (plain, json)")
}

// checkOutput is the JSON shape printed by check --format json
type checkOutput struct {
	Input         string `json:"input"`
	CorrectedText string `json:"correctedText"`
	State         string `json:"state"`
	Error         string `json:"error,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	if outputFormat != "plain" && outputFormat != "json" {
		return fmt.Errorf("invalid format %q (use plain or json)", outputFormat)
	}

	text, err := readInput(args, os.Stdin)
	if err != nil {
		return err
	}

	settings, _, err := loadSettings()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := newClient(settings)
	controller := submission.NewController(client, submission.WithHistorySize(1))

	sub, ok := controller.Begin(text)
	if !ok {
		return errors.New("no text provided")
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	if outputFormat == "plain" {
		printer.PrintHeader("TEXT CORRECTION", "correctme check",
			ui.Detail{Key: "Service", Value: client.Endpoint()},
			ui.Detail{Key: "Language", Value: settings.CurrentLanguage().Name},
		)
	}

	state := controller.Complete(ctx, sub)
	snap := controller.Snapshot()

	var callErr error
	if history := controller.History(); len(history) > 0 {
		callErr = history[0].Err
	}

	if outputFormat == "json" {
		out := checkOutput{
			Input:         text,
			CorrectedText: snap.Corrected,
			State:         state.String(),
		}
		if callErr != nil {
			out.Error = correction.UserFriendlyMessage(callErr)
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		printer.Println(string(data))
	} else if state == submission.Failed {
		if callErr == nil {
			callErr = errors.New(snap.Corrected)
		}
		printer.PrintError("Correction failed", callErr, correction.TroubleshootingHint(callErr))
	} else if printer.Styled() {
		printer.PrintResult(ui.NewSuccessResult("Corrected").WithBody(snap.Corrected))
	} else {
		printer.Println(snap.Corrected)
	}

	if state == submission.Failed {
		return failureError("correction", callErr)
	}
	return nil
}

// failureError builds the error a command exits with after a failed request
func failureError(action string, err error) error {
	switch {
	case err == nil:
		return fmt.Errorf("%s failed", action)
	case correction.IsCanceled(err):
		return fmt.Errorf("%s canceled", action)
	case correction.IsHTTPError(err):
		return fmt.Errorf("%s failed: service returned HTTP %d", action, correction.GetStatusCode(err))
	case correction.IsParseError(err):
		return fmt.Errorf("%s failed: service response was not valid JSON", action)
	case correction.IsNetworkError(err):
		return fmt.Errorf("%s failed: %s", action, correction.UserFriendlyMessage(err))
	}
	return fmt.Errorf("%s failed: %w", action, err)
}

// readInput joins args, or reads stdin when it is piped
func readInput(args []string, stdin *os.File) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if ui.IsTerminal(stdin) {
		return "", errors.New("no text provided: pass it as arguments or pipe it on stdin")
	}

	return readAll(stdin)
}

// readAll reads piped text, dropping the final newline that shells append
func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}

// statusCmd checks that the service answers
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the correction service",
	Long: `Ping the configured correction service and report whether it answers.

The service root is requested; any 200 response counts as up.`,
	Example: `  # Check the configured service
  correctme status

  # Check another service
  correctme status --url http://192.168.1.20:8000`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	settings, _, err := loadSettings()
	if err != nil {
		return err
	}

	client := newClient(settings)
	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintHeader("SERVICE STATUS", "correctme status",
		ui.Detail{Key: "URL", Value: client.BaseURL},
	)

	ctx, cancel := context.WithTimeout(cmd.Context(), statusTimeout)
	defer cancel()

	start := time.Now()
	message, err := client.Ping(ctx)
	if err != nil {
		printer.PrintError("Service unreachable", err, correction.TroubleshootingHint(err))
		return failureError("service check", err)
	}

	details := []ui.Detail{
		{Key: "Endpoint", Value: client.Endpoint()},
		{Key: "Latency", Value: time.Since(start).Round(time.Millisecond).String()},
	}
	if message != "" {
		details = append(details, ui.Detail{Key: "Message", Value: message})
	}
	printer.PrintSuccess("Service is up", details...)
	return nil
}

// discoverCmd finds correction services on the local network
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find correction services on the network",
	Long: `Browse for correction services using mDNS/DNS-SD discovery.

Services announce themselves as ` + discovery.ServiceType + `. The stub server
does this when started with --advertise.`,
	Example: `  # Scan for 5 seconds (default)
  correctme discover

  # Longer scan for busy networks
  correctme discover --timeout 15`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", int(discovery.DefaultScanTimeout/time.Second), "Scan timeout in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if scanTimeout <= 0 {
		return fmt.Errorf("invalid timeout %d", scanTimeout)
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintHeader("SERVICE DISCOVERY", "correctme discover",
		ui.Detail{Key: "Type", Value: discovery.ServiceType},
		ui.Detail{Key: "Timeout", Value: strconv.Itoa(scanTimeout) + "s"},
	)

	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(scanTimeout) * time.Second

	services, err := scanner.Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(services) == 0 {
		printer.PrintWarning("No correction services found",
			ui.Detail{Key: "Tip", Value: "Ensure the service is running with mDNS enabled"},
			ui.Detail{Key: "Tip", Value: "Try increasing --timeout for slower networks"},
			ui.Detail{Key: "Tip", Value: "Use --url to connect to a known address"},
		)
		return nil
	}

	table := &ui.Table{Headers: []string{"INSTANCE", "ENDPOINT", "VERSION"}}
	for _, svc := range services {
		table.Rows = append(table.Rows, []string{svc.Instance, svc.Endpoint(), svc.GetMetadata("version")})
	}
	printer.PrintTable(table)
	printer.Newline()
	printer.Println("Use 'correctme config set service.url <url>' to make one the default")

	return nil
}

// configCmd groups the settings subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Show or change the CorrectMe settings file.

Settings are resolved in this order: command-line flags, CORRECTME_*
environment variables (also read from a .env file next to the config
file), the config file, then built-in defaults.

Known keys: ` + strings.Join(config.Keys, ", "),
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, path, err := loadSettings()
		if err != nil {
			return err
		}

		printer := ui.NewPrinter(cmd.OutOrStdout())
		printer.PrintHeader("SETTINGS", "correctme config show",
			ui.Detail{Key: "File", Value: path},
		)

		table := &ui.Table{Headers: []string{"KEY", "VALUE"}}
		for _, k := range config.Keys {
			v, err := settings.Get(k)
			if err != nil {
				return err
			}
			table.Rows = append(table.Rows, []string{k, v})
		}
		printer.PrintTable(table)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ResolvePath(configPath)
		if err != nil {
			return fmt.Errorf("failed to resolve config path: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting in the config file",
	Example: `  correctme config set service.url http://192.168.1.20:8000
  correctme config set language hi
  correctme config set service.timeout 30s`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ResolvePath(configPath)
		if err != nil {
			return fmt.Errorf("failed to resolve config path: %w", err)
		}

		key, value := args[0], args[1]
		err = config.Update(path, func(s *config.Settings) error {
			return s.Set(key, value)
		})
		if err != nil {
			return err
		}

		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Setting saved",
			ui.Detail{Key: key, Value: value},
			ui.Detail{Key: "File", Value: path},
		)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ResolvePath(configPath)
		if err != nil {
			return fmt.Errorf("failed to resolve config path: %w", err)
		}

		if err := config.Init(path, forceInit); err != nil {
			if errors.Is(err, config.ErrExists) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			return err
		}

		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Config file created",
			ui.Detail{Key: "File", Value: path},
		)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
}
