// Correctme-stub is a local stand-in for the text-correction service.
//
// It answers POST /spellcheck with the submitted text and a fixed suffix,
// and can add latency, force an error status and announce itself over
// mDNS so the client can be exercised without the real service.
//
// Usage:
//
//	correctme-stub serve [flags]
//
// See 'correctme-stub serve --help' for available options.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/correctme/correctme/internal/logging"
	"github.com/correctme/correctme/internal/server"
	"github.com/correctme/correctme/internal/version"
)

func main() {
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "correctme-stub",
	Short: "CorrectMe stub correction service",
	Long: `A stand-in for the CorrectMe text-correction service.

Every correction request is answered with the submitted text followed by
"` + server.CorrectionSuffix + `". Use it to develop and test the client
without access to the real service.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Serve command and flags
var (
	host      string
	port      int
	path      string
	delay     time.Duration
	status    int
	advertise bool
	instance  string
	logLevel  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stub service",
	Long: `Start the stub correction service.

Use --delay to simulate a slow service and --status to make every
correction request fail with the given HTTP status. With --advertise the
service is announced over mDNS and shows up in 'correctme discover'.`,
	Example: `  # Start on the default address (127.0.0.1:8000)
  correctme-stub serve

  # Listen on all interfaces and announce over mDNS
  correctme-stub serve --host 0.0.0.0 --advertise

  # Simulate a slow service
  correctme-stub serve --delay 2s

  # Make every correction fail
  correctme-stub serve --status 503`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&host, "host", server.DefaultHost, "Listen address (empty = all interfaces)")
	serveCmd.Flags().IntVar(&port, "port", server.DefaultPort, "Listen port (0 picks a free port)")
	serveCmd.Flags().StringVar(&path, "path", server.DefaultPath, "Correction endpoint path")
	serveCmd.Flags().DurationVar(&delay, "delay", 0, "Delay added before every correction response")
	serveCmd.Flags().IntVar(&status, "status", 0, "Force this HTTP status on correction requests")
	serveCmd.Flags().BoolVar(&advertise, "advertise", false, "Announce the service over mDNS")
	serveCmd.Flags().StringVar(&instance, "instance", "", "mDNS instance name (default: correctme-stub on <hostname>)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}

	srv, err := server.New(&server.Config{
		Host:      host,
		Port:      port,
		Path:      path,
		Delay:     delay,
		Status:    status,
		Advertise: advertise,
		Instance:  instance,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("correctme-stub %s (commit: %s)\n", version.Version, version.Commit)
	},
}
