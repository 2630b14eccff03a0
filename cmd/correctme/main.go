// Correctme is a terminal client for a remote text-correction service.
//
// Running without arguments opens the interactive editor: type or dictate
// text, submit it, and read the corrected version underneath. The check
// command does the same for a single piece of text and is suitable for
// scripts and pipes.
//
// Usage:
//
//	correctme [command] [flags]
//
// See 'correctme --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/correctme/correctme/internal/logging"
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
	Use:   "correctme",
	Short: "CorrectMe text correction client",
	Long: `A terminal client for a remote text-correction service.

Type or dictate text, submit it, and the corrected version is shown below
the editor. A session history, language selection and a link to report
issues are available from the settings menu.

If no command is specified, the interactive editor will launch automatically.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(logLevel)
	},
	RunE: runEditor,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("correctme %s (commit: %s)\n", version.Version, version.Commit)
	},
}
