// Autocomplete-demo serves a sample team form built from autocomplete
// widgets backed by SQLite, and exposes the same fields in a terminal.
//
// Usage:
//
//	autocomplete-demo serve [flags]
//	autocomplete-demo console [flags]
//	autocomplete-demo openapi [--format yaml]
//	autocomplete-demo version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-autocomplete/internal/demo"
	"github.com/goliatone/go-autocomplete/internal/logging"
	"github.com/goliatone/go-autocomplete/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "autocomplete-demo",
	Short: "Autocomplete widget demo",
	Long: `Runs a team form whose fields are server-rendered autocomplete widgets.

People and teams live in a SQLite database seeded on start, timezones come from
the embedded IANA list. Field types are declared in fields.yaml.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(logLevel, logEncoding)
		if err != nil {
			return err
		}
		logging.SetLogger(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

var (
	dsn         string
	basePath    string
	logLevel    string
	logEncoding string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dsn, "db", "", "SQLite DSN (in-memory when empty)")
	flags.StringVar(&basePath, "base-path", "/autocomplete", "Mount path of the autocomplete endpoints")
	flags.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&logEncoding, "log-encoding", "console", "Log encoding (console, json)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(openapiCmd)
	rootCmd.AddCommand(versionCmd)
}

func appOptions() demo.Options {
	return demo.Options{
		DSN:      dsn,
		BasePath: basePath,
		Version:  version.Version,
		Logger:   logging.GetLogger(),
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "autocomplete-demo %s\n", version.Full())
	},
}
