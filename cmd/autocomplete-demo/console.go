package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-autocomplete/internal/demo"
	"github.com/goliatone/go-autocomplete/pkg/renderers/tui"
)

var consoleFormat string

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Fill the team form in the terminal",
	Long: `Prompts each field of the team form. Searches and toggles go through the
same service as the HTTP endpoints, so selection rules match the browser.`,
	RunE: runConsole,
}

func init() {
	consoleCmd.Flags().StringVar(&consoleFormat, "format", string(tui.OutputFormatJSON), "Output format (json, form, pretty)")
}

func runConsole(cmd *cobra.Command, args []string) error {
	app, err := demo.New(cmd.Context(), appOptions())
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	session, err := tui.New(app.Service,
		tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
		tui.WithOutputFormat(tui.OutputFormat(consoleFormat)),
	)
	if err != nil {
		return err
	}

	out, err := session.Run(cmd.Context(), demo.ConsoleFields()...)
	if errors.Is(err, tui.ErrAborted) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
