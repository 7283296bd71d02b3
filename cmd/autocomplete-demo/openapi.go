package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-autocomplete/internal/demo"
	"github.com/goliatone/go-autocomplete/pkg/apidoc"
)

var openapiFormat string

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Print the OpenAPI description of the autocomplete endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := demo.New(cmd.Context(), appOptions())
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		doc, err := app.OpenAPI(cmd.Context())
		if err != nil {
			return err
		}
		var body []byte
		switch openapiFormat {
		case "json":
			body, err = apidoc.MarshalJSON(doc)
		case "yaml":
			body, err = apidoc.MarshalYAML(doc)
		default:
			return fmt.Errorf("unknown format %q", openapiFormat)
		}
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(body)
		return err
	},
}

func init() {
	openapiCmd.Flags().StringVar(&openapiFormat, "format", "json", "Output format (json, yaml)")
}
