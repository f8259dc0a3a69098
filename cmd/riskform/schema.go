package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-riskform/pkg/constraints"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the OpenAPI schema of the form submission",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(constraints.OpenAPISchema(constraints.Default()))
		},
	}
}
