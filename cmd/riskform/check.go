package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-riskform/internal/inspect"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	var (
		sets   []string
		submit bool
		asJSON bool
		wait   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Run the page behaviour against an HTML file",
		Long: `Loads FILE (or - for stdin) into an in-memory document, boots the page
runtime on an event loop, applies every --set value as user input and, with
--submit, submits the clinical form. Prints the slider displays, validation
messages, invalid fields and the result meters after the reveal.`,
		Example: `  riskform check form.html --set age=150 --set sex=1 --submit
  riskform check result.html --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			markup, err := readPage(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			values, err := parseSets(sets)
			if err != nil {
				return err
			}

			report, err := inspect.Run(cmd.Context(), markup, inspect.Options{
				Values:         values,
				Submit:         submit,
				Wait:           wait,
				RuntimeOptions: cfg.RuntimeOptions(),
				Logger:         logger,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return inspect.WriteText(out, report)
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value applied as user input (repeatable)")
	cmd.Flags().BoolVar(&submit, "submit", false, "submit the clinical form after applying values")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().DurationVar(&wait, "wait", 5*time.Second, "maximum time to wait for the result reveal")
	return cmd
}

func readPage(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func parseSets(sets []string) (map[string]string, error) {
	values := make(map[string]string, len(sets))
	for _, raw := range sets {
		field, value, ok := strings.Cut(raw, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid --set %q: want field=value", raw)
		}
		values[field] = value
	}
	return values, nil
}
