package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-riskform/pkg/prompt"
)

func newPromptCmd(root *rootOptions) *cobra.Command {
	var (
		format string
		sets   []string
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill the clinical form in the terminal",
		Long: `Prompts for every field in form order, re-asking until each numeric answer
is within bounds, and prints the submission as json, form or pretty text.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := root.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			defaults, err := parseSets(sets)
			if err != nil {
				return err
			}
			session := prompt.New(
				prompt.WithPromptDriver(prompt.NewSurveyDriver(cmd.ErrOrStderr())),
				prompt.WithOutputFormat(prompt.OutputFormat(format)),
				prompt.WithDefaults(defaults),
			)
			out, err := session.Run(cmd.Context())
			if errors.Is(err, prompt.ErrAborted) {
				return fmt.Errorf("prompt aborted")
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", string(prompt.OutputFormatJSON), "output format: json, form or pretty")
	cmd.Flags().StringArrayVar(&sets, "default", nil, "field=value offered as the default answer (repeatable)")
	return cmd
}
