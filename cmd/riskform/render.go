package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-riskform/pkg/feedback"
	"github.com/goliatone/go-riskform/pkg/render"
)

func newRenderCmd(root *rootOptions) *cobra.Command {
	var (
		output      string
		templates   string
		lang        string
		errs        []string
		sets        []string
		probability string
		positive    bool
		model       string
		stylesheets []string
		scripts     []string
	)
	cmd := &cobra.Command{
		Use:       "render form|result",
		Short:     "Render the clinical form or a result page as HTML",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"form", "result"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			var opts []render.Option
			if templates != "" {
				opts = append(opts, render.WithTemplatesDir(templates))
			}
			renderer, err := render.New(opts...)
			if err != nil {
				return err
			}

			var html []byte
			switch args[0] {
			case "form":
				values, err := parseSets(sets)
				if err != nil {
					return err
				}
				mapping := feedback.DefaultDisplayMapping().Merge(cfg.Feedback.Displays)
				page := render.DefaultFormPage(nil, mapping).WithValues(values)
				page.Lang = lang
				page.Errors = errs
				page.Stylesheets = stylesheets
				page.Scripts = scripts
				html, err = renderer.RenderForm(cmd.Context(), page)
				if err != nil {
					return err
				}
			case "result":
				var prob *float64
				if probability != "" {
					v, err := strconv.ParseFloat(probability, 64)
					if err != nil {
						return fmt.Errorf("invalid --probability %q: %w", probability, err)
					}
					prob = &v
				}
				page := render.NewResultPage(positive, model, prob)
				page.Lang = lang
				page.Stylesheets = stylesheets
				page.Scripts = scripts
				html, err = renderer.RenderResult(cmd.Context(), page)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown page %q: want form or result", args[0])
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(html)
				return err
			}
			if err := os.WriteFile(output, html, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Page written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&templates, "templates", "", "directory overriding the embedded templates")
	cmd.Flags().StringVar(&lang, "lang", "en", "page language")
	cmd.Flags().StringArrayVar(&errs, "error", nil, "server error shown on the form (repeatable)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value restored into the form (repeatable)")
	cmd.Flags().StringVar(&probability, "probability", "", "result probability as a percentage")
	cmd.Flags().BoolVar(&positive, "positive", false, "render a positive result")
	cmd.Flags().StringVar(&model, "model", "svm", "model key shown on the result page")
	cmd.Flags().StringArrayVar(&stylesheets, "stylesheet", nil, "stylesheet URL (repeatable)")
	cmd.Flags().StringArrayVar(&scripts, "script", nil, "script URL (repeatable)")
	return cmd
}
