package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-riskform/internal/preview"
	"github.com/goliatone/go-riskform/pkg/feedback"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form and result pages for preview",
		Long: `Starts an HTTP server with the rendered clinical form at /, a result page
fixture at /result?probability=NN&positive=true, the validation stylesheet
and the language switch endpoint.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load()
			if err != nil {
				return err
			}
			defer logger.Sync()
			if addr != "" {
				cfg.Server.Addr = addr
			}

			srv, err := preview.New(preview.Config{
				Addr:     cfg.Server.Addr,
				Lang:     cfg.Server.Lang,
				AllowAll: cfg.Server.AllowAllOrigins,
			},
				preview.WithLogger(logger),
				preview.WithDisplayMapping(feedback.DefaultDisplayMapping().Merge(cfg.Feedback.Displays)),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(srv.Start)
			g.Go(func() error {
				<-gctx.Done()
				logger.Info("preview: shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					logger.Error("preview: shutdown failed", zap.Error(err))
					return err
				}
				return nil
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
