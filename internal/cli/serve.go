package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"calorie-log/internal/app"
	"calorie-log/internal/server"
)

func newServeCmd(opts *options) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diary as HTTP tools",
		Long:  "Start an HTTP server that answers tool calls (list_products, add_product, calculate, get_stats, ...) with JSON results.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, opts)
			if err != nil {
				return err
			}
			defer e.Close()

			return e.run(cmd, opts, app.LogNotifier{Logger: e.logger}, func(a *app.App) error {
				srv := server.NewMealLogServer(&server.Config{Host: host, Port: port}, a, e.logger)

				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()

				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				defer signal.Stop(sigCh)

				errCh := make(chan error, 1)
				go func() {
					errCh <- srv.Start(ctx)
				}()

				select {
				case <-sigCh:
					e.logger.Info().Msg("received shutdown signal")
				case <-ctx.Done():
				case err := <-errCh:
					if err != nil {
						e.logger.Error().Err(err).Msg("server error")
						return err
					}
					return nil
				}

				e.logger.Info().Msg("shutting down")
				shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
				defer stop()
				return srv.Stop(shutdownCtx)
			})
		},
	}

	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "Host address")
	cmd.Flags().IntVar(&port, "port", 8011, "Port for HTTP transport")

	return cmd
}
