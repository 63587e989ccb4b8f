package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cat-health-synth/internal/platform/metrics"
	"cat-health-synth/internal/router"

	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP (score, analyze, datasets, metrics, swagger)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			repo, closeStore, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			params, source, err := a.loadParams()
			if err != nil {
				return err
			}
			p, err := a.predictor()
			if err != nil {
				return err
			}
			up, err := a.uploader(ctx)
			if err != nil {
				return err
			}

			handler := router.NewRouter(router.Options{
				Logger:       a.log,
				Metrics:      metrics.New(),
				Datasets:     repo,
				Predictor:    p,
				Uploader:     up,
				Params:       params,
				ParamsSource: source,
			})

			srv := &http.Server{
				Addr:         ":" + a.cfg.Port,
				Handler:      handler,
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("starting server", map[string]any{
					"addr":      srv.Addr,
					"store":     a.cfg.StoreDriver,
					"predictor": p != nil,
					"upload":    up != nil,
				})
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server error: %w", err)
			case <-ctx.Done():
			}

			a.log.Info("shutting down", nil)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("port", "8080", "puerto HTTP")
	a.bind(cmd.Flags().Lookup("port"), "PORT")
	return cmd
}
