package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"newslens-api/api"
	"newslens-api/api/middleware"

	"github.com/spf13/cobra"
)

// shutdownTimeout bounds the wait for in-flight requests on shutdown
const shutdownTimeout = 30 * time.Second

func serveCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Endpoints:
  GET /health
  GET /api/v1/search?query=...&lang=en&country=US&type=article&include_content=true&limit=10
  GET /api/v1/article?url=...&include_content=true`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if port != "" {
				a.cfg.Server.Port = port
			}
			return runServer(cmd.Context(), a)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides PORT)")
	return cmd
}

func runServer(parent context.Context, a *app) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewRateLimiter(a.cfg.Server.RateLimit, a.cfg.Server.RateBurst, 0)
	go limiter.Run(ctx)

	srv := api.NewServer(":"+a.cfg.Server.Port, api.NewHandler(api.Config{
		Pipeline: a.pipeline,
		Logger:   a.logger,
		Limiter:  limiter,
		Flags:    a.flags,
		Version:  version,
	}))

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Server starting", map[string]interface{}{
			"port":          a.cfg.Server.Port,
			"cache_type":    a.cfg.Cache.Type,
			"rate_limit":    a.cfg.Server.RateLimit,
			"rate_burst":    a.cfg.Server.RateBurst,
			"item_delay":    a.cfg.Pipeline.ItemDelay.String(),
			"aggregators":   a.cfg.Pipeline.AggregatorHosts,
			"feature_flags": a.flags.GetAllFlags(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.logger.Info("Server stopped", nil)
	return nil
}
