package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"personal-budget/internal/backend"
	"personal-budget/internal/cli"
	apphttp "personal-budget/internal/http"
	applog "personal-budget/internal/log"
	"personal-budget/internal/middleware/ratelimit"
)

func newServeCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the budget document and serve it over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, f)
		},
	}
}

func runServe(cmd *cobra.Command, f *flags) error {
	cfg, err := cli.LoadAndValidateConfig(f.apply)
	if err != nil {
		return err
	}
	logger := cli.SetupLogger(cfg)

	ctx, stop := cli.SignalContext(cmd.Context())
	defer stop()

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid document source configuration", applog.FieldError, err)
		return err
	}
	doc, res, err := backend.LoadDocument(ctx, backend.NewFactory(logger), bcfg, logger)
	if err != nil {
		applog.NewStructuredLogger(logger).LogError(ctx, "Failed to load budget document", err,
			applog.ComponentSource, applog.OpLoad, applog.LogFields{applog.FieldSource: string(bcfg.Kind)})
		return err
	}

	rl := ratelimit.DefaultConfig()
	rl.RequestsPerSecond = cfg.RateLimitRPS
	rl.Burst = cfg.RateLimitBurst

	srv, err := apphttp.NewServer(":"+cfg.Port, doc, apphttp.Options{
		Greeting:       cfg.Greeting,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimit:      rl,
		Logger:         logger,
	})
	if err != nil {
		logger.Error("Failed to create HTTP server", applog.FieldError, err)
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting budget server",
			"port", cfg.Port,
			applog.FieldSource, res.Kind,
			applog.FieldLocation, res.Location,
			"etag", srv.ETag())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on :%s: %w", cfg.Port, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
