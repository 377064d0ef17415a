package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kv.dev/portfolio/internal/catalog"
	"kv.dev/portfolio/internal/handlers"
	"kv.dev/portfolio/internal/middleware"
	"kv.dev/portfolio/internal/services"
)

// serveCmd runs the web server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio web server",
	Long: `Start the portfolio web server. An empty store is seeded with the sample
projects unless storage.skip_seed is set.

Examples:
  # Serve with defaults (sqlite store in data/portfolio.db, port 8080)
  portfolio serve

  # Serve from a config file
  portfolio serve --config portfolio.yaml`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg, logger := e.cfg, e.logger

	store := services.NewRecordStore(e.kv, logger)
	if !cfg.Storage.SkipSeed {
		seeded, err := store.Seed(ctx, catalog.SeedProjects())
		if err != nil {
			return fmt.Errorf("failed to seed projects: %w", err)
		}
		if seeded {
			logger.Info("seeded empty store with sample projects")
		}
	}

	remote := services.NewRemoteService(services.RemoteConfig{
		URL:         cfg.Remote.URL,
		Timeout:     cfg.Remote.Timeout,
		MinInterval: cfg.Remote.MinInterval,
	}, nil, logger)

	router := handlers.SetupRoutes(handlers.Deps{
		Config:   cfg,
		Logger:   logger,
		Projects: services.NewProjectService(store, logger),
		Themes:   services.NewThemeService(e.kv, logger),
		Remote:   remote,
		Sessions: middleware.NewSessions(cfg.Session.SigningKey, cfg.Session.Secure, logger),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.RequestTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("addr", cfg.Server.Addr),
			zap.String("storage", cfg.Storage.Driver),
			zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
