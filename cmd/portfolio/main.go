// Package main implements the portfolio CLI: the web server plus store maintenance commands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kv.dev/portfolio/internal/config"
	"kv.dev/portfolio/internal/logging"
	"kv.dev/portfolio/internal/storage"
)

var (
	// configPath is the optional YAML config file
	configPath string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio site with an editable project list",
	Long: `portfolio serves the project card site, its edit page and theme settings.

Configuration comes from an optional YAML file and PORTFOLIO_* environment
variables, which take precedence.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(exportCmd)
}

// env bundles what every command needs
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	kv     storage.KV
}

// bootstrap loads configuration, builds the logger and opens the slot store
func bootstrap(ctx context.Context) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	kv, err := storage.Open(ctx, cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Driver, err)
	}

	return &env{cfg: cfg, logger: logger, kv: kv}, nil
}

// Close releases the store and flushes logs
func (e *env) Close() {
	if err := e.kv.Close(); err != nil {
		e.logger.Warn("failed to close store", zap.Error(err))
	}
	_ = e.logger.Sync()
}
