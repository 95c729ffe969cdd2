package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tagfiler/tagfiler/internal/browse"
	"github.com/tagfiler/tagfiler/internal/fileops"
	"github.com/tagfiler/tagfiler/internal/logger"
	"github.com/tagfiler/tagfiler/pkg/api"
	"github.com/tagfiler/tagfiler/pkg/config"
	"github.com/tagfiler/tagfiler/pkg/metastore/store"
	"github.com/tagfiler/tagfiler/pkg/metrics"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the tagfiler server",
	Long: `Start the tagfiler API server with the specified configuration.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/tagfiler/config.yaml.

Examples:
  # Start with default config location
  tagfiler start

  # Start with custom config file
  tagfiler start --config /etc/tagfiler/config.yaml

  # Start with environment variable overrides
  TAGFILER_LOGGING_LEVEL=DEBUG tagfiler start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	if err := InitLogger(cfg); err != nil {
		return err
	}

	logger.Info("Configuration loaded",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
		logger.KeyBackend, string(cfg.Database.Type),
	)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		logger.Info("Metrics enabled", "endpoint", "/metrics")
	} else {
		logger.Info("Metrics collection disabled")
	}

	st, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize metadata store: %w", err)
	}
	defer func() { _ = st.Close() }()
	logger.Info("Metadata store ready", logger.KeyBackend, string(st.Type()))

	fs := browse.NewOSFilesystem()
	resolver := browse.NewResolver()
	lister := browse.NewLister(fs, resolver, cfg.Browse.HomePath)
	coordinator := fileops.NewCoordinator(fs, resolver, st, m, cfg.FileOps.CopyTags)

	server := api.NewServer(cfg.API, lister, coordinator, st, m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Server is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, initiating graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		if err := server.Stop(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", logger.KeyError, err)
			return err
		}
		cancel()
		<-serverDone
		logger.Info("Server stopped gracefully")
		return nil

	case err := <-serverDone:
		signal.Stop(sigChan)
		if err != nil {
			logger.Error("Server error", logger.KeyError, err)
			return err
		}
		return nil
	}
}
