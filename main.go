package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"spacex-dashboard/config"
	"spacex-dashboard/services"
	"spacex-dashboard/storage"
	"spacex-dashboard/utils"
	"spacex-dashboard/web"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetDebug(cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg, logger).ExecuteContext(ctx); err != nil {
		logger.Error("%v", err)
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the CLI. The root command without a subcommand serves the dashboard.
func newRootCmd(cfg *config.Config, logger *utils.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "spacex-dashboard",
		Short:         "SpaceX launch records dashboard",
		Long:          `Serves an interactive dashboard of launch outcomes per site and payload mass.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg, logger)
		},
	}

	root.PersistentFlags().StringVar(&cfg.DatasetPath, "data", cfg.DatasetPath, "Launch CSV path (env: DATASET_PATH)")
	root.PersistentFlags().StringVar(&cfg.DatasetSource, "source", cfg.DatasetSource, "Dataset source: csv or postgres (env: DATASET_SOURCE)")
	root.PersistentFlags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging (env: LOG_DEBUG)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logger.SetDebug(cfg.Debug)
	}

	root.Flags().StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "Listen address (env: HTTP_ADDR)")

	root.AddCommand(serveCmd(cfg, logger))
	root.AddCommand(summaryCmd(cfg, logger))
	root.AddCommand(exportCmd(cfg, logger))
	root.AddCommand(importCmd(cfg, logger))
	root.AddCommand(snapshotCmd(cfg, logger))

	return root
}

func serveCmd(cfg *config.Config, logger *utils.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg, logger)
		},
	}
	cmd.Flags().StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "Listen address (env: HTTP_ADDR)")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	logger.Info("=== SpaceX Launch Records Dashboard starting ===")
	logger.Info("Config: source=%s | data=%s | addr=%s", cfg.DatasetSource, cfg.DatasetPath, cfg.HTTPAddr)

	charts, err := loadCharts(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv, err := web.NewServer(web.ServerConfig{
		Addr:   cfg.HTTPAddr,
		Charts: charts,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	if err := srv.Start(ctx); err != nil {
		return err
	}
	logger.Info("=== Dashboard stopped ===")
	return nil
}

// loadCharts loads the dataset from the configured source.
func loadCharts(ctx context.Context, cfg *config.Config, logger *utils.Logger) (*services.ChartService, error) {
	var (
		ds  *services.Dataset
		err error
	)

	switch cfg.DatasetSource {
	case config.SourceCSV:
		ds, err = services.LoadDataset(ctx, storage.NewCSVReader(cfg.DatasetPath), logger)
	case config.SourcePostgres:
		var store *storage.PostgresStore
		store, err = storage.NewPostgresStore(ctx, cfg.DSN(), cfg.MaxRetries, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		defer store.Close()
		ds, err = services.LoadStoredDataset(ctx, store, logger)
	default:
		return nil, fmt.Errorf("unknown dataset source %q (want %s or %s)", cfg.DatasetSource, config.SourceCSV, config.SourcePostgres)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	return services.NewChartService(ds, logger), nil
}
