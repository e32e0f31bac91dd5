package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"spacex-dashboard/config"
	"spacex-dashboard/models"
	"spacex-dashboard/services"
	"spacex-dashboard/snapshot"
	"spacex-dashboard/storage"
	"spacex-dashboard/utils"
)

func summaryCmd(cfg *config.Config, logger *utils.Logger) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print launch counts and success rates per site",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "table" && output != "json" {
				return fmt.Errorf("unknown output format: %s", output)
			}

			charts, err := loadCharts(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			report := charts.Summary()

			if output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return charts.PrintSummary(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	return cmd
}

func exportCmd(cfg *config.Config, logger *utils.Logger) *cobra.Command {
	var (
		site      string
		low, high float64
		out       string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the launches matching a site and payload range as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			charts, err := loadCharts(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			rng := charts.Dataset().Bounds()
			if cmd.Flags().Changed("low") {
				rng.Low = low
			}
			if cmd.Flags().Changed("high") {
				rng.High = high
			}
			records := charts.Filter(site, rng)

			var w *storage.CSVWriter
			if out == "" || out == "-" {
				w, err = storage.NewCSVWriter(cmd.OutOrStdout())
			} else {
				w, err = storage.NewCSVFileWriter(out)
			}
			if err != nil {
				return err
			}
			if err := writeLaunches(cmd.Context(), w, records); err != nil {
				return err
			}

			if out != "" && out != "-" {
				logger.Info("[export] Wrote %d launches (site=%s, payload %.0f-%.0f kg) to %s",
					len(records), site, rng.Low, rng.High, out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&site, "site", models.AllSites, "Launch site, or ALL")
	cmd.Flags().Float64Var(&low, "low", 0, "Minimum payload mass in kg (default: dataset minimum)")
	cmd.Flags().Float64Var(&high, "high", 0, "Maximum payload mass in kg (default: dataset maximum)")
	cmd.Flags().StringVar(&out, "out", "-", "Output CSV path, - for stdout")
	return cmd
}

func importCmd(cfg *config.Config, logger *utils.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load the launch CSV into PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ds, err := services.LoadDataset(ctx, storage.NewCSVReader(cfg.DatasetPath), logger)
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			store, err := storage.NewPostgresStore(ctx, cfg.DSN(), cfg.MaxRetries, logger)
			if err != nil {
				logger.Error("Make sure PostgreSQL is running: docker compose up -d")
				return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
			}

			if err := writeLaunches(ctx, store, ds.Records()); err != nil {
				return fmt.Errorf("PostgreSQL write failed: %w", err)
			}
			logger.Info("[import] Stored %d launches in PostgreSQL (table: launches)", ds.Len())
			return nil
		},
	}
}

// writeLaunches writes records to w and closes it. The write error wins over the close error.
func writeLaunches(ctx context.Context, w storage.LaunchWriter, records []*models.LaunchRecord) error {
	if err := w.Write(ctx, records); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func snapshotCmd(cfg *config.Config, logger *utils.Logger) *cobra.Command {
	var (
		baseURL string
		sites   []string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save a PNG screenshot of a running dashboard for each site",
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURL == "" {
				baseURL = "http://" + cfg.HTTPAddr
			}

			paths, err := snapshot.New(cfg, logger).Capture(cmd.Context(), baseURL, sites)
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			if err != nil {
				return fmt.Errorf("snapshot: %d saved, some captures failed: %w", len(paths), err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "", "Dashboard URL (default: http://HTTP_ADDR)")
	cmd.Flags().StringVar(&cfg.SnapshotDir, "dir", cfg.SnapshotDir, "Output directory (env: SNAPSHOT_DIR)")
	cmd.Flags().StringArrayVar(&sites, "site", nil, "Site to capture, repeatable (default: every dropdown option)")
	return cmd
}
