package main

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yuehcw/padres-project/importer"
	"github.com/yuehcw/padres-project/metrics"
)

var (
	importData    string
	importInfo    string
	importMetrics string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace stored players and events with a fresh load",
	Long: `Truncate player_bio, batting_info and pitching_info, then load the
play-by-play CSV and the player info CSV. Only rows for the configured
TEAM are kept.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importData, "data", "", "play-by-play CSV (default DATA_FILE)")
	importCmd.Flags().StringVar(&importInfo, "info", "", "player info CSV (default PLAYER_INFO_FILE)")
	importCmd.Flags().StringVar(&importMetrics, "metrics-file", "", "write import counters in Prometheus text format (node_exporter textfile collector)")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if importData == "" {
		importData = cfg.DataFile
	}
	if importInfo == "" {
		importInfo = cfg.PlayerInfoFile
	}

	game, err := os.Open(importData)
	if err != nil {
		return fmt.Errorf("open data file: %w", err)
	}
	defer game.Close()
	info, err := os.Open(importInfo)
	if err != nil {
		return fmt.Errorf("open player info file: %w", err)
	}
	defer info.Close()

	bdb, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer bdb.Close()

	reg := prometheus.NewRegistry()
	start := time.Now()
	sum, err := importer.New(bdb, log, metrics.New(reg), cfg.Team).Run(ctx, game, info)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	log.Debug("import finished", zap.Duration("took", time.Since(start)))

	if importMetrics != "" {
		if err := prometheus.WriteToTextfile(importMetrics, reg); err != nil {
			return fmt.Errorf("write metrics file: %w", err)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d players, %d batting rows, %d pitching rows (%d skipped)\n",
		sum.Players, sum.Batting, sum.Pitching, sum.Skipped)
	return nil
}
