// Command padresctl loads the play-by-play export and prints stat tables
// from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/yuehcw/padres-project/config"
	"github.com/yuehcw/padres-project/db"
	applog "github.com/yuehcw/padres-project/logger"
)

var (
	debug bool

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "padresctl",
	Short: "Padres play-by-play stats tool",
	Long:  "Import the season play-by-play export and print batting, pitching and leaderboard tables.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Parse()
		if err != nil {
			return err
		}
		if debug {
			c.Debug = true
		}
		l, err := applog.NewConsole(c.Debug)
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		cfg, log = c, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging and SQL query output")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(statsCmd)
}

// openDB connects and makes sure the schema exists.
func openDB(ctx context.Context) (*bun.DB, error) {
	bdb, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.CreateTables(ctx, bdb); err != nil {
		_ = bdb.Close()
		return nil, err
	}
	return bdb, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
