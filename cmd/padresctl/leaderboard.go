package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yuehcw/padres-project/db"
	"github.com/yuehcw/padres-project/report"
	"github.com/yuehcw/padres-project/stats"
)

var leaderboardLimit int

var leaderboardCmd = &cobra.Command{
	Use:       "leaderboard <batting|pitching>",
	Short:     "Print the batted-ball leaderboard",
	Long:      "Batters are ranked by average exit velocity from high to low, pitchers by average exit velocity allowed from low to high.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"batting", "pitching"},
	RunE:      runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().IntVar(&leaderboardLimit, "limit", 0, "rows to print, 0 for all")
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	bdb, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer bdb.Close()
	store := db.NewEventStore(bdb)
	out := cmd.OutOrStdout()

	switch args[0] {
	case "batting":
		events, err := store.InPlayBattingEvents(ctx)
		if err != nil {
			return err
		}
		board, err := stats.BattingLeaderboard(events)
		if errors.Is(err, stats.ErrNoData) {
			fmt.Fprintln(out, "No batted balls stored yet. Run 'padresctl import' first.")
			return nil
		}
		if err != nil {
			return err
		}
		report.PrintBattingLeaderboard(out, board, leaderboardLimit)
	default:
		events, err := store.InPlayPitchingEvents(ctx)
		if err != nil {
			return err
		}
		board, err := stats.PitchingLeaderboard(events)
		if errors.Is(err, stats.ErrNoData) {
			fmt.Fprintln(out, "No batted balls stored yet. Run 'padresctl import' first.")
			return nil
		}
		if err != nil {
			return err
		}
		report.PrintPitchingLeaderboard(out, board, leaderboardLimit)
	}
	return nil
}
