package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yuehcw/padres-project/db"
	"github.com/yuehcw/padres-project/report"
	"github.com/yuehcw/padres-project/stats"
)

var statsPlayerID int

var statsCmd = &cobra.Command{
	Use:       "stats <batting|pitching>",
	Short:     "Print one player's season line",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"batting", "pitching"},
	RunE:      runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsPlayerID, "player", 0, "player_id from player_bio")
	_ = statsCmd.MarkFlagRequired("player")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	bdb, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer bdb.Close()
	store := db.NewEventStore(bdb)
	out := cmd.OutOrStdout()

	player, err := store.Player(ctx, statsPlayerID)
	if errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("no player with id %d", statsPlayerID)
	}
	if err != nil {
		return err
	}
	report.PrintPlayerHeader(out, player)

	switch args[0] {
	case "batting":
		events, err := store.BattingEvents(ctx, statsPlayerID)
		if err != nil {
			return err
		}
		line, err := stats.BattingStats(events)
		if errors.Is(err, stats.ErrNoData) {
			fmt.Fprintln(out, "No batting data for this player.")
			return nil
		}
		if err != nil {
			return err
		}
		report.PrintBattingLine(out, line)
	default:
		events, err := store.PitchingEvents(ctx, statsPlayerID)
		if err != nil {
			return err
		}
		line, err := stats.PitchingStats(events)
		if errors.Is(err, stats.ErrNoData) {
			fmt.Fprintln(out, "No pitching data for this player.")
			return nil
		}
		if err != nil {
			return err
		}
		report.PrintPitchingLine(out, line)
	}
	return nil
}
