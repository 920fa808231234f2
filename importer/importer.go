// Package importer loads the play-by-play export and the player info file
// into the event store.
package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yuehcw/padres-project/db"
	"github.com/yuehcw/padres-project/metrics"
	"github.com/yuehcw/padres-project/models"
)

// Importer replaces the stored players and events with a fresh load.
type Importer struct {
	db      bun.IDB
	log     *zap.Logger
	metrics *metrics.Manager
	team    string
}

// New returns an Importer that keeps rows for team.
func New(bdb bun.IDB, logger *zap.Logger, m *metrics.Manager, team string) *Importer {
	return &Importer{db: bdb, log: logger, metrics: m, team: team}
}

// Summary reports what a run wrote.
type Summary struct {
	Players  int
	Batting  int
	Pitching int
	Skipped  int
}

// Run truncates the three tables and loads game and info. Batting and
// pitching rows are written concurrently once the players exist.
func (im *Importer) Run(ctx context.Context, game, info io.Reader) (*Summary, error) {
	bio, err := ReadPlayerInfo(info)
	if err != nil {
		return nil, err
	}
	file, err := ReadGameFile(game, im.team)
	if err != nil {
		return nil, err
	}
	if file.Skipped > 0 {
		im.log.Warn("skipped rows without a usable game date or player id", zap.Int("rows", file.Skipped))
	}

	if err := db.Truncate(ctx, im.db); err != nil {
		return nil, err
	}

	players := file.players(bio)
	if err := db.BulkInsert(ctx, im.db, players); err != nil {
		return nil, err
	}
	im.metrics.AddImported("player_bio", len(players))

	ids, err := im.playerIDs(ctx)
	if err != nil {
		return nil, err
	}

	batting := make([]models.BattingEvent, 0, len(file.batting))
	for _, row := range file.batting {
		ev := row.event
		ev.PlayerID = ids[row.bamID]
		batting = append(batting, ev)
	}
	pitching := make([]models.PitchingEvent, 0, len(file.pitching))
	for _, row := range file.pitching {
		ev := row.event
		ev.PlayerID = ids[row.bamID]
		pitching = append(pitching, ev)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := db.BulkInsert(gctx, im.db, batting); err != nil {
			return err
		}
		im.metrics.AddImported("batting_info", len(batting))
		return nil
	})
	g.Go(func() error {
		if err := db.BulkInsert(gctx, im.db, pitching); err != nil {
			return err
		}
		im.metrics.AddImported("pitching_info", len(pitching))
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	sum := &Summary{
		Players:  len(players),
		Batting:  len(batting),
		Pitching: len(pitching),
		Skipped:  file.Skipped,
	}
	im.log.Info("import complete",
		zap.String("team", im.team),
		zap.Int("players", sum.Players),
		zap.Int("batting_rows", sum.Batting),
		zap.Int("pitching_rows", sum.Pitching),
		zap.Int("skipped_rows", sum.Skipped),
	)
	return sum, nil
}

// playerIDs maps external ids to the ids the player table assigned.
func (im *Importer) playerIDs(ctx context.Context) (map[int64]int, error) {
	var players []models.Player
	if err := im.db.NewSelect().Model(&players).Column("player_id", "bam_id").Scan(ctx); err != nil {
		return nil, fmt.Errorf("reload players: %w", err)
	}
	ids := make(map[int64]int, len(players))
	for _, p := range players {
		ids[p.BamID] = p.PlayerID
	}
	return ids, nil
}
