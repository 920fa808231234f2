package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/yuehcw/padres-project/models"
)

// ErrNotFound is returned when a single-row lookup matches nothing.
var ErrNotFound = errors.New("db: not found")

// EventStore reads players and play-by-play rows. Rows come back in
// insertion order.
type EventStore struct {
	db bun.IDB
}

// NewEventStore wraps an open connection.
func NewEventStore(db bun.IDB) *EventStore {
	return &EventStore{db: db}
}

// BattingEvents returns every pitch seen by one batter.
func (s *EventStore) BattingEvents(ctx context.Context, playerID int) ([]models.BattingEvent, error) {
	var rows []models.BattingEvent
	err := s.db.NewSelect().
		Model(&rows).
		Where("b.player_id = ?", playerID).
		OrderExpr("b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("batting events for player %d: %w", playerID, err)
	}
	return rows, nil
}

// PitchingEvents returns every pitch thrown by one pitcher.
func (s *EventStore) PitchingEvents(ctx context.Context, playerID int) ([]models.PitchingEvent, error) {
	var rows []models.PitchingEvent
	err := s.db.NewSelect().
		Model(&rows).
		Where("pi.player_id = ?", playerID).
		OrderExpr("pi.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("pitching events for player %d: %w", playerID, err)
	}
	return rows, nil
}

// InPlayBattingEvents returns all batting rows that put the ball in play.
func (s *EventStore) InPlayBattingEvents(ctx context.Context) ([]models.BattingEvent, error) {
	var rows []models.BattingEvent
	err := s.db.NewSelect().
		Model(&rows).
		Where("b.in_play = ?", true).
		OrderExpr("b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("in-play batting events: %w", err)
	}
	return rows, nil
}

// InPlayPitchingEvents returns all pitching rows that were put in play.
func (s *EventStore) InPlayPitchingEvents(ctx context.Context) ([]models.PitchingEvent, error) {
	var rows []models.PitchingEvent
	err := s.db.NewSelect().
		Model(&rows).
		Where("pi.in_play = ?", true).
		OrderExpr("pi.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("in-play pitching events: %w", err)
	}
	return rows, nil
}

// Players lists every player.
func (s *EventStore) Players(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	if err := s.db.NewSelect().Model(&players).OrderExpr("p.player_id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("players: %w", err)
	}
	return players, nil
}

// Player fetches one player by id.
func (s *EventStore) Player(ctx context.Context, id int) (*models.Player, error) {
	player := new(models.Player)
	err := s.db.NewSelect().Model(player).Where("p.player_id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("player %d: %w", id, err)
	}
	return player, nil
}

// Ping checks the connection.
func (s *EventStore) Ping(ctx context.Context) error {
	var one int
	return s.db.NewSelect().ColumnExpr("1").Scan(ctx, &one)
}
