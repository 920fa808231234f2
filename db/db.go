package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	_ "modernc.org/sqlite"

	"github.com/yuehcw/padres-project/config"
	"github.com/yuehcw/padres-project/models"
)

// Setup opens the configured database and exits if it cannot be reached.
func Setup(cfg *config.Config) *bun.DB {
	db, err := Open(context.Background(), cfg)
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}
	return db
}

// Open connects to PostgreSQL or SQLite depending on cfg.DBDriver.
func Open(ctx context.Context, cfg *config.Config) (*bun.DB, error) {
	var db *bun.DB
	switch cfg.DBDriver {
	case config.DriverSQLite:
		sqldb, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		db = sqldb
	default:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
		db = bun.NewDB(sqldb, pgdialect.New())
	}

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.DBDriver, err)
	}
	return db, nil
}

// OpenSQLite opens a SQLite database at path. The pool is pinned to one
// connection: an in-memory database exists per connection, and SQLite
// allows a single writer anyway.
func OpenSQLite(path string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	sqldb.SetMaxOpenConns(1)
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// CreateTables creates all tables in dependency order.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.Player)(nil),
		(*models.BattingEvent)(nil),
		(*models.PitchingEvent)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	indexes := []struct {
		model   interface{}
		name    string
		columns []string
	}{
		{(*models.BattingEvent)(nil), "batting_info_player_idx", []string{"player_id"}},
		{(*models.BattingEvent)(nil), "batting_info_pa_idx", []string{"game_bam_id", "at_bat_number"}},
		{(*models.PitchingEvent)(nil), "pitching_info_player_idx", []string{"player_id"}},
		{(*models.PitchingEvent)(nil), "pitching_info_pa_idx", []string{"game_bam_id", "at_bat_number"}},
	}
	for _, idx := range indexes {
		_, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.columns...).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	return nil
}

// Truncate empties the event and player tables, events first.
func Truncate(ctx context.Context, db bun.IDB) error {
	tables := []interface{}{
		(*models.BattingEvent)(nil),
		(*models.PitchingEvent)(nil),
		(*models.Player)(nil),
	}
	for _, model := range tables {
		// SQLite has no TRUNCATE; a plain DELETE works on both.
		if _, err := db.NewDelete().Model(model).Where("1 = 1").Exec(ctx); err != nil {
			return fmt.Errorf("emptying %T: %w", model, err)
		}
	}
	return nil
}

// BatchSize is the number of rows written per INSERT.
const BatchSize = 500

// BulkInsert writes rows in batches, skipping rows that already exist.
func BulkInsert[T any](ctx context.Context, db bun.IDB, rows []T) error {
	for start := 0; start < len(rows); start += BatchSize {
		end := min(start+BatchSize, len(rows))
		batch := rows[start:end]
		if _, err := db.NewInsert().Model(&batch).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
			return fmt.Errorf("insert %T rows %d-%d: %w", rows[start], start, end, err)
		}
	}
	return nil
}
