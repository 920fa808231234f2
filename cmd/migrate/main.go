// cmd/migrate/main.go
// Copies player_bio, batting_info and pitching_info from the legacy MySQL
// mirror into PostgreSQL.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/padres?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/migrate
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/yuehcw/padres-project/config"
	bundb "github.com/yuehcw/padres-project/db"
	"github.com/yuehcw/padres-project/models"
	"github.com/yuehcw/padres-project/stats"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()
	if cfg.DBDriver != config.DriverPostgres {
		log.Fatalf("migrate writes to PostgreSQL, DB_DRIVER is %q", cfg.DBDriver)
	}

	// --- MySQL ---
	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/padres?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	// --- PostgreSQL ---
	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"player_bio", func() (int, error) { return migratePlayers(ctx, myDB, pgDB) }},
		{"batting_info", func() (int, error) { return migrateBatting(ctx, myDB, pgDB) }},
		{"pitching_info", func() (int, error) { return migratePitching(ctx, myDB, pgDB) }},
	}

	for _, s := range steps {
		start := time.Now()
		n, err := s.fn()
		if err != nil {
			log.Fatalf("migrate %s: %v", s.name, err)
		}
		log.Printf("%-15s  %d rows migrated in %s", s.name, n, time.Since(start).Round(time.Millisecond))
	}

	resetSequences(ctx, pgDB)
	log.Println("migration complete")
}

// --- helpers ---

func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func nullInt64(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	return &n.Int64
}

func nullStr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return &n.Float64
}

func nullBool(n sql.NullBool) *bool {
	if !n.Valid {
		return nil
	}
	return &n.Bool
}

// outcome classifies a legacy row, which predates the outcome column.
func outcome(eventType, description sql.NullString) string {
	return string(stats.Classify(eventType.String, description.String))
}

// batcher collects rows and writes a batch whenever it fills up.
type batcher[T any] struct {
	ctx   context.Context
	db    *bun.DB
	rows  []T
	total int
}

func (b *batcher[T]) add(row T) error {
	b.rows = append(b.rows, row)
	if len(b.rows) >= bundb.BatchSize {
		return b.flush()
	}
	return nil
}

func (b *batcher[T]) flush() error {
	if len(b.rows) == 0 {
		return nil
	}
	if err := bundb.BulkInsert(b.ctx, b.db, b.rows); err != nil {
		return err
	}
	b.total += len(b.rows)
	b.rows = b.rows[:0]
	return nil
}

// --- per-table migrations ---

func migratePlayers(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		`SELECT player_id, bam_id, first_name, last_name, age, height, weight,
		        position, birth_place, image_url
		 FROM player_bio`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	b := &batcher[models.Player]{ctx: ctx, db: pgDB}
	for rows.Next() {
		var (
			p        models.Player
			age      sql.NullInt64
			height   sql.NullFloat64
			weight   sql.NullFloat64
			position sql.NullString
	         birthPlace sql.NullString
			imageURL sql.NullString
		)
		if err := rows.Scan(&p.PlayerID, &p.BamID, &p.FirstName, &p.LastName, &age, &height, &weight,
			&position, &birthPlace, &imageURL); err != nil {
			return b.total, err
		}
		p.Age = nullInt(age)
		p.Height = nullFloat(height)
		p.Weight = nullFloat(weight)
		p.Position = nullStr(position)
		p.BirthPlace = nullStr(birthPlace)
		p.ImageURL = nullStr(imageURL)
		if err := b.add(p); err != nil {
			return b.total, err
		}
	}
	if err := b.flush(); err != nil {
		return b.total, err
	}
	return b.total, rows.Err()
}

func migrateBatting(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		`SELECT id, player_id, game_date, game_bam_id, at_bat_number, inning, pitch_seq,
		        event_type, description, hit_trajectory, hit_exit_speed, hit_vertical_angle,
		        hit_horizontal_angle, hit_distance, hit_bearing,
		        pre_balls, pre_strikes, post_balls, post_strikes, pre_vscore, post_vscore,
		        pre_basecode, post_basecode,
		        pre_r1_bam_id, pre_r2_bam_id, pre_r3_bam_id, post_r1_bam_id, post_r2_bam_id, post_r3_bam_id,
		        swing, contact, in_play, pitch_type, plate_x, plate_z,
		        called_strike, swinging_strike, chase, ball, first_name, last_name
		 FROM batting_info`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	b := &batcher[models.BattingEvent]{ctx: ctx, db: pgDB}
	for rows.Next() {
		var (
			ev                                    models.BattingEvent
			eventType, description, trajectory    sql.NullString
			exitSpeed, vAngle, hAngle, dist, bear sql.NullFloat64
			preBalls, preStrikes, postBalls       sql.NullInt64
	                                      postStrikes, preV, postV, preBC, postBC sql.NullInt64
			preR1, preR2, preR3                   sql.NullInt64
			postR1, postR2, postR3                sql.NullInt64
			swing, contact, inPlay                sql.NullBool
			pitchType                             sql.NullString
			plateX, plateZ                        sql.NullFloat64
			called, swinging, chase, ball         sql.NullBool
		)
		if err := rows.Scan(&ev.ID, &ev.PlayerID, &ev.GameDate, &ev.GameID, &ev.AtBatNumber, &ev.Inning, &ev.PitchSeq,
			&eventType, &description, &trajectory, &exitSpeed, &vAngle,
			&hAngle, &dist, &bear,
			&preBalls, &preStrikes, &postBalls, &postStrikes, &preV, &postV,
			&preBC, &postBC,
			&preR1, &preR2, &preR3, &postR1, &postR2, &postR3,
			&swing, &contact, &inPlay, &pitchType, &plateX, &plateZ,
			&called, &swinging, &chase, &ball, &ev.FirstName, &ev.LastName,
		); err != nil {
			return b.total, err
		}
		ev.EventType = nullStr(eventType)
		ev.Description = nullStr(description)
		ev.Outcome = outcome(eventType, description)
		ev.HitTrajectory = nullStr(trajectory)
		ev.HitExitSpeed = nullFloat(exitSpeed)
		ev.HitVerticalAngle = nullFloat(vAngle)
		ev.HitHorizontalAngle = nullFloat(hAngle)
		ev.HitDistance = nullFloat(dist)
		ev.HitBearing = nullFloat(bear)
		ev.PreBalls = nullInt(preBalls)
		ev.PreStrikes = nullInt(preStrikes)
		ev.PostBalls = nullInt(postBalls)
		ev.PostStrikes = nullInt(postStrikes)
		ev.PreVScore = nullInt(preV)
		ev.PostVScore = nullInt(postV)
		ev.PreBasecode = nullInt(preBC)
		ev.PostBasecode = nullInt(postBC)
		ev.PreR1BamID = nullInt64(preR1)
		ev.PreR2BamID = nullInt64(preR2)
		ev.PreR3BamID = nullInt64(preR3)
		ev.PostR1BamID = nullInt64(postR1)
		ev.PostR2BamID = nullInt64(postR2)
		ev.PostR3BamID = nullInt64(postR3)
		ev.Swing = nullBool(swing)
		ev.Contact = nullBool(contact)
		ev.InPlay = nullBool(inPlay)
		ev.PitchType = nullStr(pitchType)
		ev.PlateX = nullFloat(plateX)
		ev.PlateZ = nullFloat(plateZ)
		ev.CalledStrike = nullBool(called)
		ev.SwingingStrike = nullBool(swinging)
		ev.Chase = nullBool(chase)
		ev.Ball = nullBool(ball)
		if err := b.add(ev); err != nil {
			return b.total, err
		}
	}
	if err := b.flush(); err != nil {
		return b.total, err
	}
	return b.total, rows.Err()
}

func migratePitching(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		`SELECT id, player_id, game_date, game_bam_id, at_bat_number, inning, pitch_seq,
		        pitch_type, horz_break, induced_vert_break, rel_speed, spin_rate, spin_axis,
		        zone_speed, plate_x, plate_z, extension, tilt,
		        pre_outs, post_outs, pre_vscore, post_vscore,
		        pre_balls, pre_strikes, post_balls, post_strikes,
		        event_type, description, hit_exit_speed, hit_distance, hit_vertical_angle,
		        hit_horizontal_angle, hit_trajectory, in_play, first_name, last_name
		 FROM pitching_info`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	b := &batcher[models.PitchingEvent]{ctx: ctx, db: pgDB}
	for rows.Next() {
		var (
			ev                                   models.PitchingEvent
			pitchType, tilt                      sql.NullString
			hBreak, ivb, relSpeed, spin, axis    sql.NullFloat64
			zoneSpeed, plateX, plateZ, extension sql.NullFloat64
			preOuts, postOuts, preV, postV       sql.NullInt64
			preBalls, preStrikes, postB, postS   sql.NullInt64
			eventType, description, trajectory   sql.NullString
			exitSpeed, dist, vAngle, hAngle      sql.NullFloat64
			inPlay                               sql.NullBool
		)
		if err := rows.Scan(&ev.ID, &ev.PlayerID, &ev.GameDate, &ev.GameID, &ev.AtBatNumber, &ev.Inning, &ev.PitchSeq,
			&pitchType, &hBreak, &ivb, &relSpeed, &spin, &axis,
			&zoneSpeed, &plateX, &plateZ, &extension, &tilt,
			&preOuts, &postOuts, &preV, &postV,
			&preBalls, &preStrikes, &postB, &postS,
			&eventType, &description, &exitSpeed, &dist, &vAngle,
			&hAngle, &trajectory, &inPlay, &ev.FirstName, &ev.LastName,
		); err != nil {
			return b.total, err
		}
		ev.PitchType = nullStr(pitchType)
		ev.HorzBreak = nullFloat(hBreak)
		ev.InducedVertBreak = nullFloat(ivb)
		ev.RelSpeed = nullFloat(relSpeed)
		ev.SpinRate = nullFloat(spin)
		ev.SpinAxis = nullFloat(axis)
		ev.ZoneSpeed = nullFloat(zoneSpeed)
		ev.PlateX = nullFloat(plateX)
		ev.PlateZ = nullFloat(plateZ)
		ev.Extension = nullFloat(extension)
		ev.Tilt = nullStr(tilt)
		ev.PreOuts = nullInt(preOuts)
		ev.PostOuts = nullInt(postOuts)
		ev.PreVScore = nullInt(preV)
		ev.PostVScore = nullInt(postV)
		ev.PreBalls = nullInt(preBalls)
		ev.PreStrikes = nullInt(preStrikes)
		ev.PostBalls = nullInt(postB)
		ev.PostStrikes = nullInt(postS)
		ev.EventType = nullStr(eventType)
		ev.Description = nullStr(description)
		ev.Outcome = outcome(eventType, description)
		ev.HitExitSpeed = nullFloat(exitSpeed)
		ev.HitDistance = nullFloat(dist)
		ev.HitVerticalAngle = nullFloat(vAngle)
		ev.HitHorizontalAngle = nullFloat(hAngle)
		ev.HitTrajectory = nullStr(trajectory)
		ev.InPlay = nullBool(inPlay)
		if err := b.add(ev); err != nil {
			return b.total, err
		}
	}
	if err := b.flush(); err != nil {
		return b.total, err
	}
	return b.total, rows.Err()
}

// resetSequences advances each PG sequence to MAX(id) so new inserts don't conflict.
func resetSequences(ctx context.Context, pgDB *bun.DB) {
	seqs := []struct{ seq, table, col string }{
		{"player_bio_player_id_seq", "player_bio", "player_id"},
		{"batting_info_id_seq", "batting_info", "id"},
		{"pitching_info_id_seq", "pitching_info", "id"},
	}
	for _, s := range seqs {
		q := fmt.Sprintf(
			"SELECT setval('%s', COALESCE((SELECT MAX(%s) FROM %s), 1))",
			s.seq, s.col, s.table,
		)
		if _, err := pgDB.ExecContext(ctx, q); err != nil {
			log.Printf("reset seq %s: %v", s.seq, err)
		}
	}
	log.Println("sequences reset")
}
