package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yuehcw/padres-project/models"
	"github.com/yuehcw/padres-project/stats"
)

// record is one CSV row addressed by header name.
type record struct {
	cols map[string]int
	vals []string
}

func (r record) str(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.vals) {
		return ""
	}
	return strings.TrimSpace(r.vals[i])
}

func (r record) optStr(name string) *string {
	if s := r.str(name); s != "" {
		return &s
	}
	return nil
}

func (r record) optFloat(name string) *float64 {
	f, err := strconv.ParseFloat(r.str(name), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// optInt accepts "3" as well as "3.0", the form spreadsheet exports use.
func (r record) optInt(name string) *int {
	f := r.optFloat(name)
	if f == nil || *f != math.Trunc(*f) {
		return nil
	}
	n := int(*f)
	return &n
}

func (r record) optInt64(name string) *int64 {
	s := r.str(name)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n
	}
	if f := r.optFloat(name); f != nil && *f == math.Trunc(*f) {
		n := int64(*f)
		return &n
	}
	return nil
}

func (r record) intOrZero(name string) int {
	if n := r.optInt(name); n != nil {
		return *n
	}
	return 0
}

func (r record) optBool(name string) *bool {
	switch strings.ToUpper(r.str(name)) {
	case "TRUE":
		t := true
		return &t
	case "FALSE":
		f := false
		return &f
	}
	return nil
}

// readRecords streams a CSV with a header row to fn.
func readRecords(r io.Reader, fn func(line int, rec record) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return errors.New("empty csv: missing header row")
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	for line := 2; ; line++ {
		vals, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := fn(line, record{cols: cols, vals: vals}); err != nil {
			return err
		}
	}
}

// rosterEntry is a team player as first seen in the game file.
type rosterEntry struct {
	bamID     int64
	firstName string
	lastName  string
	position  *string
}

// battingRow and pitchingRow carry the player's external id until the
// player table has been written and internal ids are known.
type battingRow struct {
	bamID int64
	event models.BattingEvent
}

type pitchingRow struct {
	bamID int64
	event models.PitchingEvent
}

// GameFile is the team's slice of a play-by-play export.
type GameFile struct {
	roster   []rosterEntry
	batting  []battingRow
	pitching []pitchingRow

	// Skipped counts team rows dropped for a missing or malformed game date
	// or player id.
	Skipped int
}

// Batting and Pitching report how many event rows were read.
func (g *GameFile) Batting() int  { return len(g.batting) }
func (g *GameFile) Pitching() int { return len(g.pitching) }

// ReadGameFile keeps the rows where team was batting or pitching.
func ReadGameFile(r io.Reader, team string) (*GameFile, error) {
	g := &GameFile{}
	seen := make(map[int64]bool)
	addPlayer := func(e rosterEntry) {
		if !seen[e.bamID] {
			seen[e.bamID] = true
			g.roster = append(g.roster, e)
		}
	}

	err := readRecords(r, func(_ int, rec record) error {
		batting := rec.str("batter_team") == team
		pitching := rec.str("pitcher_team") == team
		if !batting && !pitching {
			return nil
		}

		date, err := time.Parse(time.DateOnly, rec.str("game_date"))
		if err != nil {
			g.Skipped++
			return nil
		}

		if batting {
			if id := rec.optInt64("batter_bam_id"); id != nil {
				addPlayer(rosterEntry{
					bamID:     *id,
					firstName: rec.str("batter_name_first"),
					lastName:  rec.str("batter_name_last"),
					position:  rec.optStr("batter_position"),
				})
				g.batting = append(g.batting, battingRow{bamID: *id, event: battingEvent(rec, date)})
			} else {
				g.Skipped++
			}
		}
		if pitching {
			if id := rec.optInt64("pitcher_bam_id"); id != nil {
				p := "P"
				addPlayer(rosterEntry{
					bamID:     *id,
					firstName: rec.str("pitcher_name_first"),
					lastName:  rec.str("pitcher_name_last"),
					position:  &p,
				})
				g.pitching = append(g.pitching, pitchingRow{bamID: *id, event: pitchingEvent(rec, date)})
			} else {
				g.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("game file: %w", err)
	}
	return g, nil
}

func gameID(rec record) int64 {
	if id := rec.optInt64("game_bam_id"); id != nil {
		return *id
	}
	return 0
}

func battingEvent(rec record, date time.Time) models.BattingEvent {
	ev := models.BattingEvent{
		GameDate:           date,
		GameID:             gameID(rec),
		AtBatNumber:        rec.intOrZero("at_bat_number"),
		Inning:             rec.intOrZero("inning"),
		PitchSeq:           rec.intOrZero("pitch_seq"),
		EventType:          rec.optStr("event_type"),
		Description:        rec.optStr("description"),
		HitTrajectory:      rec.optStr("hit_trajectory"),
		HitExitSpeed:       rec.optFloat("hit_exit_speed"),
		HitVerticalAngle:   rec.optFloat("hit_vertical_angle"),
		HitHorizontalAngle: rec.optFloat("hit_horizontal_angle"),
		HitDistance:        rec.optFloat("hit_distance"),
		HitBearing:         rec.optFloat("hit_bearing"),
		PreBalls:           rec.optInt("pre_balls"),
		PreStrikes:         rec.optInt("pre_strikes"),
		PostBalls:          rec.optInt("post_balls"),
		PostStrikes:        rec.optInt("post_strikes"),
		PreVScore:          rec.optInt("pre_vscore"),
		PostVScore:         rec.optInt("post_vscore"),
		PreBasecode:        rec.optInt("pre_basecode"),
		PostBasecode:       rec.optInt("post_basecode"),
		PreR1BamID:         rec.optInt64("pre_r1_bam_id"),
		PreR2BamID:         rec.optInt64("pre_r2_bam_id"),
		PreR3BamID:         rec.optInt64("pre_r3_bam_id"),
		PostR1BamID:        rec.optInt64("post_r1_bam_id"),
		PostR2BamID:        rec.optInt64("post_r2_bam_id"),
		PostR3BamID:        rec.optInt64("post_r3_bam_id"),
		Swing:              rec.optBool("swing"),
		Contact:            rec.optBool("contact"),
		InPlay:             rec.optBool("in_play"),
		PitchType:          rec.optStr("pitch_type"),
		PlateX:             rec.optFloat("plate_x"),
		PlateZ:             rec.optFloat("plate_z"),
		CalledStrike:       rec.optBool("called_strike"),
		SwingingStrike:     rec.optBool("swinging_strike"),
		Chase:              rec.optBool("chase"),
		Ball:               rec.optBool("ball"),
		FirstName:          rec.str("batter_name_first"),
		LastName:           rec.str("batter_name_last"),
	}
	ev.Outcome = string(stats.Classify(rec.str("event_type"), rec.str("description")))
	return ev
}

func pitchingEvent(rec record, date time.Time) models.PitchingEvent {
	ev := models.PitchingEvent{
		GameDate:           date,
		GameID:             gameID(rec),
		AtBatNumber:        rec.intOrZero("at_bat_number"),
		Inning:             rec.intOrZero("inning"),
		PitchSeq:           rec.intOrZero("pitch_seq"),
		PitchType:          rec.optStr("pitch_type"),
		HorzBreak:          rec.optFloat("horz_break"),
		InducedVertBreak:   rec.optFloat("induced_vert_break"),
		RelSpeed:           rec.optFloat("rel_speed"),
		SpinRate:           rec.optFloat("spin_rate"),
		SpinAxis:           rec.optFloat("spin_axis"),
		ZoneSpeed:          rec.optFloat("zone_speed"),
		PlateX:             rec.optFloat("plate_x"),
		PlateZ:             rec.optFloat("plate_z"),
		Extension:          rec.optFloat("extension"),
		Tilt:               rec.optStr("tilt"),
		PreOuts:            rec.optInt("pre_outs"),
		PostOuts:           rec.optInt("post_outs"),
		PreVScore:          rec.optInt("pre_vscore"),
		PostVScore:         rec.optInt("post_vscore"),
		PreBalls:           rec.optInt("pre_balls"),
		PreStrikes:         rec.optInt("pre_strikes"),
		PostBalls:          rec.optInt("post_balls"),
		PostStrikes:        rec.optInt("post_strikes"),
		EventType:          rec.optStr("event_type"),
		Description:        rec.optStr("description"),
		HitExitSpeed:       rec.optFloat("hit_exit_speed"),
		HitDistance:        rec.optFloat("hit_distance"),
		HitVerticalAngle:   rec.optFloat("hit_vertical_angle"),
		HitHorizontalAngle: rec.optFloat("hit_horizontal_angle"),
		HitTrajectory:      rec.optStr("hit_trajectory"),
		InPlay:             rec.optBool("in_play"),
		FirstName:          rec.str("pitcher_name_first"),
		LastName:           rec.str("pitcher_name_last"),
	}
	ev.Outcome = string(stats.Classify(rec.str("event_type"), rec.str("description")))
	return ev
}

// PlayerInfo is the biographical part of the player info file.
type PlayerInfo struct {
	FirstName  string
	LastName   string
	Age        *int
	Height     *float64
	Weight     *float64
	Position   *string
	BirthPlace *string
	ImageURL   *string
}

// ReadPlayerInfo indexes the player info file by external id. Rows without
// a usable bam_id are ignored.
func ReadPlayerInfo(r io.Reader) (map[int64]PlayerInfo, error) {
	out := make(map[int64]PlayerInfo)
	err := readRecords(r, func(_ int, rec record) error {
		id := rec.optInt64("bam_id")
		if id == nil {
			return nil
		}
		out[*id] = PlayerInfo{
			FirstName:  rec.str("first_name"),
			LastName:   rec.str("last_name"),
			Age:        rec.optInt("age"),
			Height:     rec.optFloat("height"),
			Weight:     rec.optFloat("weight"),
			Position:   rec.optStr("position"),
			BirthPlace: rec.optStr("birth_place"),
			ImageURL:   rec.optStr("image_url"),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("player info: %w", err)
	}
	return out, nil
}

// players merges the roster with the info file. Info values win where
// present; the game file supplies names and a fallback position.
func (g *GameFile) players(info map[int64]PlayerInfo) []models.Player {
	out := make([]models.Player, 0, len(g.roster))
	for _, e := range g.roster {
		p := models.Player{
			BamID:     e.bamID,
			FirstName: e.firstName,
			LastName:  e.lastName,
			Position:  e.position,
		}
		if pi, ok := info[e.bamID]; ok {
			p.Age = pi.Age
			p.Height = pi.Height
			p.Weight = pi.Weight
			p.BirthPlace = pi.BirthPlace
			p.ImageURL = pi.ImageURL
			if pi.Position != nil {
				p.Position = pi.Position
			}
		}
		out = append(out, p)
	}
	return out
}
