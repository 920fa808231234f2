package stats

import (
	"sort"

	"github.com/yuehcw/padres-project/models"
)

// PitchingLine is a pitcher's season line.
type PitchingLine struct {
	Games          int                `json:"games"`
	InningsPitched float64            `json:"innings_pitched"`
	Outs           int                `json:"outs"`
	Strikeouts     int                `json:"strikeouts"`
	EarnedRuns     int                `json:"earned_runs"`
	Walks          int                `json:"walks"`
	Hits           int                `json:"hits"`
	ERA            float64            `json:"era"`
	WHIP           float64            `json:"whip"`
	PitchUsage     map[string]float64 `json:"pitch_usage"`
}

// trackedPitchTypes are the pitch codes charted per date and by velocity.
var trackedPitchTypes = map[string]bool{
	"4S": true, "2S": true, "SL": true, "CB": true, "SW": true,
	"CH": true, "CT": true, "SP": true, "KN": true,
}

// IsTrackedPitchType reports whether code is one of the charted pitch types.
func IsTrackedPitchType(code string) bool {
	return trackedPitchTypes[code]
}

var (
	hitEvents = map[string]bool{"single": true, "double": true, "triple": true, "home_run": true}

	// runScoringEvents are the at-bat results whose score change is charged
	// to the pitcher as earned.
	runScoringEvents = map[string]bool{
		"single": true, "double": true, "triple": true, "home_run": true,
		"sacrifice_fly": true, "sacrifice_bunt": true,
		"field_out": true, "force_out": true, "ground_out": true,
	}
)

type halfInning struct {
	gameID int64
	inning int
}

func sortedPitching(events []models.PitchingEvent) []*models.PitchingEvent {
	rows := make([]*models.PitchingEvent, len(events))
	for i := range events {
		rows[i] = &events[i]
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.GameDate.Equal(b.GameDate) {
			return a.GameDate.Before(b.GameDate)
		}
		if a.GameID != b.GameID {
			return a.GameID < b.GameID
		}
		if a.Inning != b.Inning {
			return a.Inning < b.Inning
		}
		if a.AtBatNumber != b.AtBatNumber {
			return a.AtBatNumber < b.AtBatNumber
		}
		return a.PitchSeq < b.PitchSeq
	})
	return rows
}

// gameRuns folds the earned runs of a single game. Its state never outlives
// the game it was created for.
type gameRuns struct {
	gameID    int64
	processed map[int]struct{}
	byInning  map[int]int
	earned    int
}

func newGameRuns(gameID int64) *gameRuns {
	return &gameRuns{
		gameID:    gameID,
		processed: make(map[int]struct{}),
		byInning:  make(map[int]int),
	}
}

// add charges the score change of an at-bat's first row.
func (g *gameRuns) add(ev *models.PitchingEvent) {
	if _, ok := g.processed[ev.AtBatNumber]; ok {
		return
	}
	g.processed[ev.AtBatNumber] = struct{}{}

	if !runScoringEvents[deref(ev.EventType)] || ev.PreVScore == nil || ev.PostVScore == nil {
		return
	}
	if delta := *ev.PostVScore - *ev.PreVScore; delta > 0 {
		g.byInning[ev.Inning] += delta
		g.earned += delta
	}
}

// earnedRuns walks the sorted rows game by game.
func earnedRuns(rows []*models.PitchingEvent) int {
	total := 0
	var cur *gameRuns
	for _, ev := range rows {
		if cur == nil || cur.gameID != ev.GameID {
			if cur != nil {
				total += cur.earned
			}
			cur = newGameRuns(ev.GameID)
		}
		cur.add(ev)
	}
	if cur != nil {
		total += cur.earned
	}
	return total
}

// outsRecorded sums the outs made in each half inning. Rows missing either
// out count are ignored.
func outsRecorded(rows []*models.PitchingEvent) int {
	byInning := make(map[halfInning]int)
	for _, ev := range rows {
		if ev.PreOuts == nil || ev.PostOuts == nil {
			continue
		}
		if d := *ev.PostOuts - *ev.PreOuts; d > 0 {
			byInning[halfInning{ev.GameID, ev.Inning}] += d
		}
	}
	outs := 0
	for _, n := range byInning {
		outs += n
	}
	return outs
}

func countAtBats(rows []*models.PitchingEvent, match func(string) bool) int {
	seen := make(map[plateAppearance]struct{})
	for _, ev := range rows {
		if ev.EventType != nil && match(*ev.EventType) {
			seen[plateAppearance{ev.GameID, ev.AtBatNumber}] = struct{}{}
		}
	}
	return len(seen)
}

// PitchUsage returns the share of every recorded pitch type over all the
// pitcher's rows, in percent.
func PitchUsage(events []models.PitchingEvent) map[string]float64 {
	usage := make(map[string]float64)
	if len(events) == 0 {
		return usage
	}
	counts := make(map[string]int)
	for i := range events {
		if pt := deref(events[i].PitchType); pt != "" {
			counts[pt]++
		}
	}
	for pt, n := range counts {
		usage[pt] = percent(n, len(events))
	}
	return usage
}

// PitchingStats derives innings, strikeouts, walks, hits, earned runs, ERA,
// WHIP and pitch usage from a pitcher's rows.
func PitchingStats(events []models.PitchingEvent) (line *PitchingLine, err error) {
	defer guard("pitching stats", &line, &err)

	if len(events) == 0 {
		return nil, ErrNoData
	}
	rows := sortedPitching(events)

	games := make(map[int64]struct{})
	for _, ev := range rows {
		games[ev.GameID] = struct{}{}
	}

	outs := outsRecorded(rows)
	ip := float64(outs) / 3
	line = &PitchingLine{
		Games:          len(games),
		InningsPitched: round(ip, 1),
		Outs:           outs,
		Strikeouts:     countAtBats(rows, func(e string) bool { return e == "strikeout" }),
		Walks:          countAtBats(rows, func(e string) bool { return e == "walk" }),
		Hits:           countAtBats(rows, func(e string) bool { return hitEvents[e] }),
		EarnedRuns:     earnedRuns(rows),
		PitchUsage:     PitchUsage(events),
	}
	line.ERA = round(ratio(float64(line.EarnedRuns)*9, ip), 2)
	line.WHIP = round(ratio(float64(line.Walks+line.Hits), ip), 2)
	return line, nil
}

// DateUsage is how often one pitch type was thrown on one date.
type DateUsage struct {
	Date       string  `json:"date"`
	PitchType  string  `json:"pitch_type"`
	Quantity   int     `json:"quantity"`
	Percentage float64 `json:"percentage"`
}

// PitchUsageByDate reports, for every date, each charted pitch type's count
// and share of that date's charted pitches. Dates are ascending and types
// keep the order they were first thrown on that date.
func PitchUsageByDate(events []models.PitchingEvent) (usage []DateUsage, err error) {
	defer guard("pitch usage by date", &usage, &err)

	type dateMix struct {
		order  []string
		counts map[string]int
		total  int
	}
	byDate := make(map[string]*dateMix)
	for _, ev := range sortedPitching(events) {
		pt := deref(ev.PitchType)
		if !IsTrackedPitchType(pt) {
			continue
		}
		date := isoDate(ev.GameDate)
		mix, ok := byDate[date]
		if !ok {
			mix = &dateMix{counts: make(map[string]int)}
			byDate[date] = mix
		}
		if mix.counts[pt] == 0 {
			mix.order = append(mix.order, pt)
		}
		mix.counts[pt]++
		mix.total++
	}
	if len(byDate) == 0 {
		return nil, ErrNoData
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, d := range dates {
		mix := byDate[d]
		for _, pt := range mix.order {
			usage = append(usage, DateUsage{
				Date:       d,
				PitchType:  pt,
				Quantity:   mix.counts[pt],
				Percentage: round(percent(mix.counts[pt], mix.total), 1),
			})
		}
	}
	return usage, nil
}

// MovementPoint is one charted pitch with its break and velocity.
type MovementPoint struct {
	GameDate         string   `json:"game_date"`
	PitchType        string   `json:"pitch_type"`
	HorzBreak        *float64 `json:"horz_break"`
	InducedVertBreak *float64 `json:"induced_vert_break"`
	RelSpeed         *float64 `json:"rel_speed"`
	Usage            float64  `json:"usage"`
}

// PitchMovement projects every charted pitch onto its movement profile,
// tagging each with the usage share of its type.
func PitchMovement(events []models.PitchingEvent, usage map[string]float64) (points []MovementPoint, err error) {
	defer guard("pitch movement", &points, &err)

	for i := range events {
		ev := &events[i]
		pt := deref(ev.PitchType)
		if !IsTrackedPitchType(pt) {
			continue
		}
		points = append(points, MovementPoint{
			GameDate:         isoDate(ev.GameDate),
			PitchType:        pt,
			HorzBreak:        ev.HorzBreak,
			InducedVertBreak: ev.InducedVertBreak,
			RelSpeed:         ev.RelSpeed,
			Usage:            usage[pt],
		})
	}
	if len(points) == 0 {
		return nil, ErrNoData
	}
	return points, nil
}
