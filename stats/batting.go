package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/yuehcw/padres-project/models"
)

// BattingLine holds a batter's counting and rate stats.
type BattingLine struct {
	PA      int `json:"PA"`
	AB      int `json:"AB"`
	H       int `json:"H"`
	Singles int `json:"1B"`
	Doubles int `json:"2B"`
	Triples int `json:"3B"`
	HR      int `json:"HR"`
	BB      int `json:"BB"`
	HBP     int `json:"HBP"`
	SF      int `json:"SF"`
	SB      int `json:"SB"`

	AVG float64 `json:"AVG"`
	SLG float64 `json:"SLG"`
	OBP float64 `json:"OBP"`
	OPS float64 `json:"OPS"`
}

func (l *BattingLine) record(o Outcome) {
	l.PA++
	if o.IsAtBat() {
		l.AB++
	}
	if o.IsHit() {
		l.H++
	}
	switch o {
	case OutcomeHomeRun:
		l.HR++
	case OutcomeTriple:
		l.Triples++
	case OutcomeDouble:
		l.Doubles++
	case OutcomeSingle:
		l.Singles++
	case OutcomeWalk:
		l.BB++
	case OutcomeHitByPitch:
		l.HBP++
	case OutcomeSacFly:
		l.SF++
	}
}

// TotalBases is 1B + 2·2B + 3·3B + 4·HR.
func (l *BattingLine) TotalBases() int {
	return l.Singles + 2*l.Doubles + 3*l.Triples + 4*l.HR
}

func (l *BattingLine) computeRates() {
	ab := float64(l.AB)
	l.AVG = round(ratio(float64(l.H), ab), 3)
	l.SLG = round(ratio(float64(l.TotalBases()), ab), 3)
	l.OBP = round(ratio(float64(l.H+l.BB+l.HBP), float64(l.AB+l.BB+l.HBP+l.SF)), 3)
	l.OPS = round(l.OBP+l.SLG, 3)
}

// sortedBatting returns the rows ordered by game date, game, inning and
// at-bat. Ties keep their input order.
func sortedBatting(events []models.BattingEvent) []*models.BattingEvent {
	rows := make([]*models.BattingEvent, len(events))
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
		return a.AtBatNumber < b.AtBatNumber
	})
	return rows
}

// battingOutcome prefers the outcome stored at import and falls back to
// classifying the raw text.
func battingOutcome(ev *models.BattingEvent) Outcome {
	if o, ok := ParseOutcome(ev.Outcome); ok {
		return o
	}
	return Classify(deref(ev.EventType), deref(ev.Description))
}

// stoleBase approximates a stolen base: the runner on first or second
// changed between the pre and post state of the row.
func stoleBase(ev *models.BattingEvent) bool {
	return occupantChanged(ev.PreR1BamID, ev.PostR1BamID) ||
		occupantChanged(ev.PreR2BamID, ev.PostR2BamID)
}

func occupantChanged(pre, post *int64) bool {
	return pre != nil && post != nil && *pre != *post
}

// BattingStats counts one outcome per plate appearance and derives AVG, SLG,
// OBP and OPS. The first classifiable row of each plate appearance decides
// its outcome; rows without event text do not consume the appearance.
func BattingStats(events []models.BattingEvent) (line *BattingLine, err error) {
	defer guard("batting stats", &line, &err)

	line = &BattingLine{}
	seen := make(map[plateAppearance]struct{})
	for _, ev := range sortedBatting(events) {
		key := plateAppearance{ev.GameID, ev.AtBatNumber}
		if _, ok := seen[key]; ok {
			continue
		}
		o := battingOutcome(ev)
		if o == OutcomeNone {
			continue
		}

		line.record(o)
		if stoleBase(ev) {
			line.SB++
		}
		seen[key] = struct{}{}
	}

	if line.PA == 0 {
		return nil, ErrNoData
	}
	line.computeRates()
	return line, nil
}

// SprayPoint is one base hit placed on the field.
type SprayPoint struct {
	Type        string  `json:"type"`
	Distance    float64 `json:"distance"`
	ExitSpeed   float64 `json:"exit_speed"`
	HitAngle    float64 `json:"hit_angle"`
	LaunchAngle float64 `json:"launch_angle"`
	GameDate    string  `json:"game_date"`
}

const sprayMaxAngle = 45.0

// sprayAngle folds a horizontal angle into (-180, 180] and clamps it to the
// chart's ±45° fan.
func sprayAngle(angle float64) float64 {
	if angle > 180 {
		angle -= 360
	}
	return math.Max(-sprayMaxAngle, math.Min(sprayMaxAngle, angle))
}

// SprayChart returns one point per plate appearance that ended in a base hit
// with a tracked distance and horizontal angle. The result is never nil.
func SprayChart(events []models.BattingEvent) (points []SprayPoint, err error) {
	defer guard("spray chart", &points, &err)

	points = []SprayPoint{}
	seen := make(map[plateAppearance]struct{})
	for _, ev := range sortedBatting(events) {
		if ev.HitDistance == nil || ev.HitHorizontalAngle == nil {
			continue
		}
		key := plateAppearance{ev.GameID, ev.AtBatNumber}
		if _, ok := seen[key]; ok {
			continue
		}
		label := Classify(deref(ev.EventType), "").SprayLabel()
		if label == "" {
			continue
		}

		p := SprayPoint{
			Type:     label,
			Distance: round(*ev.HitDistance, 1),
			HitAngle: sprayAngle(*ev.HitHorizontalAngle),
			GameDate: isoDate(ev.GameDate),
		}
		if ev.HitExitSpeed != nil {
			p.ExitSpeed = round(*ev.HitExitSpeed, 1)
		}
		if ev.HitVerticalAngle != nil {
			p.LaunchAngle = round(*ev.HitVerticalAngle, 1)
		}
		points = append(points, p)
		seen[key] = struct{}{}
	}
	return points, nil
}

// ZoneCell is one ninth of the strike zone grid.
type ZoneCell struct {
	X               int     `json:"x"`
	Z               int     `json:"z"`
	PitchPercent    float64 `json:"pitch_percent"`
	TotalPitches    int     `json:"total_pitches"`
	SwingPercent    float64 `json:"swing_percent"`
	Swings          int     `json:"swings"`
	Whiffs          int     `json:"whiffs"`
	Strikeouts      int     `json:"strikeouts"`
	KPercent        float64 `json:"k_percent"`
	WhiffPercent    float64 `json:"whiff_percent"`
	SwingingStrikes int     `json:"swinging_strikes"`
	CalledStrikes   int     `json:"called_strikes"`
}

// Zone boundaries in feet: plate_x from the middle of the plate, plate_z
// from the ground.
const (
	zoneHalfWidth = 0.83
	zoneBottom    = 1.5
	zoneTop       = 2.5
)

func zoneColumn(x float64) int {
	switch {
	case x < -zoneHalfWidth:
		return 0
	case x > zoneHalfWidth:
		return 2
	}
	return 1
}

func zoneRow(z float64) int {
	switch {
	case z < zoneBottom:
		return 0
	case z > zoneTop:
		return 2
	}
	return 1
}

// newZoneGrid lists the nine cells column by column, top row first.
func newZoneGrid() []ZoneCell {
	grid := make([]ZoneCell, 0, 9)
	for x := 0; x < 3; x++ {
		for z := 2; z >= 0; z-- {
			grid = append(grid, ZoneCell{X: x, Z: z})
		}
	}
	return grid
}

// zoneIndex is x_zone*3 + z_zone. Within a column the grid lists z labels
// top first, so a cell's labels and its index count z in opposite
// directions; the dashboard draws cells from their labels.
func zoneIndex(col, row int) int {
	return col*3 + row
}

// ZoneHeatmap tallies located pitches into a 3×3 strike zone grid. The grid
// always has nine cells, all zero when nothing is located.
func ZoneHeatmap(events []models.BattingEvent) (grid []ZoneCell, err error) {
	defer guard("zone heatmap", &grid, &err)

	grid = newZoneGrid()
	total := 0
	for i := range events {
		ev := &events[i]
		if ev.PlateX == nil || ev.PlateZ == nil {
			continue
		}
		if math.IsNaN(*ev.PlateX) || math.IsNaN(*ev.PlateZ) {
			return nil, fmt.Errorf("zone heatmap: %w: pitch %d has no usable location", ErrComputation, ev.ID)
		}
		total++

		cell := &grid[zoneIndex(zoneColumn(*ev.PlateX), zoneRow(*ev.PlateZ))]
		cell.TotalPitches++
		if isTrue(ev.Swing) {
			cell.Swings++
			if !isTrue(ev.Contact) && !isTrue(ev.InPlay) {
				cell.Whiffs++
				cell.SwingingStrikes++
			}
		}
		if isTrue(ev.CalledStrike) {
			cell.CalledStrikes++
		}
		if ev.PostStrikes != nil && *ev.PostStrikes == 3 &&
			(isTrue(ev.SwingingStrike) || isTrue(ev.CalledStrike)) {
			cell.Strikeouts++
		}
	}

	for i := range grid {
		cell := &grid[i]
		if cell.TotalPitches > 0 {
			cell.PitchPercent = round(percent(cell.TotalPitches, total), 1)
			cell.SwingPercent = round(percent(cell.Swings, cell.TotalPitches), 1)
			cell.KPercent = round(percent(cell.Strikeouts, cell.TotalPitches), 1)
		}
		if cell.Swings > 0 {
			cell.WhiffPercent = round(percent(cell.Whiffs, cell.Swings), 1)
		}
	}
	return grid, nil
}

// PitchFamily groups pitch type codes for trend charts.
type PitchFamily int

const (
	FamilyOther PitchFamily = iota
	FamilyFastball
	FamilyBreaking
	FamilyOffspeed
)

var pitchFamilies = map[string]PitchFamily{
	"4S": FamilyFastball,
	"2S": FamilyFastball,
	"CT": FamilyFastball,
	"SI": FamilyFastball,
	"SL": FamilyBreaking,
	"CB": FamilyBreaking,
	"KN": FamilyBreaking,
	"SW": FamilyBreaking,
	"SP": FamilyOffspeed,
	"CH": FamilyOffspeed,
}

// FamilyOf returns the family of a pitch type code.
func FamilyOf(pitchType string) PitchFamily {
	return pitchFamilies[pitchType]
}

// TrendPoint is the pitch mix a batter saw on one date.
type TrendPoint struct {
	Date        string  `json:"date"`
	DisplayDate string  `json:"displayDate"`
	Fastball    int     `json:"Fastball"`
	Breaking    int     `json:"Breaking"`
	Offspeed    int     `json:"Offspeed"`
	Total       int     `json:"total"`
	FastballPct float64 `json:"FastballPct"`
	BreakingPct float64 `json:"BreakingPct"`
	OffspeedPct float64 `json:"OffspeedPct"`
}

// balanceMix derives the offspeed share as the remainder of the rounded
// fastball and breaking shares so the three always sum to 100. A negative
// remainder is taken off the larger share.
func balanceMix(fast, brk float64) (float64, float64, float64) {
	off := round(100-fast-brk, 1)
	if off < 0 {
		if fast >= brk {
			fast = round(fast+off, 1)
		} else {
			brk = round(brk+off, 1)
		}
		off = 0
	}
	return fast, brk, off
}

// PitchTrends groups the pitches a batter saw by date and reports the
// fastball / breaking / offspeed mix of each date, oldest first.
func PitchTrends(events []models.BattingEvent) (trend []TrendPoint, err error) {
	defer guard("pitch trends", &trend, &err)

	byDate := make(map[string]*TrendPoint)
	for i := range events {
		ev := &events[i]
		date := isoDate(ev.GameDate)
		tp, ok := byDate[date]
		if !ok {
			tp = &TrendPoint{Date: date, DisplayDate: ev.GameDate.Format("January 02")}
			byDate[date] = tp
		}

		switch FamilyOf(deref(ev.PitchType)) {
		case FamilyFastball:
			tp.Fastball++
		case FamilyBreaking:
			tp.Breaking++
		case FamilyOffspeed:
			tp.Offspeed++
		}
		tp.Total++
	}
	if len(byDate) == 0 {
		return nil, ErrNoData
	}

	trend = make([]TrendPoint, 0, len(byDate))
	for _, tp := range byDate {
		fast := round(percent(tp.Fastball, tp.Total), 1)
		brk := round(percent(tp.Breaking, tp.Total), 1)
		tp.FastballPct, tp.BreakingPct, tp.OffspeedPct = balanceMix(fast, brk)
		trend = append(trend, *tp)
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })
	return trend, nil
}
