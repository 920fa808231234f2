package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuehcw/padres-project/models"
)

func batterRow(t *testing.T, date string, game int64, ab int, eventType string) models.BattingEvent {
	ev := models.BattingEvent{
		PlayerID:    7,
		GameDate:    day(t, date),
		GameID:      game,
		AtBatNumber: ab,
		Inning:      1,
	}
	if eventType != "" {
		ev.EventType = ptr(eventType)
	}
	return ev
}

func TestBattingStatsLine(t *testing.T) {
	events := []models.BattingEvent{
		batterRow(t, "2024-04-01", 1, 1, "home_run"),
		batterRow(t, "2024-04-01", 1, 2, "walk"),
		batterRow(t, "2024-04-01", 1, 3, "strikeout"),
	}
	events[2].Description = ptr("strikeout looking")

	line, err := BattingStats(events)
	require.NoError(t, err)
	assert.Equal(t, 3, line.PA)
	assert.Equal(t, 2, line.AB)
	assert.Equal(t, 1, line.H)
	assert.Equal(t, 1, line.HR)
	assert.Equal(t, 1, line.BB)
	assert.Equal(t, 0.5, line.AVG)
	assert.Equal(t, 2.0, line.SLG)
	assert.Equal(t, 0.667, line.OBP)
	assert.Equal(t, 2.667, line.OPS)
}

func TestBattingStatsCountsEachPlateAppearanceOnce(t *testing.T) {
	var events []models.BattingEvent
	for seq := 1; seq <= 4; seq++ {
		ev := batterRow(t, "2024-05-10", 9, 3, "")
		ev.PitchSeq = seq
		events = append(events, ev)
	}
	for seq := 5; seq <= 6; seq++ {
		ev := batterRow(t, "2024-05-10", 9, 3, "single")
		ev.PitchSeq = seq
		events = append(events, ev)
	}

	line, err := BattingStats(events)
	require.NoError(t, err)
	assert.Equal(t, 1, line.PA)
	assert.Equal(t, 1, line.Singles)
	assert.Equal(t, 1.0, line.AVG)
}

func TestBattingStatsSortsBeforeDedup(t *testing.T) {
	later := batterRow(t, "2024-05-11", 9, 1, "double")
	earlier := batterRow(t, "2024-05-10", 9, 1, "single")

	line, err := BattingStats([]models.BattingEvent{later, earlier})
	require.NoError(t, err)
	assert.Equal(t, 1, line.PA)
	assert.Equal(t, 1, line.Singles)
	assert.Zero(t, line.Doubles)
}

func TestBattingStatsPrefersStoredOutcome(t *testing.T) {
	ev := batterRow(t, "2024-04-01", 1, 1, "single")
	ev.Outcome = string(OutcomeDouble)

	line, err := BattingStats([]models.BattingEvent{ev})
	require.NoError(t, err)
	assert.Equal(t, 1, line.Doubles)
	assert.Zero(t, line.Singles)
	assert.Equal(t, 2.0, line.SLG)
}

func TestBattingStatsMultiOutPlay(t *testing.T) {
	line, err := BattingStats([]models.BattingEvent{
		batterRow(t, "2024-04-01", 1, 1, "grounded_into_double_play"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, line.AB)
	assert.Equal(t, 1, line.Doubles)
	assert.Equal(t, 1.0, line.AVG)
	assert.Equal(t, 2.0, line.SLG)
}

func TestBattingStatsStolenBase(t *testing.T) {
	ev := batterRow(t, "2024-04-01", 1, 1, "walk")
	ev.PreR1BamID = ptr(int64(100))
	ev.PostR1BamID = ptr(int64(200))
	quiet := batterRow(t, "2024-04-01", 1, 2, "single")
	quiet.PreR2BamID = ptr(int64(100))

	line, err := BattingStats([]models.BattingEvent{ev, quiet})
	require.NoError(t, err)
	assert.Equal(t, 1, line.SB)
}

func TestBattingStatsRatesStayBounded(t *testing.T) {
	events := []models.BattingEvent{
		batterRow(t, "2024-04-01", 1, 1, "single"),
		batterRow(t, "2024-04-01", 1, 2, "sac_fly"),
		batterRow(t, "2024-04-01", 1, 3, "hit_by_pitch"),
		batterRow(t, "2024-04-01", 1, 4, "field_out"),
	}
	line, err := BattingStats(events)
	require.NoError(t, err)
	assert.LessOrEqual(t, line.AVG, 1.0)
	assert.Equal(t, 0.5, line.AVG)
	assert.Equal(t, round(line.OBP+line.SLG, 3), line.OPS)
	// (1 + 0 + 1) / (2 + 0 + 1 + 1)
	assert.Equal(t, 0.5, line.OBP)
}

func TestBattingStatsNoData(t *testing.T) {
	_, err := BattingStats(nil)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = BattingStats([]models.BattingEvent{batterRow(t, "2024-04-01", 1, 1, "")})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestSprayChart(t *testing.T) {
	hr := batterRow(t, "2024-06-02", 4, 1, "home_run")
	hr.HitDistance = ptr(412.46)
	hr.HitHorizontalAngle = ptr(350.0)
	hr.HitExitSpeed = ptr(108.33)
	hr.HitVerticalAngle = ptr(27.0)

	dup := hr
	dup.PitchSeq = 2

	wide := batterRow(t, "2024-06-02", 4, 2, "single")
	wide.HitDistance = ptr(150.0)
	wide.HitHorizontalAngle = ptr(60.0)

	out := batterRow(t, "2024-06-02", 4, 3, "field_out")
	out.HitDistance = ptr(300.0)
	out.HitHorizontalAngle = ptr(10.0)

	untracked := batterRow(t, "2024-06-02", 4, 4, "double")

	points, err := SprayChart([]models.BattingEvent{hr, dup, wide, out, untracked})
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, SprayPoint{
		Type:        "HOME RUN",
		Distance:    412.5,
		ExitSpeed:   108.3,
		HitAngle:    -10,
		LaunchAngle: 27,
		GameDate:    "2024-06-02",
	}, points[0])
	assert.Equal(t, "SINGLE", points[1].Type)
	assert.Equal(t, 45.0, points[1].HitAngle)
	assert.Zero(t, points[1].ExitSpeed)
}

func TestSprayAngle(t *testing.T) {
	assert.Equal(t, 0.0, sprayAngle(0))
	assert.Equal(t, -45.0, sprayAngle(200))
	assert.Equal(t, 30.0, sprayAngle(30))
	assert.Equal(t, -45.0, sprayAngle(-90))
}

func TestSprayChartEmpty(t *testing.T) {
	points, err := SprayChart(nil)
	require.NoError(t, err)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestZoneHeatmapEmptyGrid(t *testing.T) {
	grid, err := ZoneHeatmap(nil)
	require.NoError(t, err)
	require.Len(t, grid, 9)
	want := [][2]int{{0, 2}, {0, 1}, {0, 0}, {1, 2}, {1, 1}, {1, 0}, {2, 2}, {2, 1}, {2, 0}}
	for i, cell := range grid {
		assert.Equal(t, want[i][0], cell.X)
		assert.Equal(t, want[i][1], cell.Z)
		assert.Zero(t, cell.TotalPitches)
		assert.Zero(t, cell.PitchPercent)
	}
}

func TestZoneHeatmap(t *testing.T) {
	middle := batterRow(t, "2024-04-01", 1, 1, "")
	middle.PlateX, middle.PlateZ = ptr(0.0), ptr(2.0)
	middle.Swing, middle.Contact = ptr(true), ptr(true)

	highInside := batterRow(t, "2024-04-01", 1, 1, "")
	highInside.PlateX, highInside.PlateZ = ptr(-1.0), ptr(3.1)
	highInside.Swing, highInside.Contact = ptr(true), ptr(false)

	lowAway := batterRow(t, "2024-04-01", 1, 2, "strikeout")
	lowAway.PlateX, lowAway.PlateZ = ptr(1.2), ptr(1.0)
	lowAway.CalledStrike = ptr(true)
	lowAway.PostStrikes = ptr(3)

	unlocated := batterRow(t, "2024-04-01", 1, 3, "")
	unlocated.PlateX = ptr(0.1)

	grid, err := ZoneHeatmap([]models.BattingEvent{middle, highInside, lowAway, unlocated})
	require.NoError(t, err)
	require.Len(t, grid, 9)

	center := grid[4]
	assert.Equal(t, 1, center.X)
	assert.Equal(t, 1, center.Z)
	assert.Equal(t, 1, center.TotalPitches)
	assert.Equal(t, 33.3, center.PitchPercent)
	assert.Equal(t, 100.0, center.SwingPercent)
	assert.Zero(t, center.Whiffs)

	// x_zone 0, z_zone 2
	high := grid[2]
	assert.Equal(t, 0, high.X)
	assert.Equal(t, 0, high.Z)
	assert.Equal(t, 1, high.Whiffs)
	assert.Equal(t, 1, high.SwingingStrikes)
	assert.Equal(t, 100.0, high.WhiffPercent)

	// x_zone 2, z_zone 0
	low := grid[6]
	assert.Equal(t, 2, low.X)
	assert.Equal(t, 2, low.Z)
	assert.Equal(t, 1, low.CalledStrikes)
	assert.Equal(t, 1, low.Strikeouts)
	assert.Equal(t, 100.0, low.KPercent)
	assert.Zero(t, low.SwingPercent)

	total := 0
	for _, c := range grid {
		total += c.TotalPitches
	}
	assert.Equal(t, 3, total)
}

func TestZoneHeatmapCellIndex(t *testing.T) {
	tests := []struct {
		name   string
		x, z   float64
		wantAt int
	}{
		{"low middle", 0.0, 1.0, 3},
		{"high middle", 0.0, 3.0, 5},
		{"middle outside", -1.0, 2.0, 1},
		{"high away", 1.0, 3.0, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := batterRow(t, "2024-04-01", 1, 1, "")
			ev.PlateX, ev.PlateZ = ptr(tt.x), ptr(tt.z)

			grid, err := ZoneHeatmap([]models.BattingEvent{ev})
			require.NoError(t, err)
			for i, cell := range grid {
				if i == tt.wantAt {
					assert.Equal(t, 1, cell.TotalPitches)
				} else {
					assert.Zero(t, cell.TotalPitches, "cell %d", i)
				}
			}
		})
	}
}

func TestZoneHeatmapRejectsNaN(t *testing.T) {
	ev := batterRow(t, "2024-04-01", 1, 1, "")
	ev.PlateX, ev.PlateZ = ptr(0.0), ptr(nan())

	grid, err := ZoneHeatmap([]models.BattingEvent{ev})
	assert.ErrorIs(t, err, ErrComputation)
	assert.Nil(t, grid)
}

func pitchSeen(t *testing.T, date, pitchType string) models.BattingEvent {
	ev := batterRow(t, date, 1, 1, "")
	if pitchType != "" {
		ev.PitchType = ptr(pitchType)
	}
	return ev
}

func TestPitchTrends(t *testing.T) {
	events := []models.BattingEvent{
		pitchSeen(t, "2024-04-05", "4S"),
		pitchSeen(t, "2024-04-05", "SL"),
		pitchSeen(t, "2024-04-05", "CH"),
		pitchSeen(t, "2024-04-05", ""),
		pitchSeen(t, "2024-04-01", "2S"),
		pitchSeen(t, "2024-04-01", "CT"),
	}

	trend, err := PitchTrends(events)
	require.NoError(t, err)
	require.Len(t, trend, 2)

	first := trend[0]
	assert.Equal(t, "2024-04-01", first.Date)
	assert.Equal(t, "April 01", first.DisplayDate)
	assert.Equal(t, 2, first.Fastball)
	assert.Equal(t, 100.0, first.FastballPct)
	assert.Zero(t, first.OffspeedPct)

	second := trend[1]
	assert.Equal(t, "April 05", second.DisplayDate)
	assert.Equal(t, 4, second.Total)
	assert.Equal(t, 25.0, second.FastballPct)
	assert.Equal(t, 25.0, second.BreakingPct)
	assert.Equal(t, 50.0, second.OffspeedPct)

	for _, tp := range trend {
		assert.InDelta(t, 100, tp.FastballPct+tp.BreakingPct+tp.OffspeedPct, 1e-9)
	}
}

func TestPitchTrendsNoData(t *testing.T) {
	_, err := PitchTrends(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestBalanceMix(t *testing.T) {
	f, b, o := balanceMix(33.3, 33.3)
	assert.InDelta(t, 33.4, o, 1e-9)
	assert.InDelta(t, 100, f+b+o, 1e-9)

	f, b, o = balanceMix(50.1, 50.0)
	assert.InDelta(t, 50.0, f, 1e-9)
	assert.InDelta(t, 50.0, b, 1e-9)
	assert.Zero(t, o)

	f, b, o = balanceMix(40.0, 60.1)
	assert.InDelta(t, 40.0, f, 1e-9)
	assert.InDelta(t, 60.0, b, 1e-9)
	assert.Zero(t, o)
}
