// Package report renders stat lines and leaderboards as terminal tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/yuehcw/padres-project/models"
	"github.com/yuehcw/padres-project/stats"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// rate prints a rate stat the way a box score does.
func rate(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func one(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// PrintPlayerHeader writes a one-line banner for player.
func PrintPlayerHeader(w io.Writer, p *models.Player) {
	pos := "-"
	if p.Position != nil {
		pos = *p.Position
	}
	fmt.Fprintf(w, "\n%s  |  #%d  |  %s\n\n", p.FullName(), p.PlayerID, pos)
}

// PrintBattingLine writes a single batting line.
func PrintBattingLine(w io.Writer, l *stats.BattingLine) {
	table := newTable(w)
	table.Header("PA", "AB", "H", "1B", "2B", "3B", "HR", "BB", "HBP", "SF", "SB", "AVG", "OBP", "SLG", "OPS")
	table.Append(
		strconv.Itoa(l.PA),
		strconv.Itoa(l.AB),
		strconv.Itoa(l.H),
		strconv.Itoa(l.Singles),
		strconv.Itoa(l.Doubles),
		strconv.Itoa(l.Triples),
		strconv.Itoa(l.HR),
		strconv.Itoa(l.BB),
		strconv.Itoa(l.HBP),
		strconv.Itoa(l.SF),
		strconv.Itoa(l.SB),
		rate(l.AVG),
		rate(l.OBP),
		rate(l.SLG),
		rate(l.OPS),
	)
	table.Render()
}

// PrintPitchingLine writes a pitching line followed by the pitch mix,
// most used pitch first.
func PrintPitchingLine(w io.Writer, l *stats.PitchingLine) {
	table := newTable(w)
	table.Header("G", "IP", "SO", "ER", "BB", "H", "ERA", "WHIP")
	table.Append(
		strconv.Itoa(l.Games),
		one(l.InningsPitched),
		strconv.Itoa(l.Strikeouts),
		strconv.Itoa(l.EarnedRuns),
		strconv.Itoa(l.Walks),
		strconv.Itoa(l.Hits),
		fmt.Sprintf("%.2f", l.ERA),
		fmt.Sprintf("%.2f", l.WHIP),
	)
	table.Render()

	if len(l.PitchUsage) == 0 {
		return
	}
	types := make([]string, 0, len(l.PitchUsage))
	for pt := range l.PitchUsage {
		types = append(types, pt)
	}
	sort.Slice(types, func(i, j int) bool {
		if l.PitchUsage[types[i]] != l.PitchUsage[types[j]] {
			return l.PitchUsage[types[i]] > l.PitchUsage[types[j]]
		}
		return types[i] < types[j]
	})

	fmt.Fprintf(w, "\n--- Pitch Mix ---\n\n")
	mix := newTable(w)
	mix.Header("PITCH", "USAGE")
	for _, pt := range types {
		mix.Append(pt, pct(l.PitchUsage[pt]))
	}
	mix.Render()
}

// PrintBattingLeaderboard writes the top limit rows of board. A limit of
// zero or less prints everything.
func PrintBattingLeaderboard(w io.Writer, board []stats.BattingLeader, limit int) {
	table := newTable(w)
	table.Header("#", "NAME", "BBE", "LA", "AVG EV", "MAX EV", "EV50", "AVG DIST", "MAX DIST", "HARD%", "SWEET%", "BRL", "BRL%", "95+")
	for i, r := range head(board, limit) {
		table.Append(
			strconv.Itoa(i+1),
			r.Name,
			strconv.Itoa(r.BBE),
			one(r.LaunchAngle),
			one(r.AvgExitVelo),
			one(r.MaxExitVelo),
			one(r.EV50),
			one(r.AvgDistance),
			one(r.MaxDistance),
			pct(r.HardHitPct),
			pct(r.LASweetSpotPct),
			strconv.Itoa(r.Barrels),
			pct(r.BarrelPct),
			strconv.Itoa(r.NinetyFivePlus),
		)
	}
	table.Render()
}

// PrintPitchingLeaderboard writes the top limit rows of board.
func PrintPitchingLeaderboard(w io.Writer, board []stats.PitchingLeader, limit int) {
	table := newTable(w)
	table.Header("#", "NAME", "BBE", "AVG EV", "EV50", "HARD%", "BRL%", "AVG VELO", "MAX VELO", "SPIN", "HARD")
	for i, r := range head(board, limit) {
		table.Append(
			strconv.Itoa(i+1),
			r.Name,
			strconv.Itoa(r.BBE),
			one(r.AvgExitVelo),
			one(r.EV50),
			pct(r.HardHitPct),
			pct(r.BarrelPct),
			one(r.AvgVelocity),
			one(r.MaxVelocity),
			fmt.Sprintf("%.0f", r.AvgSpinRate),
			strconv.Itoa(r.HardHitsCalculated),
		)
	}
	table.Render()
}

func head[T any](rows []T, limit int) []T {
	if limit > 0 && limit < len(rows) {
		return rows[:limit]
	}
	return rows
}
