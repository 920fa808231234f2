package stats

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/yuehcw/padres-project/models"
)

// Batted-ball thresholds.
const (
	hardHitSpeed  = 95.0
	barrelSpeed   = 98.0
	sweetSpotLow  = 8.0
	sweetSpotHigh = 32.0
)

// BattedBallProfile summarises the balls a player put in play (or allowed).
type BattedBallProfile struct {
	PlayerID       int     `json:"player_id"`
	Name           string  `json:"name"`
	BBE            int     `json:"bbe"`
	LaunchAngle    float64 `json:"launch_angle"`
	AvgExitVelo    float64 `json:"avg_exit_velo"`
	MaxExitVelo    float64 `json:"max_exit_velo"`
	EV50           float64 `json:"ev50"`
	AvgDistance    float64 `json:"avg_distance"`
	MaxDistance    float64 `json:"max_distance"`
	HardHitPct     float64 `json:"hard_hit_pct"`
	LASweetSpotPct float64 `json:"la_sweet_spot_pct"`
	Barrels        int     `json:"barrels"`
	BarrelPct      float64 `json:"barrel_pct"`
}

// BattingLeader is one row of the batting leaderboard.
type BattingLeader struct {
	BattedBallProfile
	NinetyFivePlus int `json:"ninety_five_plus"`
}

// PitchingLeader is one row of the pitching leaderboard.
type PitchingLeader struct {
	BattedBallProfile
	AvgVelocity        float64 `json:"avg_velocity"`
	MaxVelocity        float64 `json:"max_velocity"`
	AvgSpinRate        float64 `json:"avg_spin_rate"`
	HardHitsCalculated int     `json:"hard_hits_calculated"`
}

// battedBall is the part of an in-play row the leaderboards read.
type battedBall struct {
	exitSpeed, launchAngle, distance *float64
}

// profileAccumulator gathers one player's in-play rows.
type profileAccumulator struct {
	playerID  int
	name      string
	rows      int
	exits     []float64
	angles    []float64
	distances []float64
	hardHits  int
	sweetSpot int
	barrels   int
}

func (a *profileAccumulator) add(b battedBall) {
	a.rows++
	if b.exitSpeed != nil {
		a.exits = append(a.exits, *b.exitSpeed)
		if *b.exitSpeed >= hardHitSpeed {
			a.hardHits++
		}
	}
	inSweetSpot := b.launchAngle != nil && *b.launchAngle >= sweetSpotLow && *b.launchAngle <= sweetSpotHigh
	if b.launchAngle != nil {
		a.angles = append(a.angles, *b.launchAngle)
	}
	if inSweetSpot {
		a.sweetSpot++
		if b.exitSpeed != nil && *b.exitSpeed >= barrelSpeed {
			a.barrels++
		}
	}
	if b.distance != nil {
		a.distances = append(a.distances, *b.distance)
	}
}

func (a *profileAccumulator) profile() BattedBallProfile {
	return BattedBallProfile{
		PlayerID:       a.playerID,
		Name:           a.name,
		BBE:            a.rows,
		LaunchAngle:    round(mean(a.angles), 1),
		AvgExitVelo:    round(mean(a.exits), 1),
		MaxExitVelo:    round(maximum(a.exits), 1),
		EV50:           round(median(a.exits), 1),
		AvgDistance:    round(mean(a.distances), 0),
		MaxDistance:    round(maximum(a.distances), 0),
		HardHitPct:     round(percent(a.hardHits, a.rows), 1),
		LASweetSpotPct: round(percent(a.sweetSpot, a.rows), 1),
		Barrels:        a.barrels,
		BarrelPct:      round(percent(a.barrels, a.rows), 1),
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

func maximum(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return floats.Max(xs)
}

// median interpolates between the two middle values of an even-sized
// sample, matching percentile_cont(0.5).
func median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// groupByPlayer returns one accumulator per player in first-seen order.
func groupByPlayer(n int, row func(i int) (playerID int, name string, inPlay bool)) ([]*profileAccumulator, map[int]*profileAccumulator) {
	var order []*profileAccumulator
	byPlayer := make(map[int]*profileAccumulator)
	for i := 0; i < n; i++ {
		id, name, inPlay := row(i)
		if !inPlay {
			continue
		}
		if _, ok := byPlayer[id]; !ok {
			acc := &profileAccumulator{playerID: id, name: name}
			byPlayer[id] = acc
			order = append(order, acc)
		}
	}
	return order, byPlayer
}

func fullName(first, last string) string {
	return first + " " + last
}

// BattingLeaderboard ranks batters by average exit velocity, hardest first.
// Only in-play rows are read.
func BattingLeaderboard(events []models.BattingEvent) (board []BattingLeader, err error) {
	defer guard("batting leaderboard", &board, &err)

	order, byPlayer := groupByPlayer(len(events), func(i int) (int, string, bool) {
		ev := &events[i]
		return ev.PlayerID, fullName(ev.FirstName, ev.LastName), isTrue(ev.InPlay)
	})
	if len(order) == 0 {
		return nil, ErrNoData
	}

	for i := range events {
		ev := &events[i]
		if isTrue(ev.InPlay) {
			byPlayer[ev.PlayerID].add(battedBall{ev.HitExitSpeed, ev.HitVerticalAngle, ev.HitDistance})
		}
	}

	board = make([]BattingLeader, 0, len(order))
	for _, acc := range order {
		board = append(board, BattingLeader{
			BattedBallProfile: acc.profile(),
			NinetyFivePlus:    acc.hardHits,
		})
	}
	sort.SliceStable(board, func(i, j int) bool {
		a, b := board[i], board[j]
		if a.AvgExitVelo != b.AvgExitVelo {
			return a.AvgExitVelo > b.AvgExitVelo
		}
		return a.PlayerID < b.PlayerID
	})
	return board, nil
}

// PitchingLeaderboard ranks pitchers by average exit velocity allowed,
// softest contact first. Only in-play rows are read.
func PitchingLeaderboard(events []models.PitchingEvent) (board []PitchingLeader, err error) {
	defer guard("pitching leaderboard", &board, &err)

	order, byPlayer := groupByPlayer(len(events), func(i int) (int, string, bool) {
		ev := &events[i]
		return ev.PlayerID, fullName(ev.FirstName, ev.LastName), isTrue(ev.InPlay)
	})
	if len(order) == 0 {
		return nil, ErrNoData
	}

	velocities := make(map[int][]float64)
	spins := make(map[int][]float64)
	for i := range events {
		ev := &events[i]
		if !isTrue(ev.InPlay) {
			continue
		}
		byPlayer[ev.PlayerID].add(battedBall{ev.HitExitSpeed, ev.HitVerticalAngle, ev.HitDistance})
		if ev.RelSpeed != nil {
			velocities[ev.PlayerID] = append(velocities[ev.PlayerID], *ev.RelSpeed)
		}
		if ev.SpinRate != nil {
			spins[ev.PlayerID] = append(spins[ev.PlayerID], *ev.SpinRate)
		}
	}

	board = make([]PitchingLeader, 0, len(order))
	for _, acc := range order {
		id := acc.playerID
		board = append(board, PitchingLeader{
			BattedBallProfile:  acc.profile(),
			AvgVelocity:        round(mean(velocities[id]), 1),
			MaxVelocity:        round(maximum(velocities[id]), 1),
			AvgSpinRate:        round(mean(spins[id]), 0),
			HardHitsCalculated: acc.hardHits,
		})
	}
	sort.SliceStable(board, func(i, j int) bool {
		a, b := board[i], board[j]
		if a.AvgExitVelo != b.AvgExitVelo {
			return a.AvgExitVelo < b.AvgExitVelo
		}
		return a.PlayerID < b.PlayerID
	})
	return board, nil
}
