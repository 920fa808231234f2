// Package stats derives batting, pitching and leaderboard statistics from
// play-by-play event rows.
//
// Every function here is a pure read over the rows it is given: inputs are
// never mutated and no state survives a call. Callers distinguish three
// results: a value, ErrNoData (the player has nothing that qualifies), and
// ErrComputation (the rows could not be aggregated).
package stats

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrNoData reports that no event qualified for the requested statistic.
	ErrNoData = errors.New("stats: no qualifying events")

	// ErrComputation reports that aggregation failed on malformed input.
	ErrComputation = errors.New("stats: computation failed")
)

// guard turns a panic raised while aggregating into an ErrComputation and
// clears result so callers never see a partial value.
func guard[T any](op string, result *T, err *error) {
	if r := recover(); r != nil {
		var zero T
		*result = zero
		*err = fmt.Errorf("%s: %w: %v", op, ErrComputation, r)
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// ratio is num/den, or 0 when den is 0.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func percent(num, den int) float64 {
	return ratio(float64(num), float64(den)) * 100
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func isoDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// plateAppearance identifies one batter-vs-pitcher appearance.
type plateAppearance struct {
	gameID      int64
	atBatNumber int
}
