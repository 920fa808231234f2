package stats

import (
	"math"
	"testing"
	"time"
)

func ptr[T any](v T) *T { return &v }

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func nan() float64 { return math.NaN() }
