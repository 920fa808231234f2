package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yuehcw/padres-project/models"
)

// DistributionConfig controls the velocity density curves.
type DistributionConfig struct {
	// ScaleFactors scales each pitch type's normalised curve; types not
	// listed use DefaultScale.
	ScaleFactors map[string]float64
	DefaultScale float64
	// Damping multiplies Scott's bandwidth factor n^(-1/5).
	Damping float64

	GridMin    float64
	GridMax    float64
	GridPoints int
}

// DefaultDistributionConfig returns the curve settings used by the dashboard.
func DefaultDistributionConfig() DistributionConfig {
	return DistributionConfig{
		ScaleFactors: map[string]float64{
			"4S": 0.297,
			"SL": 0.273,
			"SP": 0.35,
			"SW": 0.286,
		},
		DefaultScale: 0.3,
		Damping:      0.8,
		GridMin:      70,
		GridMax:      100,
		GridPoints:   62,
	}
}

func (c DistributionConfig) scale(pitchType string) float64 {
	if s, ok := c.ScaleFactors[pitchType]; ok {
		return s
	}
	return c.DefaultScale
}

// SpeedPoint is one sample of a velocity curve.
type SpeedPoint struct {
	Speed     float64 `json:"speed"`
	Frequency float64 `json:"frequency"`
}

// Distribution is the velocity curve of one pitch type.
type Distribution struct {
	PitchType    string       `json:"pitch_type"`
	Distribution []SpeedPoint `json:"distribution"`
	Peak         SpeedPoint   `json:"peak"`
	TotalCount   int          `json:"total_count"`
}

// bandwidthFactor is Scott's rule damped by damping.
func bandwidthFactor(n int, damping float64) float64 {
	return math.Pow(float64(n), -1.0/5) * damping
}

// gaussianKDE evaluates a Gaussian kernel density estimate of sample at every
// point of grid. The kernel width is the sample standard deviation times
// factor. ok is false when the sample has no spread.
func gaussianKDE(sample, grid []float64, factor float64) (density []float64, ok bool) {
	sigma := stat.StdDev(sample, nil) * factor
	if sigma == 0 || math.IsNaN(sigma) {
		return nil, false
	}

	density = make([]float64, len(grid))
	for _, xi := range sample {
		kernel := distuv.Normal{Mu: xi, Sigma: sigma}
		for j, x := range grid {
			density[j] += kernel.Prob(x)
		}
	}
	floats.Scale(1/float64(len(sample)), density)
	return density, true
}

// PitchDistribution builds a smoothed velocity curve for every charted pitch
// type with at least two recorded speeds. Curves are scaled so that their
// peak equals 100 times the type's scale factor. Types with no spread in
// velocity are left out.
func PitchDistribution(events []models.PitchingEvent, cfg DistributionConfig) (out []Distribution, err error) {
	defer guard("pitch distribution", &out, &err)

	var order []string
	speeds := make(map[string][]float64)
	for i := range events {
		ev := &events[i]
		pt := deref(ev.PitchType)
		if ev.RelSpeed == nil || !IsTrackedPitchType(pt) {
			continue
		}
		v := *ev.RelSpeed
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("pitch distribution: %w: pitch %d has speed %v", ErrComputation, ev.ID, v)
		}
		if _, ok := speeds[pt]; !ok {
			order = append(order, pt)
		}
		speeds[pt] = append(speeds[pt], v)
	}

	grid := floats.Span(make([]float64, cfg.GridPoints), cfg.GridMin, cfg.GridMax)
	for _, pt := range order {
		sample := speeds[pt]
		if len(sample) < 2 {
			continue
		}
		density, ok := gaussianKDE(sample, grid, bandwidthFactor(len(sample), cfg.Damping))
		if !ok {
			continue
		}
		peak := floats.Max(density)
		if peak == 0 {
			continue
		}
		floats.Scale(100*cfg.scale(pt)/peak, density)

		points := make([]SpeedPoint, len(grid))
		for i := range grid {
			points[i] = SpeedPoint{Speed: grid[i], Frequency: density[i]}
		}
		top := floats.MaxIdx(density)
		out = append(out, Distribution{
			PitchType:    pt,
			Distribution: points,
			Peak:         points[top],
			TotalCount:   len(sample),
		})
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}
	return out, nil
}
