// Package stl implements a robust seasonal-trend decomposition with a
// periodic seasonal window: the seasonal component repeats an identical
// sub-series cycle after cycle, the trend is a weighted local smoother
// and the remainder is whatever is left over.
package stl

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrInsufficientData = errors.New("series must cover at least two seasonal periods")
	ErrInvalidPeriod    = errors.New("period must be greater than one")
)

const defaultRobustIterations = 2

// Result holds the three additive components. All slices have the length
// of the decomposed series and satisfy
// seasonal[i] + trend[i] + remainder[i] == values[i] exactly.
type Result struct {
	Seasonal  []float64
	Trend     []float64
	Remainder []float64
	Period    int
}

type decomposer struct {
	period           int
	robustIterations int
	trendWindow      int
}

// Decompose splits values into seasonal, trend and remainder components
// with the given seasonal period.
func Decompose(values []float64, period int, options ...Option) (*Result, error) {
	if period < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPeriod, period)
	}
	if len(values) < 2*period {
		return nil, fmt.Errorf("%w: have %d samples, need %d", ErrInsufficientData, len(values), 2*period)
	}

	d := &decomposer{
		period:           period,
		robustIterations: defaultRobustIterations,
		trendWindow:      period + 1,
	}
	for _, option := range options {
		option(d)
	}
	if d.trendWindow%2 == 0 {
		d.trendWindow++
	}

	return d.run(values), nil
}

func (d *decomposer) run(values []float64) *Result {
	n := len(values)

	seasonal := make([]float64, n)
	trend := make([]float64, n)
	remainder := make([]float64, n)

	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0
	}

	detrended := make([]float64, n)
	deseasonalized := make([]float64, n)

	for iteration := 0; iteration < d.robustIterations; iteration++ {
		for i := 0; i < n; i++ {
			detrended[i] = values[i] - trend[i]
		}

		d.fitSeasonal(detrended, weights, seasonal)

		for i := 0; i < n; i++ {
			deseasonalized[i] = values[i] - seasonal[i]
		}

		d.fitTrend(deseasonalized, weights, trend)

		for i := 0; i < n; i++ {
			remainder[i] = values[i] - seasonal[i] - trend[i]
		}

		if iteration < d.robustIterations-1 {
			updateRobustnessWeights(remainder, weights)
		}
	}

	return &Result{
		Seasonal:  seasonal,
		Trend:     trend,
		Remainder: remainder,
		Period:    d.period,
	}
}

// fitSeasonal computes the periodic seasonal component: a weighted mean
// per cycle position, centered so the seasonal sums to zero over one
// period, repeated across the series.
func (d *decomposer) fitSeasonal(detrended, weights, seasonal []float64) {
	n := len(detrended)
	pattern := make([]float64, d.period)
	mass := make([]float64, d.period)

	for i := 0; i < n; i++ {
		idx := i % d.period
		pattern[idx] += detrended[i] * weights[i]
		mass[idx] += weights[i]
	}
	for i := 0; i < d.period; i++ {
		if mass[i] > 0 {
			pattern[i] /= mass[i]
		}
	}

	var mean float64
	for _, v := range pattern {
		mean += v
	}
	mean /= float64(d.period)
	for i := range pattern {
		pattern[i] -= mean
	}

	for i := 0; i < n; i++ {
		seasonal[i] = pattern[i%d.period]
	}
}

// fitTrend smooths the deseasonalized series with a local weighted
// linear regression. The kernel decays linearly away from the center
// and the robustness weights fold into it; the linear term keeps the
// fit unbiased where the window is clipped at the boundaries.
func (d *decomposer) fitTrend(deseasonalized, weights, trend []float64) {
	n := len(deseasonalized)
	half := d.trendWindow / 2

	for i := 0; i < n; i++ {
		var w0, wx, wxx, wy, wxy float64
		for j := -half; j <= half; j++ {
			idx := i + j
			if idx < 0 || idx >= n {
				continue
			}
			x := float64(j)
			w := weights[idx] * (1 - math.Abs(x)/float64(half+1))
			w0 += w
			wx += w * x
			wxx += w * x * x
			wy += w * deseasonalized[idx]
			wxy += w * x * deseasonalized[idx]
		}
		if w0 == 0 {
			continue
		}
		if den := w0*wxx - wx*wx; den > 1e-12 {
			trend[i] = (wy*wxx - wx*wxy) / den
		} else {
			trend[i] = wy / w0
		}
	}
}

// updateRobustnessWeights assigns Tukey biweight weights from the
// remainder, zeroing samples beyond six median absolute remainders.
func updateRobustnessWeights(remainder, weights []float64) {
	n := len(remainder)
	abs := make([]float64, n)
	for i, r := range remainder {
		abs[i] = math.Abs(r)
	}

	h := 6 * median(abs)
	if h <= 0 {
		return
	}

	for i := 0; i < n; i++ {
		u := math.Abs(remainder[i]) / h
		if u < 1 {
			weights[i] = (1 - u*u) * (1 - u*u)
		} else {
			weights[i] = 0
		}
	}
}

func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}
