// Package features builds the tree model inputs: paired sine/cosine
// Fourier terms for the daily and weekly seasonality plus a one-day lag
// of the seasonal component. Fourier terms are used instead of raw
// cyclic integers because trees split on thresholds and would lose the
// continuity at cycle boundaries; the harmonics stay smooth across
// them.
package features

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrInvalidHarmonics = errors.New("harmonic order must be at least one")
	ErrInvalidPeriod    = errors.New("periods must be positive and weekly must be a multiple of daily")
	ErrSeriesTooShort   = errors.New("series must be longer than one daily period")
)

// Set is the engineered design: Train rows align one to one with
// Target, Horizon holds one daily period of future rows continuing the
// same harmonics.
type Set struct {
	Train   *mat.Dense
	Target  []float64
	Horizon *mat.Dense
	Names   []string
}

// Fourier evaluates the 2k sin/cos harmonic pairs for the given period
// at sample index t.
func Fourier(t int, period float64, k int) []float64 {
	terms := make([]float64, 0, 2*k)
	x := 2 * math.Pi * float64(t) / period
	for j := 1; j <= k; j++ {
		w := float64(j) * x
		terms = append(terms, math.Sin(w), math.Cos(w))
	}
	return terms
}

// Build assembles the training and horizon matrices. seasonal is the
// decomposed seasonal component used for the lag column, target the
// detrended training target; both must have equal length. The first
// daily period of rows is dropped because it has no valid lag, and the
// horizon lag continues from the tail of the seasonal component.
func Build(seasonal, target []float64, harmonics, dailyPeriod, weeklyPeriod int) (*Set, error) {
	if harmonics < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHarmonics, harmonics)
	}
	if dailyPeriod < 1 || weeklyPeriod < 1 || weeklyPeriod%dailyPeriod != 0 {
		return nil, fmt.Errorf("%w: daily %d, weekly %d", ErrInvalidPeriod, dailyPeriod, weeklyPeriod)
	}
	if len(seasonal) != len(target) {
		return nil, fmt.Errorf("seasonal length %d does not match target length %d", len(seasonal), len(target))
	}
	n := len(target)
	if n <= dailyPeriod {
		return nil, fmt.Errorf("%w: have %d samples", ErrSeriesTooShort, n)
	}

	cols := 4*harmonics + 1
	train := mat.NewDense(n-dailyPeriod, cols, nil)
	alignedTarget := make([]float64, n-dailyPeriod)

	for t := dailyPeriod; t < n; t++ {
		row := rowAt(t, seasonal[t-dailyPeriod], harmonics, dailyPeriod, weeklyPeriod)
		train.SetRow(t-dailyPeriod, row)
		alignedTarget[t-dailyPeriod] = target[t]
	}

	horizon := mat.NewDense(dailyPeriod, cols, nil)
	for h := 0; h < dailyPeriod; h++ {
		t := n + h
		horizon.SetRow(h, rowAt(t, seasonal[t-dailyPeriod], harmonics, dailyPeriod, weeklyPeriod))
	}

	return &Set{
		Train:   train,
		Target:  alignedTarget,
		Horizon: horizon,
		Names:   columnNames(harmonics),
	}, nil
}

func rowAt(t int, lag float64, harmonics, dailyPeriod, weeklyPeriod int) []float64 {
	row := make([]float64, 0, 4*harmonics+1)
	row = append(row, Fourier(t, float64(dailyPeriod), harmonics)...)
	row = append(row, Fourier(t, float64(weeklyPeriod), harmonics)...)
	row = append(row, lag)
	return row
}

func columnNames(harmonics int) []string {
	names := make([]string, 0, 4*harmonics+1)
	for j := 1; j <= harmonics; j++ {
		names = append(names, fmt.Sprintf("daily_sin%d", j), fmt.Sprintf("daily_cos%d", j))
	}
	for j := 1; j <= harmonics; j++ {
		names = append(names, fmt.Sprintf("weekly_sin%d", j), fmt.Sprintf("weekly_cos%d", j))
	}
	return append(names, "seasonal_lag")
}
