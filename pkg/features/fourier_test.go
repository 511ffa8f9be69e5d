package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peter-kozarec/loadcast/pkg/common"
)

func TestFourier_pairsAndPeriodicity(t *testing.T) {
	const k = 3

	for t0 := 0; t0 < 3*common.DailyPeriod; t0 += 17 {
		terms := Fourier(t0, common.DailyPeriod, k)
		require.Len(t, terms, 2*k)

		shifted := Fourier(t0+common.DailyPeriod, common.DailyPeriod, k)
		for j := range terms {
			assert.InDelta(t, terms[j], shifted[j], 1e-9, "t=%d term=%d", t0, j)
		}
	}
}

func TestFourier_harmonicValues(t *testing.T) {
	// Quarter of the daily cycle: sin = 1, cos = 0, second harmonic
	// sin = 0, cos = -1.
	terms := Fourier(common.DailyPeriod/4, common.DailyPeriod, 2)
	assert.InDelta(t, 1, terms[0], 1e-12)
	assert.InDelta(t, 0, terms[1], 1e-12)
	assert.InDelta(t, 0, terms[2], 1e-12)
	assert.InDelta(t, -1, terms[3], 1e-12)
}

func TestBuild_validation(t *testing.T) {
	n := common.WeeklyPeriod
	seasonal := make([]float64, n)
	target := make([]float64, n)

	tests := []struct {
		name      string
		seasonal  []float64
		target    []float64
		harmonics int
		daily     int
		weekly    int
		wantErr   error
	}{
		{name: "zero harmonics", seasonal: seasonal, target: target, harmonics: 0, daily: 48, weekly: 336, wantErr: ErrInvalidHarmonics},
		{name: "non positive period", seasonal: seasonal, target: target, harmonics: 2, daily: 0, weekly: 336, wantErr: ErrInvalidPeriod},
		{name: "weekly not a multiple", seasonal: seasonal, target: target, harmonics: 2, daily: 48, weekly: 100, wantErr: ErrInvalidPeriod},
		{name: "too short", seasonal: seasonal[:48], target: target[:48], harmonics: 2, daily: 48, weekly: 336, wantErr: ErrSeriesTooShort},
		{name: "valid", seasonal: seasonal, target: target, harmonics: 2, daily: 48, weekly: 336},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Build(tt.seasonal, tt.target, tt.harmonics, tt.daily, tt.weekly)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			rows, cols := set.Train.Dims()
			assert.Equal(t, n-48, rows)
			assert.Equal(t, 4*tt.harmonics+1, cols)
			assert.Len(t, set.Target, rows)
			hRows, hCols := set.Horizon.Dims()
			assert.Equal(t, 48, hRows)
			assert.Equal(t, cols, hCols)
			assert.Len(t, set.Names, cols)
		})
	}
}

func TestBuild_lagAlignment(t *testing.T) {
	const k = 2
	n := 3 * common.WeeklyPeriod

	seasonal := make([]float64, n)
	target := make([]float64, n)
	for i := range seasonal {
		seasonal[i] = float64(i) // distinct value per index
		target[i] = float64(i) * 2
	}

	set, err := Build(seasonal, target, k, common.DailyPeriod, common.WeeklyPeriod)
	require.NoError(t, err)

	rows, cols := set.Train.Dims()
	lagCol := cols - 1
	assert.Equal(t, "seasonal_lag", set.Names[lagCol])

	// Row r corresponds to timestamp r + DailyPeriod; its lag must be
	// the seasonal value exactly one day earlier.
	for r := 0; r < rows; r++ {
		ts := r + common.DailyPeriod
		assert.Equal(t, seasonal[ts-common.DailyPeriod], set.Train.At(r, lagCol), "row %d", r)
		assert.Equal(t, target[ts], set.Target[r], "row %d", r)
	}
}

func TestBuild_horizonContinuesHarmonics(t *testing.T) {
	const k = 2
	n := 2 * common.WeeklyPeriod

	seasonal := make([]float64, n)
	target := make([]float64, n)
	for i := range seasonal {
		seasonal[i] = math.Sin(2 * math.Pi * float64(i) / common.DailyPeriod)
	}

	set, err := Build(seasonal, target, k, common.DailyPeriod, common.WeeklyPeriod)
	require.NoError(t, err)

	_, cols := set.Horizon.Dims()
	for h := 0; h < common.DailyPeriod; h++ {
		ts := n + h
		expected := append(Fourier(ts, common.DailyPeriod, k), Fourier(ts, common.WeeklyPeriod, k)...)
		for j := 0; j < cols-1; j++ {
			assert.InDelta(t, expected[j], set.Horizon.At(h, j), 1e-12, "h=%d col=%d", h, j)
		}
		assert.Equal(t, seasonal[ts-common.DailyPeriod], set.Horizon.At(h, cols-1), "h=%d lag", h)
	}
}
