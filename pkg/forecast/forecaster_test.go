package forecast

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peter-kozarec/loadcast/pkg/common"
	"github.com/peter-kozarec/loadcast/pkg/datasource/synthetic"
	"github.com/peter-kozarec/loadcast/pkg/models/tree"
)

var testStart = time.Date(2014, 6, 2, 0, 0, 0, 0, time.UTC)

func squareWaveSeries(t *testing.T, days int) common.Series {
	t.Helper()

	g := synthetic.NewLoadGenerator(rand.New(rand.NewSource(1)), testStart, days*common.DailyPeriod)
	g.SetProfile(synthetic.ProfileSquare)
	g.SetWeekendFactor(1)
	g.SetTrend(0)
	g.SetNoise(0)

	series, err := g.Series()
	require.NoError(t, err)
	return series
}

func TestNewForecaster_validation(t *testing.T) {
	tests := []struct {
		name    string
		options []Option
		wantErr bool
	}{
		{name: "defaults"},
		{name: "zero harmonics", options: []Option{WithHarmonics(0)}, wantErr: true},
		{name: "negative harmonics", options: []Option{WithHarmonics(-2)}, wantErr: true},
		{name: "non positive period", options: []Option{WithPeriod(0)}, wantErr: true},
		{name: "unknown algorithm", options: []Option{WithAlgorithm("forest")}, wantErr: true},
		{name: "ctree", options: []Option{WithAlgorithm(AlgorithmCTree)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewForecaster(nil, tt.options...)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestForecaster_RunRejectsBadWindows(t *testing.T) {
	forecaster, err := NewForecaster(nil)
	require.NoError(t, err)

	short := squareWaveSeries(t, 7)
	_, err = forecaster.Run(short)
	assert.ErrorIs(t, err, ErrInsufficientData)

	unaligned := squareWaveSeries(t, 22)
	_, err = forecaster.Run(unaligned)
	assert.ErrorIs(t, err, ErrUnalignedTraining)
}

func TestForecaster_EndToEnd(t *testing.T) {
	// Three full weeks of training data and one held-out day.
	series := squareWaveSeries(t, 22)
	train := series.Slice(0, 21*common.DailyPeriod)
	actual := series.Slice(21*common.DailyPeriod, series.Len())

	forecaster, err := NewForecaster(nil,
		WithCARTOptions(tree.WithMinSplit(10), tree.WithComplexityPenalty(0.001)),
	)
	require.NoError(t, err)

	result, err := forecaster.Run(train)
	require.NoError(t, err)
	require.Len(t, result.Forecast, common.DailyPeriod)

	for i, v := range result.Forecast {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "forecast value %d", i)
	}

	scores, err := NewScores(actual.Values, result.Forecast)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(scores.MAPE))
	assert.GreaterOrEqual(t, scores.MAPE, 0.0)
	assert.Less(t, scores.MAPE, 5.0, "square-wave pattern should be reproduced")
	assert.Greater(t, result.TreeSplits, 0)
}

func TestForecaster_EndToEndCTree(t *testing.T) {
	series := squareWaveSeries(t, 22)
	train := series.Slice(0, 21*common.DailyPeriod)
	actual := series.Slice(21*common.DailyPeriod, series.Len())

	forecaster, err := NewForecaster(nil,
		WithAlgorithm(AlgorithmCTree),
		WithCTreeOptions(tree.WithPermutations(49), tree.WithSeed(3)),
	)
	require.NoError(t, err)

	result, err := forecaster.Run(train)
	require.NoError(t, err)
	require.Len(t, result.Forecast, common.DailyPeriod)

	scores, err := NewScores(actual.Values, result.Forecast)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(scores.MAPE))
	assert.Less(t, scores.MAPE, 10.0)
}

func TestForecastWithTree(t *testing.T) {
	series := squareWaveSeries(t, 21)

	predicted, err := ForecastWithTree(series, 2, common.DailyPeriod, AlgorithmCART)
	require.NoError(t, err)
	assert.Len(t, predicted, common.DailyPeriod)

	_, err = ForecastWithTree(series, 0, common.DailyPeriod, AlgorithmCART)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestForecaster_DecompositionExposed(t *testing.T) {
	series := squareWaveSeries(t, 21)

	forecaster, err := NewForecaster(nil)
	require.NoError(t, err)

	result, err := forecaster.Run(series)
	require.NoError(t, err)
	require.NotNil(t, result.Decomposition)

	for i := range series.Values {
		sum := result.Decomposition.Seasonal[i] + result.Decomposition.Trend[i] + result.Decomposition.Remainder[i]
		assert.InDelta(t, series.Values[i], sum, 1e-9)
	}
}

func TestForecaster_RawVariantSkipsTrend(t *testing.T) {
	series := squareWaveSeries(t, 21)

	forecaster, err := NewForecaster(nil, WithDetrend(false))
	require.NoError(t, err)

	result, err := forecaster.Run(series)
	require.NoError(t, err)

	for i, v := range result.TrendComponent {
		assert.Zero(t, v, "trend component %d", i)
	}
	assert.Equal(t, result.TreeComponent, result.Forecast)
}
