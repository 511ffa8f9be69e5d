// Package forecast wires the load-forecasting pipeline together:
// decompose the training window, engineer Fourier and lag features,
// forecast the trend with an automatically selected ARIMA model, fit a
// regression tree to the detrended target and combine both forecasts
// into the next day of load.
package forecast

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/peter-kozarec/loadcast/pkg/common"
	"github.com/peter-kozarec/loadcast/pkg/features"
	"github.com/peter-kozarec/loadcast/pkg/models/arima"
	"github.com/peter-kozarec/loadcast/pkg/models/stl"
	"github.com/peter-kozarec/loadcast/pkg/models/tree"
)

var (
	ErrInvalidConfig     = errors.New("invalid forecaster configuration")
	ErrInsufficientData  = errors.New("training window is too short")
	ErrUnalignedTraining = errors.New("training window must hold a whole number of weeks")
)

// Algorithm selects the tree variant used for the seasonal model.
type Algorithm string

const (
	AlgorithmCART  Algorithm = "cart"
	AlgorithmCTree Algorithm = "ctree"
)

// Result of a one-day-ahead run. Forecast is the combined prediction,
// TreeComponent and TrendComponent its two addends.
type Result struct {
	Forecast       []float64
	TreeComponent  []float64
	TrendComponent []float64
	TreeSplits     int
	TreeDepth      int
	TrendOrder     arima.Order
	Decomposition  *stl.Result
}

type Forecaster struct {
	logger *zap.Logger
	cfg    config
}

// NewForecaster validates the configuration and returns a forecaster.
// Invalid harmonic orders, periods or algorithms are rejected here,
// before any data is touched.
func NewForecaster(logger *zap.Logger, options ...Option) (*Forecaster, error) {
	cfg := defaultConfig()
	for _, option := range options {
		option(&cfg)
	}

	if cfg.harmonics < 1 {
		return nil, fmt.Errorf("%w: harmonic order %d", ErrInvalidConfig, cfg.harmonics)
	}
	if cfg.period < 2 {
		return nil, fmt.Errorf("%w: period %d", ErrInvalidConfig, cfg.period)
	}
	if cfg.algorithm != AlgorithmCART && cfg.algorithm != AlgorithmCTree {
		return nil, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidConfig, cfg.algorithm)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &Forecaster{logger: logger, cfg: cfg}, nil
}

// Run forecasts one daily period past the end of the training series.
func (f *Forecaster) Run(train common.Series) (*Result, error) {
	daily := f.cfg.period
	weekly := daily * 7

	n := train.Len()
	if n < 2*weekly {
		return nil, fmt.Errorf("%w: have %d samples, need %d", ErrInsufficientData, n, 2*weekly)
	}
	if n%weekly != 0 {
		return nil, fmt.Errorf("%w: %d samples", ErrUnalignedTraining, n)
	}

	decomposition, err := stl.Decompose(train.Values, weekly, f.cfg.stlOptions...)
	if err != nil {
		return nil, fmt.Errorf("decomposition: %w", err)
	}
	f.logger.Debug("series decomposed",
		zap.Int("samples", n),
		zap.Int("period", weekly),
	)

	// The tree models seasonal + remainder; with detrending disabled it
	// models the raw series and the trend addend stays zero.
	target := make([]float64, n)
	if f.cfg.detrend {
		for i := 0; i < n; i++ {
			target[i] = decomposition.Seasonal[i] + decomposition.Remainder[i]
		}
	} else {
		copy(target, train.Values)
	}

	set, err := features.Build(decomposition.Seasonal, target, f.cfg.harmonics, daily, weekly)
	if err != nil {
		return nil, fmt.Errorf("feature engineering: %w", err)
	}

	result := &Result{
		Forecast:       make([]float64, daily),
		TrendComponent: make([]float64, daily),
		Decomposition:  decomposition,
	}

	if f.cfg.detrend {
		trendModel := arima.AutoFit(decomposition.Trend, f.cfg.arimaOptions...)
		trendForecast, err := trendModel.Forecast(daily)
		if err != nil {
			return nil, fmt.Errorf("trend forecast: %w", err)
		}
		result.TrendOrder = trendModel.Order()
		copy(result.TrendComponent, trendForecast.PointForecasts)
		f.logger.Debug("trend forecast",
			zap.Stringer("order", trendModel.Order()),
			zap.Float64("aicc", trendModel.Diagnostics().AICC),
		)
	}

	model, err := f.fitTree(set)
	if err != nil {
		return nil, fmt.Errorf("tree fit: %w", err)
	}
	result.TreeComponent = model.Predict(set.Horizon)
	result.TreeSplits = model.Splits()
	result.TreeDepth = model.Depth()
	f.logger.Debug("tree fitted",
		zap.String("algorithm", string(f.cfg.algorithm)),
		zap.Int("splits", model.Splits()),
		zap.Int("depth", model.Depth()),
	)

	for i := 0; i < daily; i++ {
		result.Forecast[i] = result.TreeComponent[i] + result.TrendComponent[i]
	}
	return result, nil
}

// ForecastWithTree runs the pipeline once and returns the next day of
// predicted load.
func ForecastWithTree(train common.Series, harmonics, period int, algorithm Algorithm) ([]float64, error) {
	f, err := NewForecaster(nil,
		WithHarmonics(harmonics),
		WithPeriod(period),
		WithAlgorithm(algorithm),
	)
	if err != nil {
		return nil, err
	}
	result, err := f.Run(train)
	if err != nil {
		return nil, err
	}
	return result.Forecast, nil
}

func (f *Forecaster) fitTree(set *features.Set) (*tree.Model, error) {
	switch f.cfg.algorithm {
	case AlgorithmCTree:
		return tree.NewCTree(f.cfg.ctreeOptions...).Fit(set.Train, set.Target)
	default:
		return tree.NewCART(f.cfg.cartOptions...).Fit(set.Train, set.Target)
	}
}
