// Package evaluation re-runs the forecasting pipeline over a sliding
// window of the dataset and aggregates accuracy per configuration.
// Windows are independent: every run decomposes, fits and forecasts
// from scratch.
package evaluation

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/peter-kozarec/loadcast/pkg/common"
	"github.com/peter-kozarec/loadcast/pkg/forecast"
	"github.com/peter-kozarec/loadcast/pkg/utility"
)

var (
	ErrNoVariants = errors.New("no variants to evaluate")
	ErrNoWindows  = errors.New("series is too short for a single window")
)

// Variant is one pipeline configuration under comparison.
type Variant struct {
	Name    string
	Options []forecast.Option
}

type SlidingWindow struct {
	logger    *zap.Logger
	variants  []Variant
	trainDays int
	step      int
}

type SlidingWindowOption func(*SlidingWindow)

// WithTrainDays sets the length of each training window in days.
func WithTrainDays(days int) SlidingWindowOption {
	return func(s *SlidingWindow) {
		if days > 0 {
			s.trainDays = days
		}
	}
}

// WithStepDays sets how many days the window advances per iteration.
func WithStepDays(days int) SlidingWindowOption {
	return func(s *SlidingWindow) {
		if days > 0 {
			s.step = days
		}
	}
}

func NewSlidingWindow(logger *zap.Logger, variants []Variant, options ...SlidingWindowOption) *SlidingWindow {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SlidingWindow{
		logger:    logger,
		variants:  variants,
		trainDays: 21,
		step:      7,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Run slides a trainDays window over the series, forecasting the day
// after each window and scoring it against the actual values.
func (s *SlidingWindow) Run(series common.Series) (*Report, error) {
	if len(s.variants) == 0 {
		return nil, ErrNoVariants
	}

	trainLen := s.trainDays * common.DailyPeriod
	stepLen := s.step * common.DailyPeriod
	windows := 0
	for offset := 0; offset+trainLen+common.DailyPeriod <= series.Len(); offset += stepLen {
		windows++
	}
	if windows == 0 {
		return nil, fmt.Errorf("%w: %d samples, need %d", ErrNoWindows, series.Len(), trainLen+common.DailyPeriod)
	}

	report := &Report{
		RunID:     utility.GetExecutionID(),
		TrainDays: s.trainDays,
		Windows:   windows,
		Results:   make([]VariantResult, len(s.variants)),
	}

	for v, variant := range s.variants {
		forecaster, err := forecast.NewForecaster(s.logger, variant.Options...)
		if err != nil {
			return nil, fmt.Errorf("variant %q: %w", variant.Name, err)
		}

		result := VariantResult{Name: variant.Name, MAPEs: make([]float64, 0, windows)}
		for offset := 0; offset+trainLen+common.DailyPeriod <= series.Len(); offset += stepLen {
			train := series.Slice(offset, offset+trainLen)
			actual := series.Slice(offset+trainLen, offset+trainLen+common.DailyPeriod)

			run, err := forecaster.Run(train)
			if err != nil {
				return nil, fmt.Errorf("variant %q window at %d: %w", variant.Name, offset, err)
			}
			scores, err := forecast.NewScores(actual.Values, run.Forecast)
			if err != nil {
				return nil, fmt.Errorf("variant %q window at %d: %w", variant.Name, offset, err)
			}

			result.MAPEs = append(result.MAPEs, scores.MAPE)
			s.logger.Debug("window scored",
				zap.String("variant", variant.Name),
				zap.Time("train_start", train.TimeStamps[0]),
				zap.Float64("mape", scores.MAPE),
				zap.Int("tree_splits", run.TreeSplits),
			)
		}

		result.summarize()
		report.Results[v] = result
	}

	return report, nil
}
