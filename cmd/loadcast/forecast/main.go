package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/peter-kozarec/loadcast/cmd/loadcast"
	"github.com/peter-kozarec/loadcast/internal/dbg"
	"github.com/peter-kozarec/loadcast/pkg/common"
	"github.com/peter-kozarec/loadcast/pkg/data/duckdb"
	"github.com/peter-kozarec/loadcast/pkg/data/mapper"
	"github.com/peter-kozarec/loadcast/pkg/forecast"
)

func main() {
	logger := dbg.NewDevLogger()
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	logger.Info(fmt.Sprintf("loadcast %s", loadcast.Version))
	defer logger.Info("done")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	series, err := loadSeries(ctx)
	if err != nil {
		logger.Fatal("error loading dataset", zap.Error(err))
	}

	train, actual := series.SplitTail(common.DailyPeriod)

	forecaster, err := forecast.NewForecaster(logger,
		forecast.WithHarmonics(HarmonicOrder),
		forecast.WithAlgorithm(forecast.AlgorithmCART),
	)
	if err != nil {
		logger.Fatal("error configuring forecaster", zap.Error(err))
	}

	result, err := forecaster.Run(train)
	if err != nil {
		logger.Fatal("error running forecast", zap.Error(err))
	}

	scores, err := forecast.NewScores(actual.Values, result.Forecast)
	if err != nil {
		logger.Fatal("error scoring forecast", zap.Error(err))
	}

	logger.Info("forecast complete",
		zap.Time("forecast_day", actual.TimeStamps[0]),
		zap.Stringer("trend_order", result.TrendOrder),
		zap.Int("tree_splits", result.TreeSplits),
		zap.Int("tree_depth", result.TreeDepth),
		zap.Float64("mape", scores.MAPE),
		zap.Float64("mae", scores.MAE),
		zap.Float64("rmse", scores.RMSE),
	)
}

func loadSeries(ctx context.Context) (common.Series, error) {
	samples := (TrainDays + 1) * common.DailyPeriod

	if strings.HasSuffix(DataSource, ".bin") {
		r := mapper.NewReader[mapper.BinaryLoadRecord](DataSource)
		if err := r.Open(); err != nil {
			return common.Series{}, err
		}
		defer r.Close()
		return mapper.LoadSeries(r, DataStart, samples)
	}

	r := duckdb.NewReader(DataSource)
	if err := r.Connect(); err != nil {
		return common.Series{}, err
	}
	defer r.Close()

	to := DataStart.Add(time.Duration(samples-1) * common.SampleInterval)
	return r.LoadSeries(ctx, LoadTable, DataStart, to)
}
