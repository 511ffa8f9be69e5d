package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/peter-kozarec/loadcast/cmd/loadcast"
	"github.com/peter-kozarec/loadcast/internal/dbg"
	"github.com/peter-kozarec/loadcast/pkg/common"
	"github.com/peter-kozarec/loadcast/pkg/data/duckdb"
	"github.com/peter-kozarec/loadcast/pkg/datasource/synthetic"
	"github.com/peter-kozarec/loadcast/pkg/evaluation"
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

	series, err := loadSeries(ctx, logger)
	if err != nil {
		logger.Fatal("error loading dataset", zap.Error(err))
	}

	variants := []evaluation.Variant{
		{
			Name:    "cart",
			Options: []forecast.Option{forecast.WithAlgorithm(forecast.AlgorithmCART)},
		},
		{
			Name:    "ctree",
			Options: []forecast.Option{forecast.WithAlgorithm(forecast.AlgorithmCTree)},
		},
		{
			Name: "cart_raw",
			Options: []forecast.Option{
				forecast.WithAlgorithm(forecast.AlgorithmCART),
				forecast.WithDetrend(false),
			},
		},
	}

	slider := evaluation.NewSlidingWindow(logger, variants,
		evaluation.WithTrainDays(TrainDays),
		evaluation.WithStepDays(StepDays),
	)

	report, err := slider.Run(series)
	if err != nil {
		logger.Fatal("error running evaluation", zap.Error(err))
	}
	report.Print(logger)
}

func loadSeries(ctx context.Context, logger *zap.Logger) (common.Series, error) {
	samples := TotalDays * common.DailyPeriod

	if _, err := os.Stat(DataSource); err != nil {
		logger.Warn("dataset not found, generating synthetic load",
			zap.String("source", DataSource),
			zap.Int64("seed", SyntheticSeed),
		)
		rng := rand.New(rand.NewSource(SyntheticSeed))
		return synthetic.NewLoadGenerator(rng, DataStart, samples).Series()
	}

	r := duckdb.NewReader(DataSource)
	if err := r.Connect(); err != nil {
		return common.Series{}, err
	}
	defer r.Close()

	to := DataStart.Add(time.Duration(samples-1) * common.SampleInterval)
	return r.LoadSeries(ctx, LoadTable, DataStart, to)
}
