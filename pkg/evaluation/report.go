package evaluation

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/peter-kozarec/loadcast/pkg/utility"
)

// VariantResult aggregates per-window accuracy for one configuration.
// Windows whose MAPE was undefined (all-zero actuals) are excluded
// from the aggregates and counted in SkippedWindows.
type VariantResult struct {
	Name           string
	MAPEs          []float64
	MeanMAPE       float64
	MedianMAPE     float64
	WorstMAPE      float64
	BestMAPE       float64
	SkippedWindows int
}

func (r *VariantResult) summarize() {
	valid := make([]float64, 0, len(r.MAPEs))
	for _, m := range r.MAPEs {
		if math.IsNaN(m) {
			r.SkippedWindows++
			continue
		}
		valid = append(valid, m)
	}
	if len(valid) == 0 {
		r.MeanMAPE = math.NaN()
		r.MedianMAPE = math.NaN()
		r.WorstMAPE = math.NaN()
		r.BestMAPE = math.NaN()
		return
	}

	sum := 0.0
	r.WorstMAPE = valid[0]
	r.BestMAPE = valid[0]
	for _, m := range valid {
		sum += m
		if m > r.WorstMAPE {
			r.WorstMAPE = m
		}
		if m < r.BestMAPE {
			r.BestMAPE = m
		}
	}
	r.MeanMAPE = sum / float64(len(valid))

	sorted := make([]float64, len(valid))
	copy(sorted, valid)
	sort.Float64s(sorted)
	if n := len(sorted); n%2 == 0 {
		r.MedianMAPE = (sorted[n/2-1] + sorted[n/2]) / 2
	} else {
		r.MedianMAPE = sorted[n/2]
	}
}

// Report is the outcome of one sliding-window evaluation.
type Report struct {
	RunID     utility.ExecutionID
	TrainDays int
	Windows   int
	Results   []VariantResult
}

func (report Report) Print(logger *zap.Logger) {
	logger.Info("evaluation report",
		zap.String("run_id", report.RunID.String()),
		zap.Int("train_days", report.TrainDays),
		zap.Int("windows", report.Windows),
	)

	for _, r := range report.Results {
		logger.Info("variant accuracy",
			zap.String("variant", r.Name),
			zap.Float64("mean_mape", r.MeanMAPE),
			zap.Float64("median_mape", r.MedianMAPE),
			zap.Float64("best_mape", r.BestMAPE),
			zap.Float64("worst_mape", r.WorstMAPE),
			zap.Int("skipped_windows", r.SkippedWindows),
		)
	}
}
