package forecast

import (
	"errors"
	"math"
)

var ErrScoreLengthMismatch = errors.New("actual and predicted lengths differ")

// epsilon below which an actual value counts as zero for MAPE.
const zeroActual = 1e-9

// Scores holds accuracy metrics over a comparison window. MAPE is NaN
// when every actual value is zero; ZeroActuals counts the samples the
// percentage error skipped.
type Scores struct {
	MAPE        float64
	MAE         float64
	RMSE        float64
	ZeroActuals int
}

func NewScores(actual, predicted []float64) (Scores, error) {
	if len(actual) != len(predicted) {
		return Scores{}, ErrScoreLengthMismatch
	}
	if len(actual) == 0 {
		return Scores{MAPE: math.NaN()}, nil
	}

	var s Scores
	var pctSum float64
	pctCount := 0
	var absSum, sqSum float64

	for i := range actual {
		err := actual[i] - predicted[i]
		absSum += math.Abs(err)
		sqSum += err * err

		if math.Abs(actual[i]) < zeroActual {
			s.ZeroActuals++
			continue
		}
		pctSum += math.Abs(err / actual[i])
		pctCount++
	}

	n := float64(len(actual))
	s.MAE = absSum / n
	s.RMSE = math.Sqrt(sqSum / n)
	if pctCount > 0 {
		s.MAPE = 100 * pctSum / float64(pctCount)
	} else {
		s.MAPE = math.NaN()
	}
	return s, nil
}
