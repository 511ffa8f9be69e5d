package tree

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// squareWaveData builds days of a two-level daily pattern keyed on a
// single time-of-day feature, optionally with noise.
func squareWaveData(days int, noiseSigma float64, rng *rand.Rand) (*mat.Dense, []float64) {
	const period = 48
	n := days * period
	x := mat.NewDense(n, 1, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		tod := i % period
		x.Set(i, 0, float64(tod))
		if tod >= 16 && tod < 40 {
			y[i] = 1300
		} else {
			y[i] = 1000
		}
		if noiseSigma > 0 {
			y[i] += rng.NormFloat64() * noiseSigma
		}
	}
	return x, y
}

func trainingMAPE(m *Model, x mat.Matrix, y []float64) float64 {
	predictions := m.Predict(x)
	var sum float64
	for i := range y {
		sum += math.Abs((y[i] - predictions[i]) / y[i])
	}
	return 100 * sum / float64(len(y))
}

func TestCART_SingleLeafBelowMinSplit(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := []float64{10, 20, 30}

	m, err := NewCART(WithMinSplit(20)).Fit(x, y)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if m.Splits() != 0 {
		t.Errorf("splits = %d, want 0", m.Splits())
	}
	if got := m.PredictRow([]float64{2}); got != 20 {
		t.Errorf("single-leaf prediction = %f, want mean 20", got)
	}
}

func TestCART_InputValidation(t *testing.T) {
	x := mat.NewDense(2, 1, []float64{1, 2})

	if _, err := NewCART().Fit(x, []float64{1}); err != ErrDimensionsDiffer {
		t.Errorf("err = %v, want ErrDimensionsDiffer", err)
	}
	if _, err := NewCART().Fit(x, nil); err != ErrEmptyTrainingSet {
		t.Errorf("err = %v, want ErrEmptyTrainingSet", err)
	}
}

func TestCART_RecoversSquareWave(t *testing.T) {
	x, y := squareWaveData(4, 0, nil)

	m, err := NewCART(WithMinSplit(10), WithComplexityPenalty(0.001)).Fit(x, y)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	// Held-out day: same time-of-day features.
	test, expected := squareWaveData(1, 0, nil)
	if mape := trainingMAPE(m, test, expected); mape >= 5 {
		t.Errorf("held-out MAPE = %f, want < 5", mape)
	}
	if m.Splits() < 2 {
		t.Errorf("splits = %d, want at least 2 to isolate the plateau", m.Splits())
	}
}

func TestCART_RelaxedPruningNeverFitsWorse(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	x, y := squareWaveData(21, 20, rng)

	shallow, err := NewCART().Fit(x, y)
	if err != nil {
		t.Fatalf("default fit: %v", err)
	}
	deep, err := NewCART(WithComplexityPenalty(0), WithMaxDepth(30)).Fit(x, y)
	if err != nil {
		t.Fatalf("relaxed fit: %v", err)
	}

	if deep.Splits() < shallow.Splits() {
		t.Errorf("relaxed tree has %d splits, default %d", deep.Splits(), shallow.Splits())
	}

	shallowMAPE := trainingMAPE(shallow, x, y)
	deepMAPE := trainingMAPE(deep, x, y)
	if deepMAPE > shallowMAPE+1e-9 {
		t.Errorf("training MAPE increased: default %f, relaxed %f", shallowMAPE, deepMAPE)
	}
}

func TestCART_MaxDepthBoundsTree(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	x, y := squareWaveData(10, 30, rng)

	m, err := NewCART(WithComplexityPenalty(0), WithMaxDepth(2), WithMinSplit(2)).Fit(x, y)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if m.Depth() > 2 {
		t.Errorf("depth = %d, want <= 2", m.Depth())
	}
}
