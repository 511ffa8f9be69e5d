package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScores(t *testing.T) {
	tests := []struct {
		name        string
		actual      []float64
		predicted   []float64
		wantMAPE    float64
		wantMAE     float64
		wantRMSE    float64
		wantZeros   int
		wantNaN     bool
		wantErr     bool
	}{
		{
			name:      "known values",
			actual:    []float64{100, 200},
			predicted: []float64{90, 210},
			wantMAPE:  7.5,
			wantMAE:   10,
			wantRMSE:  10,
		},
		{
			name:      "perfect forecast",
			actual:    []float64{50, 60, 70},
			predicted: []float64{50, 60, 70},
			wantMAPE:  0,
			wantMAE:   0,
			wantRMSE:  0,
		},
		{
			name:      "zero actual skipped",
			actual:    []float64{0, 100},
			predicted: []float64{10, 90},
			wantMAPE:  10,
			wantMAE:   10,
			wantRMSE:  10,
			wantZeros: 1,
		},
		{
			name:      "all actuals zero",
			actual:    []float64{0, 0},
			predicted: []float64{1, 2},
			wantZeros: 2,
			wantNaN:   true,
		},
		{
			name:      "length mismatch",
			actual:    []float64{1},
			predicted: []float64{1, 2},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScores(tt.actual, tt.predicted)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrScoreLengthMismatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantZeros, s.ZeroActuals)
			if tt.wantNaN {
				assert.True(t, math.IsNaN(s.MAPE))
				return
			}
			assert.InDelta(t, tt.wantMAPE, s.MAPE, 1e-9)
			assert.InDelta(t, tt.wantMAE, s.MAE, 1e-9)
			assert.InDelta(t, tt.wantRMSE, s.RMSE, 1e-9)
		})
	}
}
