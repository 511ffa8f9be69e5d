package synthetic

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peter-kozarec/loadcast/pkg/common"
)

var start = time.Date(2014, 6, 2, 0, 0, 0, 0, time.UTC) // a Monday

func TestLoadGenerator_Deterministic(t *testing.T) {
	a := NewLoadGenerator(rand.New(rand.NewSource(5)), start, 2*common.DailyPeriod)
	b := NewLoadGenerator(rand.New(rand.NewSource(5)), start, 2*common.DailyPeriod)

	seriesA, err := a.Series()
	require.NoError(t, err)
	seriesB, err := b.Series()
	require.NoError(t, err)

	assert.Equal(t, seriesA.Values, seriesB.Values)
	assert.Equal(t, seriesA.TimeStamps, seriesB.TimeStamps)
}

func TestLoadGenerator_EofAfterSteps(t *testing.T) {
	g := NewLoadGenerator(rand.New(rand.NewSource(1)), start, 2)

	_, err := g.GetNext()
	require.NoError(t, err)
	_, err = g.GetNext()
	require.NoError(t, err)
	_, err = g.GetNext()
	assert.True(t, errors.Is(err, ErrEof))
}

func TestLoadGenerator_SquareProfileLevels(t *testing.T) {
	g := NewLoadGenerator(rand.New(rand.NewSource(1)), start, common.DailyPeriod)
	g.SetProfile(ProfileSquare)
	g.SetLevels(1000, 300)
	g.SetWeekendFactor(1)
	g.SetTrend(0)
	g.SetNoise(0)

	series, err := g.Series()
	require.NoError(t, err)

	for i, v := range series.Values {
		tod := i % common.DailyPeriod
		if tod >= 16 && tod < 40 {
			assert.Equal(t, 1300.0, v, "plateau at %d", i)
		} else {
			assert.Equal(t, 1000.0, v, "valley at %d", i)
		}
	}
}

func TestLoadGenerator_WeekendAttenuation(t *testing.T) {
	g := NewLoadGenerator(rand.New(rand.NewSource(1)), start, 7*common.DailyPeriod)
	g.SetProfile(ProfileSquare)
	g.SetLevels(1000, 300)
	g.SetWeekendFactor(0.5)
	g.SetTrend(0)
	g.SetNoise(0)

	series, err := g.Series()
	require.NoError(t, err)

	// Start is a Monday, so the last two days of the week are the
	// weekend.
	monday := series.Values[20]   // plateau sample
	saturday := series.Values[5*common.DailyPeriod+20]
	assert.Equal(t, 1300.0, monday)
	assert.Equal(t, 650.0, saturday)
}

func TestLoadGenerator_RecordFields(t *testing.T) {
	g := NewLoadGenerator(rand.New(rand.NewSource(1)), start, 1)

	record, err := g.GetNext()
	require.NoError(t, err)
	assert.Equal(t, start, record.DateTime)
	assert.Equal(t, start.Truncate(24*time.Hour), record.Date)
	assert.Equal(t, 23, record.WeekNum)
}
