// Package synthetic generates reproducible half-hourly load series with
// configurable daily shape, weekend attenuation, linear trend and
// Gaussian noise. Used by tests and as a stand-in when no dataset file
// is present.
package synthetic

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/peter-kozarec/loadcast/pkg/common"
)

var ErrEof = errors.New("EOF")

// Profile shapes the within-day pattern.
type Profile int

const (
	// ProfileSmooth is a double-peaked curve resembling a residential
	// load: morning and evening peaks, overnight valley.
	ProfileSmooth Profile = iota
	// ProfileSquare is a flat high plateau during working hours and a
	// flat low overnight.
	ProfileSquare
)

type LoadGenerator struct {
	rng *rand.Rand

	startTime time.Time
	steps     int
	t         int

	profile       Profile
	baseLoad      float64
	dailyAmp      float64
	weekendFactor float64
	trendPerDay   float64
	noiseSigma    float64
}

func NewLoadGenerator(rng *rand.Rand, startTime time.Time, steps int) *LoadGenerator {
	return &LoadGenerator{
		rng:           rng,
		startTime:     startTime,
		steps:         steps,
		profile:       ProfileSmooth,
		baseLoad:      1000,
		dailyAmp:      300,
		weekendFactor: 0.85,
		trendPerDay:   2.5,
		noiseSigma:    15,
	}
}

func (g *LoadGenerator) SetProfile(profile Profile) {
	g.profile = profile
}

func (g *LoadGenerator) SetLevels(baseLoad, dailyAmp float64) {
	g.baseLoad = baseLoad
	g.dailyAmp = dailyAmp
}

// SetWeekendFactor scales weekend days; 1 disables the weekly effect.
func (g *LoadGenerator) SetWeekendFactor(factor float64) {
	g.weekendFactor = factor
}

func (g *LoadGenerator) SetTrend(perDay float64) {
	g.trendPerDay = perDay
}

func (g *LoadGenerator) SetNoise(sigma float64) {
	g.noiseSigma = sigma
}

// GetNext produces the next record, or ErrEof once steps are
// exhausted.
func (g *LoadGenerator) GetNext() (common.LoadRecord, error) {
	var record common.LoadRecord

	if g.t >= g.steps {
		return record, ErrEof
	}

	ts := g.startTime.Add(time.Duration(g.t) * common.SampleInterval)
	day := g.t / common.DailyPeriod
	tod := g.t % common.DailyPeriod

	value := g.baseLoad + g.trendPerDay*float64(day) + g.dailyAmp*g.shape(tod)

	weekday := ts.Weekday()
	if weekday == time.Saturday || weekday == time.Sunday {
		value *= g.weekendFactor
	}

	if g.noiseSigma > 0 {
		value += g.rng.NormFloat64() * g.noiseSigma
	}

	_, week := ts.ISOWeek()
	record.Date = ts.Truncate(24 * time.Hour)
	record.DateTime = ts
	record.Value = value
	record.WeekNum = week

	g.t++
	return record, nil
}

// Series drains the generator into a validated series.
func (g *LoadGenerator) Series() (common.Series, error) {
	records := make([]common.LoadRecord, 0, g.steps-g.t)
	for {
		record, err := g.GetNext()
		if errors.Is(err, ErrEof) {
			break
		}
		if err != nil {
			return common.Series{}, err
		}
		records = append(records, record)
	}
	return common.FromRecords(records)
}

func (g *LoadGenerator) shape(tod int) float64 {
	switch g.profile {
	case ProfileSquare:
		// Plateau from 08:00 to 20:00.
		if tod >= 16 && tod < 40 {
			return 1
		}
		return 0
	default:
		x := 2 * math.Pi * float64(tod) / common.DailyPeriod
		// Fundamental plus second harmonic gives the two daily peaks.
		return 0.6*math.Sin(x-math.Pi/2) + 0.4*math.Sin(2*x-math.Pi/3) + 0.6
	}
}
