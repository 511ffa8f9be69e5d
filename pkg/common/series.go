package common

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DailyPeriod is the number of half-hourly samples in one day.
	DailyPeriod = 48
	// WeeklyPeriod is the number of half-hourly samples in one week.
	WeeklyPeriod = DailyPeriod * 7
	// SampleInterval is the spacing between consecutive samples.
	SampleInterval = 30 * time.Minute
)

var (
	ErrEmptySeries     = errors.New("series is empty")
	ErrIrregularSeries = errors.New("series timestamps are not strictly increasing and equally spaced")
	ErrLengthMismatch  = errors.New("timestamp and value lengths differ")
)

// Series is an ordered univariate time series with a fixed sampling
// interval. Values are aligned 1:1 with TimeStamps.
type Series struct {
	TimeStamps []time.Time
	Values     []float64
}

// NewSeries validates the invariants of a regular series: equal lengths,
// strictly increasing timestamps with constant spacing.
func NewSeries(timeStamps []time.Time, values []float64) (Series, error) {
	if len(timeStamps) != len(values) {
		return Series{}, ErrLengthMismatch
	}
	if len(values) == 0 {
		return Series{}, ErrEmptySeries
	}
	if len(timeStamps) > 1 {
		interval := timeStamps[1].Sub(timeStamps[0])
		if interval <= 0 {
			return Series{}, ErrIrregularSeries
		}
		for i := 2; i < len(timeStamps); i++ {
			if timeStamps[i].Sub(timeStamps[i-1]) != interval {
				return Series{}, fmt.Errorf("%w: gap at index %d", ErrIrregularSeries, i)
			}
		}
	}
	return Series{TimeStamps: timeStamps, Values: values}, nil
}

// FromRecords builds a series from dataset rows. Rows must already be
// ordered by DateTime.
func FromRecords(records []LoadRecord) (Series, error) {
	timeStamps := make([]time.Time, len(records))
	values := make([]float64, len(records))
	for i, r := range records {
		timeStamps[i] = r.DateTime
		values[i] = r.Value
	}
	return NewSeries(timeStamps, values)
}

func (s Series) Len() int {
	return len(s.Values)
}

// Slice returns the sub-series [from, to). The backing arrays are shared.
func (s Series) Slice(from, to int) Series {
	return Series{
		TimeStamps: s.TimeStamps[from:to],
		Values:     s.Values[from:to],
	}
}

// SplitTail splits off the last horizon samples, returning the leading
// training series and the tail.
func (s Series) SplitTail(horizon int) (Series, Series) {
	cut := s.Len() - horizon
	return s.Slice(0, cut), s.Slice(cut, s.Len())
}

// Interval reports the sampling interval, or zero for series shorter
// than two samples.
func (s Series) Interval() time.Duration {
	if s.Len() < 2 {
		return 0
	}
	return s.TimeStamps[1].Sub(s.TimeStamps[0])
}
