package forecast

import (
	"github.com/peter-kozarec/loadcast/pkg/common"
	"github.com/peter-kozarec/loadcast/pkg/models/arima"
	"github.com/peter-kozarec/loadcast/pkg/models/stl"
	"github.com/peter-kozarec/loadcast/pkg/models/tree"
)

type config struct {
	harmonics    int
	period       int
	algorithm    Algorithm
	detrend      bool
	stlOptions   []stl.Option
	arimaOptions []arima.AutoOption
	cartOptions  []tree.CARTOption
	ctreeOptions []tree.CTreeOption
}

func defaultConfig() config {
	return config{
		harmonics: 2,
		period:    common.DailyPeriod,
		algorithm: AlgorithmCART,
		detrend:   true,
	}
}

type Option func(*config)

// WithHarmonics sets the Fourier harmonic order K.
func WithHarmonics(k int) Option {
	return func(c *config) {
		c.harmonics = k
	}
}

// WithPeriod sets the number of samples per day.
func WithPeriod(period int) Option {
	return func(c *config) {
		c.period = period
	}
}

// WithAlgorithm selects the tree variant.
func WithAlgorithm(algorithm Algorithm) Option {
	return func(c *config) {
		c.algorithm = algorithm
	}
}

// WithDetrend toggles trend removal. When disabled the tree models the
// raw series and no trend forecast is added.
func WithDetrend(detrend bool) Option {
	return func(c *config) {
		c.detrend = detrend
	}
}

// WithSTLOptions forwards options to the decomposer.
func WithSTLOptions(options ...stl.Option) Option {
	return func(c *config) {
		c.stlOptions = append(c.stlOptions, options...)
	}
}

// WithTrendSearch forwards options to the automatic ARIMA order search.
func WithTrendSearch(options ...arima.AutoOption) Option {
	return func(c *config) {
		c.arimaOptions = append(c.arimaOptions, options...)
	}
}

// WithCARTOptions forwards options to the CART fitter.
func WithCARTOptions(options ...tree.CARTOption) Option {
	return func(c *config) {
		c.cartOptions = append(c.cartOptions, options...)
	}
}

// WithCTreeOptions forwards options to the conditional-inference
// fitter.
func WithCTreeOptions(options ...tree.CTreeOption) Option {
	return func(c *config) {
		c.ctreeOptions = append(c.ctreeOptions, options...)
	}
}
