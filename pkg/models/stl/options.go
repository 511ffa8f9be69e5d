package stl

type Option func(*decomposer)

// WithRobustIterations sets the number of robustness iterations. Each
// iteration after the first down-weights samples with large remainders
// using Tukey's biweight.
func WithRobustIterations(iterations int) Option {
	return func(d *decomposer) {
		if iterations > 0 {
			d.robustIterations = iterations
		}
	}
}

// WithTrendWindow overrides the trend smoother window. The window is
// forced odd. Defaults to the seasonal period plus one.
func WithTrendWindow(window int) Option {
	return func(d *decomposer) {
		if window > 1 {
			d.trendWindow = window
		}
	}
}
