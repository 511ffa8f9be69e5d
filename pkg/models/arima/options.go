package arima

type ModelOption func(*Model)

// WithConstant controls whether a constant term is estimated. Enabled
// by default.
func WithConstant(include bool) ModelOption {
	return func(m *Model) {
		m.includeConstant = include
	}
}

// WithMaxIterations bounds the CSS refinement loop.
func WithMaxIterations(iterations int) ModelOption {
	return func(m *Model) {
		if iterations > 0 {
			m.maxIterations = iterations
		}
	}
}

// WithTolerance sets the SSE convergence tolerance of the refinement
// loop.
func WithTolerance(tolerance float64) ModelOption {
	return func(m *Model) {
		if tolerance > 0 {
			m.tolerance = tolerance
		}
	}
}
