package arima

import "math"

// ForecastResult is a deterministic multi-step mean forecast with
// per-step standard errors and normal-theory intervals.
type ForecastResult struct {
	PointForecasts []float64
	StandardErrors []float64
	Lower95        []float64
	Upper95        []float64
	Lower80        []float64
	Upper80        []float64
}

const (
	z95 = 1.959964
	z80 = 1.281552
)

// Forecast produces a steps-ahead mean forecast on the original scale,
// integrating back through the differencing.
func (m *Model) Forecast(steps int) (*ForecastResult, error) {
	if !m.fitted {
		return nil, ErrModelNotEstimated
	}
	if steps < 1 {
		return nil, ErrInsufficientData
	}

	y := m.diffData
	n := len(y)

	extY := make([]float64, n+steps)
	copy(extY, y)
	extResiduals := make([]float64, n+steps)
	copy(extResiduals, m.residuals)

	for h := 0; h < steps; h++ {
		t := n + h
		pred := m.intercept
		for i := 0; i < m.order.P && t-i-1 >= 0; i++ {
			pred += m.arCoeffs[i] * (extY[t-i-1] - m.intercept)
		}
		// Future residuals have zero expectation.
		for i := 0; i < m.order.Q && t-i-1 >= 0 && t-i-1 < n; i++ {
			pred += m.maCoeffs[i] * extResiduals[t-i-1]
		}
		extY[t] = pred
	}

	forecasts := make([]float64, steps)
	copy(forecasts, extY[n:])
	if m.order.D > 0 {
		forecasts = m.integrate(forecasts)
	}

	result := &ForecastResult{
		PointForecasts: forecasts,
		StandardErrors: m.forecastStandardErrors(steps),
		Lower95:        make([]float64, steps),
		Upper95:        make([]float64, steps),
		Lower80:        make([]float64, steps),
		Upper80:        make([]float64, steps),
	}
	for h := 0; h < steps; h++ {
		se := result.StandardErrors[h]
		result.Lower95[h] = forecasts[h] - z95*se
		result.Upper95[h] = forecasts[h] + z95*se
		result.Lower80[h] = forecasts[h] - z80*se
		result.Upper80[h] = forecasts[h] + z80*se
	}
	return result, nil
}

// integrate undoes d rounds of differencing, innermost level first.
// Each cumulative sum is seeded with the tail value of the series at
// that differencing level: for d=2 the first pass starts from the last
// first difference, the second from the last level.
func (m *Model) integrate(forecasts []float64) []float64 {
	result := make([]float64, len(forecasts))
	copy(result, forecasts)

	for i := m.order.D - 1; i >= 0; i-- {
		result[0] += m.diffTails[i]
		for j := 1; j < len(result); j++ {
			result[j] += result[j-1]
		}
	}
	return result
}

// forecastStandardErrors computes per-horizon standard errors from the
// psi-weight expansion of the differenced model, cumulated once per
// order of differencing.
func (m *Model) forecastStandardErrors(steps int) []float64 {
	psi := m.psiWeights(steps)
	for i := 0; i < m.order.D; i++ {
		for j := 1; j < len(psi); j++ {
			psi[j] += psi[j-1]
		}
	}

	se := make([]float64, steps)
	var sum float64
	for h := 0; h < steps; h++ {
		sum += psi[h] * psi[h]
		se[h] = math.Sqrt(m.variance * sum)
	}
	return se
}

// psiWeights expands the ARMA part into its MA(inf) representation.
func (m *Model) psiWeights(count int) []float64 {
	psi := make([]float64, count)
	if count == 0 {
		return psi
	}
	psi[0] = 1
	for j := 1; j < count; j++ {
		v := 0.0
		if j-1 < m.order.Q {
			v = m.maCoeffs[j-1]
		}
		for i := 0; i < m.order.P && j-i-1 >= 0; i++ {
			v += m.arCoeffs[i] * psi[j-i-1]
		}
		psi[j] = v
	}
	return psi
}
