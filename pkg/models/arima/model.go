// Package arima fits ARIMA(p,d,q) models to batch series and produces
// deterministic mean forecasts. Estimation uses conditional sum of
// squares with Yule-Walker initial AR coefficients and bounded gradient
// refinement.
package arima

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrModelNotEstimated = errors.New("model has not been fitted")
	ErrInsufficientData  = errors.New("not enough data points for the requested order")
)

type Order struct {
	P int
	D int
	Q int
}

func (o Order) String() string {
	return fmt.Sprintf("ARIMA(%d,%d,%d)", o.P, o.D, o.Q)
}

// parameters counts estimated coefficients, including the constant.
func (o Order) parameters(includeConstant bool) int {
	k := o.P + o.Q
	if includeConstant {
		k++
	}
	return k
}

type Model struct {
	order           Order
	includeConstant bool
	maxIterations   int
	tolerance       float64

	arCoeffs  []float64
	maCoeffs  []float64
	intercept float64
	variance  float64

	logLik float64
	aic    float64
	aicc   float64
	bic    float64

	diffData   []float64
	diffTails  []float64
	residuals  []float64
	fittedVals []float64
	iterations int
	fitted     bool
}

func NewModel(p, d, q int, options ...ModelOption) *Model {
	m := &Model{
		order:           Order{P: p, D: d, Q: q},
		includeConstant: true,
		maxIterations:   100,
		tolerance:       1e-6,
		arCoeffs:        make([]float64, p),
		maCoeffs:        make([]float64, q),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Model) Order() Order {
	return m.order
}

// Fit estimates the model from values. The series is differenced d
// times, then AR and MA coefficients are estimated by conditional sum
// of squares.
func (m *Model) Fit(values []float64) error {
	if len(values) < m.order.P+m.order.D+m.order.Q+10 {
		return fmt.Errorf("%w: %s needs more than %d samples", ErrInsufficientData, m.order, len(values))
	}

	// The tail of every differencing level seeds one integration pass
	// when forecasts are mapped back to the original scale.
	m.diffData = values
	m.diffTails = m.diffTails[:0]
	for i := 0; i < m.order.D; i++ {
		m.diffTails = append(m.diffTails, m.diffData[len(m.diffData)-1])
		m.diffData = diff(m.diffData)
	}
	if len(m.diffData) == 0 {
		return fmt.Errorf("%w: differencing exhausted the series", ErrInsufficientData)
	}

	m.estimate()
	m.calculateIC()
	m.fitted = true
	return nil
}

func (m *Model) estimate() {
	y := m.diffData
	n := len(y)
	p := m.order.P
	q := m.order.Q

	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(n)
	if m.includeConstant {
		m.intercept = mean
	}

	if p == 0 && q == 0 {
		m.residuals = make([]float64, n)
		m.fittedVals = make([]float64, n)
		var sse float64
		for i, v := range y {
			m.fittedVals[i] = m.intercept
			m.residuals[i] = v - m.intercept
			sse += m.residuals[i] * m.residuals[i]
		}
		if n > 1 {
			m.variance = sse / float64(n-1)
		}
		return
	}

	if p > 0 {
		if acf := autocorrelation(y, p); acf != nil {
			if phi := yuleWalker(acf, p); phi != nil {
				copy(m.arCoeffs, phi)
			}
		}
	}
	for i := range m.maCoeffs {
		m.maCoeffs[i] = 0.1
	}

	m.refineCSS(y)
}

// refineCSS iterates gradient steps on the conditional sum of squares,
// clamping coefficients inside the unit interval for stationarity and
// invertibility.
func (m *Model) refineCSS(y []float64) {
	n := len(y)
	p := m.order.P
	q := m.order.Q
	start := p
	if q > start {
		start = q
	}

	const learningRate = 0.01
	residuals := make([]float64, n)

	for iter := 0; iter < m.maxIterations; iter++ {
		m.iterations = iter + 1
		prevSSE := m.computeResiduals(y, residuals, start)

		arGrad := make([]float64, p)
		maGrad := make([]float64, q)
		for t := start; t < n; t++ {
			for i := 0; i < p; i++ {
				arGrad[i] -= 2 * residuals[t] * (y[t-i-1] - m.intercept)
			}
			for i := 0; i < q; i++ {
				maGrad[i] -= 2 * residuals[t] * residuals[t-i-1]
			}
		}

		for i := 0; i < p; i++ {
			m.arCoeffs[i] = clamp(m.arCoeffs[i]-learningRate*arGrad[i]/float64(n), -0.99, 0.99)
		}
		for i := 0; i < q; i++ {
			m.maCoeffs[i] = clamp(m.maCoeffs[i]-learningRate*maGrad[i]/float64(n), -0.99, 0.99)
		}

		newSSE := m.computeResiduals(y, residuals, start)
		if math.Abs(prevSSE-newSSE) < m.tolerance {
			break
		}
	}

	m.residuals = make([]float64, n)
	m.fittedVals = make([]float64, n)
	for t := 0; t < n; t++ {
		if t < start {
			m.fittedVals[t] = m.intercept
			m.residuals[t] = y[t] - m.intercept
			continue
		}
		pred := m.predictOne(y, m.residuals, t)
		m.fittedVals[t] = pred
		m.residuals[t] = y[t] - pred
	}

	var sse float64
	count := 0
	for t := start; t < n; t++ {
		sse += m.residuals[t] * m.residuals[t]
		count++
	}
	dof := count - p - q - 1
	if dof > 0 {
		m.variance = sse / float64(dof)
	} else if count > 0 {
		m.variance = sse / float64(count)
	}
}

func (m *Model) computeResiduals(y, residuals []float64, start int) float64 {
	for i := range residuals {
		residuals[i] = 0
	}
	var sse float64
	for t := start; t < len(y); t++ {
		residuals[t] = y[t] - m.predictOne(y, residuals, t)
		sse += residuals[t] * residuals[t]
	}
	return sse
}

func (m *Model) predictOne(y, residuals []float64, t int) float64 {
	pred := m.intercept
	for i := 0; i < m.order.P && t-i-1 >= 0; i++ {
		pred += m.arCoeffs[i] * (y[t-i-1] - m.intercept)
	}
	for i := 0; i < m.order.Q && t-i-1 >= 0; i++ {
		pred += m.maCoeffs[i] * residuals[t-i-1]
	}
	return pred
}

func (m *Model) calculateIC() {
	n := len(m.residuals)
	k := float64(m.order.parameters(m.includeConstant))
	nf := float64(n)

	var sse float64
	for _, r := range m.residuals {
		sse += r * r
	}

	if m.variance > 0 {
		m.logLik = -nf/2*math.Log(2*math.Pi) - nf/2*math.Log(m.variance) - sse/(2*m.variance)
	} else {
		m.logLik = math.Inf(-1)
	}

	m.aic = -2*m.logLik + 2*k
	if nf-k-1 > 0 {
		m.aicc = m.aic + 2*k*(k+1)/(nf-k-1)
	} else {
		m.aicc = math.Inf(1)
	}
	m.bic = -2*m.logLik + k*math.Log(nf)
}

func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	out := make([]float64, len(m.residuals))
	copy(out, m.residuals)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
