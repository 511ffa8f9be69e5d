package arima

import "math"

// AutoConfig bounds the automatic order search.
type AutoConfig struct {
	MaxP int
	MaxD int
	MaxQ int
}

func DefaultAutoConfig() AutoConfig {
	return AutoConfig{MaxP: 3, MaxD: 2, MaxQ: 3}
}

type AutoOption func(*AutoConfig)

func WithMaxOrder(maxP, maxD, maxQ int) AutoOption {
	return func(c *AutoConfig) {
		if maxP >= 0 {
			c.MaxP = maxP
		}
		if maxD >= 0 {
			c.MaxD = maxD
		}
		if maxQ >= 0 {
			c.MaxQ = maxQ
		}
	}
}

// AutoFit selects an order by corrected AIC using a stepwise search and
// returns the fitted model. The search never fails: if no candidate
// converges it falls back to a random walk with drift, and as a last
// resort to a constant-mean model.
func AutoFit(values []float64, options ...AutoOption) *Model {
	cfg := DefaultAutoConfig()
	for _, option := range options {
		option(&cfg)
	}

	d := chooseDifferencing(values, cfg.MaxD)

	best := (*Model)(nil)
	bestIC := math.Inf(1)
	tried := map[Order]bool{}

	evaluate := func(p, q int) {
		if p < 0 || q < 0 || p > cfg.MaxP || q > cfg.MaxQ {
			return
		}
		order := Order{P: p, D: d, Q: q}
		if tried[order] {
			return
		}
		tried[order] = true

		m := NewModel(p, d, q)
		if err := m.Fit(values); err != nil {
			return
		}
		if ic := m.aicc; !math.IsNaN(ic) && ic < bestIC {
			bestIC = ic
			best = m
		}
	}

	// Stepwise search starting from the usual seeds, then walking the
	// neighborhood of the incumbent until no neighbor improves.
	for _, seed := range [][2]int{{2, 2}, {0, 0}, {1, 0}, {0, 1}} {
		evaluate(seed[0], seed[1])
	}
	for {
		if best == nil {
			break
		}
		p, q := best.order.P, best.order.Q
		before := bestIC
		evaluate(p+1, q)
		evaluate(p-1, q)
		evaluate(p, q+1)
		evaluate(p, q-1)
		evaluate(p+1, q+1)
		evaluate(p-1, q-1)
		if bestIC >= before {
			break
		}
	}

	if best != nil {
		return best
	}

	// Fallbacks, tolerated rather than surfaced: a drift model matches
	// the near-random-walk behavior of extracted trends.
	drift := NewModel(0, minInt(1, cfg.MaxD), 0)
	if err := drift.Fit(values); err == nil {
		return drift
	}
	flat := NewModel(0, 0, 0)
	_ = flat.Fit(values)
	return flat
}

// chooseDifferencing picks the lowest d whose differenced series does
// not reduce variance any further, up to maxD.
func chooseDifferencing(values []float64, maxD int) int {
	best := 0
	bestVar := sampleVariance(values)
	current := values
	for d := 1; d <= maxD; d++ {
		current = diff(current)
		if len(current) < 10 {
			break
		}
		v := sampleVariance(current)
		if v < bestVar {
			bestVar = v
			best = d
		} else {
			break
		}
	}
	return best
}

func sampleVariance(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)
	var ss float64
	for _, v := range values {
		ss += (v - mean) * (v - mean)
	}
	return ss / float64(n-1)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
