package arima

import "gonum.org/v1/gonum/mat"

func diff(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i] - values[i-1]
	}
	return out
}

// autocorrelation returns acf[0..maxLag] with acf[0] == 1.
func autocorrelation(values []float64, maxLag int) []float64 {
	n := len(values)
	if n == 0 || maxLag >= n {
		return nil
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	var c0 float64
	for _, v := range values {
		c0 += (v - mean) * (v - mean)
	}
	if c0 == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	acf[0] = 1
	for lag := 1; lag <= maxLag; lag++ {
		var ck float64
		for t := lag; t < n; t++ {
			ck += (values[t] - mean) * (values[t-lag] - mean)
		}
		acf[lag] = ck / c0
	}
	return acf
}

// yuleWalker estimates AR coefficients from the autocorrelation via
// Levinson-Durbin recursion, falling back to a dense Toeplitz solve if
// the recursion degenerates.
func yuleWalker(acf []float64, order int) []float64 {
	if order <= 0 || len(acf) <= order {
		return nil
	}

	phi := make([]float64, order)
	phi[0] = acf[1]
	if order == 1 {
		return phi
	}

	v := 1 - phi[0]*phi[0]
	for i := 1; i < order; i++ {
		if v <= 0 {
			return solveToeplitz(acf, order)
		}
		lambda := acf[i+1]
		for j := 0; j < i; j++ {
			lambda -= phi[j] * acf[i-j]
		}
		lambda /= v

		next := make([]float64, i+1)
		for j := 0; j < i; j++ {
			next[j] = phi[j] - lambda*phi[i-1-j]
		}
		next[i] = lambda
		copy(phi, next)

		v *= 1 - lambda*lambda
	}
	return phi
}

// solveToeplitz solves the Yule-Walker system R phi = r directly.
func solveToeplitz(acf []float64, order int) []float64 {
	r := mat.NewDense(order, order, nil)
	b := mat.NewVecDense(order, nil)
	for i := 0; i < order; i++ {
		b.SetVec(i, acf[i+1])
		for j := 0; j < order; j++ {
			idx := i - j
			if idx < 0 {
				idx = -idx
			}
			r.Set(i, j, acf[idx])
		}
	}

	var phi mat.VecDense
	if err := phi.SolveVec(r, b); err != nil {
		return nil
	}

	out := make([]float64, order)
	for i := 0; i < order; i++ {
		out[i] = clamp(phi.AtVec(i), -0.99, 0.99)
	}
	return out
}
