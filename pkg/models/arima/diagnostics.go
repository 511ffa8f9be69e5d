package arima

import "math"

type ModelDiagnostics struct {
	LogLikelihood float64
	AIC           float64
	AICC          float64
	BIC           float64
	Variance      float64
	RMSE          float64
	MAE           float64
	Iterations    int
}

func (m *Model) Diagnostics() ModelDiagnostics {
	d := ModelDiagnostics{
		LogLikelihood: m.logLik,
		AIC:           m.aic,
		AICC:          m.aicc,
		BIC:           m.bic,
		Variance:      m.variance,
		Iterations:    m.iterations,
	}
	if n := len(m.residuals); n > 0 {
		var sse, sae float64
		for _, r := range m.residuals {
			sse += r * r
			sae += math.Abs(r)
		}
		d.RMSE = math.Sqrt(sse / float64(n))
		d.MAE = sae / float64(n)
	}
	return d
}
