package forecast

import (
	"math"
	"time"

	"github.com/andresuchdata/restock-go/internal/domain"
)

const (
	arOrder     = 5
	maOrder     = 3
	arWindow    = 60
	maSmoothing = 0.5
)

// AutoregressiveModel fits fixed-order AR coefficients via Yule-Walker
// over the most recent observations, plus a short moving-average
// correction on the residuals, and iterates one step at a time feeding
// back its own predictions.
type AutoregressiveModel struct{}

func (AutoregressiveModel) Name() string { return ModelAutoregressive }

func (AutoregressiveModel) Forecast(obs []Observation, stats Stats, horizon int, start time.Time) []domain.ForecastPoint {
	if len(obs) == 0 || horizon <= 0 {
		return nil
	}

	recent := obs
	if len(recent) > arWindow {
		recent = recent[len(recent)-arWindow:]
	}

	series := make([]float64, len(recent))
	for i, o := range recent {
		series[i] = o.Quantity
	}
	mean := meanOf(series)
	demeaned := make([]float64, len(series))
	for i, v := range series {
		demeaned[i] = v - mean
	}

	order := arOrder
	if order >= len(demeaned) {
		order = len(demeaned) - 1
	}
	coeffs := yuleWalker(demeaned, order)

	// In-sample residuals drive the MA correction.
	residuals := make([]float64, 0, len(demeaned))
	for t := order; t < len(demeaned); t++ {
		fitted := 0.0
		for j, c := range coeffs {
			fitted += c * demeaned[t-1-j]
		}
		residuals = append(residuals, demeaned[t]-fitted)
	}
	spread := stddevOf(residuals, meanOf(residuals))

	history := append([]float64(nil), demeaned...)
	tail := lastN(residuals, maOrder)

	points := make([]domain.ForecastPoint, 0, horizon)
	for step := 1; step <= horizon; step++ {
		predicted := 0.0
		for j, c := range coeffs {
			idx := len(history) - 1 - j
			if idx >= 0 {
				predicted += c * history[idx]
			}
		}
		predicted += maSmoothing * meanOf(tail)

		value := predicted + mean

		// Slower decay than the decomposition model, floor 0.6.
		confidence := math.Max(0.6, 0.9-0.2*float64(step-1)/float64(horizon))

		margin := 1.28 * spread * math.Sqrt(float64(step))
		date := start.AddDate(0, 0, step)
		points = append(points, point(date, value, value-margin, value+margin, confidence))

		// Feed the prediction back; future shocks are unknown, so the
		// residual feedback fades out.
		history = append(history, predicted)
		tail = append(tail[1:], 0)
	}
	return points
}

func lastN(values []float64, n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		idx := len(values) - n + i
		if idx >= 0 {
			out[i] = values[idx]
		}
	}
	return out
}

// yuleWalker solves the Yule-Walker equations with Levinson-Durbin
// recursion, returning AR coefficients for the given order.
func yuleWalker(series []float64, order int) []float64 {
	if order <= 0 || len(series) <= order {
		return nil
	}

	r := make([]float64, order+1)
	for lag := 0; lag <= order; lag++ {
		for t := lag; t < len(series); t++ {
			r[lag] += series[t] * series[t-lag]
		}
		r[lag] /= float64(len(series))
	}
	if r[0] == 0 {
		return make([]float64, order)
	}

	coeffs := make([]float64, order)
	prev := make([]float64, order)
	e := r[0]
	for k := 1; k <= order; k++ {
		acc := r[k]
		for j := 1; j < k; j++ {
			acc -= prev[j-1] * r[k-j]
		}
		reflection := acc / e

		coeffs[k-1] = reflection
		for j := 1; j < k; j++ {
			coeffs[j-1] = prev[j-1] - reflection*prev[k-1-j]
		}
		copy(prev, coeffs)

		e *= 1 - reflection*reflection
		if e <= 0 {
			break
		}
	}
	return coeffs
}
