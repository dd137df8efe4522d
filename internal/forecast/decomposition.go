package forecast

import (
	"math"
	"time"

	"github.com/andresuchdata/restock-go/internal/domain"
)

const seasonalPeriod = 7

// DecompositionModel separates a linear trend and a weekly seasonal
// component from history and projects both forward.
type DecompositionModel struct{}

func (DecompositionModel) Name() string { return ModelDecomposition }

func (DecompositionModel) Forecast(obs []Observation, stats Stats, horizon int, start time.Time) []domain.ForecastPoint {
	if len(obs) == 0 || horizon <= 0 {
		return nil
	}

	intercept, slope := linearFit(obs)

	// Seasonal component: mean residual against the trend line per
	// period offset.
	seasonal := [seasonalPeriod]float64{}
	counts := [seasonalPeriod]int{}
	residuals := make([]float64, len(obs))
	for i, o := range obs {
		fitted := intercept + slope*float64(i)
		residuals[i] = o.Quantity - fitted
		idx := i % seasonalPeriod
		seasonal[idx] += residuals[i]
		counts[idx]++
	}
	for i := range seasonal {
		if counts[i] > 0 {
			seasonal[i] /= float64(counts[i])
		}
	}

	spread := stddevOf(residuals, meanOf(residuals))

	points := make([]domain.ForecastPoint, 0, horizon)
	for step := 1; step <= horizon; step++ {
		t := len(obs) - 1 + step
		value := intercept + slope*float64(t) + seasonal[t%seasonalPeriod]

		// Confidence decays linearly with horizon distance, floor 0.5.
		confidence := math.Max(0.5, 0.95-0.45*float64(step-1)/float64(horizon))

		margin := 1.28 * spread
		date := start.AddDate(0, 0, step)
		points = append(points, point(date, value, value-margin, value+margin, confidence))
	}
	return points
}

// linearFit runs an ordinary least-squares fit of quantity against the
// point index.
func linearFit(obs []Observation) (intercept, slope float64) {
	n := float64(len(obs))
	if n == 0 {
		return 0, 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, o := range obs {
		x := float64(i)
		sumX += x
		sumY += o.Quantity
		sumXY += x * o.Quantity
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return sumY / n, 0
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return intercept, slope
}
