package forecast

import (
	"math"
	"time"

	"github.com/andresuchdata/restock-go/internal/domain"
)

// Model names reported on ForecastResult.
const (
	ModelDecomposition  = "decomposition"
	ModelAutoregressive = "autoregressive"
	ModelSequence       = "sequence"
	ModelEnsemble       = "ensemble"
)

// Model is one interchangeable forecasting strategy. Implementations
// are stateless; all inputs arrive through the call.
type Model interface {
	Name() string
	Forecast(obs []Observation, stats Stats, horizon int, start time.Time) []domain.ForecastPoint
}

// point builds a single clamped, rounded forecast point. Demand and
// bounds never go below zero.
func point(date time.Time, value, lower, upper, confidence float64) domain.ForecastPoint {
	if lower > upper {
		lower, upper = upper, lower
	}
	return domain.ForecastPoint{
		Date:       date,
		Demand:     clampRound(value),
		Confidence: confidence,
		Lower:      clampRound(lower),
		Upper:      clampRound(upper),
	}
}

func clampRound(v float64) int {
	if v < 0 {
		return 0
	}
	return int(math.Round(v))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
