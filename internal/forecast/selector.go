package forecast

import (
	"math"

	"github.com/andresuchdata/restock-go/internal/domain"
)

// Selection thresholds, evaluated in priority order.
const (
	minDecompositionHistory = 30
	seasonalityThreshold    = 0.7
	volatilityThreshold     = 0.5
	sequenceHistory         = 100
)

// Insight thresholds.
const (
	reorderPointFactor = 1.5
	highRiskVolatility = 0.7
	medRiskVolatility  = 0.4
)

// Select picks the forecasting strategy best suited to the preprocessed
// history. The rules are deterministic and checked in priority order:
// short histories always fall back to the autoregressive model.
func Select(stats Stats) Model {
	switch {
	case stats.Length < minDecompositionHistory:
		return AutoregressiveModel{}
	case stats.Seasonality > seasonalityThreshold:
		return DecompositionModel{}
	case stats.Volatility > volatilityThreshold:
		return EnsembleModel{}
	case stats.Length > sequenceHistory:
		return SequenceModel{}
	default:
		return AutoregressiveModel{}
	}
}

// BuildInsights derives the summary insight block from the history
// stats and the generated predictions.
func BuildInsights(points []domain.ForecastPoint, stats Stats) domain.ForecastInsights {
	next7 := points
	if len(next7) > 7 {
		next7 = next7[:7]
	}
	sum := 0.0
	for _, p := range next7 {
		sum += float64(p.Demand)
	}
	var suggested int
	if len(next7) > 0 {
		suggested = int(math.Ceil(sum / float64(len(next7)) * reorderPointFactor))
	}

	risk := "low"
	if stats.Volatility > highRiskVolatility {
		risk = "high"
	} else if stats.Volatility > medRiskVolatility {
		risk = "medium"
	}

	return domain.ForecastInsights{
		Seasonality:           stats.Seasonality,
		Trend:                 stats.Trend,
		Volatility:            stats.Volatility,
		SuggestedReorderPoint: suggested,
		RiskLevel:             risk,
	}
}
