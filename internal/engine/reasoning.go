package engine

import (
	"fmt"
	"math"

	"github.com/andresuchdata/restock-go/internal/domain"
)

// Thresholds for including trend/seasonality notes and for raising
// warnings.
const (
	trendNoteThreshold       = 0.3
	seasonalityNoteThreshold = 0.5
	lowConfidenceThreshold   = 0.7
	lowOnTimeThreshold       = 0.8
)

// ReasoningInput is everything the explanation generator looks at.
type ReasoningInput struct {
	Policy   *domain.ReorderPolicy
	Forecast *domain.ForecastResult
	Stock    domain.InventoryLevels
	Supplier ScoredSupplier
	Quantity QuantityResult
}

// BuildReasoning produces the deterministic human-readable explanation
// for a recommendation: trigger condition, demand-shape notes, supplier
// and quantity justification.
func BuildReasoning(in ReasoningInput) []string {
	reasons := []string{
		fmt.Sprintf("Available stock (%d) is at or below the reorder point (%d).",
			in.Stock.Available, in.Policy.ReorderPoint),
	}

	insights := in.Forecast.Insights
	if insights.Trend > trendNoteThreshold {
		direction := "upward"
		if meanTrendDirection(in.Forecast) < 0 {
			direction = "downward"
		}
		reasons = append(reasons, fmt.Sprintf(
			"Demand shows a strong %s trend (strength %.2f).", direction, insights.Trend))
	}
	if insights.Seasonality > seasonalityNoteThreshold {
		reasons = append(reasons, fmt.Sprintf(
			"Demand is strongly seasonal (strength %.2f); the forecast accounts for the weekly pattern.",
			insights.Seasonality))
	}

	s := in.Supplier
	reasons = append(reasons, fmt.Sprintf(
		"%s selected with score %.1f/100 (on-time %.0f%%, fill rate %.0f%%, avg lead time %.1f days).",
		s.Supplier.Name, s.Score,
		s.Supplier.Metrics.OnTimeRate*100,
		s.Supplier.Metrics.FillRate*100,
		s.Supplier.LeadTime.AvgDays))

	reasons = append(reasons, fmt.Sprintf(
		"Ordering %d units covers %.0f units of lead-time demand plus %.0f units of safety stock (EOQ %.0f).",
		in.Quantity.Quantity, in.Quantity.LeadTimeDemand, in.Quantity.SafetyStock, in.Quantity.EOQ))

	return reasons
}

// BuildWarnings flags weak forecast confidence and unreliable supplier
// delivery performance.
func BuildWarnings(forecastConfidence, onTimeRate float64) []string {
	var warnings []string
	if forecastConfidence < lowConfidenceThreshold {
		warnings = append(warnings, fmt.Sprintf(
			"Forecast confidence is low (%.2f); review before approving.", forecastConfidence))
	}
	if onTimeRate < lowOnTimeThreshold {
		warnings = append(warnings, fmt.Sprintf(
			"Supplier on-time delivery rate is below target (%.0f%%).", onTimeRate*100))
	}
	return warnings
}

// meanTrendDirection approximates the direction of the forecast: the
// sign of the change between its first and last predicted week.
func meanTrendDirection(forecast *domain.ForecastResult) float64 {
	points := forecast.Points
	if len(points) < 2 {
		return 0
	}
	head := points[:int(math.Min(7, float64(len(points))))]
	tail := points[int(math.Max(0, float64(len(points)-7))):]

	headSum, tailSum := 0, 0
	for _, p := range head {
		headSum += p.Demand
	}
	for _, p := range tail {
		tailSum += p.Demand
	}
	return float64(tailSum)/float64(len(tail)) - float64(headSum)/float64(len(head))
}
