package engine

import (
	"math"
	"time"

	"github.com/andresuchdata/restock-go/internal/domain"
)

// zScores maps a target service level to a safety-stock multiplier.
// Intermediate levels are not interpolated; anything off the table uses
// the default.
var zScores = map[float64]float64{
	0.50: 0.00,
	0.80: 0.84,
	0.90: 1.28,
	0.95: 1.65,
	0.99: 2.33,
}

const defaultZScore = 1.65

// ZScore looks up the safety-stock multiplier for a service level.
func ZScore(serviceLevel float64) float64 {
	if z, ok := zScores[serviceLevel]; ok {
		return z
	}
	return defaultZScore
}

// QuantityInput carries everything the order-quantity calculation needs.
type QuantityInput struct {
	Policy             *domain.ReorderPolicy
	Forecast           *domain.ForecastResult
	Stock              domain.InventoryLevels
	AnnualDemandFactor float64
	Now                time.Time
}

// QuantityResult is the computed order quantity with its intermediate
// figures, kept for reasoning output.
type QuantityResult struct {
	Quantity       int
	EOQ            float64
	LeadTimeDemand float64
	SafetyStock    float64
	TargetStock    int
}

// ComputeOrderQuantity derives the order size: economic order quantity
// against the lead-time demand plus safety stock, then the policy's
// business constraints (order multiple, min stock, max stock cap).
func ComputeOrderQuantity(in QuantityInput) QuantityResult {
	policy := in.Policy
	forecast := in.Forecast

	factor := in.AnnualDemandFactor
	if factor <= 0 {
		factor = 4
	}
	annualDemand := float64(forecast.DemandOver(len(forecast.Points))) * factor

	eoq := 0.0
	if policy.CarryingCostRate > 0 && annualDemand > 0 {
		eoq = math.Sqrt(2 * annualDemand * policy.OrderingCost / policy.CarryingCostRate)
	}

	leadTimeDemand := float64(forecast.DemandOver(policy.LeadTimeDays))

	avg30 := averageDailyDemand(forecast, 30)
	safetyStock := ZScore(policy.ServiceLevel) *
		math.Sqrt(float64(policy.LeadTimeDays)) *
		avg30 *
		forecast.Insights.Volatility

	minimumRequired := leadTimeDemand + safetyStock - float64(in.Stock.Available)

	quantity := math.Max(eoq, minimumRequired)

	if mult, ok := policy.Constraints.SeasonalMultipliers[in.Now.Month()]; ok && mult > 0 {
		quantity *= mult
	}

	multiple := float64(policy.Constraints.OrderMultiple)
	if multiple > 0 {
		quantity = math.Ceil(quantity/multiple) * multiple
	}
	if policy.MinStock > 0 && quantity < float64(policy.MinStock) {
		quantity = float64(policy.MinStock)
		if multiple > 0 {
			quantity = math.Ceil(quantity/multiple) * multiple
		}
	}
	if policy.MaxStock > 0 {
		room := float64(policy.MaxStock - in.Stock.OnHand)
		if quantity > room {
			// The cap wins over the multiple: round down so on-hand
			// plus the order never exceeds max stock.
			quantity = room
			if multiple > 0 {
				quantity = math.Floor(quantity/multiple) * multiple
			}
		}
	}

	final := int(math.Round(quantity))
	if final < 0 {
		final = 0
	}

	return QuantityResult{
		Quantity:       final,
		EOQ:            eoq,
		LeadTimeDemand: leadTimeDemand,
		SafetyStock:    safetyStock,
		TargetStock:    in.Stock.OnHand + final,
	}
}

// averageDailyDemand averages predicted demand over the first n days of
// the forecast.
func averageDailyDemand(forecast *domain.ForecastResult, n int) float64 {
	if n > len(forecast.Points) {
		n = len(forecast.Points)
	}
	if n == 0 {
		return 0
	}
	return float64(forecast.DemandOver(n)) / float64(n)
}
