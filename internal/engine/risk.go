package engine

import (
	"math"
	"time"

	"github.com/andresuchdata/restock-go/internal/domain"
)

// RiskInput carries the signals feeding risk, urgency and timing.
type RiskInput struct {
	Policy   *domain.ReorderPolicy
	Forecast *domain.ForecastResult
	Stock    domain.InventoryLevels
	Supplier *domain.SupplierProfile
	Quantity int
	Now      time.Time
}

// Timing is when to order and when to expect delivery.
type Timing struct {
	OrderBy           time.Time
	ExpectedDelivery  time.Time
	DaysUntilStockout float64
}

// DaysUntilStockout is current available stock divided by the average
// demand of the next 7 forecast days. Infinite when no demand is
// forecast.
func DaysUntilStockout(available int, forecast *domain.ForecastResult) float64 {
	avg7 := averageDailyDemand(forecast, 7)
	if avg7 <= 0 {
		return math.Inf(1)
	}
	return float64(available) / avg7
}

// AssessRisk derives the four normalized risk factors.
func AssessRisk(in RiskInput) domain.RiskFactors {
	leadDays := float64(in.Policy.LeadTimeDays)
	daysLeft := DaysUntilStockout(in.Stock.Available, in.Forecast)

	stockout := 0.0
	if leadDays > 0 && !math.IsInf(daysLeft, 1) {
		stockout = clampUnit((leadDays - daysLeft) / leadDays)
	}

	oversupply := 0.0
	monthly := averageDailyDemand(in.Forecast, 30) * 30
	if monthly > 0 {
		monthsAfter := float64(in.Stock.Available+in.Quantity) / monthly
		oversupply = clampUnit((monthsAfter - 3) / 6)
	}

	supplier := 1 - in.Supplier.Metrics.OnTimeRate*in.Supplier.Metrics.FillRate

	return domain.RiskFactors{
		Stockout:          stockout,
		Oversupply:        oversupply,
		Supplier:          clampUnit(supplier),
		DemandVariability: clampUnit(in.Forecast.Insights.Volatility),
	}
}

// ComputeTiming works backwards from the projected stockout date: order
// early enough for the supplier's average lead time, but never in the
// past.
func ComputeTiming(in RiskInput) Timing {
	daysLeft := DaysUntilStockout(in.Stock.Available, in.Forecast)

	avgLead := in.Supplier.LeadTime.AvgDays
	orderBy := in.Now
	if !math.IsInf(daysLeft, 1) {
		offset := avgLead - daysLeft
		if offset < 0 {
			orderBy = in.Now.Add(time.Duration(-offset*24) * time.Hour)
		}
	} else {
		orderBy = in.Now.Add(time.Duration(avgLead*24) * time.Hour)
	}
	if orderBy.Before(in.Now) {
		orderBy = in.Now
	}

	return Timing{
		OrderBy:           orderBy,
		ExpectedDelivery:  orderBy.Add(time.Duration(avgLead*24) * time.Hour),
		DaysUntilStockout: daysLeft,
	}
}

// DeriveUrgency buckets days-until-stockout. Zero available stock is
// always critical.
func DeriveUrgency(available int, daysUntilStockout float64) string {
	switch {
	case available == 0:
		return domain.UrgencyCritical
	case daysUntilStockout <= 3:
		return domain.UrgencyCritical
	case daysUntilStockout <= 7:
		return domain.UrgencyHigh
	case daysUntilStockout <= 14:
		return domain.UrgencyMedium
	default:
		return domain.UrgencyLow
	}
}

// ComputeConfidence weights the forecast confidence, supplier
// reliability and risk signals into one number, clamped to [0,1].
func ComputeConfidence(forecastConfidence, onTimeRate, stockoutRisk, supplierRisk float64) float64 {
	confidence := 0.4*forecastConfidence +
		0.3*onTimeRate +
		0.2*(1-stockoutRisk) +
		0.1*(1-supplierRisk)
	return clampUnit(confidence)
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
