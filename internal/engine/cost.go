package engine

import (
	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/shopspring/decimal"
)

// AnalyzeCost prices out an order with the selected supplier: effective
// unit cost after bulk discounts, shipping (waived past the
// free-shipping threshold) and the savings unlocked by the quantity.
func AnalyzeCost(s *domain.SupplierProfile, offer domain.ProductOffer, quantity int) domain.CostBreakdown {
	qty := decimal.NewFromInt(int64(quantity))

	unitCost := EffectiveUnitCost(offer.UnitCost, s.Terms.BulkDiscounts, quantity)
	totalCost := unitCost.Mul(qty)

	shipping := s.Terms.ShippingCost
	if s.Terms.FreeShippingThreshold.IsPositive() && totalCost.GreaterThanOrEqual(s.Terms.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	savings := offer.UnitCost.Sub(unitCost).Mul(qty)

	return domain.CostBreakdown{
		UnitCost:    unitCost,
		TotalCost:   totalCost,
		Shipping:    shipping,
		BulkSavings: savings,
		OrderValue:  totalCost.Add(shipping),
	}
}
