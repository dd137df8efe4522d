package engine

import (
	"sort"

	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/shopspring/decimal"
)

// maxAlternatives is how many runner-up suppliers a recommendation keeps.
const maxAlternatives = 3

// ScoredSupplier pairs a candidate with its score and effective pricing
// for the requested quantity.
type ScoredSupplier struct {
	Supplier *domain.SupplierProfile
	Offer    domain.ProductOffer
	Score    float64
	UnitCost decimal.Decimal
}

// Alternatives lists the runner-up candidates after the top pick,
// capped at maxAlternatives.
func Alternatives(ranked []ScoredSupplier) []domain.SupplierOption {
	out := make([]domain.SupplierOption, 0, maxAlternatives)
	for _, candidate := range ranked[1:] {
		if len(out) == maxAlternatives {
			break
		}
		out = append(out, domain.SupplierOption{
			SupplierID: candidate.Supplier.ID,
			Name:       candidate.Supplier.Name,
			Score:      candidate.Score,
		})
	}
	return out
}

// EligibleSuppliers filters to active suppliers with a non-discontinued
// offer for the product.
func EligibleSuppliers(suppliers []*domain.SupplierProfile, productID string) []*domain.SupplierProfile {
	eligible := make([]*domain.SupplierProfile, 0, len(suppliers))
	for _, s := range suppliers {
		if s.Status != domain.SupplierActive {
			continue
		}
		offer, ok := s.OfferFor(productID)
		if !ok || offer.Availability == domain.OfferDiscontinued {
			continue
		}
		eligible = append(eligible, s)
	}
	return eligible
}

// RankSuppliers scores every eligible candidate for the product and
// quantity, descending. Returns ErrNoSupplierAvailable when the
// eligible set is empty.
func RankSuppliers(suppliers []*domain.SupplierProfile, productID string, quantity int) ([]ScoredSupplier, error) {
	eligible := EligibleSuppliers(suppliers, productID)
	if len(eligible) == 0 {
		return nil, domain.ErrNoSupplierAvailable
	}

	ranked := make([]ScoredSupplier, 0, len(eligible))
	for _, s := range eligible {
		offer, _ := s.OfferFor(productID)
		unitCost := EffectiveUnitCost(offer.UnitCost, s.Terms.BulkDiscounts, quantity)
		ranked = append(ranked, ScoredSupplier{
			Supplier: s,
			Offer:    offer,
			Score:    ScoreSupplier(s, unitCost),
			UnitCost: unitCost,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}

// ScoreSupplier rates a supplier 0-100:
// performance 40 pts, cost 30 pts, lead time 20 pts, reliability 10 pts.
func ScoreSupplier(s *domain.SupplierProfile, effectiveUnitCost decimal.Decimal) float64 {
	m := s.Metrics

	performance := 15*m.OnTimeRate + 15*m.QualityScore + 10*m.FillRate

	cost, _ := effectiveUnitCost.Float64()
	costScore := 30 - cost/100
	if costScore < 0 {
		costScore = 0
	}

	leadScore := 20 - (s.LeadTime.AvgDays/30)*20
	if leadScore < 0 {
		leadScore = 0
	}

	variancePts := (5 - s.LeadTime.Variance) * 2
	defectPts := 5 - m.DefectRate*100
	if defectPts < 0 {
		defectPts = 0
	}
	reliability := variancePts + defectPts

	score := performance + costScore + leadScore + reliability
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// EffectiveUnitCost applies the highest-quantity bulk-discount tier the
// order quantity satisfies.
func EffectiveUnitCost(baseCost decimal.Decimal, tiers []domain.BulkDiscountTier, quantity int) decimal.Decimal {
	best := 0.0
	bestMin := -1
	for _, tier := range tiers {
		if quantity >= tier.MinQuantity && tier.MinQuantity > bestMin {
			bestMin = tier.MinQuantity
			best = tier.DiscountPercent
		}
	}
	if bestMin < 0 {
		return baseCost
	}
	multiplier := decimal.NewFromFloat(1 - best/100)
	return baseCost.Mul(multiplier)
}
