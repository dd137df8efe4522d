package engine

import (
	"testing"

	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func supplier(id string, status string, offers ...domain.ProductOffer) *domain.SupplierProfile {
	return &domain.SupplierProfile{
		ID:     id,
		Name:   "Supplier " + id,
		Status: status,
		Metrics: domain.SupplierMetrics{
			OnTimeRate:   0.9,
			QualityScore: 0.9,
			FillRate:     0.95,
			DefectRate:   0.01,
		},
		LeadTime: domain.SupplierLeadTime{AvgDays: 6, Variance: 1},
		Offers:   offers,
	}
}

func offerFor(productID string, unitCost float64) domain.ProductOffer {
	return domain.ProductOffer{
		ProductID:    productID,
		UnitCost:     decimal.NewFromFloat(unitCost),
		Availability: domain.OfferInStock,
	}
}

func TestEligibleSuppliers(t *testing.T) {
	active := supplier("a", domain.SupplierActive, offerFor("p1", 10))
	inactive := supplier("b", domain.SupplierInactive, offerFor("p1", 5))
	noOffer := supplier("c", domain.SupplierActive, offerFor("p2", 5))

	discontinued := supplier("d", domain.SupplierActive, domain.ProductOffer{
		ProductID:    "p1",
		UnitCost:     decimal.NewFromInt(1),
		Availability: domain.OfferDiscontinued,
	})

	eligible := EligibleSuppliers([]*domain.SupplierProfile{active, inactive, noOffer, discontinued}, "p1")
	require.Len(t, eligible, 1)
	assert.Equal(t, "a", eligible[0].ID)
}

func TestRankSuppliersNoneAvailable(t *testing.T) {
	_, err := RankSuppliers(nil, "p1", 10)
	assert.ErrorIs(t, err, domain.ErrNoSupplierAvailable)
}

func TestRankSuppliersOrdersByScore(t *testing.T) {
	cheapFast := supplier("best", domain.SupplierActive, offerFor("p1", 2))
	cheapFast.LeadTime.AvgDays = 2

	slow := supplier("slow", domain.SupplierActive, offerFor("p1", 2))
	slow.LeadTime.AvgDays = 28

	expensive := supplier("pricey", domain.SupplierActive, offerFor("p1", 2900))
	expensive.LeadTime.AvgDays = 2

	ranked, err := RankSuppliers([]*domain.SupplierProfile{slow, expensive, cheapFast}, "p1", 10)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "best", ranked[0].Supplier.ID)
	assert.GreaterOrEqual(t, ranked[0].Score, ranked[1].Score)
	assert.GreaterOrEqual(t, ranked[1].Score, ranked[2].Score)
}

func TestScoreSupplierBounds(t *testing.T) {
	perfect := &domain.SupplierProfile{
		Metrics:  domain.SupplierMetrics{OnTimeRate: 1, QualityScore: 1, FillRate: 1, DefectRate: 0},
		LeadTime: domain.SupplierLeadTime{AvgDays: 0, Variance: 0},
	}
	assert.Equal(t, 100.0, ScoreSupplier(perfect, decimal.Zero))

	terrible := &domain.SupplierProfile{
		Metrics:  domain.SupplierMetrics{OnTimeRate: 0, QualityScore: 0, FillRate: 0, DefectRate: 1},
		LeadTime: domain.SupplierLeadTime{AvgDays: 90, Variance: 20},
	}
	score := ScoreSupplier(terrible, decimal.NewFromInt(5000))
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
}

func TestScoreSupplierFormula(t *testing.T) {
	s := &domain.SupplierProfile{
		Metrics: domain.SupplierMetrics{
			OnTimeRate:   0.9,
			QualityScore: 0.8,
			FillRate:     0.95,
			DefectRate:   0.02,
		},
		LeadTime: domain.SupplierLeadTime{AvgDays: 6, Variance: 1.5},
	}

	// performance 15*0.9 + 15*0.8 + 10*0.95 = 35
	// cost        30 - 500/100              = 25
	// lead        20 - (6/30)*20            = 16
	// reliability (5-1.5)*2 + (5-2)         = 10
	score := ScoreSupplier(s, decimal.NewFromInt(500))
	assert.InDelta(t, 86.0, score, 1e-9)
}

func TestEffectiveUnitCostHighestSatisfiedTier(t *testing.T) {
	tiers := []domain.BulkDiscountTier{
		{MinQuantity: 50, DiscountPercent: 5},
		{MinQuantity: 200, DiscountPercent: 12},
		{MinQuantity: 500, DiscountPercent: 20},
	}
	base := decimal.NewFromInt(10)

	assert.True(t, EffectiveUnitCost(base, tiers, 10).Equal(decimal.NewFromInt(10)))
	assert.True(t, EffectiveUnitCost(base, tiers, 50).Equal(decimal.NewFromFloat(9.5)))
	// 200 qualifies for the 12% tier, not the 5% one.
	assert.True(t, EffectiveUnitCost(base, tiers, 250).Equal(decimal.NewFromFloat(8.8)))
	assert.True(t, EffectiveUnitCost(base, tiers, 500).Equal(decimal.NewFromInt(8)))
}

func TestEffectiveUnitCostMonotonic(t *testing.T) {
	tiers := []domain.BulkDiscountTier{
		{MinQuantity: 10, DiscountPercent: 2},
		{MinQuantity: 100, DiscountPercent: 8},
	}
	base := decimal.NewFromFloat(19.99)

	prev := EffectiveUnitCost(base, tiers, 1)
	for _, qty := range []int{10, 50, 100, 1000} {
		cost := EffectiveUnitCost(base, tiers, qty)
		assert.True(t, cost.LessThanOrEqual(prev), "unit cost must not rise with quantity")
		prev = cost
	}
}

func TestAlternativesCapped(t *testing.T) {
	ranked := make([]ScoredSupplier, 6)
	for i := range ranked {
		ranked[i] = ScoredSupplier{Supplier: supplier(string(rune('a'+i)), domain.SupplierActive)}
	}

	alts := Alternatives(ranked)
	require.Len(t, alts, 3)
	assert.Equal(t, "b", alts[0].SupplierID)
}

func TestAlternativesSingleCandidate(t *testing.T) {
	ranked := []ScoredSupplier{{Supplier: supplier("only", domain.SupplierActive)}}
	assert.Empty(t, Alternatives(ranked))
}
