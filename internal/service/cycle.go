package service

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/andresuchdata/restock-go/internal/engine"
	"github.com/andresuchdata/restock-go/internal/notify"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RunAnalysisCycle analyzes every enabled policy and returns the
// recommendations it produced. A re-entrant trigger while a cycle is in
// progress is a no-op that returns an empty slice immediately.
func (s *ReplenishmentService) RunAnalysisCycle(ctx context.Context) ([]*domain.ReorderRecommendation, error) {
	if !s.cycleMu.TryLock() {
		log.Debug().Msg("analysis cycle already in progress, skipping trigger")
		return []*domain.ReorderRecommendation{}, nil
	}
	defer s.cycleMu.Unlock()

	started := s.now()
	s.expirePending(ctx, started)

	policies, err := s.policies.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enabled policies: %w", err)
	}

	results := make([]*domain.ReorderRecommendation, 0, len(policies))
	for _, policy := range policies {
		rec, err := s.analyzePolicy(ctx, policy)
		if err != nil {
			// One bad policy never aborts the rest of the cycle.
			log.Error().Err(err).
				Str("policy_id", policy.ID).
				Str("product_id", policy.ProductID).
				Str("warehouse_id", policy.WarehouseID).
				Msg("policy analysis failed")
			continue
		}
		if rec != nil {
			results = append(results, rec)
		}
	}

	if err := s.summary.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("summary cache invalidation failed")
	}

	log.Info().
		Int("policies", len(policies)).
		Int("recommendations", len(results)).
		Dur("elapsed", s.now().Sub(started)).
		Msg("analysis cycle completed")
	return results, nil
}

// analyzePolicy runs the decision pipeline for one policy. A nil
// recommendation with nil error means the gate check skipped it.
func (s *ReplenishmentService) analyzePolicy(ctx context.Context, policy *domain.ReorderPolicy) (*domain.ReorderRecommendation, error) {
	stock, err := s.inventory.GetInventoryLevels(ctx, policy.ProductID, policy.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("fetch inventory: %w", err)
	}

	// Gate check: nothing to do while stock sits above the reorder point.
	if stock.Available > policy.ReorderPoint {
		return nil, nil
	}

	history, err := s.sales.GetHistoricalSales(ctx, policy.ProductID, s.cfg.HistoryDays)
	if err != nil {
		return nil, fmt.Errorf("fetch sales history: %w", err)
	}

	fc, err := s.forecaster.Forecast(policy.ProductID, history, s.cfg.ForecastHorizonDays)
	if err != nil {
		return nil, err
	}

	now := s.now()
	qty := engine.ComputeOrderQuantity(engine.QuantityInput{
		Policy:             policy,
		Forecast:           fc,
		Stock:              stock,
		AnnualDemandFactor: s.cfg.AnnualDemandFactor,
		Now:                now,
	})

	suppliers, err := s.suppliers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	ranked, err := engine.RankSuppliers(suppliers, policy.ProductID, qty.Quantity)
	if err != nil {
		return nil, err
	}

	selected := ranked[0]
	if !policy.AllowAlternatives && policy.PreferredSupplierID != "" {
		for _, candidate := range ranked {
			if candidate.Supplier.ID == policy.PreferredSupplierID {
				selected = candidate
				break
			}
		}
	}

	cost := engine.AnalyzeCost(selected.Supplier, selected.Offer, qty.Quantity)

	riskIn := engine.RiskInput{
		Policy:   policy,
		Forecast: fc,
		Stock:    stock,
		Supplier: selected.Supplier,
		Quantity: qty.Quantity,
		Now:      now,
	}
	risk := engine.AssessRisk(riskIn)
	timing := engine.ComputeTiming(riskIn)
	urgency := engine.DeriveUrgency(stock.Available, timing.DaysUntilStockout)
	confidence := engine.ComputeConfidence(
		fc.Confidence, selected.Supplier.Metrics.OnTimeRate, risk.Stockout, risk.Supplier)

	reasoning := engine.BuildReasoning(engine.ReasoningInput{
		Policy:   policy,
		Forecast: fc,
		Stock:    stock,
		Supplier: selected,
		Quantity: qty,
	})
	warnings := engine.BuildWarnings(fc.Confidence, selected.Supplier.Metrics.OnTimeRate)
	warnings = append(warnings, s.constraintWarnings(policy, cost)...)

	rec := &domain.ReorderRecommendation{
		ID:                uuid.NewString(),
		ProductID:         policy.ProductID,
		WarehouseID:       policy.WarehouseID,
		Stock:             stock,
		Quantity:          qty.Quantity,
		ReorderPoint:      policy.ReorderPoint,
		TargetStock:       qty.TargetStock,
		Urgency:           urgency,
		SupplierID:        selected.Supplier.ID,
		SupplierName:      selected.Supplier.Name,
		Alternatives:      engine.Alternatives(ranked),
		Cost:              cost,
		Forecast:          forecastSummary(fc),
		Risk:              risk,
		OrderBy:           timing.OrderBy,
		ExpectedDelivery:  timing.ExpectedDelivery,
		DaysUntilStockout: timing.DaysUntilStockout,
		Reasoning:         reasoning,
		Warnings:          warnings,
		Confidence:        confidence,
		Status:            domain.RecommendationPending,
		CreatedAt:         now,
		UpdatedAt:         now,
		ExpiresAt:         now.Add(time.Duration(s.cfg.RecommendationTTLHours) * time.Hour),
	}

	rec.AutoApproved = s.shouldAutoApprove(policy, rec)

	if err := s.recommendations.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("store recommendation: %w", err)
	}

	policy.LastTriggeredAt = &now
	if err := s.policies.Save(ctx, policy); err != nil {
		log.Warn().Err(err).Str("policy_id", policy.ID).Msg("failed to update policy trigger time")
	}

	s.sink.Publish(ctx, notify.Event{
		Kind:           notify.EventRecommendationCreated,
		At:             now,
		Recommendation: rec,
	})

	if rec.AutoApproved {
		if _, err := s.ApproveRecommendation(ctx, rec.ID); err != nil {
			log.Error().Err(err).Str("recommendation_id", rec.ID).Msg("auto-approval failed")
		}
	}

	return rec, nil
}

// shouldAutoApprove applies the auto-approval policy: auto-ordering on
// (globally and for this policy), confidence and order value inside the
// configured bounds, and either a high-confidence critical urgency or a
// severe stockout risk.
func (s *ReplenishmentService) shouldAutoApprove(policy *domain.ReorderPolicy, rec *domain.ReorderRecommendation) bool {
	if !s.cfg.AutoOrderEnabled || !policy.AutoReorder {
		return false
	}
	if rec.Confidence < s.cfg.AutoApproveConfidence {
		return false
	}
	orderValue, _ := rec.Cost.OrderValue.Float64()
	if s.cfg.AutoApproveMaxValue > 0 && orderValue > s.cfg.AutoApproveMaxValue {
		return false
	}

	criticalAndConfident := rec.Urgency == domain.UrgencyCritical && rec.Confidence > 0.8
	severeStockout := rec.Risk.Stockout > 0.8
	return criticalAndConfident || severeStockout
}

func (s *ReplenishmentService) constraintWarnings(policy *domain.ReorderPolicy, cost domain.CostBreakdown) []string {
	var warnings []string
	orderValue, _ := cost.OrderValue.Float64()
	if policy.Constraints.MinOrderValue > 0 && orderValue < policy.Constraints.MinOrderValue {
		warnings = append(warnings, fmt.Sprintf(
			"Order value %.2f is below the policy minimum of %.2f.", orderValue, policy.Constraints.MinOrderValue))
	}
	if policy.Constraints.MaxOrderValue > 0 && orderValue > policy.Constraints.MaxOrderValue {
		warnings = append(warnings, fmt.Sprintf(
			"Order value %.2f exceeds the policy maximum of %.2f.", orderValue, policy.Constraints.MaxOrderValue))
	}
	return warnings
}

// expirePending sweeps pending recommendations past their TTL into the
// expired state.
func (s *ReplenishmentService) expirePending(ctx context.Context, now time.Time) {
	pending, err := s.recommendations.List(ctx, domain.RecommendationPending)
	if err != nil {
		log.Warn().Err(err).Msg("failed to list pending recommendations for expiry")
		return
	}
	for _, rec := range pending {
		if rec.ExpiresAt.IsZero() || rec.ExpiresAt.After(now) {
			continue
		}
		rec.Status = domain.RecommendationExpired
		rec.UpdatedAt = now
		if err := s.recommendations.Update(ctx, rec); err != nil {
			log.Warn().Err(err).Str("recommendation_id", rec.ID).Msg("failed to expire recommendation")
		}
	}
}

func forecastSummary(fc *domain.ForecastResult) domain.ForecastSummary {
	return domain.ForecastSummary{
		Next7Days:   fc.DemandOver(7),
		Next30Days:  fc.DemandOver(30),
		Next90Days:  fc.DemandOver(90),
		Seasonality: fc.Insights.Seasonality,
		Trend:       fc.Insights.Trend,
	}
}
