package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/andresuchdata/restock-go/internal/cache"
	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/andresuchdata/restock-go/internal/notify"
	"github.com/rs/zerolog/log"
)

// ApproveRecommendation promotes a pending recommendation to approved
// and assembles its purchase order. When the auto-approval policy also
// allows dispatch, the order is sent in the same call.
func (s *ReplenishmentService) ApproveRecommendation(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	rec, err := s.recommendations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionRecommendation(rec.Status, domain.RecommendationApproved) {
		return nil, fmt.Errorf("%w: cannot approve %s recommendation", domain.ErrInvalidRecommendationState, rec.Status)
	}

	now := s.now()
	rec.Status = domain.RecommendationApproved
	rec.UpdatedAt = now
	if err := s.recommendations.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("update recommendation: %w", err)
	}

	order, err := s.buildPurchaseOrder(ctx, rec)
	if err != nil {
		s.revertApproval(ctx, rec)
		return nil, err
	}
	if err := s.orders.Create(ctx, order); err != nil {
		s.revertApproval(ctx, rec)
		return nil, fmt.Errorf("store purchase order: %w", err)
	}

	if s.archive != nil {
		s.archive.Archive(ctx, order)
	}

	s.sink.Publish(ctx, notify.Event{
		Kind:           notify.EventRecommendationApproved,
		At:             now,
		Recommendation: rec,
		Order:          order,
	})

	if err := s.summary.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("summary cache invalidation failed")
	}

	// Auto-approved recommendations cascade straight into dispatch.
	if rec.AutoApproved {
		if err := s.SendPurchaseOrder(ctx, order.ID); err != nil {
			log.Error().Err(err).Str("order_number", order.OrderNumber).Msg("auto-dispatch failed")
		}
	}

	return order, nil
}

// revertApproval returns a recommendation to pending after its
// purchase order failed to materialize, so the approval can be retried.
func (s *ReplenishmentService) revertApproval(ctx context.Context, rec *domain.ReorderRecommendation) {
	rec.Status = domain.RecommendationPending
	rec.UpdatedAt = s.now()
	if err := s.recommendations.Update(ctx, rec); err != nil {
		log.Error().Err(err).Str("recommendation_id", rec.ID).Msg("failed to revert approval")
	}
}

// RejectRecommendation appends the reason to the warning log and moves
// the recommendation to rejected.
func (s *ReplenishmentService) RejectRecommendation(ctx context.Context, id, reason string) error {
	rec, err := s.recommendations.Get(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanTransitionRecommendation(rec.Status, domain.RecommendationRejected) {
		return fmt.Errorf("%w: cannot reject %s recommendation", domain.ErrInvalidRecommendationState, rec.Status)
	}

	now := s.now()
	rec.Status = domain.RecommendationRejected
	rec.UpdatedAt = now
	if reason != "" {
		rec.Warnings = append(rec.Warnings, fmt.Sprintf("Rejected: %s", reason))
	}
	if err := s.recommendations.Update(ctx, rec); err != nil {
		return fmt.Errorf("update recommendation: %w", err)
	}

	s.sink.Publish(ctx, notify.Event{
		Kind:           notify.EventRecommendationRejected,
		At:             now,
		Recommendation: rec,
		Reason:         reason,
	})

	if err := s.summary.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("summary cache invalidation failed")
	}
	return nil
}

// ListRecommendations returns recommendations, optionally filtered by
// status, most urgent first. Within an urgency bucket the repository's
// creation order is kept.
func (s *ReplenishmentService) ListRecommendations(ctx context.Context, status string) ([]*domain.ReorderRecommendation, error) {
	recs, err := s.recommendations.List(ctx, status)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return domain.UrgencyRank(recs[i].Urgency) > domain.UrgencyRank(recs[j].Urgency)
	})
	return recs, nil
}

// RecommendationSummary returns per-status counts, cached between
// cycles.
func (s *ReplenishmentService) RecommendationSummary(ctx context.Context) (*cache.Summary, error) {
	if summary, ok, err := s.summary.Get(ctx); err == nil && ok {
		return summary, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("summary cache get failed")
	}

	recs, err := s.recommendations.List(ctx, "")
	if err != nil {
		return nil, err
	}

	summary := &cache.Summary{
		Counts:      make(map[string]int),
		GeneratedAt: s.now(),
	}
	for _, rec := range recs {
		summary.Counts[rec.Status]++
	}

	if err := s.summary.Set(ctx, summary); err != nil {
		log.Warn().Err(err).Msg("summary cache set failed")
	}
	return summary, nil
}
