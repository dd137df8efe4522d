package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/andresuchdata/restock-go/internal/notify"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// buildPurchaseOrder assembles a draft purchase order from an approved
// recommendation.
func (s *ReplenishmentService) buildPurchaseOrder(ctx context.Context, rec *domain.ReorderRecommendation) (*domain.PurchaseOrder, error) {
	sku := rec.ProductID
	if s.catalog != nil {
		if resolved, err := s.catalog.GetProductSKU(ctx, rec.ProductID); err == nil && resolved != "" {
			sku = resolved
		}
	}

	now := s.now()
	id := uuid.NewString()
	line := domain.POLine{
		ProductID:        rec.ProductID,
		SKU:              sku,
		Quantity:         rec.Quantity,
		UnitCost:         rec.Cost.UnitCost,
		LineTotal:        rec.Cost.TotalCost,
		ExpectedDelivery: rec.ExpectedDelivery,
	}

	return &domain.PurchaseOrder{
		ID:               id,
		OrderNumber:      fmt.Sprintf("PO-%s-%s", now.Format("20060102"), strings.ToUpper(id[:4])),
		SupplierID:       rec.SupplierID,
		Items:            []domain.POLine{line},
		Subtotal:         rec.Cost.TotalCost,
		Tax:              decimal.Zero,
		Shipping:         rec.Cost.Shipping,
		Discount:         rec.Cost.BulkSavings,
		Total:            rec.Cost.OrderValue,
		Status:           domain.POStatusDraft,
		OrderedAt:        now,
		ExpectedAt:       rec.ExpectedDelivery,
		RecommendationID: rec.ID,
		AutoGenerated:    rec.AutoApproved,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// SendPurchaseOrder dispatches the order to the supplier. On success
// the order moves to sent and the originating recommendation to
// ordered; a dispatch failure is surfaced to the caller untouched.
func (s *ReplenishmentService) SendPurchaseOrder(ctx context.Context, id string) error {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanTransitionPO(order.Status, domain.POStatusSent) {
		return fmt.Errorf("%w: cannot send %s order", domain.ErrInvalidPurchaseOrderState, order.Status)
	}

	if s.dispatcher == nil {
		return domain.ErrDispatchFailed
	}
	if err := s.dispatcher.DispatchPurchaseOrder(ctx, order); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDispatchFailed, err)
	}

	now := s.now()
	order.Status = domain.POStatusSent
	order.SentAt = &now
	order.UpdatedAt = now
	if err := s.orders.Update(ctx, order); err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}

	if rec, err := s.recommendations.Get(ctx, order.RecommendationID); err == nil {
		if domain.CanTransitionRecommendation(rec.Status, domain.RecommendationOrdered) {
			rec.Status = domain.RecommendationOrdered
			rec.UpdatedAt = now
			if err := s.recommendations.Update(ctx, rec); err != nil {
				log.Warn().Err(err).Str("recommendation_id", rec.ID).Msg("failed to mark recommendation ordered")
			}
		}
	}

	s.sink.Publish(ctx, notify.Event{
		Kind:  notify.EventOrderSent,
		At:    now,
		Order: order,
	})
	return nil
}

// MarkPurchaseOrder advances an order to the given lifecycle status
// (confirmed, partially_received, received or cancelled) after
// validating the transition. Receipt and confirmation timestamps are
// stamped as the order passes through those states.
func (s *ReplenishmentService) MarkPurchaseOrder(ctx context.Context, id, status string) error {
	target, ok := domain.ParsePOStatus(status)
	if !ok {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidPurchaseOrderState, status)
	}

	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanTransitionPO(order.Status, target) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidPurchaseOrderState, order.Status, target)
	}

	now := s.now()
	order.Status = target
	order.UpdatedAt = now
	switch target {
	case domain.POStatusConfirmed:
		order.ConfirmedAt = &now
	case domain.POStatusReceived:
		order.DeliveredAt = &now
	}
	return s.orders.Update(ctx, order)
}

// ListPurchaseOrders returns purchase orders, optionally filtered by
// status.
func (s *ReplenishmentService) ListPurchaseOrders(ctx context.Context, status string) ([]*domain.PurchaseOrder, error) {
	return s.orders.List(ctx, status)
}

// GetPurchaseOrder returns one purchase order by id.
func (s *ReplenishmentService) GetPurchaseOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	return s.orders.Get(ctx, id)
}
