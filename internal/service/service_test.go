package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/andresuchdata/restock-go/internal/config"
	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/andresuchdata/restock-go/internal/feeds"
	"github.com/andresuchdata/restock-go/internal/forecast"
	"github.com/andresuchdata/restock-go/internal/notify"
	"github.com/andresuchdata/restock-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

type fakeDispatcher struct {
	err        error
	dispatched []*domain.PurchaseOrder
}

func (d *fakeDispatcher) DispatchPurchaseOrder(ctx context.Context, order *domain.PurchaseOrder) error {
	if d.err != nil {
		return d.err
	}
	d.dispatched = append(d.dispatched, order)
	return nil
}

type fixture struct {
	svc        *ReplenishmentService
	policies   *memory.PolicyRepository
	recs       *memory.RecommendationRepository
	orders     *memory.PurchaseOrderRepository
	suppliers  *memory.SupplierRepository
	inventory  *feeds.StaticInventoryProvider
	sales      *feeds.CSVSalesProvider
	sink       *notify.MemorySink
	dispatcher *fakeDispatcher
}

func newFixture(cfg config.EngineConfig) *fixture {
	f := &fixture{
		policies:   memory.NewPolicyRepository(),
		recs:       memory.NewRecommendationRepository(),
		orders:     memory.NewPurchaseOrderRepository(),
		suppliers:  memory.NewSupplierRepository(),
		inventory:  feeds.NewStaticInventoryProvider(),
		sales:      feeds.NewCSVSalesProvider(),
		sink:       notify.NewMemorySink(),
		dispatcher: &fakeDispatcher{},
	}
	f.svc = NewReplenishmentService(Deps{
		Policies:        f.policies,
		Suppliers:       f.suppliers,
		Recommendations: f.recs,
		Orders:          f.orders,
		Forecaster:      forecast.NewForecasterAt(func() time.Time { return testNow }),
		Inventory:       f.inventory,
		Sales:           f.sales,
		Catalog:         feeds.NewStaticCatalogProvider(),
		Dispatcher:      f.dispatcher,
		Sink:            f.sink,
		Now:             func() time.Time { return testNow },
	}, cfg)
	return f
}

func (f *fixture) seedProduct(t *testing.T, available int) {
	t.Helper()
	ctx := context.Background()

	records := make([]domain.SalesRecord, 40)
	for i := range records {
		records[i] = domain.SalesRecord{
			Date:     testNow.AddDate(0, 0, i-40),
			Quantity: 10,
		}
	}
	f.sales.Add("SKU-100", records...)

	f.inventory.Set("SKU-100", "WH-1", domain.InventoryLevels{
		OnHand:    available,
		Available: available,
	})

	require.NoError(t, f.suppliers.Save(ctx, &domain.SupplierProfile{
		ID:     "sup-1",
		Name:   "Acme Distribution",
		Status: domain.SupplierActive,
		Metrics: domain.SupplierMetrics{
			OnTimeRate:   0.9,
			QualityScore: 0.9,
			FillRate:     0.95,
			DefectRate:   0.01,
		},
		LeadTime: domain.SupplierLeadTime{AvgDays: 6, Variance: 1},
		Terms: domain.SupplierTerms{
			ShippingCost: decimal.NewFromInt(20),
		},
		Offers: []domain.ProductOffer{{
			ProductID:    "SKU-100",
			UnitCost:     decimal.NewFromInt(4),
			Availability: domain.OfferInStock,
		}},
	}))
}

func (f *fixture) seedPolicy(t *testing.T, mutate func(*domain.ReorderPolicy)) *domain.ReorderPolicy {
	t.Helper()
	policy := &domain.ReorderPolicy{
		ID:           "pol-1",
		ProductID:    "SKU-100",
		WarehouseID:  "WH-1",
		ReorderPoint: 50,
		LeadTimeDays: 7,
		ServiceLevel: 0.95,
		Enabled:      true,
	}
	if mutate != nil {
		mutate(policy)
	}
	require.NoError(t, f.policies.Save(context.Background(), policy))
	return policy
}

func TestRunAnalysisCycleProducesRecommendation(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	f.seedProduct(t, 30)
	f.seedPolicy(t, nil)

	recs, err := f.svc.RunAnalysisCycle(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "SKU-100", rec.ProductID)
	assert.Equal(t, "WH-1", rec.WarehouseID)
	assert.Equal(t, domain.RecommendationPending, rec.Status)
	// Flat 10/day demand, 7-day lead, 30 available: order 40.
	assert.Equal(t, 40, rec.Quantity)
	assert.Equal(t, "sup-1", rec.SupplierID)
	assert.Equal(t, "Acme Distribution", rec.SupplierName)
	// Three days of cover left.
	assert.Equal(t, domain.UrgencyCritical, rec.Urgency)
	assert.InDelta(t, 3.0, rec.DaysUntilStockout, 1e-9)
	assert.NotEmpty(t, rec.Reasoning)
	assert.Equal(t, testNow.Add(72*time.Hour), rec.ExpiresAt)
	assert.False(t, rec.AutoApproved)

	assert.Len(t, f.sink.EventsOfKind(notify.EventRecommendationCreated), 1)

	stored, err := f.recs.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RecommendationPending, stored.Status)
}

func TestRunAnalysisCycleGateSkipsHealthyStock(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	f.seedProduct(t, 500)
	f.seedPolicy(t, nil)

	recs, err := f.svc.RunAnalysisCycle(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Empty(t, f.sink.Events())
}

func TestRunAnalysisCycleIsolatesPolicyFailures(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	f.seedProduct(t, 30)
	f.seedPolicy(t, nil)
	// Second policy has no inventory snapshot and must not poison the
	// cycle.
	f.seedPolicy(t, func(p *domain.ReorderPolicy) {
		p.ID = "pol-broken"
		p.ProductID = "SKU-MISSING"
	})

	recs, err := f.svc.RunAnalysisCycle(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "SKU-100", recs[0].ProductID)
}

func TestRunAnalysisCycleSkipsThinHistory(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	f.seedProduct(t, 30)
	f.seedPolicy(t, func(p *domain.ReorderPolicy) {
		p.ProductID = "SKU-NEW"
	})
	f.inventory.Set("SKU-NEW", "WH-1", domain.InventoryLevels{Available: 10})
	f.sales.Add("SKU-NEW", domain.SalesRecord{Date: testNow.AddDate(0, 0, -1), Quantity: 5})

	recs, err := f.svc.RunAnalysisCycle(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRunAnalysisCycleSingleFlight(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	f.seedProduct(t, 30)
	f.seedPolicy(t, nil)

	f.svc.cycleMu.Lock()
	recs, err := f.svc.RunAnalysisCycle(context.Background())
	f.svc.cycleMu.Unlock()

	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)

	// After the lock is released a cycle runs normally.
	recs, err = f.svc.RunAnalysisCycle(context.Background())
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestRunAnalysisCycleExpiresStaleRecommendations(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	ctx := context.Background()

	stale := &domain.ReorderRecommendation{
		ID:        "rec-stale",
		Status:    domain.RecommendationPending,
		ExpiresAt: testNow.Add(-time.Hour),
	}
	fresh := &domain.ReorderRecommendation{
		ID:        "rec-fresh",
		Status:    domain.RecommendationPending,
		ExpiresAt: testNow.Add(time.Hour),
	}
	require.NoError(t, f.recs.Create(ctx, stale))
	require.NoError(t, f.recs.Create(ctx, fresh))

	_, err := f.svc.RunAnalysisCycle(ctx)
	require.NoError(t, err)

	got, err := f.recs.Get(ctx, "rec-stale")
	require.NoError(t, err)
	assert.Equal(t, domain.RecommendationExpired, got.Status)

	got, err = f.recs.Get(ctx, "rec-fresh")
	require.NoError(t, err)
	assert.Equal(t, domain.RecommendationPending, got.Status)
}

func TestPreferredSupplierOverride(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	f.seedProduct(t, 30)

	// A cheaper, faster competitor would normally win the ranking.
	require.NoError(t, f.suppliers.Save(context.Background(), &domain.SupplierProfile{
		ID:     "sup-2",
		Name:   "Budget Wholesale",
		Status: domain.SupplierActive,
		Metrics: domain.SupplierMetrics{
			OnTimeRate: 1, QualityScore: 1, FillRate: 1,
		},
		LeadTime: domain.SupplierLeadTime{AvgDays: 1},
		Offers: []domain.ProductOffer{{
			ProductID:    "SKU-100",
			UnitCost:     decimal.NewFromInt(1),
			Availability: domain.OfferInStock,
		}},
	}))

	f.seedPolicy(t, func(p *domain.ReorderPolicy) {
		p.PreferredSupplierID = "sup-1"
		p.AllowAlternatives = false
	})

	recs, err := f.svc.RunAnalysisCycle(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "sup-1", recs[0].SupplierID)

	// With alternatives allowed the ranking wins.
	f.seedPolicy(t, func(p *domain.ReorderPolicy) {
		p.PreferredSupplierID = "sup-1"
		p.AllowAlternatives = true
	})
	recs, err = f.svc.RunAnalysisCycle(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "sup-2", recs[0].SupplierID)
}

func TestApproveRecommendationCreatesPurchaseOrder(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	f.seedProduct(t, 30)
	f.seedPolicy(t, nil)
	ctx := context.Background()

	recs, err := f.svc.RunAnalysisCycle(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	order, err := f.svc.ApproveRecommendation(ctx, recs[0].ID)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNumber, "PO-20260501-"))
	assert.Equal(t, domain.POStatusDraft, order.Status)
	assert.Equal(t, recs[0].ID, order.RecommendationID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 40, order.Items[0].Quantity)
	// 40 units at $4 plus $20 shipping.
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(160)), "subtotal %s", order.Subtotal)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(180)), "total %s", order.Total)
	assert.False(t, order.AutoGenerated)

	stored, err := f.recs.Get(ctx, recs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RecommendationApproved, stored.Status)

	assert.Len(t, f.sink.EventsOfKind(notify.EventRecommendationApproved), 1)
	// Manual approval does not auto-dispatch.
	assert.Empty(t, f.dispatcher.dispatched)
}

func TestApproveRecommendationTwiceFails(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	f.seedProduct(t, 30)
	f.seedPolicy(t, nil)
	ctx := context.Background()

	recs, err := f.svc.RunAnalysisCycle(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	_, err = f.svc.ApproveRecommendation(ctx, recs[0].ID)
	require.NoError(t, err)

	_, err = f.svc.ApproveRecommendation(ctx, recs[0].ID)
	assert.ErrorIs(t, err, domain.ErrInvalidRecommendationState)

	orders, err := f.orders.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, orders, 1, "a rejected transition must not create a second order")
}

func TestRejectRecommendation(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	f.seedProduct(t, 30)
	f.seedPolicy(t, nil)
	ctx := context.Background()

	recs, err := f.svc.RunAnalysisCycle(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	require.NoError(t, f.svc.RejectRecommendation(ctx, recs[0].ID, "budget freeze"))

	stored, err := f.recs.Get(ctx, recs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RecommendationRejected, stored.Status)
	require.NotEmpty(t, stored.Warnings)
	assert.Equal(t, "Rejected: budget freeze", stored.Warnings[len(stored.Warnings)-1])

	assert.Len(t, f.sink.EventsOfKind(notify.EventRecommendationRejected), 1)

	// Rejected recommendations cannot be approved afterwards.
	_, err = f.svc.ApproveRecommendation(ctx, recs[0].ID)
	assert.ErrorIs(t, err, domain.ErrInvalidRecommendationState)
}

func TestSendPurchaseOrder(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	f.seedProduct(t, 30)
	f.seedPolicy(t, nil)
	ctx := context.Background()

	recs, err := f.svc.RunAnalysisCycle(ctx)
	require.NoError(t, err)
	order, err := f.svc.ApproveRecommendation(ctx, recs[0].ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.SendPurchaseOrder(ctx, order.ID))

	sent, err := f.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.POStatusSent, sent.Status)
	require.NotNil(t, sent.SentAt)
	assert.Equal(t, testNow, *sent.SentAt)

	rec, err := f.recs.Get(ctx, recs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RecommendationOrdered, rec.Status)

	assert.Len(t, f.dispatcher.dispatched, 1)
	assert.Len(t, f.sink.EventsOfKind(notify.EventOrderSent), 1)

	// Sending twice is an invalid transition.
	err = f.svc.SendPurchaseOrder(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidPurchaseOrderState)
}

func TestSendPurchaseOrderDispatchFailure(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	f.seedProduct(t, 30)
	f.seedPolicy(t, nil)
	ctx := context.Background()

	recs, err := f.svc.RunAnalysisCycle(ctx)
	require.NoError(t, err)
	order, err := f.svc.ApproveRecommendation(ctx, recs[0].ID)
	require.NoError(t, err)

	f.dispatcher.err = errors.New("supplier endpoint unreachable")
	err = f.svc.SendPurchaseOrder(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrDispatchFailed)

	// The order stays in draft so the send can be retried.
	stored, err := f.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.POStatusDraft, stored.Status)
	assert.Nil(t, stored.SentAt)
}

func TestMarkPurchaseOrderLifecycle(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	f.seedProduct(t, 30)
	f.seedPolicy(t, nil)
	ctx := context.Background()

	recs, err := f.svc.RunAnalysisCycle(ctx)
	require.NoError(t, err)
	order, err := f.svc.ApproveRecommendation(ctx, recs[0].ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.SendPurchaseOrder(ctx, order.ID))

	// Skipping confirmation is rejected.
	err = f.svc.MarkPurchaseOrder(ctx, order.ID, domain.POStatusReceived)
	assert.ErrorIs(t, err, domain.ErrInvalidPurchaseOrderState)

	require.NoError(t, f.svc.MarkPurchaseOrder(ctx, order.ID, "confirmed"))
	stored, err := f.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.POStatusConfirmed, stored.Status)
	require.NotNil(t, stored.ConfirmedAt)

	require.NoError(t, f.svc.MarkPurchaseOrder(ctx, order.ID, "received"))
	stored, err = f.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.POStatusReceived, stored.Status)
	require.NotNil(t, stored.DeliveredAt)

	// Terminal states cannot be cancelled.
	err = f.svc.MarkPurchaseOrder(ctx, order.ID, domain.POStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidPurchaseOrderState)

	err = f.svc.MarkPurchaseOrder(ctx, order.ID, "shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidPurchaseOrderState)
}

func TestAutoApprovalCascade(t *testing.T) {
	f := newFixture(config.EngineConfig{
		AutoOrderEnabled:      true,
		AutoApproveConfidence: 0.5,
	})
	// Nearly out of stock: stockout risk well above the severity bar.
	f.seedProduct(t, 5)
	f.seedPolicy(t, func(p *domain.ReorderPolicy) {
		p.AutoReorder = true
	})
	ctx := context.Background()

	recs, err := f.svc.RunAnalysisCycle(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].AutoApproved)

	rec, err := f.recs.Get(ctx, recs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RecommendationOrdered, rec.Status)

	orders, err := f.orders.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, domain.POStatusSent, orders[0].Status)
	assert.True(t, orders[0].AutoGenerated)

	assert.Len(t, f.dispatcher.dispatched, 1)
	assert.Len(t, f.sink.EventsOfKind(notify.EventRecommendationCreated), 1)
	assert.Len(t, f.sink.EventsOfKind(notify.EventRecommendationApproved), 1)
	assert.Len(t, f.sink.EventsOfKind(notify.EventOrderSent), 1)
}

func TestAutoApprovalRequiresPolicyOptIn(t *testing.T) {
	f := newFixture(config.EngineConfig{
		AutoOrderEnabled:      true,
		AutoApproveConfidence: 0.5,
	})
	f.seedProduct(t, 5)
	f.seedPolicy(t, nil) // AutoReorder stays false

	recs, err := f.svc.RunAnalysisCycle(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.False(t, recs[0].AutoApproved)
	assert.Empty(t, f.dispatcher.dispatched)
}

func TestAutoApprovalRespectsValueCeiling(t *testing.T) {
	f := newFixture(config.EngineConfig{
		AutoOrderEnabled:      true,
		AutoApproveConfidence: 0.5,
		AutoApproveMaxValue:   50,
	})
	f.seedProduct(t, 5)
	f.seedPolicy(t, func(p *domain.ReorderPolicy) {
		p.AutoReorder = true
	})

	recs, err := f.svc.RunAnalysisCycle(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.False(t, recs[0].AutoApproved, "order value above the ceiling must stay manual")
}

func TestRecommendationSummaryCountsByStatus(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	ctx := context.Background()

	for i, status := range []string{
		domain.RecommendationPending,
		domain.RecommendationPending,
		domain.RecommendationApproved,
	} {
		require.NoError(t, f.recs.Create(ctx, &domain.ReorderRecommendation{
			ID:     fmt.Sprintf("rec-%d", i),
			Status: status,
		}))
	}

	summary, err := f.svc.RecommendationSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Counts[domain.RecommendationPending])
	assert.Equal(t, 1, summary.Counts[domain.RecommendationApproved])
}

func TestPolicyManagement(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	ctx := context.Background()

	policy := &domain.ReorderPolicy{
		ProductID:    "SKU-1",
		WarehouseID:  "WH-1",
		ReorderPoint: 10,
		ServiceLevel: 0.9,
		LeadTimeDays: 5,
		Enabled:      true,
	}
	require.NoError(t, f.svc.AddPolicy(ctx, policy))
	assert.NotEmpty(t, policy.ID)

	invalid := &domain.ReorderPolicy{ProductID: "SKU-2"}
	assert.ErrorIs(t, f.svc.AddPolicy(ctx, invalid), domain.ErrInvalidPolicy)

	policy.ReorderPoint = 25
	require.NoError(t, f.svc.UpdatePolicy(ctx, policy))

	missing := &domain.ReorderPolicy{
		ID:           "nope",
		ProductID:    "SKU-3",
		WarehouseID:  "WH-1",
		ServiceLevel: 0.9,
		LeadTimeDays: 5,
	}
	assert.ErrorIs(t, f.svc.UpdatePolicy(ctx, missing), domain.ErrPolicyNotFound)

	listed, err := f.svc.ListPolicies(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 25, listed[0].ReorderPoint)

	require.NoError(t, f.svc.RemovePolicy(ctx, policy.ID))
	listed, err = f.svc.ListPolicies(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestRemovePolicyRefusedWhilePending(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	f.seedProduct(t, 30)
	policy := f.seedPolicy(t, nil)
	ctx := context.Background()

	recs, err := f.svc.RunAnalysisCycle(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	err = f.svc.RemovePolicy(ctx, policy.ID)
	assert.ErrorIs(t, err, domain.ErrPolicyInUse)

	// The policy survives the refused deletion.
	_, err = f.policies.Get(ctx, policy.ID)
	require.NoError(t, err)

	// Once the recommendation leaves pending, deletion goes through.
	require.NoError(t, f.svc.RejectRecommendation(ctx, recs[0].ID, "cleanup"))
	require.NoError(t, f.svc.RemovePolicy(ctx, policy.ID))

	_, err = f.policies.Get(ctx, policy.ID)
	assert.ErrorIs(t, err, domain.ErrPolicyNotFound)
}

// failingOrderRepo rejects every Create to exercise the approval
// rollback path.
type failingOrderRepo struct {
	*memory.PurchaseOrderRepository
}

func (r *failingOrderRepo) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	return errors.New("order store unavailable")
}

func TestApproveRecommendationRevertsOnOrderFailure(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	f.seedProduct(t, 30)
	f.seedPolicy(t, nil)
	ctx := context.Background()

	recs, err := f.svc.RunAnalysisCycle(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	f.svc.orders = &failingOrderRepo{PurchaseOrderRepository: f.orders}
	_, err = f.svc.ApproveRecommendation(ctx, recs[0].ID)
	require.Error(t, err)

	// The recommendation returns to pending so approval can be retried.
	stored, err := f.recs.Get(ctx, recs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RecommendationPending, stored.Status)

	f.svc.orders = f.orders
	order, err := f.svc.ApproveRecommendation(ctx, recs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.POStatusDraft, order.Status)
}

func TestListRecommendationsOrdersByUrgency(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	ctx := context.Background()

	for i, urgency := range []string{
		domain.UrgencyLow,
		domain.UrgencyCritical,
		domain.UrgencyMedium,
		domain.UrgencyHigh,
	} {
		require.NoError(t, f.recs.Create(ctx, &domain.ReorderRecommendation{
			ID:        fmt.Sprintf("rec-%d", i),
			Status:    domain.RecommendationPending,
			Urgency:   urgency,
			CreatedAt: testNow.Add(time.Duration(i) * time.Minute),
		}))
	}

	listed, err := f.svc.ListRecommendations(ctx, "")
	require.NoError(t, err)
	require.Len(t, listed, 4)
	assert.Equal(t, domain.UrgencyCritical, listed[0].Urgency)
	assert.Equal(t, domain.UrgencyHigh, listed[1].Urgency)
	assert.Equal(t, domain.UrgencyMedium, listed[2].Urgency)
	assert.Equal(t, domain.UrgencyLow, listed[3].Urgency)
}

func TestSupplierManagement(t *testing.T) {
	f := newFixture(config.EngineConfig{})
	ctx := context.Background()

	supplier := &domain.SupplierProfile{Name: "Acme", Rating: 4}
	require.NoError(t, f.svc.AddSupplier(ctx, supplier))
	assert.NotEmpty(t, supplier.ID)
	assert.Equal(t, domain.SupplierActive, supplier.Status)

	assert.ErrorIs(t, f.svc.AddSupplier(ctx, &domain.SupplierProfile{}), domain.ErrInvalidSupplier)
	assert.ErrorIs(t, f.svc.AddSupplier(ctx, &domain.SupplierProfile{Name: "Bad", Rating: 9}), domain.ErrInvalidSupplier)

	supplier.Rating = 5
	require.NoError(t, f.svc.UpdateSupplier(ctx, supplier))

	missing := &domain.SupplierProfile{ID: "nope", Name: "Ghost"}
	assert.ErrorIs(t, f.svc.UpdateSupplier(ctx, missing), domain.ErrSupplierNotFound)

	listed, err := f.svc.ListSuppliers(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 5, listed[0].Rating)
}
