package memory

import (
	"context"
	"testing"
	"time"

	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyRepository(t *testing.T) {
	repo := NewPolicyRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrPolicyNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrPolicyNotFound)

	require.NoError(t, repo.Save(ctx, &domain.ReorderPolicy{ID: "b", Enabled: true}))
	require.NoError(t, repo.Save(ctx, &domain.ReorderPolicy{ID: "a", Enabled: false}))
	require.NoError(t, repo.Save(ctx, &domain.ReorderPolicy{ID: "c", Enabled: true}))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "c", all[2].ID)

	enabled, err := repo.ListEnabled(ctx)
	require.NoError(t, err)
	require.Len(t, enabled, 2)
	assert.Equal(t, "b", enabled[0].ID)
	assert.Equal(t, "c", enabled[1].ID)

	// Save with an existing id overwrites.
	require.NoError(t, repo.Save(ctx, &domain.ReorderPolicy{ID: "a", Enabled: true}))
	enabled, err = repo.ListEnabled(ctx)
	require.NoError(t, err)
	assert.Len(t, enabled, 3)

	require.NoError(t, repo.Delete(ctx, "b"))
	all, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSupplierRepository(t *testing.T) {
	repo := NewSupplierRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)

	require.NoError(t, repo.Save(ctx, &domain.SupplierProfile{ID: "sup-2", Name: "Beta"}))
	require.NoError(t, repo.Save(ctx, &domain.SupplierProfile{ID: "sup-1", Name: "Alpha"}))

	got, err := repo.Get(ctx, "sup-1")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Name)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "sup-1", all[0].ID)
	assert.Equal(t, "sup-2", all[1].ID)
}

func TestRecommendationRepository(t *testing.T) {
	repo := NewRecommendationRepository()
	ctx := context.Background()
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrRecommendationNotFound)
	err = repo.Update(ctx, &domain.ReorderRecommendation{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrRecommendationNotFound)

	require.NoError(t, repo.Create(ctx, &domain.ReorderRecommendation{
		ID: "rec-2", Status: domain.RecommendationPending, CreatedAt: base.Add(time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &domain.ReorderRecommendation{
		ID: "rec-1", Status: domain.RecommendationApproved, CreatedAt: base,
	}))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Ordered by creation time.
	assert.Equal(t, "rec-1", all[0].ID)
	assert.Equal(t, "rec-2", all[1].ID)

	pending, err := repo.List(ctx, domain.RecommendationPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "rec-2", pending[0].ID)

	rec, err := repo.Get(ctx, "rec-2")
	require.NoError(t, err)
	rec.Status = domain.RecommendationRejected
	require.NoError(t, repo.Update(ctx, rec))

	pending, err = repo.List(ctx, domain.RecommendationPending)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestPurchaseOrderRepository(t *testing.T) {
	repo := NewPurchaseOrderRepository()
	ctx := context.Background()
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrPurchaseOrderNotFound)
	err = repo.Update(ctx, &domain.PurchaseOrder{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrPurchaseOrderNotFound)

	require.NoError(t, repo.Create(ctx, &domain.PurchaseOrder{
		ID: "po-1", OrderNumber: "PO-20260401-AAAA",
		Status: domain.POStatusDraft, CreatedAt: base,
	}))
	require.NoError(t, repo.Create(ctx, &domain.PurchaseOrder{
		ID: "po-2", OrderNumber: "PO-20260401-BBBB",
		Status: domain.POStatusSent, CreatedAt: base,
	}))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Same creation time falls back to order number ordering.
	assert.Equal(t, "po-1", all[0].ID)
	assert.Equal(t, "po-2", all[1].ID)

	sent, err := repo.List(ctx, domain.POStatusSent)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "po-2", sent[0].ID)

	po, err := repo.Get(ctx, "po-1")
	require.NoError(t, err)
	po.Status = domain.POStatusCancelled
	require.NoError(t, repo.Update(ctx, po))

	got, err := repo.Get(ctx, "po-1")
	require.NoError(t, err)
	assert.Equal(t, domain.POStatusCancelled, got.Status)
}
