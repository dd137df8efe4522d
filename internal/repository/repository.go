package repository

import (
	"context"

	"github.com/andresuchdata/restock-go/internal/domain"
)

// PolicyRepository stores reorder policies, keyed by id.
type PolicyRepository interface {
	Save(ctx context.Context, policy *domain.ReorderPolicy) error
	Get(ctx context.Context, id string) (*domain.ReorderPolicy, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.ReorderPolicy, error)
	ListEnabled(ctx context.Context) ([]*domain.ReorderPolicy, error)
}

// SupplierRepository stores supplier profiles, keyed by id.
type SupplierRepository interface {
	Save(ctx context.Context, supplier *domain.SupplierProfile) error
	Get(ctx context.Context, id string) (*domain.SupplierProfile, error)
	List(ctx context.Context) ([]*domain.SupplierProfile, error)
}

// RecommendationRepository stores reorder recommendations. Each
// recommendation is written once on create; later writes only move its
// status or append warnings.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *domain.ReorderRecommendation) error
	Get(ctx context.Context, id string) (*domain.ReorderRecommendation, error)
	Update(ctx context.Context, rec *domain.ReorderRecommendation) error
	List(ctx context.Context, status string) ([]*domain.ReorderRecommendation, error)
}

// PurchaseOrderRepository stores purchase orders.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *domain.PurchaseOrder) error
	Get(ctx context.Context, id string) (*domain.PurchaseOrder, error)
	Update(ctx context.Context, po *domain.PurchaseOrder) error
	List(ctx context.Context, status string) ([]*domain.PurchaseOrder, error)
}
