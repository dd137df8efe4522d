package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/andresuchdata/restock-go/internal/repository"
)

// PurchaseOrderRepository provides in-memory purchase order storage.
type PurchaseOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.PurchaseOrder
}

// NewPurchaseOrderRepository creates a new in-memory purchase order
// repository.
func NewPurchaseOrderRepository() *PurchaseOrderRepository {
	return &PurchaseOrderRepository{orders: make(map[string]*domain.PurchaseOrder)}
}

// Verify interface compliance
var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepository)(nil)

func (r *PurchaseOrderRepository) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[po.ID] = po
	return nil
}

func (r *PurchaseOrderRepository) Get(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	po, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrPurchaseOrderNotFound
	}
	return po, nil
}

func (r *PurchaseOrderRepository) Update(ctx context.Context, po *domain.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[po.ID]; !ok {
		return domain.ErrPurchaseOrderNotFound
	}
	r.orders[po.ID] = po
	return nil
}

func (r *PurchaseOrderRepository) List(ctx context.Context, status string) ([]*domain.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.PurchaseOrder, 0, len(r.orders))
	for _, po := range r.orders {
		if status != "" && po.Status != status {
			continue
		}
		out = append(out, po)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].OrderNumber < out[j].OrderNumber
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
