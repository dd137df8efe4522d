package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/andresuchdata/restock-go/internal/repository"
)

// SupplierRepository provides in-memory supplier storage.
type SupplierRepository struct {
	mu        sync.RWMutex
	suppliers map[string]*domain.SupplierProfile
}

// NewSupplierRepository creates a new in-memory supplier repository.
func NewSupplierRepository() *SupplierRepository {
	return &SupplierRepository{suppliers: make(map[string]*domain.SupplierProfile)}
}

// Verify interface compliance
var _ repository.SupplierRepository = (*SupplierRepository)(nil)

func (r *SupplierRepository) Save(ctx context.Context, supplier *domain.SupplierProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppliers[supplier.ID] = supplier
	return nil
}

func (r *SupplierRepository) Get(ctx context.Context, id string) (*domain.SupplierProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	supplier, ok := r.suppliers[id]
	if !ok {
		return nil, domain.ErrSupplierNotFound
	}
	return supplier, nil
}

func (r *SupplierRepository) List(ctx context.Context) ([]*domain.SupplierProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.SupplierProfile, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
