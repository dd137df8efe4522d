package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/andresuchdata/restock-go/internal/repository"
)

// PolicyRepository provides in-memory policy storage.
type PolicyRepository struct {
	mu       sync.RWMutex
	policies map[string]*domain.ReorderPolicy
}

// NewPolicyRepository creates a new in-memory policy repository.
func NewPolicyRepository() *PolicyRepository {
	return &PolicyRepository{policies: make(map[string]*domain.ReorderPolicy)}
}

// Verify interface compliance
var _ repository.PolicyRepository = (*PolicyRepository)(nil)

func (r *PolicyRepository) Save(ctx context.Context, policy *domain.ReorderPolicy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies[policy.ID] = policy
	return nil
}

func (r *PolicyRepository) Get(ctx context.Context, id string) (*domain.ReorderPolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	policy, ok := r.policies[id]
	if !ok {
		return nil, domain.ErrPolicyNotFound
	}
	return policy, nil
}

func (r *PolicyRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.policies[id]; !ok {
		return domain.ErrPolicyNotFound
	}
	delete(r.policies, id)
	return nil
}

func (r *PolicyRepository) List(ctx context.Context) ([]*domain.ReorderPolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortPolicies(r.policies, func(*domain.ReorderPolicy) bool { return true }), nil
}

func (r *PolicyRepository) ListEnabled(ctx context.Context) ([]*domain.ReorderPolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortPolicies(r.policies, func(p *domain.ReorderPolicy) bool { return p.Enabled }), nil
}

// sortPolicies filters and orders policies by id for deterministic
// cycle processing.
func sortPolicies(policies map[string]*domain.ReorderPolicy, keep func(*domain.ReorderPolicy) bool) []*domain.ReorderPolicy {
	out := make([]*domain.ReorderPolicy, 0, len(policies))
	for _, p := range policies {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
