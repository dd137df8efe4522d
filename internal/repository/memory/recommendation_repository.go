package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/andresuchdata/restock-go/internal/repository"
)

// RecommendationRepository provides in-memory recommendation storage.
type RecommendationRepository struct {
	mu   sync.RWMutex
	recs map[string]*domain.ReorderRecommendation
}

// NewRecommendationRepository creates a new in-memory recommendation
// repository.
func NewRecommendationRepository() *RecommendationRepository {
	return &RecommendationRepository{recs: make(map[string]*domain.ReorderRecommendation)}
}

// Verify interface compliance
var _ repository.RecommendationRepository = (*RecommendationRepository)(nil)

func (r *RecommendationRepository) Create(ctx context.Context, rec *domain.ReorderRecommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs[rec.ID] = rec
	return nil
}

func (r *RecommendationRepository) Get(ctx context.Context, id string) (*domain.ReorderRecommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.recs[id]
	if !ok {
		return nil, domain.ErrRecommendationNotFound
	}
	return rec, nil
}

func (r *RecommendationRepository) Update(ctx context.Context, rec *domain.ReorderRecommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recs[rec.ID]; !ok {
		return domain.ErrRecommendationNotFound
	}
	r.recs[rec.ID] = rec
	return nil
}

func (r *RecommendationRepository) List(ctx context.Context, status string) ([]*domain.ReorderRecommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.ReorderRecommendation, 0, len(r.recs))
	for _, rec := range r.recs {
		if status != "" && rec.Status != status {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
