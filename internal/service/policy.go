package service

import (
	"context"
	"fmt"

	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/google/uuid"
)

// AddPolicy validates and stores a new reorder policy.
func (s *ReplenishmentService) AddPolicy(ctx context.Context, policy *domain.ReorderPolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	if policy.ID == "" {
		policy.ID = uuid.NewString()
	}
	now := s.now()
	policy.CreatedAt = now
	policy.UpdatedAt = now
	return s.policies.Save(ctx, policy)
}

// UpdatePolicy replaces an existing policy.
func (s *ReplenishmentService) UpdatePolicy(ctx context.Context, policy *domain.ReorderPolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	existing, err := s.policies.Get(ctx, policy.ID)
	if err != nil {
		return err
	}
	policy.CreatedAt = existing.CreatedAt
	policy.UpdatedAt = s.now()
	return s.policies.Save(ctx, policy)
}

// RemovePolicy deletes a policy. Deletion is refused with
// ErrPolicyInUse while a pending recommendation still references the
// policy's product and warehouse; resolve or expire those first.
func (s *ReplenishmentService) RemovePolicy(ctx context.Context, id string) error {
	policy, err := s.policies.Get(ctx, id)
	if err != nil {
		return err
	}

	pending, err := s.recommendations.List(ctx, domain.RecommendationPending)
	if err != nil {
		return fmt.Errorf("list pending recommendations: %w", err)
	}
	for _, rec := range pending {
		if rec.ProductID == policy.ProductID && rec.WarehouseID == policy.WarehouseID {
			return fmt.Errorf("%w: recommendation %s is pending", domain.ErrPolicyInUse, rec.ID)
		}
	}

	return s.policies.Delete(ctx, id)
}

// ListPolicies returns all policies.
func (s *ReplenishmentService) ListPolicies(ctx context.Context) ([]*domain.ReorderPolicy, error) {
	return s.policies.List(ctx)
}

// AddSupplier validates and stores a supplier profile.
func (s *ReplenishmentService) AddSupplier(ctx context.Context, supplier *domain.SupplierProfile) error {
	if err := validateSupplier(supplier); err != nil {
		return err
	}
	if supplier.ID == "" {
		supplier.ID = uuid.NewString()
	}
	if supplier.Status == "" {
		supplier.Status = domain.SupplierActive
	}
	return s.suppliers.Save(ctx, supplier)
}

// UpdateSupplier replaces an existing supplier profile.
func (s *ReplenishmentService) UpdateSupplier(ctx context.Context, supplier *domain.SupplierProfile) error {
	if err := validateSupplier(supplier); err != nil {
		return err
	}
	if _, err := s.suppliers.Get(ctx, supplier.ID); err != nil {
		return err
	}
	return s.suppliers.Save(ctx, supplier)
}

// ListSuppliers returns all suppliers.
func (s *ReplenishmentService) ListSuppliers(ctx context.Context) ([]*domain.SupplierProfile, error) {
	return s.suppliers.List(ctx)
}

func validateSupplier(supplier *domain.SupplierProfile) error {
	if supplier.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidSupplier)
	}
	if supplier.Rating < 0 || supplier.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidSupplier)
	}
	return nil
}
