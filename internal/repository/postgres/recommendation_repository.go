package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/andresuchdata/restock-go/internal/repository"
)

// RecommendationRepository persists recommendations. Nested value
// objects (stock, cost, risk, reasoning) live in a JSONB payload
// column; the columns that filters and dashboards touch are first
// class.
type RecommendationRepository struct {
	db *DB
}

func NewRecommendationRepository(db *DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// Verify interface compliance
var _ repository.RecommendationRepository = (*RecommendationRepository)(nil)

type recommendationRow struct {
	ID          string    `db:"id"`
	ProductID   string    `db:"product_id"`
	WarehouseID string    `db:"warehouse_id"`
	SupplierID  string    `db:"supplier_id"`
	Quantity    int       `db:"quantity"`
	Urgency     string    `db:"urgency"`
	Confidence  float64   `db:"confidence"`
	Status      string    `db:"status"`
	Payload     []byte    `db:"payload"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	ExpiresAt   time.Time `db:"expires_at"`
}

func toRecommendationRow(rec *domain.ReorderRecommendation) (*recommendationRow, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode recommendation payload: %w", err)
	}
	return &recommendationRow{
		ID:          rec.ID,
		ProductID:   rec.ProductID,
		WarehouseID: rec.WarehouseID,
		SupplierID:  rec.SupplierID,
		Quantity:    rec.Quantity,
		Urgency:     rec.Urgency,
		Confidence:  rec.Confidence,
		Status:      rec.Status,
		Payload:     payload,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
		ExpiresAt:   rec.ExpiresAt,
	}, nil
}

func (row *recommendationRow) toDomain() (*domain.ReorderRecommendation, error) {
	var rec domain.ReorderRecommendation
	if err := json.Unmarshal(row.Payload, &rec); err != nil {
		return nil, fmt.Errorf("decode recommendation payload: %w", err)
	}
	// The status column is authoritative over the stored payload.
	rec.Status = row.Status
	rec.UpdatedAt = row.UpdatedAt
	return &rec, nil
}

func (r *RecommendationRepository) Create(ctx context.Context, rec *domain.ReorderRecommendation) error {
	row, err := toRecommendationRow(rec)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO recommendations
			(id, product_id, warehouse_id, supplier_id, quantity, urgency, confidence, status, payload, created_at, updated_at, expires_at)
		VALUES
			(:id, :product_id, :warehouse_id, :supplier_id, :quantity, :urgency, :confidence, :status, :payload, :created_at, :updated_at, :expires_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("insert recommendation: %w", err)
	}
	return nil
}

func (r *RecommendationRepository) Get(ctx context.Context, id string) (*domain.ReorderRecommendation, error) {
	var row recommendationRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM recommendations WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRecommendationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select recommendation: %w", err)
	}
	return row.toDomain()
}

func (r *RecommendationRepository) Update(ctx context.Context, rec *domain.ReorderRecommendation) error {
	row, err := toRecommendationRow(rec)
	if err != nil {
		return err
	}

	query := `
		UPDATE recommendations
		SET status = :status, payload = :payload, updated_at = :updated_at
		WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return fmt.Errorf("update recommendation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update recommendation: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecommendationNotFound
	}
	return nil
}

func (r *RecommendationRepository) List(ctx context.Context, status string) ([]*domain.ReorderRecommendation, error) {
	var rows []recommendationRow
	var err error
	if status != "" {
		err = r.db.SelectContext(ctx, &rows,
			`SELECT * FROM recommendations WHERE status = $1 ORDER BY created_at, id`, status)
	} else {
		err = r.db.SelectContext(ctx, &rows,
			`SELECT * FROM recommendations ORDER BY created_at, id`)
	}
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}

	out := make([]*domain.ReorderRecommendation, 0, len(rows))
	for i := range rows {
		rec, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
