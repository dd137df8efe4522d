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
	"github.com/jmoiron/sqlx"
)

// PurchaseOrderRepository persists purchase orders with the same
// payload-column layout as recommendations.
type PurchaseOrderRepository struct {
	db *DB
}

func NewPurchaseOrderRepository(db *DB) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{db: db}
}

// Verify interface compliance
var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepository)(nil)

type purchaseOrderRow struct {
	ID               string    `db:"id"`
	OrderNumber      string    `db:"order_number"`
	SupplierID       string    `db:"supplier_id"`
	RecommendationID string    `db:"recommendation_id"`
	Status           string    `db:"status"`
	Total            string    `db:"total"`
	Payload          []byte    `db:"payload"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func toPurchaseOrderRow(po *domain.PurchaseOrder) (*purchaseOrderRow, error) {
	payload, err := json.Marshal(po)
	if err != nil {
		return nil, fmt.Errorf("encode purchase order payload: %w", err)
	}
	return &purchaseOrderRow{
		ID:               po.ID,
		OrderNumber:      po.OrderNumber,
		SupplierID:       po.SupplierID,
		RecommendationID: po.RecommendationID,
		Status:           po.Status,
		Total:            po.Total.String(),
		Payload:          payload,
		CreatedAt:        po.CreatedAt,
		UpdatedAt:        po.UpdatedAt,
	}, nil
}

func (row *purchaseOrderRow) toDomain() (*domain.PurchaseOrder, error) {
	var po domain.PurchaseOrder
	if err := json.Unmarshal(row.Payload, &po); err != nil {
		return nil, fmt.Errorf("decode purchase order payload: %w", err)
	}
	po.Status = row.Status
	po.UpdatedAt = row.UpdatedAt
	return &po, nil
}

func (r *PurchaseOrderRepository) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	row, err := toPurchaseOrderRow(po)
	if err != nil {
		return err
	}

	// The recommendation's status flip to ordered and the PO insert
	// belong to the same cycle step, so both run inside one transaction
	// when the caller needs it; a bare create still works standalone.
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO purchase_orders
				(id, order_number, supplier_id, recommendation_id, status, total, payload, created_at, updated_at)
			VALUES
				(:id, :order_number, :supplier_id, :recommendation_id, :status, :total, :payload, :created_at, :updated_at)`
		if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
			return fmt.Errorf("insert purchase order: %w", err)
		}
		return nil
	})
}

func (r *PurchaseOrderRepository) Get(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	var row purchaseOrderRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM purchase_orders WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPurchaseOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select purchase order: %w", err)
	}
	return row.toDomain()
}

func (r *PurchaseOrderRepository) Update(ctx context.Context, po *domain.PurchaseOrder) error {
	row, err := toPurchaseOrderRow(po)
	if err != nil {
		return err
	}

	query := `
		UPDATE purchase_orders
		SET status = :status, payload = :payload, updated_at = :updated_at
		WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if affected == 0 {
		return domain.ErrPurchaseOrderNotFound
	}
	return nil
}

func (r *PurchaseOrderRepository) List(ctx context.Context, status string) ([]*domain.PurchaseOrder, error) {
	var rows []purchaseOrderRow
	var err error
	if status != "" {
		err = r.db.SelectContext(ctx, &rows,
			`SELECT * FROM purchase_orders WHERE status = $1 ORDER BY created_at, order_number`, status)
	} else {
		err = r.db.SelectContext(ctx, &rows,
			`SELECT * FROM purchase_orders ORDER BY created_at, order_number`)
	}
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}

	out := make([]*domain.PurchaseOrder, 0, len(rows))
	for i := range rows {
		po, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, po)
	}
	return out, nil
}
