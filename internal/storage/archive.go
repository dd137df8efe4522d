package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/rs/zerolog/log"
)

// OrderArchive writes a CSV export of every generated purchase order to
// object storage, under po/<order-number>.csv. Archive failures are
// logged, never fatal: the order itself already lives in the repository.
type OrderArchive struct {
	store ObjectStorage
}

func NewOrderArchive(store ObjectStorage) *OrderArchive {
	return &OrderArchive{store: store}
}

// Archive uploads the order export. A nil archive or store is a no-op.
func (a *OrderArchive) Archive(ctx context.Context, order *domain.PurchaseOrder) {
	if a == nil || a.store == nil {
		return
	}

	data, err := exportCSV(order)
	if err != nil {
		log.Warn().Err(err).Str("order_number", order.OrderNumber).Msg("order export failed")
		return
	}

	key := fmt.Sprintf("po/%s.csv", order.OrderNumber)
	if err := a.store.UploadObject(ctx, key, "text/csv", data); err != nil {
		log.Warn().Err(err).Str("order_number", order.OrderNumber).Msg("order archive upload failed")
	}
}

func exportCSV(order *domain.PurchaseOrder) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"order_number", "supplier_id", "product_id", "sku", "quantity", "unit_cost", "line_total", "expected_delivery"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, line := range order.Items {
		row := []string{
			order.OrderNumber,
			order.SupplierID,
			line.ProductID,
			line.SKU,
			fmt.Sprintf("%d", line.Quantity),
			line.UnitCost.String(),
			line.LineTotal.String(),
			line.ExpectedDelivery.Format("2006-01-02"),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
