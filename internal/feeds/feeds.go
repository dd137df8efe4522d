package feeds

import (
	"context"

	"github.com/andresuchdata/restock-go/internal/domain"
)

// InventoryProvider returns current stock levels for a product at a
// warehouse. Implemented outside the core (commerce platform, WMS).
type InventoryProvider interface {
	GetInventoryLevels(ctx context.Context, productID, warehouseID string) (domain.InventoryLevels, error)
}

// SalesProvider returns up to the requested number of trailing days of
// historical sales for a product.
type SalesProvider interface {
	GetHistoricalSales(ctx context.Context, productID string, days int) ([]domain.SalesRecord, error)
}

// CatalogProvider resolves product display data.
type CatalogProvider interface {
	GetProductTitle(ctx context.Context, productID string) (string, error)
	GetProductSKU(ctx context.Context, productID string) (string, error)
}

// Dispatcher transmits a purchase order to the supplier. May fail
// transiently; the core does not retry.
type Dispatcher interface {
	DispatchPurchaseOrder(ctx context.Context, order *domain.PurchaseOrder) error
}
