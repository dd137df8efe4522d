package feeds

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/rs/zerolog/log"
)

// StaticInventoryProvider keeps inventory snapshots in memory, keyed by
// (product, warehouse). It backs the seed tool and tests.
type StaticInventoryProvider struct {
	mu     sync.RWMutex
	levels map[string]domain.InventoryLevels
}

func NewStaticInventoryProvider() *StaticInventoryProvider {
	return &StaticInventoryProvider{levels: make(map[string]domain.InventoryLevels)}
}

// Verify interface compliance
var _ InventoryProvider = (*StaticInventoryProvider)(nil)

func (p *StaticInventoryProvider) Set(productID, warehouseID string, levels domain.InventoryLevels) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.levels[productID+"|"+warehouseID] = levels
}

func (p *StaticInventoryProvider) GetInventoryLevels(ctx context.Context, productID, warehouseID string) (domain.InventoryLevels, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	levels, ok := p.levels[productID+"|"+warehouseID]
	if !ok {
		return domain.InventoryLevels{}, fmt.Errorf("no inventory snapshot for product %s at warehouse %s", productID, warehouseID)
	}
	return levels, nil
}

// LoadFile reads inventory snapshots from a CSV file with columns:
// product_id, warehouse_id, on_hand, reserved, incoming. Available is
// derived as on_hand minus reserved.
func (p *StaticInventoryProvider) LoadFile(path string) (int, error) {
	count := 0
	err := readCSV(path, func(row []string, cols map[string]int) {
		productID := field(row, cols, "product_id")
		warehouseID := field(row, cols, "warehouse_id")
		if productID == "" || warehouseID == "" {
			return
		}
		onHand, _ := strconv.Atoi(field(row, cols, "on_hand"))
		reserved, _ := strconv.Atoi(field(row, cols, "reserved"))
		incoming, _ := strconv.Atoi(field(row, cols, "incoming"))
		p.Set(productID, warehouseID, domain.InventoryLevels{
			OnHand:    onHand,
			Reserved:  reserved,
			Available: onHand - reserved,
			Incoming:  incoming,
		})
		count++
	})
	return count, err
}

// StaticCatalogProvider resolves titles and SKUs from an in-memory map.
type StaticCatalogProvider struct {
	mu     sync.RWMutex
	titles map[string]string
	skus   map[string]string
}

func NewStaticCatalogProvider() *StaticCatalogProvider {
	return &StaticCatalogProvider{
		titles: make(map[string]string),
		skus:   make(map[string]string),
	}
}

// Verify interface compliance
var _ CatalogProvider = (*StaticCatalogProvider)(nil)

func (p *StaticCatalogProvider) Set(productID, title, sku string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.titles[productID] = title
	p.skus[productID] = sku
}

func (p *StaticCatalogProvider) GetProductTitle(ctx context.Context, productID string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if title, ok := p.titles[productID]; ok {
		return title, nil
	}
	return productID, nil
}

func (p *StaticCatalogProvider) GetProductSKU(ctx context.Context, productID string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if sku, ok := p.skus[productID]; ok {
		return sku, nil
	}
	return productID, nil
}

// LoadFile reads catalog entries from a CSV file with columns:
// product_id, title, sku.
func (p *StaticCatalogProvider) LoadFile(path string) (int, error) {
	count := 0
	err := readCSV(path, func(row []string, cols map[string]int) {
		productID := field(row, cols, "product_id")
		if productID == "" {
			return
		}
		p.Set(productID, field(row, cols, "title"), field(row, cols, "sku"))
		count++
	})
	return count, err
}

// LogDispatcher pretends to transmit purchase orders by logging them.
// Used until a real supplier integration is wired.
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher { return &LogDispatcher{} }

// Verify interface compliance
var _ Dispatcher = (*LogDispatcher)(nil)

func (LogDispatcher) DispatchPurchaseOrder(ctx context.Context, order *domain.PurchaseOrder) error {
	log.Info().
		Str("order_number", order.OrderNumber).
		Str("supplier_id", order.SupplierID).
		Str("total", order.Total.String()).
		Msg("dispatching purchase order")
	return nil
}
