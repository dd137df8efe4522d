package feeds

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/andresuchdata/restock-go/internal/domain"
)

// CSVSalesProvider serves historical sales loaded from CSV files with
// columns: product_id, date (2006-01-02), quantity, price (optional).
// Used by the seed tool and demos; production wires a platform-backed
// provider instead.
type CSVSalesProvider struct {
	mu    sync.RWMutex
	sales map[string][]domain.SalesRecord
}

func NewCSVSalesProvider() *CSVSalesProvider {
	return &CSVSalesProvider{sales: make(map[string][]domain.SalesRecord)}
}

// Verify interface compliance
var _ SalesProvider = (*CSVSalesProvider)(nil)

// LoadFile reads one CSV file into the provider, replacing nothing:
// rows append to whatever was already loaded per product.
func (p *CSVSalesProvider) LoadFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open sales file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read sales header: %w", err)
	}
	cols := columnIndex(header)

	count := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read sales row: %w", err)
		}

		productID := field(row, cols, "product_id")
		date, err := time.Parse("2006-01-02", field(row, cols, "date"))
		if err != nil {
			continue
		}
		quantity, err := strconv.ParseFloat(field(row, cols, "quantity"), 64)
		if err != nil {
			continue
		}
		price, _ := strconv.ParseFloat(field(row, cols, "price"), 64)

		p.append(productID, domain.SalesRecord{
			Date:     date,
			Quantity: quantity,
			Price:    price,
		})
		count++
	}
	return count, nil
}

func (p *CSVSalesProvider) append(productID string, record domain.SalesRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sales[productID] = append(p.sales[productID], record)
}

// Add loads records directly, for tests and seeding.
func (p *CSVSalesProvider) Add(productID string, records ...domain.SalesRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sales[productID] = append(p.sales[productID], records...)
}

func (p *CSVSalesProvider) GetHistoricalSales(ctx context.Context, productID string, days int) ([]domain.SalesRecord, error) {
	p.mu.RLock()
	records := p.sales[productID]
	out := make([]domain.SalesRecord, len(records))
	copy(out, records)
	p.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	if days > 0 && len(out) > days {
		out = out[len(out)-days:]
	}
	return out, nil
}

// readCSV streams a header-indexed CSV file, invoking each per data
// row. Malformed rows abort with an error.
func readCSV(path string, each func(row []string, cols map[string]int)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}
	cols := columnIndex(header)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read csv row: %w", err)
		}
		each(row, cols)
	}
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	return cols
}

func field(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}
