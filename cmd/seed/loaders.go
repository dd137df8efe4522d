package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/andresuchdata/restock-go/internal/domain"
)

// loadPolicies parses policies.csv. Expected columns: product_id,
// warehouse_id, reorder_point, min_stock, max_stock, lead_time_days,
// service_level, carrying_cost_rate, ordering_cost,
// preferred_supplier_id, allow_alternatives, order_multiple,
// auto_reorder, enabled. Missing numeric fields default to zero.
func loadPolicies(path string) ([]*domain.ReorderPolicy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open policies file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read policies header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	col := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var policies []*domain.ReorderPolicy
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read policies row: %w", err)
		}

		atoi := func(name string) int {
			v, _ := strconv.Atoi(col(row, name))
			return v
		}
		atof := func(name string) float64 {
			v, _ := strconv.ParseFloat(col(row, name), 64)
			return v
		}
		atob := func(name string) bool {
			v, _ := strconv.ParseBool(col(row, name))
			return v
		}

		policy := &domain.ReorderPolicy{
			ProductID:           col(row, "product_id"),
			WarehouseID:         col(row, "warehouse_id"),
			ReorderPoint:        atoi("reorder_point"),
			MinStock:            atoi("min_stock"),
			MaxStock:            atoi("max_stock"),
			LeadTimeDays:        atoi("lead_time_days"),
			ServiceLevel:        atof("service_level"),
			CarryingCostRate:    atof("carrying_cost_rate"),
			OrderingCost:        atof("ordering_cost"),
			PreferredSupplierID: col(row, "preferred_supplier_id"),
			AllowAlternatives:   atob("allow_alternatives"),
			AutoReorder:         atob("auto_reorder"),
			Enabled:             atob("enabled"),
			Constraints: domain.OrderConstraints{
				MinOrderValue: atof("min_order_value"),
				MaxOrderValue: atof("max_order_value"),
				OrderMultiple: atoi("order_multiple"),
			},
		}
		if err := policy.Validate(); err != nil {
			return nil, fmt.Errorf("policy %s/%s: %w", policy.ProductID, policy.WarehouseID, err)
		}
		policies = append(policies, policy)
	}
	return policies, nil
}

// loadSuppliers parses suppliers.json, a JSON array of supplier
// profiles with nested terms, lead time and offers.
func loadSuppliers(path string) ([]*domain.SupplierProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open suppliers file: %w", err)
	}

	var suppliers []*domain.SupplierProfile
	if err := json.Unmarshal(data, &suppliers); err != nil {
		return nil, fmt.Errorf("parse suppliers file: %w", err)
	}
	return suppliers, nil
}
