package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReorderPolicy configures replenishment for one product at one warehouse.
type ReorderPolicy struct {
	ID                  string           `json:"id" db:"id"`
	ProductID           string           `json:"product_id" db:"product_id"`
	WarehouseID         string           `json:"warehouse_id" db:"warehouse_id"`
	ReorderPoint        int              `json:"reorder_point" db:"reorder_point"`
	ReorderQty          int              `json:"reorder_qty" db:"reorder_qty"`
	MinStock            int              `json:"min_stock" db:"min_stock"`
	MaxStock            int              `json:"max_stock" db:"max_stock"`
	LeadTimeDays        int              `json:"lead_time_days" db:"lead_time_days"`
	SafetyStockDays     int              `json:"safety_stock_days" db:"safety_stock_days"`
	ServiceLevel        float64          `json:"service_level" db:"service_level"`
	CarryingCostRate    float64          `json:"carrying_cost_rate" db:"carrying_cost_rate"`
	OrderingCost        float64          `json:"ordering_cost" db:"ordering_cost"`
	PreferredSupplierID string           `json:"preferred_supplier_id" db:"preferred_supplier_id"`
	AllowAlternatives   bool             `json:"allow_alternatives" db:"allow_alternatives"`
	Constraints         OrderConstraints `json:"constraints"`
	Enabled             bool             `json:"enabled" db:"enabled"`
	AutoReorder         bool             `json:"auto_reorder" db:"auto_reorder"`
	CreatedAt           time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at" db:"updated_at"`
	LastTriggeredAt     *time.Time       `json:"last_triggered_at,omitempty" db:"last_triggered_at"`
	LastReorderAt       *time.Time       `json:"last_reorder_at,omitempty" db:"last_reorder_at"`
}

// OrderConstraints bounds what a generated order may look like.
type OrderConstraints struct {
	MinOrderValue       float64                `json:"min_order_value"`
	MaxOrderValue       float64                `json:"max_order_value"`
	OrderMultiple       int                    `json:"order_multiple"`
	SeasonalMultipliers map[time.Month]float64 `json:"seasonal_multipliers,omitempty"`
}

// Validate checks the policy invariants before it is accepted.
func (p *ReorderPolicy) Validate() error {
	if p.ProductID == "" || p.WarehouseID == "" {
		return ErrInvalidPolicy
	}
	if p.ReorderPoint < 0 {
		return ErrInvalidPolicy
	}
	if p.ServiceLevel <= 0 || p.ServiceLevel > 1 {
		return ErrInvalidPolicy
	}
	if p.LeadTimeDays <= 0 {
		return ErrInvalidPolicy
	}
	return nil
}

// SupplierMetrics are normalized performance figures (0-1), except
// ResponseHours.
type SupplierMetrics struct {
	OnTimeRate    float64 `json:"on_time_rate" db:"on_time_rate"`
	QualityScore  float64 `json:"quality_score" db:"quality_score"`
	ResponseHours float64 `json:"response_hours" db:"response_hours"`
	FillRate      float64 `json:"fill_rate" db:"fill_rate"`
	DefectRate    float64 `json:"defect_rate" db:"defect_rate"`
}

// BulkDiscountTier applies DiscountPercent when the ordered quantity
// reaches MinQuantity. The highest satisfied tier wins.
type BulkDiscountTier struct {
	MinQuantity     int     `json:"min_quantity"`
	DiscountPercent float64 `json:"discount_percent"`
}

// SupplierTerms are the commercial terms of a supplier.
type SupplierTerms struct {
	PaymentTermsDays      int                `json:"payment_terms_days"`
	Currency              string             `json:"currency"`
	MinimumOrderValue     decimal.Decimal    `json:"minimum_order_value"`
	ShippingCost          decimal.Decimal    `json:"shipping_cost"`
	FreeShippingThreshold decimal.Decimal    `json:"free_shipping_threshold"`
	BulkDiscounts         []BulkDiscountTier `json:"bulk_discounts"`
}

// SupplierLeadTime captures lead-time statistics in days.
type SupplierLeadTime struct {
	MinDays  int     `json:"min_days"`
	MaxDays  int     `json:"max_days"`
	AvgDays  float64 `json:"avg_days"`
	Variance float64 `json:"variance"`
}

// ProductOffer is one supplier's offer for a product.
type ProductOffer struct {
	ProductID    string          `json:"product_id"`
	SupplierSKU  string          `json:"supplier_sku"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	MinOrderQty  int             `json:"min_order_qty"`
	PackSize     int             `json:"pack_size"`
	Availability string          `json:"availability"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SupplierProfile describes one supplier and its catalog.
type SupplierProfile struct {
	ID       string           `json:"id" db:"id"`
	Name     string           `json:"name" db:"name"`
	Status   string           `json:"status" db:"status"`
	Rating   int              `json:"rating" db:"rating"`
	Metrics  SupplierMetrics  `json:"metrics"`
	Terms    SupplierTerms    `json:"terms"`
	LeadTime SupplierLeadTime `json:"lead_time"`
	Offers   []ProductOffer   `json:"offers"`
}

// OfferFor returns the supplier's offer for a product, if any.
func (s *SupplierProfile) OfferFor(productID string) (ProductOffer, bool) {
	for _, offer := range s.Offers {
		if offer.ProductID == productID {
			return offer, true
		}
	}
	return ProductOffer{}, false
}

// SalesRecord is one day of historical sales for a product.
type SalesRecord struct {
	Date       time.Time `json:"date" db:"date"`
	Quantity   float64   `json:"quantity" db:"quantity"`
	Price      float64   `json:"price,omitempty" db:"price"`
	Promotions bool      `json:"promotions,omitempty" db:"promotions"`
	Events     []string  `json:"events,omitempty"`
}

// InventoryLevels is the snapshot returned by the inventory collaborator.
type InventoryLevels struct {
	OnHand    int `json:"on_hand"`
	Reserved  int `json:"reserved"`
	Available int `json:"available"`
	Incoming  int `json:"incoming"`
}

// ForecastPoint is one predicted day of demand.
type ForecastPoint struct {
	Date       time.Time `json:"date"`
	Demand     int       `json:"demand"`
	Confidence float64   `json:"confidence"`
	Lower      int       `json:"lower"`
	Upper      int       `json:"upper"`
}

// ForecastAccuracy holds in-sample accuracy metrics of the chosen model.
type ForecastAccuracy struct {
	MAPE float64 `json:"mape"`
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
}

// ForecastInsights summarizes the shape of the demand history.
type ForecastInsights struct {
	Seasonality           float64 `json:"seasonality"`
	Trend                 float64 `json:"trend"`
	Volatility            float64 `json:"volatility"`
	SuggestedReorderPoint int     `json:"suggested_reorder_point"`
	RiskLevel             string  `json:"risk_level"`
}

// ForecastResult is the immutable output of one forecast request.
type ForecastResult struct {
	ProductID  string           `json:"product_id"`
	Points     []ForecastPoint  `json:"points"`
	Accuracy   ForecastAccuracy `json:"accuracy"`
	Model      string           `json:"model"`
	Confidence float64          `json:"confidence"`
	Insights   ForecastInsights `json:"insights"`
	CreatedAt  time.Time        `json:"created_at"`
}

// DemandOver sums predicted demand over the first n points.
func (f *ForecastResult) DemandOver(n int) int {
	if n > len(f.Points) {
		n = len(f.Points)
	}
	total := 0
	for _, p := range f.Points[:n] {
		total += p.Demand
	}
	return total
}

// CostBreakdown prices out a recommended order.
type CostBreakdown struct {
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Shipping    decimal.Decimal `json:"shipping"`
	BulkSavings decimal.Decimal `json:"bulk_savings"`
	OrderValue  decimal.Decimal `json:"order_value"`
}

// RiskFactors are the normalized risk signals of a recommendation.
type RiskFactors struct {
	Stockout          float64 `json:"stockout"`
	Oversupply        float64 `json:"oversupply"`
	Supplier          float64 `json:"supplier"`
	DemandVariability float64 `json:"demand_variability"`
}

// ForecastSummary is the condensed demand outlook on a recommendation.
type ForecastSummary struct {
	Next7Days   int     `json:"next_7_days"`
	Next30Days  int     `json:"next_30_days"`
	Next90Days  int     `json:"next_90_days"`
	Seasonality float64 `json:"seasonality"`
	Trend       float64 `json:"trend"`
}

// SupplierOption references a scored supplier candidate.
type SupplierOption struct {
	SupplierID string  `json:"supplier_id"`
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
}

// ReorderRecommendation is the output of one policy analysis.
type ReorderRecommendation struct {
	ID                string           `json:"id" db:"id"`
	ProductID         string           `json:"product_id" db:"product_id"`
	WarehouseID       string           `json:"warehouse_id" db:"warehouse_id"`
	Stock             InventoryLevels  `json:"stock"`
	Quantity          int              `json:"quantity" db:"quantity"`
	ReorderPoint      int              `json:"reorder_point" db:"reorder_point"`
	TargetStock       int              `json:"target_stock" db:"target_stock"`
	Urgency           string           `json:"urgency" db:"urgency"`
	SupplierID        string           `json:"supplier_id" db:"supplier_id"`
	SupplierName      string           `json:"supplier_name" db:"supplier_name"`
	Alternatives      []SupplierOption `json:"alternatives"`
	Cost              CostBreakdown    `json:"cost"`
	Forecast          ForecastSummary  `json:"forecast"`
	Risk              RiskFactors      `json:"risk"`
	OrderBy           time.Time        `json:"order_by" db:"order_by"`
	ExpectedDelivery  time.Time        `json:"expected_delivery" db:"expected_delivery"`
	DaysUntilStockout float64          `json:"days_until_stockout" db:"days_until_stockout"`
	Reasoning         []string         `json:"reasoning"`
	Warnings          []string         `json:"warnings"`
	Confidence        float64          `json:"confidence" db:"confidence"`
	AutoApproved      bool             `json:"auto_approved" db:"auto_approved"`
	Status            string           `json:"status" db:"status"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at" db:"updated_at"`
	ExpiresAt         time.Time        `json:"expires_at" db:"expires_at"`
}

// POLine is one line item on a purchase order.
type POLine struct {
	ProductID        string          `json:"product_id"`
	SKU              string          `json:"sku"`
	Quantity         int             `json:"quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	LineTotal        decimal.Decimal `json:"line_total"`
	ExpectedDelivery time.Time       `json:"expected_delivery"`
}

// PurchaseOrder is created from an approved recommendation.
type PurchaseOrder struct {
	ID               string          `json:"id" db:"id"`
	OrderNumber      string          `json:"order_number" db:"order_number"`
	SupplierID       string          `json:"supplier_id" db:"supplier_id"`
	Items            []POLine        `json:"items"`
	Subtotal         decimal.Decimal `json:"subtotal" db:"subtotal"`
	Tax              decimal.Decimal `json:"tax" db:"tax"`
	Shipping         decimal.Decimal `json:"shipping" db:"shipping"`
	Discount         decimal.Decimal `json:"discount" db:"discount"`
	Total            decimal.Decimal `json:"total" db:"total"`
	Status           string          `json:"status" db:"status"`
	OrderedAt        time.Time       `json:"ordered_at" db:"ordered_at"`
	ExpectedAt       time.Time       `json:"expected_at" db:"expected_at"`
	DeliveredAt      *time.Time      `json:"delivered_at,omitempty" db:"delivered_at"`
	SentAt           *time.Time      `json:"sent_at,omitempty" db:"sent_at"`
	ConfirmedAt      *time.Time      `json:"confirmed_at,omitempty" db:"confirmed_at"`
	TrackingNumber   string          `json:"tracking_number,omitempty" db:"tracking_number"`
	Notes            string          `json:"notes,omitempty" db:"notes"`
	RecommendationID string          `json:"recommendation_id" db:"recommendation_id"`
	AutoGenerated    bool            `json:"auto_generated" db:"auto_generated"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}
