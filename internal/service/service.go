package service

import (
	"sync"
	"time"

	"github.com/andresuchdata/restock-go/internal/cache"
	"github.com/andresuchdata/restock-go/internal/config"
	"github.com/andresuchdata/restock-go/internal/feeds"
	"github.com/andresuchdata/restock-go/internal/forecast"
	"github.com/andresuchdata/restock-go/internal/notify"
	"github.com/andresuchdata/restock-go/internal/repository"
	"github.com/andresuchdata/restock-go/internal/storage"
)

// ReplenishmentService orchestrates the analysis cycle and the
// recommendation / purchase order lifecycle.
type ReplenishmentService struct {
	policies        repository.PolicyRepository
	suppliers       repository.SupplierRepository
	recommendations repository.RecommendationRepository
	orders          repository.PurchaseOrderRepository

	forecaster *forecast.Forecaster
	inventory  feeds.InventoryProvider
	sales      feeds.SalesProvider
	catalog    feeds.CatalogProvider
	dispatcher feeds.Dispatcher

	sink    notify.Sink
	summary cache.SummaryCache
	archive *storage.OrderArchive

	cfg config.EngineConfig
	now func() time.Time

	// cycleMu enforces single-flight: at most one analysis cycle runs
	// at a time, re-entrant triggers return immediately.
	cycleMu sync.Mutex
}

// Deps bundles the service's collaborators.
type Deps struct {
	Policies        repository.PolicyRepository
	Suppliers       repository.SupplierRepository
	Recommendations repository.RecommendationRepository
	Orders          repository.PurchaseOrderRepository
	Forecaster      *forecast.Forecaster
	Inventory       feeds.InventoryProvider
	Sales           feeds.SalesProvider
	Catalog         feeds.CatalogProvider
	Dispatcher      feeds.Dispatcher
	Sink            notify.Sink
	SummaryCache    cache.SummaryCache
	Archive         *storage.OrderArchive
	Now             func() time.Time
}

func NewReplenishmentService(deps Deps, cfg config.EngineConfig) *ReplenishmentService {
	if deps.Sink == nil {
		deps.Sink = notify.NewLogSink()
	}
	if deps.SummaryCache == nil {
		deps.SummaryCache = cache.NewNoopSummaryCache()
	}
	if deps.Forecaster == nil {
		deps.Forecaster = forecast.NewForecaster()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = 365
	}
	if cfg.ForecastHorizonDays <= 0 {
		cfg.ForecastHorizonDays = 90
	}
	if cfg.AnnualDemandFactor <= 0 {
		cfg.AnnualDemandFactor = 4
	}
	if cfg.RecommendationTTLHours <= 0 {
		cfg.RecommendationTTLHours = 72
	}

	return &ReplenishmentService{
		policies:        deps.Policies,
		suppliers:       deps.Suppliers,
		recommendations: deps.Recommendations,
		orders:          deps.Orders,
		forecaster:      deps.Forecaster,
		inventory:       deps.Inventory,
		sales:           deps.Sales,
		catalog:         deps.Catalog,
		dispatcher:      deps.Dispatcher,
		sink:            deps.Sink,
		summary:         deps.SummaryCache,
		archive:         deps.Archive,
		cfg:             cfg,
		now:             deps.Now,
	}
}
