package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/restock-go/internal/api"
	"github.com/andresuchdata/restock-go/internal/cache"
	"github.com/andresuchdata/restock-go/internal/config"
	"github.com/andresuchdata/restock-go/internal/feeds"
	"github.com/andresuchdata/restock-go/internal/notify"
	"github.com/andresuchdata/restock-go/internal/repository/memory"
	"github.com/andresuchdata/restock-go/internal/repository/postgres"
	"github.com/andresuchdata/restock-go/internal/service"
	"github.com/andresuchdata/restock-go/internal/storage"
	"github.com/andresuchdata/restock-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	deps, cleanup := buildDeps(cfg)
	defer cleanup()

	svc := service.NewReplenishmentService(deps, cfg.Engine)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := service.NewScheduler(svc, cfg.Engine.CycleInterval)
	scheduler.Start(ctx)

	router := api.NewRouter(svc, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

// buildDeps wires the service collaborators from configuration.
// Optional infrastructure degrades to in-process fallbacks so the
// server always comes up.
func buildDeps(cfg *config.Config) (service.Deps, func()) {
	closers := []func(){}
	cleanup := func() {
		for _, fn := range closers {
			fn()
		}
	}

	deps := service.Deps{
		Policies:   memory.NewPolicyRepository(),
		Suppliers:  memory.NewSupplierRepository(),
		Inventory:  loadInventory(cfg.Feeds),
		Sales:      loadSales(cfg.Feeds),
		Catalog:    loadCatalog(cfg.Feeds),
		Dispatcher: feeds.NewLogDispatcher(),
	}

	if cfg.Database.Enabled {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		closers = append(closers, func() { db.Close() })
		deps.Recommendations = postgres.NewRecommendationRepository(db)
		deps.Orders = postgres.NewPurchaseOrderRepository(db)
	} else {
		deps.Recommendations = memory.NewRecommendationRepository()
		deps.Orders = memory.NewPurchaseOrderRepository()
	}

	summaryCache, err := cache.NewSummaryCache(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("Summary cache unavailable, continuing without caching")
		summaryCache = cache.NewNoopSummaryCache()
	}
	deps.SummaryCache = summaryCache

	if cfg.Notify.RabbitURL != "" {
		sink, err := notify.NewRabbitSink(notify.RabbitConfig{
			URL:      cfg.Notify.RabbitURL,
			Exchange: cfg.Notify.RabbitExchange,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Event exchange unavailable, falling back to log sink")
		} else {
			closers = append(closers, func() { sink.Close() })
			deps.Sink = sink
		}
	}

	if cfg.Archive.Enabled {
		store, err := storage.NewMinioClient(storage.MinioConfig{
			Endpoint:  cfg.Archive.Endpoint,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			Bucket:    cfg.Archive.Bucket,
			UseSSL:    cfg.Archive.UseSSL,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Order archive unavailable, continuing without archiving")
		} else {
			deps.Archive = storage.NewOrderArchive(store)
		}
	}

	return deps, cleanup
}

func loadSales(cfg config.FeedsConfig) feeds.SalesProvider {
	provider := feeds.NewCSVSalesProvider()
	if cfg.SalesCSV != "" {
		count, err := provider.LoadFile(cfg.SalesCSV)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.SalesCSV).Msg("Failed to load sales feed")
		} else {
			log.Info().Int("records", count).Str("path", cfg.SalesCSV).Msg("Sales feed loaded")
		}
	}
	return provider
}

func loadInventory(cfg config.FeedsConfig) feeds.InventoryProvider {
	provider := feeds.NewStaticInventoryProvider()
	if cfg.InventoryCSV != "" {
		count, err := provider.LoadFile(cfg.InventoryCSV)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.InventoryCSV).Msg("Failed to load inventory feed")
		} else {
			log.Info().Int("records", count).Str("path", cfg.InventoryCSV).Msg("Inventory feed loaded")
		}
	}
	return provider
}

func loadCatalog(cfg config.FeedsConfig) feeds.CatalogProvider {
	provider := feeds.NewStaticCatalogProvider()
	if cfg.CatalogCSV != "" {
		count, err := provider.LoadFile(cfg.CatalogCSV)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.CatalogCSV).Msg("Failed to load catalog feed")
		} else {
			log.Info().Int("records", count).Str("path", cfg.CatalogCSV).Msg("Catalog feed loaded")
		}
	}
	return provider
}
