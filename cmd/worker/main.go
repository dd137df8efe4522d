package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/restock-go/internal/config"
	"github.com/andresuchdata/restock-go/internal/feeds"
	"github.com/andresuchdata/restock-go/internal/notify"
	"github.com/andresuchdata/restock-go/internal/repository/memory"
	"github.com/andresuchdata/restock-go/internal/service"
	"github.com/andresuchdata/restock-go/pkg/logger"
)

// Headless analysis worker: runs the scheduler loop and exposes a
// minimal control surface for health checks and manual cycle triggers.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.SetLevel(cfg.Server.Mode)

	svc := service.NewReplenishmentService(buildDeps(cfg), cfg.Engine)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := service.NewScheduler(svc, cfg.Engine.CycleInterval)
	scheduler.Start(ctx)

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	r.HandleFunc("/run", func(w http.ResponseWriter, r *http.Request) {
		recs, err := svc.RunAnalysisCycle(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"recommendations": recs,
			"total":           len(recs),
		})
	}).Methods("POST")

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		log.Info().Str("addr", addr).Msg("Worker control server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Worker control server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Worker shutting down")
	scheduler.Stop()
	srv.Close()
}

func buildDeps(cfg *config.Config) service.Deps {
	inventory := feeds.NewStaticInventoryProvider()
	if cfg.Feeds.InventoryCSV != "" {
		if _, err := inventory.LoadFile(cfg.Feeds.InventoryCSV); err != nil {
			log.Warn().Err(err).Msg("Failed to load inventory feed")
		}
	}
	sales := feeds.NewCSVSalesProvider()
	if cfg.Feeds.SalesCSV != "" {
		if _, err := sales.LoadFile(cfg.Feeds.SalesCSV); err != nil {
			log.Warn().Err(err).Msg("Failed to load sales feed")
		}
	}

	deps := service.Deps{
		Policies:        memory.NewPolicyRepository(),
		Suppliers:       memory.NewSupplierRepository(),
		Recommendations: memory.NewRecommendationRepository(),
		Orders:          memory.NewPurchaseOrderRepository(),
		Inventory:       inventory,
		Sales:           sales,
		Catalog:         feeds.NewStaticCatalogProvider(),
		Dispatcher:      feeds.NewLogDispatcher(),
	}

	if cfg.Notify.RabbitURL != "" {
		sink, err := notify.NewRabbitSink(notify.RabbitConfig{
			URL:      cfg.Notify.RabbitURL,
			Exchange: cfg.Notify.RabbitExchange,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Event exchange unavailable, falling back to log sink")
		} else {
			deps.Sink = sink
		}
	}

	return deps
}
