package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/restock-go/internal/config"
	"github.com/andresuchdata/restock-go/internal/feeds"
	"github.com/andresuchdata/restock-go/internal/repository/memory"
	"github.com/andresuchdata/restock-go/internal/service"
	"github.com/andresuchdata/restock-go/pkg/logger"
)

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing seed data files",
		Value:   "./data/seeds",
		EnvVars: []string{"SEED_DATA_DIR"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	logger.SetLevel("info")

	app := &cli.App{
		Name:  "seed",
		Usage: "Load replenishment seed data and run analysis cycles",
		Commands: []*cli.Command{
			{
				Name:  "policies",
				Usage: "Validate and report the reorder policies file (policies.csv)",
				Flags: []cli.Flag{newDataDirFlag()},
				Action: func(c *cli.Context) error {
					policies, err := loadPolicies(filepath.Join(c.String("data-dir"), "policies.csv"))
					if err != nil {
						return err
					}
					fmt.Printf("loaded %d policies\n", len(policies))
					return nil
				},
			},
			{
				Name:  "suppliers",
				Usage: "Validate and report the supplier profiles file (suppliers.json)",
				Flags: []cli.Flag{newDataDirFlag()},
				Action: func(c *cli.Context) error {
					suppliers, err := loadSuppliers(filepath.Join(c.String("data-dir"), "suppliers.json"))
					if err != nil {
						return err
					}
					fmt.Printf("loaded %d suppliers\n", len(suppliers))
					return nil
				},
			},
			{
				Name:  "sales",
				Usage: "Validate and report the sales history file (sales.csv)",
				Flags: []cli.Flag{newDataDirFlag()},
				Action: func(c *cli.Context) error {
					provider := feeds.NewCSVSalesProvider()
					count, err := provider.LoadFile(filepath.Join(c.String("data-dir"), "sales.csv"))
					if err != nil {
						return err
					}
					fmt.Printf("loaded %d sales records\n", count)
					return nil
				},
			},
			{
				Name:   "run",
				Usage:  "Load all seed data and execute one analysis cycle",
				Flags:  []cli.Flag{newDataDirFlag()},
				Action: runCycle,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runCycle(c *cli.Context) error {
	dataDir := c.String("data-dir")
	cfg := config.Load()

	svc, err := buildService(dataDir, cfg)
	if err != nil {
		return err
	}

	recs, err := svc.RunAnalysisCycle(c.Context)
	if err != nil {
		return fmt.Errorf("analysis cycle failed: %w", err)
	}

	out, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	fmt.Printf("%d recommendations generated\n", len(recs))
	return nil
}

func buildService(dataDir string, cfg *config.Config) (*service.ReplenishmentService, error) {
	policies, err := loadPolicies(filepath.Join(dataDir, "policies.csv"))
	if err != nil {
		return nil, err
	}
	suppliers, err := loadSuppliers(filepath.Join(dataDir, "suppliers.json"))
	if err != nil {
		return nil, err
	}

	sales := feeds.NewCSVSalesProvider()
	if _, err := sales.LoadFile(filepath.Join(dataDir, "sales.csv")); err != nil {
		return nil, err
	}
	inventory := feeds.NewStaticInventoryProvider()
	if _, err := inventory.LoadFile(filepath.Join(dataDir, "inventory.csv")); err != nil {
		return nil, err
	}
	catalog := feeds.NewStaticCatalogProvider()
	if path := filepath.Join(dataDir, "catalog.csv"); fileExists(path) {
		if _, err := catalog.LoadFile(path); err != nil {
			return nil, err
		}
	}

	deps := service.Deps{
		Policies:        memory.NewPolicyRepository(),
		Suppliers:       memory.NewSupplierRepository(),
		Recommendations: memory.NewRecommendationRepository(),
		Orders:          memory.NewPurchaseOrderRepository(),
		Inventory:       inventory,
		Sales:           sales,
		Catalog:         catalog,
		Dispatcher:      feeds.NewLogDispatcher(),
	}
	svc := service.NewReplenishmentService(deps, cfg.Engine)

	ctx := context.Background()
	for _, policy := range policies {
		if err := svc.AddPolicy(ctx, policy); err != nil {
			return nil, fmt.Errorf("policy %s/%s: %w", policy.ProductID, policy.WarehouseID, err)
		}
	}
	for _, supplier := range suppliers {
		if err := svc.AddSupplier(ctx, supplier); err != nil {
			return nil, fmt.Errorf("supplier %s: %w", supplier.Name, err)
		}
	}
	return svc, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
