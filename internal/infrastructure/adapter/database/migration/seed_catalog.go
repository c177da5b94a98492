package migration

import (
	"context"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
	"github.com/amirhossein-jamali/receipt-points/internal/domain/port/persistence"
)

// DemoProduct is one row of the demo catalog
type DemoProduct struct {
	Name          string
	PointsPerUnit int64
}

// DemoCatalog covers the default TEST: receipt and a few common grocery items
var DemoCatalog = []DemoProduct{
	{Name: "Test Product 1", PointsPerUnit: 10},
	{Name: "Test Product 2", PointsPerUnit: 25},
	{Name: "Coca-Cola 0.5L", PointsPerUnit: 5},
	{Name: "Milka Alpine Milk 100g", PointsPerUnit: 8},
	{Name: "Jogurt 1L", PointsPerUnit: 3},
	{Name: "Hleb Beli 500g", PointsPerUnit: 2},
}

// SeedDemoCatalog creates the demo products whose names are not yet in the active catalog
func SeedDemoCatalog(ctx context.Context, products persistence.ProductRepository, logger coreport.Logger) (int, error) {
	existing, err := products.FindActive(ctx)
	if err != nil {
		return 0, err
	}

	known := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		known[p.Name] = struct{}{}
	}

	created := 0
	for _, demo := range DemoCatalog {
		if _, ok := known[demo.Name]; ok {
			continue
		}

		product := &entity.Product{
			ID:            uuid.NewString(),
			Name:          demo.Name,
			PointsPerUnit: demo.PointsPerUnit,
			Status:        entity.ProductActive,
		}
		if err := products.Create(ctx, product); err != nil {
			logger.Error("Failed to seed demo product", map[string]any{
				"product": demo.Name,
				"error":   err.Error(),
			})
			return created, err
		}
		created++
	}

	logger.Info("Demo catalog seeded", map[string]any{
		"created":  created,
		"existing": len(existing),
	})
	return created, nil
}
