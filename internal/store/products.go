package store

import (
	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/models"
)

var productColumns = []string{
	"id", "sku", "name", "description", "category_id",
	"cost_price", "sale_price", "current_stock", "min_stock",
	"sold_by_weight", "last_updated", "synced", "is_active",
}

func newProductStore(log *logger.Logger) *tableStore[*models.Product] {
	return &tableStore[*models.Product]{
		table:   "products",
		columns: productColumns,
		scan:    scanProduct,
		values:  productValues,
		logger:  log,
	}
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.CategoryID,
		&p.CostPrice, &p.SalePrice, &p.CurrentStock, &p.MinStock,
		&p.SoldByWeight, &p.LastUpdated, &p.Synced, &p.IsActive,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func productValues(p *models.Product) map[string]any {
	return map[string]any{
		"id":             p.ID,
		"sku":            p.SKU,
		"name":           p.Name,
		"description":    p.Description,
		"category_id":    p.CategoryID,
		"cost_price":     p.CostPrice,
		"sale_price":     p.SalePrice,
		"current_stock":  p.CurrentStock,
		"min_stock":      p.MinStock,
		"sold_by_weight": p.SoldByWeight,
		"last_updated":   p.LastUpdated,
		"synced":         p.Synced,
		"is_active":      p.IsActive,
	}
}
