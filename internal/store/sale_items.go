package store

import (
	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/models"
)

var saleItemColumns = []string{
	"id", "sale_id", "product_id",
	"quantity", "unit_price", "discount_percent", "total_price",
	"is_weight_sale", "weight_in_kg", "custom_price",
	"last_updated", "synced", "is_active",
}

func newSaleItemStore(log *logger.Logger) *tableStore[*models.SaleItem] {
	return &tableStore[*models.SaleItem]{
		table:   "sale_items",
		columns: saleItemColumns,
		scan:    scanSaleItem,
		values:  saleItemValues,
		logger:  log,
	}
}

func scanSaleItem(row rowScanner) (*models.SaleItem, error) {
	var i models.SaleItem
	err := row.Scan(
		&i.ID, &i.SaleID, &i.ProductID,
		&i.Quantity, &i.UnitPrice, &i.DiscountPercent, &i.TotalPrice,
		&i.IsWeightSale, &i.WeightInKg, &i.CustomPrice,
		&i.LastUpdated, &i.Synced, &i.IsActive,
	)
	if err != nil {
		return nil, err
	}

	return &i, nil
}

func saleItemValues(i *models.SaleItem) map[string]any {
	return map[string]any{
		"id":               i.ID,
		"sale_id":          i.SaleID,
		"product_id":       i.ProductID,
		"quantity":         i.Quantity,
		"unit_price":       i.UnitPrice,
		"discount_percent": i.DiscountPercent,
		"total_price":      i.TotalPrice,
		"is_weight_sale":   i.IsWeightSale,
		"weight_in_kg":     i.WeightInKg,
		"custom_price":     i.CustomPrice,
		"last_updated":     i.LastUpdated,
		"synced":           i.Synced,
		"is_active":        i.IsActive,
	}
}
