package models

import "github.com/shopspring/decimal"

// Product is a sellable item in the catalogue.
type Product struct {
	SyncMeta

	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	CategoryID   *int64          `json:"category_id,omitempty"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	CurrentStock int64           `json:"current_stock"`
	MinStock     int64           `json:"min_stock"`
	SoldByWeight bool            `json:"sold_by_weight"`
}
