package models

import "github.com/shopspring/decimal"

// SaleItem is a single line of a sale. Quantity is decimal because
// weight-based items are sold in fractions of a kilogram.
type SaleItem struct {
	SyncMeta

	SaleID    int64 `json:"sale_id"`
	ProductID int64 `json:"product_id"`

	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TotalPrice      decimal.Decimal `json:"total_price"`

	IsWeightSale bool                `json:"is_weight_sale"`
	WeightInKg   decimal.NullDecimal `json:"weight_in_kg,omitempty"`
	CustomPrice  decimal.NullDecimal `json:"custom_price,omitempty"`
}
