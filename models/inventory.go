package models

// MovementType enumerates the kinds of inventory movements.
type MovementType string

const (
	MovementPurchase   MovementType = "purchase"
	MovementSale       MovementType = "sale"
	MovementAdjustment MovementType = "adjustment"
	MovementTransfer   MovementType = "transfer"
	MovementReturn     MovementType = "return"
	MovementLoss       MovementType = "loss"
)

// Valid reports whether m is a known movement type.
func (m MovementType) Valid() bool {
	switch m {
	case MovementPurchase, MovementSale, MovementAdjustment,
		MovementTransfer, MovementReturn, MovementLoss:
		return true
	}
	return false
}

// InventoryMovement is an audit entry for a stock change of one product.
type InventoryMovement struct {
	SyncMeta

	ProductID    int64        `json:"product_id"`
	MovementType MovementType `json:"movement_type"`

	Quantity      int64 `json:"quantity"`
	PreviousStock int64 `json:"previous_stock"`
	NewStock      int64 `json:"new_stock"`

	// ReferenceID/ReferenceType point at the document that caused the
	// movement (a sale number, a purchase order, ...).
	ReferenceID   *string `json:"reference_id,omitempty"`
	ReferenceType *string `json:"reference_type,omitempty"`

	Notes *string `json:"notes,omitempty"`
}
