package store

import (
	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/models"
)

var inventoryColumns = []string{
	"id", "product_id", "movement_type",
	"quantity", "previous_stock", "new_stock",
	"reference_id", "reference_type", "notes",
	"last_updated", "synced", "is_active",
}

func newInventoryStore(log *logger.Logger) *tableStore[*models.InventoryMovement] {
	return &tableStore[*models.InventoryMovement]{
		table:   "inventory_movements",
		columns: inventoryColumns,
		scan:    scanInventoryMovement,
		values:  inventoryMovementValues,
		logger:  log,
	}
}

func scanInventoryMovement(row rowScanner) (*models.InventoryMovement, error) {
	var m models.InventoryMovement
	err := row.Scan(
		&m.ID, &m.ProductID, &m.MovementType,
		&m.Quantity, &m.PreviousStock, &m.NewStock,
		&m.ReferenceID, &m.ReferenceType, &m.Notes,
		&m.LastUpdated, &m.Synced, &m.IsActive,
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func inventoryMovementValues(m *models.InventoryMovement) map[string]any {
	return map[string]any{
		"id":             m.ID,
		"product_id":     m.ProductID,
		"movement_type":  string(m.MovementType),
		"quantity":       m.Quantity,
		"previous_stock": m.PreviousStock,
		"new_stock":      m.NewStock,
		"reference_id":   m.ReferenceID,
		"reference_type": m.ReferenceType,
		"notes":          m.Notes,
		"last_updated":   m.LastUpdated,
		"synced":         m.Synced,
		"is_active":      m.IsActive,
	}
}
