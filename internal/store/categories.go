package store

import (
	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/models"
)

var categoryColumns = []string{
	"id", "name", "description", "color",
	"last_updated", "synced", "is_active",
}

func newCategoryStore(log *logger.Logger) *tableStore[*models.Category] {
	return &tableStore[*models.Category]{
		table:   "categories",
		columns: categoryColumns,
		scan:    scanCategory,
		values:  categoryValues,
		logger:  log,
	}
}

func scanCategory(row rowScanner) (*models.Category, error) {
	var c models.Category
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Color,
		&c.LastUpdated, &c.Synced, &c.IsActive,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func categoryValues(c *models.Category) map[string]any {
	return map[string]any{
		"id":           c.ID,
		"name":         c.Name,
		"description":  c.Description,
		"color":        c.Color,
		"last_updated": c.LastUpdated,
		"synced":       c.Synced,
		"is_active":    c.IsActive,
	}
}
