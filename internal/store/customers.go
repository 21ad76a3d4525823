package store

import (
	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/models"
)

var customerColumns = []string{
	"id", "name", "email", "phone", "cpf_cnpj",
	"address", "city", "state", "zip_code",
	"birth_date", "notes", "is_vip",
	"last_updated", "synced", "is_active",
}

func newCustomerStore(log *logger.Logger) *tableStore[*models.Customer] {
	return &tableStore[*models.Customer]{
		table:   "customers",
		columns: customerColumns,
		scan:    scanCustomer,
		values:  customerValues,
		logger:  log,
	}
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.CpfCnpj,
		&c.Address, &c.City, &c.State, &c.ZipCode,
		&c.BirthDate, &c.Notes, &c.IsVIP,
		&c.LastUpdated, &c.Synced, &c.IsActive,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func customerValues(c *models.Customer) map[string]any {
	return map[string]any{
		"id":           c.ID,
		"name":         c.Name,
		"email":        c.Email,
		"phone":        c.Phone,
		"cpf_cnpj":     c.CpfCnpj,
		"address":      c.Address,
		"city":         c.City,
		"state":        c.State,
		"zip_code":     c.ZipCode,
		"birth_date":   c.BirthDate,
		"notes":        c.Notes,
		"is_vip":       c.IsVIP,
		"last_updated": c.LastUpdated,
		"synced":       c.Synced,
		"is_active":    c.IsActive,
	}
}
