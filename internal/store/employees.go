package store

import (
	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/models"
)

var employeeColumns = []string{
	"id", "full_name", "username", "salary",
	"is_admin", "can_sell", "can_manage_inventory", "can_manage_expenses",
	"user_id", "last_updated", "synced", "is_active",
}

func newEmployeeStore(log *logger.Logger) *tableStore[*models.Employee] {
	return &tableStore[*models.Employee]{
		table:   "employees",
		columns: employeeColumns,
		scan:    scanEmployee,
		values:  employeeValues,
		logger:  log,
	}
}

func scanEmployee(row rowScanner) (*models.Employee, error) {
	var e models.Employee
	err := row.Scan(
		&e.ID, &e.FullName, &e.Username, &e.Salary,
		&e.IsAdmin, &e.CanSell, &e.CanManageInventory, &e.CanManageExpenses,
		&e.UserID, &e.LastUpdated, &e.Synced, &e.IsActive,
	)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func employeeValues(e *models.Employee) map[string]any {
	return map[string]any{
		"id":                   e.ID,
		"full_name":            e.FullName,
		"username":             e.Username,
		"salary":               e.Salary,
		"is_admin":             e.IsAdmin,
		"can_sell":             e.CanSell,
		"can_manage_inventory": e.CanManageInventory,
		"can_manage_expenses":  e.CanManageExpenses,
		"user_id":              e.UserID,
		"last_updated":         e.LastUpdated,
		"synced":               e.Synced,
		"is_active":            e.IsActive,
	}
}
