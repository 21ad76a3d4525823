package models

import "github.com/shopspring/decimal"

// Employee is a staff member that can operate a terminal.
type Employee struct {
	SyncMeta

	FullName string              `json:"full_name"`
	Username string              `json:"username"`
	Salary   decimal.NullDecimal `json:"salary,omitempty"`

	IsAdmin            bool `json:"is_admin"`
	CanSell            bool `json:"can_sell"`
	CanManageInventory bool `json:"can_manage_inventory"`
	CanManageExpenses  bool `json:"can_manage_expenses"`

	UserID *int64 `json:"user_id,omitempty"`
}
