// Package validators holds the field-level validation rules applied to
// incoming wire records before they reach the sync engine. Each function
// covers one entity type and reports the first violation as a
// *sync.ValidationError, which the engine routes to the conflicts set.
package validators

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lromeira/pdv-sync/internal/sync"
	"github.com/lromeira/pdv-sync/models"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// User validates a user wire record.
func User(u *models.User) error {
	if strings.TrimSpace(u.Username) == "" {
		return sync.Validation("username", "required")
	}
	if strings.TrimSpace(u.FullName) == "" {
		return sync.Validation("full_name", "required")
	}
	if !u.Role.Valid() {
		return sync.Validation("role", "unknown role")
	}
	if u.Salary.Valid && u.Salary.Decimal.IsNegative() {
		return sync.Validation("salary", "must not be negative")
	}

	return nil
}

// Product validates a product wire record.
func Product(p *models.Product) error {
	if strings.TrimSpace(p.SKU) == "" {
		return sync.Validation("sku", "required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return sync.Validation("name", "required")
	}
	if p.CostPrice.IsNegative() {
		return sync.Validation("cost_price", "must not be negative")
	}
	if p.SalePrice.IsNegative() {
		return sync.Validation("sale_price", "must not be negative")
	}
	if p.CurrentStock < 0 {
		return sync.Validation("current_stock", "must not be negative")
	}
	if p.MinStock < 0 {
		return sync.Validation("min_stock", "must not be negative")
	}

	return nil
}

// Category validates a category wire record.
func Category(c *models.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return sync.Validation("name", "required")
	}
	if c.Color != nil && !hexColorPattern.MatchString(*c.Color) {
		return sync.Validation("color", "must be a #RRGGBB hex code")
	}

	return nil
}

// Customer validates a customer wire record.
func Customer(c *models.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return sync.Validation("name", "required")
	}

	return nil
}

// Sale validates a sale wire record.
func Sale(s *models.Sale) error {
	if strings.TrimSpace(s.SaleNumber) == "" {
		return sync.Validation("sale_number", "required")
	}
	if !s.Status.Valid() {
		return sync.Validation("status", "unknown sale status")
	}
	if s.PaymentMethod != nil && !s.PaymentMethod.Valid() {
		return sync.Validation("payment_method", "unknown payment method")
	}
	if s.Subtotal.IsNegative() {
		return sync.Validation("subtotal", "must not be negative")
	}
	if s.TaxAmount.IsNegative() {
		return sync.Validation("tax_amount", "must not be negative")
	}
	if s.DiscountAmount.IsNegative() {
		return sync.Validation("discount_amount", "must not be negative")
	}
	if s.TotalAmount.IsNegative() {
		return sync.Validation("total_amount", "must not be negative")
	}

	return nil
}

// SaleItem validates a sale item wire record.
func SaleItem(i *models.SaleItem) error {
	if i.SaleID <= 0 {
		return sync.Validation("sale_id", "required and must be positive")
	}
	if i.ProductID <= 0 {
		return sync.Validation("product_id", "required and must be positive")
	}
	if !i.Quantity.IsPositive() {
		return sync.Validation("quantity", "must be positive")
	}
	if i.UnitPrice.IsNegative() {
		return sync.Validation("unit_price", "must not be negative")
	}
	if i.DiscountPercent.IsNegative() || i.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return sync.Validation("discount_percent", "must be between 0 and 100")
	}
	if i.TotalPrice.IsNegative() {
		return sync.Validation("total_price", "must not be negative")
	}
	if i.IsWeightSale && (!i.WeightInKg.Valid || !i.WeightInKg.Decimal.IsPositive()) {
		return sync.Validation("weight_in_kg", "required for weight sales")
	}

	return nil
}

// Employee validates an employee wire record.
func Employee(e *models.Employee) error {
	if strings.TrimSpace(e.FullName) == "" {
		return sync.Validation("full_name", "required")
	}
	if strings.TrimSpace(e.Username) == "" {
		return sync.Validation("username", "required")
	}
	if e.Salary.Valid && e.Salary.Decimal.IsNegative() {
		return sync.Validation("salary", "must not be negative")
	}

	return nil
}

// InventoryMovement validates an inventory movement wire record.
func InventoryMovement(m *models.InventoryMovement) error {
	if m.ProductID <= 0 {
		return sync.Validation("product_id", "required and must be positive")
	}
	if !m.MovementType.Valid() {
		return sync.Validation("movement_type", "unknown movement type")
	}
	if m.NewStock < 0 {
		return sync.Validation("new_stock", "must not be negative")
	}
	if m.PreviousStock < 0 {
		return sync.Validation("previous_stock", "must not be negative")
	}

	return nil
}
