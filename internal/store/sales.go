package store

import (
	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/models"
)

var saleColumns = []string{
	"id", "sale_number", "status",
	"subtotal", "tax_amount", "discount_amount", "total_amount",
	"payment_method", "payment_status",
	"customer_id", "employee_id", "user_id",
	"notes", "is_delivery", "delivery_address",
	"last_updated", "synced", "is_active",
}

func newSaleStore(log *logger.Logger) *tableStore[*models.Sale] {
	return &tableStore[*models.Sale]{
		table:   "sales",
		columns: saleColumns,
		scan:    scanSale,
		values:  saleValues,
		logger:  log,
	}
}

func scanSale(row rowScanner) (*models.Sale, error) {
	var (
		s             models.Sale
		paymentMethod *string
	)
	err := row.Scan(
		&s.ID, &s.SaleNumber, &s.Status,
		&s.Subtotal, &s.TaxAmount, &s.DiscountAmount, &s.TotalAmount,
		&paymentMethod, &s.PaymentStatus,
		&s.CustomerID, &s.EmployeeID, &s.UserID,
		&s.Notes, &s.IsDelivery, &s.DeliveryAddress,
		&s.LastUpdated, &s.Synced, &s.IsActive,
	)
	if err != nil {
		return nil, err
	}

	if paymentMethod != nil {
		pm := models.PaymentMethod(*paymentMethod)
		s.PaymentMethod = &pm
	}

	return &s, nil
}

func saleValues(s *models.Sale) map[string]any {
	var paymentMethod *string
	if s.PaymentMethod != nil {
		pm := string(*s.PaymentMethod)
		paymentMethod = &pm
	}

	return map[string]any{
		"id":               s.ID,
		"sale_number":      s.SaleNumber,
		"status":           string(s.Status),
		"subtotal":         s.Subtotal,
		"tax_amount":       s.TaxAmount,
		"discount_amount":  s.DiscountAmount,
		"total_amount":     s.TotalAmount,
		"payment_method":   paymentMethod,
		"payment_status":   s.PaymentStatus,
		"customer_id":      s.CustomerID,
		"employee_id":      s.EmployeeID,
		"user_id":          s.UserID,
		"notes":            s.Notes,
		"is_delivery":      s.IsDelivery,
		"delivery_address": s.DeliveryAddress,
		"last_updated":     s.LastUpdated,
		"synced":           s.Synced,
		"is_active":        s.IsActive,
	}
}
