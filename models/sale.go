// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Luiza Romeira

package models

import "github.com/shopspring/decimal"

// SaleStatus enumerates the lifecycle states of a sale.
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "concluida"
	SaleStatusPending   SaleStatus = "pendente"
	SaleStatusCancelled SaleStatus = "cancelada"
)

// Valid reports whether s is a known sale status.
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusCompleted, SaleStatusPending, SaleStatusCancelled:
		return true
	}
	return false
}

// PaymentMethod enumerates the accepted payment methods.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "dinheiro"
	PaymentCardCredit PaymentMethod = "cartao_credito"
	PaymentCardDebit  PaymentMethod = "cartao_debito"
	PaymentPix        PaymentMethod = "pix"
	PaymentTransfer   PaymentMethod = "transferencia"
)

// Valid reports whether p is a known payment method.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCardCredit, PaymentCardDebit, PaymentPix, PaymentTransfer:
		return true
	}
	return false
}

// Sale is a completed or in-progress checkout transaction.
type Sale struct {
	SyncMeta

	SaleNumber string     `json:"sale_number"`
	Status     SaleStatus `json:"status"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`

	PaymentMethod *PaymentMethod `json:"payment_method,omitempty"`
	PaymentStatus *string        `json:"payment_status,omitempty"`

	CustomerID *int64 `json:"customer_id,omitempty"`
	EmployeeID *int64 `json:"employee_id,omitempty"`
	UserID     *int64 `json:"user_id,omitempty"`

	Notes           *string `json:"notes,omitempty"`
	IsDelivery      bool    `json:"is_delivery"`
	DeliveryAddress *string `json:"delivery_address,omitempty"`
}
