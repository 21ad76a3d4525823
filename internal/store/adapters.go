// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Luiza Romeira

package store

import (
	"encoding/json"

	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/internal/sync"
	"github.com/lromeira/pdv-sync/internal/validators"
	"github.com/lromeira/pdv-sync/models"
)

// entityAdapter implements [sync.Adapter] for one entity type. Decoding is
// generic JSON unmarshalling plus the shared metadata checks; field-level
// rules live in the validators package.
type entityAdapter[T sync.Record] struct {
	name     string
	store    *tableStore[T]
	alloc    func() T
	validate func(rec T) error
}

func (a *entityAdapter[T]) Name() string      { return a.name }
func (a *entityAdapter[T]) Store() sync.Store { return a.store }

// Decode parses and validates one wire record. Every failure is a
// *sync.ValidationError so the engine can route the record to conflicts
// without aborting the batch.
func (a *entityAdapter[T]) Decode(raw json.RawMessage) (sync.Record, error) {
	rec := a.alloc()
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, sync.Validation("", "malformed record: "+err.Error())
	}

	if rec.EntityID() <= 0 {
		return nil, sync.Validation("id", "required and must be positive")
	}
	if rec.Meta().LastUpdated.IsZero() {
		return nil, sync.Validation("last_updated", "required")
	}
	// SQLite compares timestamps as driver-serialized strings, so a
	// client-supplied offset must not survive into the stored value.
	rec.Meta().LastUpdated = rec.Meta().LastUpdated.UTC()

	if err := a.validate(rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (a *entityAdapter[T]) Encode(rec sync.Record) (json.RawMessage, error) {
	return json.Marshal(rec)
}

// NewAdapters returns the closed set of entity adapters known to this
// server, one per syncable table. The list is resolved once at startup;
// nothing dispatches on entity names at request time beyond the registry
// lookup.
func NewAdapters(log *logger.Logger) []sync.Adapter {
	return []sync.Adapter{
		&entityAdapter[*models.User]{
			name:     "users",
			store:    newUserStore(log),
			alloc:    func() *models.User { return new(models.User) },
			validate: validators.User,
		},
		&entityAdapter[*models.Product]{
			name:     "products",
			store:    newProductStore(log),
			alloc:    func() *models.Product { return new(models.Product) },
			validate: validators.Product,
		},
		&entityAdapter[*models.Category]{
			name:     "categories",
			store:    newCategoryStore(log),
			alloc:    func() *models.Category { return new(models.Category) },
			validate: validators.Category,
		},
		&entityAdapter[*models.Customer]{
			name:     "customers",
			store:    newCustomerStore(log),
			alloc:    func() *models.Customer { return new(models.Customer) },
			validate: validators.Customer,
		},
		&entityAdapter[*models.Sale]{
			name:     "sales",
			store:    newSaleStore(log),
			alloc:    func() *models.Sale { return new(models.Sale) },
			validate: validators.Sale,
		},
		&entityAdapter[*models.SaleItem]{
			name:     "sale_items",
			store:    newSaleItemStore(log),
			alloc:    func() *models.SaleItem { return new(models.SaleItem) },
			validate: validators.SaleItem,
		},
		&entityAdapter[*models.Employee]{
			name:     "employees",
			store:    newEmployeeStore(log),
			alloc:    func() *models.Employee { return new(models.Employee) },
			validate: validators.Employee,
		},
		&entityAdapter[*models.InventoryMovement]{
			name:     "inventories",
			store:    newInventoryStore(log),
			alloc:    func() *models.InventoryMovement { return new(models.InventoryMovement) },
			validate: validators.InventoryMovement,
		},
	}
}
