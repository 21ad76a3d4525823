// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Luiza Romeira

package models

import "github.com/shopspring/decimal"

// UserRole enumerates the authorization roles of a user account.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleCashier UserRole = "cashier"
	RoleViewer  UserRole = "viewer"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier, RoleViewer:
		return true
	}
	return false
}

// User is a system account. It doubles as a syncable entity: terminals
// receive user records so that cashiers can log in while offline.
//
// HashedPassword never travels through the sync wire format and is not
// overwritten by sync merges; it is managed only by the auth endpoints.
type User struct {
	SyncMeta

	Username string   `json:"username"`
	Email    *string  `json:"email,omitempty"`
	FullName string   `json:"full_name"`
	Role     UserRole `json:"role"`

	CanSupply bool                `json:"can_supply"`
	Salary    decimal.NullDecimal `json:"salary,omitempty"`

	HashedPassword string `json:"-"`
}

// Credentials is the payload of the register and login endpoints.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}
