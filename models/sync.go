// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Luiza Romeira

package models

import "time"

// SyncMeta holds the synchronization metadata attached to every syncable
// row. All entity models embed it, which also makes them satisfy the
// sync.Record interface through method promotion.
type SyncMeta struct {
	// ID is the server-assigned stable identifier, unique per entity type.
	ID int64 `json:"id"`

	// LastUpdated is the timestamp of the most recent accepted write to
	// this record. It never decreases as a result of a sync operation.
	LastUpdated time.Time `json:"last_updated"`

	// Synced is true once the server and the submitting client agree on
	// the record's content.
	Synced bool `json:"synced"`

	// IsActive is the soft-delete flag. Inactive rows are excluded from
	// pull results but kept for audit.
	IsActive bool `json:"is_active"`
}

// EntityID returns the server-assigned record identifier.
func (m *SyncMeta) EntityID() int64 { return m.ID }

// Meta returns the embedded metadata so that generic sync code can read
// and update it without knowing the concrete entity type.
func (m *SyncMeta) Meta() *SyncMeta { return m }
