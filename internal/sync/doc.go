// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Luiza Romeira

// Package sync implements the multi-entity data synchronization engine:
// the mechanism that reconciles records between the authoritative server
// store and intermittently-connected POS terminals.
//
// Every syncable entity type (products, sales, customers, ...) is handled
// by one generic compare-and-merge algorithm with last-write-wins conflict
// resolution. Entity-specific concerns — SQL access, wire decoding and
// validation — are supplied through a closed, startup-time Registry of
// typed Adapters; the engine itself never dispatches on entity names
// beyond the initial registry lookup.
package sync
