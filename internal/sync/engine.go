// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Luiza Romeira

package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lromeira/pdv-sync/internal/logger"
)

// Result is the outcome of one push exchange. Every input record lands in
// exactly one of Synced or Conflicts; ServerUpdated is only populated when
// the caller supplied a watermark.
type Result struct {
	Synced        []json.RawMessage
	Conflicts     []json.RawMessage
	ServerUpdated []json.RawMessage
}

// Engine is the generic compare-and-merge algorithm shared by every entity
// type. It owns last-write-wins conflict resolution; persistence and wire
// decoding are delegated to the registered adapters.
//
// The engine keeps no mutable state between calls, so one instance serves
// all entity types concurrently.
type Engine struct {
	registry *Registry
	txm      TxManager
	db       Querier

	// now is the clock used to stamp accepted records; injectable for tests.
	now func() time.Time

	logger *logger.Logger
}

// NewEngine constructs an Engine over the given registry. txm supplies the
// unit-of-work boundary for pushes; db serves read-only pulls.
func NewEngine(registry *Registry, txm TxManager, db Querier, log *logger.Logger) *Engine {
	return &Engine{
		registry: registry,
		txm:      txm,
		db:       db,
		now:      time.Now,
		logger:   log,
	}
}

// Push applies a batch of client-modified records for one entity type.
//
// Records are processed strictly in batch order:
//
//  1. Decode failures route the raw record, with the reason attached under
//     "_error", to Conflicts; the batch continues.
//  2. A record with an id unknown to the store is inserted as new.
//  3. Otherwise the incoming last_updated is compared with the stored one:
//     strictly greater wins and overwrites; less than or equal — ties
//     included — loses and is routed to Conflicts. The tie resolves in
//     favour of the stored record so that re-submitting an already-synced
//     batch cannot oscillate.
//
// All accepted writes commit as one unit of work. When since is non-nil,
// ServerUpdated is computed inside the same transaction, after the writes,
// so it reflects the state the caller will observe. Response encoding also
// happens inside the transaction, so a record that cannot be reported back
// aborts the batch rather than committing silently: a push either returns
// a fully persisted Result or an error and no result at all.
func (e *Engine) Push(ctx context.Context, entity string, batch []json.RawMessage, since *time.Time) (*Result, error) {
	log := logger.FromContext(ctx)

	ad, err := e.registry.Lookup(entity)
	if err != nil {
		return nil, err
	}

	var synced, conflicts, serverUpdated []json.RawMessage

	txErr := e.txm.InTx(ctx, func(q Querier) error {
		// the transaction manager may re-run an aborted unit of work, so
		// every attempt starts from clean result sets
		synced = make([]json.RawMessage, 0, len(batch))
		conflicts = make([]json.RawMessage, 0, len(batch))
		serverUpdated = nil

		st := ad.Store()

		for _, raw := range batch {
			rec, decodeErr := ad.Decode(raw)
			if decodeErr != nil {
				log.Debug().
					Str("entity", entity).
					Str("reason", decodeErr.Error()).
					Msg("record failed validation, routed to conflicts")
				conflicts = append(conflicts, annotateConflict(raw, decodeErr))
				continue
			}

			stored, getErr := st.Get(ctx, q, rec.EntityID())
			switch {
			case errors.Is(getErr, ErrRecordNotFound):
				stored = nil
			case getErr != nil:
				return getErr
			default:
				if !rec.Meta().LastUpdated.After(stored.Meta().LastUpdated) {
					// Stored record retains authority, ties included.
					conflicts = append(conflicts, raw)
					continue
				}
			}

			meta := rec.Meta()
			meta.Synced = true
			meta.LastUpdated = e.acceptedAt(stored)

			if upsertErr := st.Upsert(ctx, q, rec); upsertErr != nil {
				return upsertErr
			}

			encoded, encErr := ad.Encode(rec)
			if encErr != nil {
				return fmt.Errorf("encoding accepted %s record %d: %w", entity, rec.EntityID(), encErr)
			}
			synced = append(synced, encoded)
		}

		if since != nil {
			serverChanged, listErr := st.ListChangedSince(ctx, q, *since)
			if listErr != nil {
				return listErr
			}

			serverUpdated = make([]json.RawMessage, 0, len(serverChanged))
			for _, rec := range serverChanged {
				encoded, encErr := ad.Encode(rec)
				if encErr != nil {
					return fmt.Errorf("encoding changed %s record %d: %w", entity, rec.EntityID(), encErr)
				}
				serverUpdated = append(serverUpdated, encoded)
			}
		}

		return nil
	})
	if txErr != nil {
		log.Err(txErr).
			Str("entity", entity).
			Int("batch_size", len(batch)).
			Msg("push batch rolled back")
		return nil, fmt.Errorf("%w: %w", ErrPersistence, txErr)
	}

	if serverUpdated == nil {
		serverUpdated = make([]json.RawMessage, 0)
	}

	result := &Result{
		Synced:        synced,
		Conflicts:     conflicts,
		ServerUpdated: serverUpdated,
	}

	log.Info().
		Str("entity", entity).
		Int("synced", len(result.Synced)).
		Int("conflicts", len(result.Conflicts)).
		Int("server_updated", len(result.ServerUpdated)).
		Msg("push batch committed")

	return result, nil
}

// Pull returns all active records of one entity type changed strictly after
// the given watermark. Read-only and idempotent.
func (e *Engine) Pull(ctx context.Context, entity string, since time.Time) ([]json.RawMessage, error) {
	ad, err := e.registry.Lookup(entity)
	if err != nil {
		return nil, err
	}

	records, err := ad.Store().ListChangedSince(ctx, e.db, since)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	encoded := make([]json.RawMessage, 0, len(records))
	for _, rec := range records {
		raw, encErr := ad.Encode(rec)
		if encErr != nil {
			return nil, fmt.Errorf("encoding %s record %d: %w", entity, rec.EntityID(), encErr)
		}
		encoded = append(encoded, raw)
	}

	return encoded, nil
}

// Entities returns the entity-type names the engine can synchronize.
func (e *Engine) Entities() []string {
	return e.registry.Names()
}

// acceptedAt returns the timestamp to stamp on an accepted record.
// last_updated must never decrease, so when the server clock lags behind
// a stored value the stored timestamp is kept instead.
func (e *Engine) acceptedAt(stored Record) time.Time {
	ts := e.now().UTC()
	if stored != nil && ts.Before(stored.Meta().LastUpdated) {
		return stored.Meta().LastUpdated
	}

	return ts
}

// annotateConflict attaches the validation failure reason to a rejected raw
// record under the "_error" key. Records that are not JSON objects are
// returned unchanged.
func annotateConflict(raw json.RawMessage, reason error) json.RawMessage {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return raw
	}

	fields["_error"] = reason.Error()

	annotated, err := json.Marshal(fields)
	if err != nil {
		return raw
	}

	return annotated
}
