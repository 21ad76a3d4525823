// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Luiza Romeira

package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/internal/store"
	"github.com/lromeira/pdv-sync/internal/sync"
)

// syncService is the concrete implementation of SyncService. The merge
// semantics live in the sync engine; this layer adds per-terminal checkpoint
// bookkeeping around successful exchanges.
type syncService struct {
	engine      *sync.Engine
	checkpoints store.CheckpointStore
	logger      *logger.Logger
}

// NewSyncService constructs a SyncService over the given engine. checkpoints
// may be nil, in which case no watermarks are recorded and Status reports an
// empty map.
func NewSyncService(engine *sync.Engine, checkpoints store.CheckpointStore, logger *logger.Logger) SyncService {
	return &syncService{
		engine:      engine,
		checkpoints: checkpoints,
		logger:      logger,
	}
}

// Push applies a batch of client-modified records and records the caller's
// checkpoint for the entity on success. Checkpoint recording is best effort:
// a Redis failure is logged but never fails a committed push.
func (s *syncService) Push(ctx context.Context, userID int64, entity string, batch []json.RawMessage, since *time.Time) (*sync.Result, error) {
	result, err := s.engine.Push(ctx, entity, batch, since)
	if err != nil {
		return nil, err
	}

	s.recordCheckpoint(ctx, userID, entity)

	return result, nil
}

// Pull returns active records of one entity type changed strictly after
// since, recording the caller's checkpoint on success.
func (s *syncService) Pull(ctx context.Context, userID int64, entity string, since time.Time) ([]json.RawMessage, error) {
	records, err := s.engine.Pull(ctx, entity, since)
	if err != nil {
		return nil, err
	}

	s.recordCheckpoint(ctx, userID, entity)

	return records, nil
}

// Status reports the caller's recorded checkpoints per entity type. Entities
// the caller has never exchanged are absent from the map.
func (s *syncService) Status(ctx context.Context, userID int64) (map[string]time.Time, error) {
	if s.checkpoints == nil {
		return map[string]time.Time{}, nil
	}

	return s.checkpoints.All(ctx, userID, s.engine.Entities())
}

func (s *syncService) recordCheckpoint(ctx context.Context, userID int64, entity string) {
	if s.checkpoints == nil {
		return
	}

	if err := s.checkpoints.Record(ctx, userID, entity, time.Now().UTC()); err != nil {
		logger.FromContext(ctx).Err(err).
			Int64("user_id", userID).
			Str("entity", entity).
			Msg("failed to record sync checkpoint")
	}
}
