// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Luiza Romeira

package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/internal/utils"
	"github.com/lromeira/pdv-sync/models"
)

// pullEntity serves GET /sync/{entity}?last_sync=<RFC 3339>.
//
// It returns the active records of the entity type changed strictly after
// the caller's watermark, under the server_updated key. The synced_records
// and conflicts sets are always empty on a pull.
func (h *Handler) pullEntity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.pullEntity").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	entity := chi.URLParam(r, "entity")

	since, err := lastSyncParam(r, true)
	if err != nil {
		log.Err(err).Str("entity", entity).Msg("bad last_sync parameter")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.services.SyncService.Pull(ctx, userID, entity, *since)
	if err != nil {
		log.Err(err).Str("entity", entity).Msg("error pulling entity records")
		http.Error(w, "error pulling entity records", statusFromError(err))
		return
	}

	response := models.SyncResponse{
		SyncedRecords: []json.RawMessage{},
		Conflicts:     []json.RawMessage{},
		ServerUpdated: records,
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

// pushEntity serves POST /sync/{entity}?last_sync=<RFC 3339>.
//
// The request body is a JSON array of records of the entity type. Accepted
// records come back under synced_records with their server-assigned
// metadata; rejected ones under conflicts. When last_sync is supplied the
// response also carries server_updated, so one round trip completes a full
// bidirectional exchange.
func (h *Handler) pushEntity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.pushEntity").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	entity := chi.URLParam(r, "entity")

	since, err := lastSyncParam(r, false)
	if err != nil {
		log.Err(err).Str("entity", entity).Msg("bad last_sync parameter")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var batch []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		log.Err(err).Str("entity", entity).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.SyncService.Push(ctx, userID, entity, batch, since)
	if err != nil {
		log.Err(err).Str("entity", entity).Msg("error pushing entity records")
		http.Error(w, "error pushing entity records", statusFromError(err))
		return
	}

	response := models.SyncResponse{
		SyncedRecords: result.Synced,
		Conflicts:     result.Conflicts,
		ServerUpdated: result.ServerUpdated,
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

// syncStatus serves GET /sync/status: the caller's recorded checkpoints per
// entity type.
func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.syncStatus").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	checkpoints, err := h.services.SyncService.Status(ctx, userID)
	if err != nil {
		log.Err(err).Msg("error reading sync status")
		http.Error(w, "error reading sync status", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.SyncStatusResponse{Checkpoints: checkpoints}, http.StatusOK)
}

// lastSyncParam parses the last_sync query parameter as an RFC 3339
// timestamp. When required is false an absent parameter yields (nil, nil).
func lastSyncParam(r *http.Request, required bool) (*time.Time, error) {
	raw := r.URL.Query().Get("last_sync")
	if raw == "" {
		if required {
			return nil, ErrMissingLastSync
		}
		return nil, nil
	}

	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, ErrInvalidLastSync
	}

	return &at, nil
}
