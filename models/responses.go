package models

import (
	"encoding/json"
	"time"
)

// SyncResponse is the body of both sync endpoints. A pull only populates
// ServerUpdated; a push populates all three sets. Slices are always
// serialized as arrays, never as null, so that terminal clients can
// iterate the response without nil checks.
type SyncResponse struct {
	// SyncedRecords are the records accepted and persisted by this push,
	// re-encoded with their server-assigned metadata (synced = true and
	// the new last_updated).
	SyncedRecords []json.RawMessage `json:"synced_records"`

	// Conflicts are the records the server refused: the stored version
	// won the timestamp comparison, or the record failed validation
	// (in which case the entry carries the reason under "_error").
	Conflicts []json.RawMessage `json:"conflicts"`

	// ServerUpdated are the active records changed server-side since the
	// caller's last_sync watermark.
	ServerUpdated []json.RawMessage `json:"server_updated"`
}

// SyncStatusResponse reports, per entity type, the server-recorded time of
// the caller's last successful sync exchange.
type SyncStatusResponse struct {
	Checkpoints map[string]time.Time `json:"checkpoints"`
}
