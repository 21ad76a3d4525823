package sync

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lromeira/pdv-sync/models"
)

// Record is the engine's view of one syncable row. Entity models satisfy
// it by embedding [models.SyncMeta].
type Record interface {
	// EntityID returns the server-assigned record identifier.
	EntityID() int64

	// Meta returns the record's synchronization metadata. The engine
	// mutates it in place when a record is accepted.
	Meta() *models.SyncMeta
}

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Store implementations run every statement against a caller-supplied
// Querier so that a whole push batch executes inside one transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the per-entity persistence contract. All operations are scoped
// to one entity type; cross-entity joins are out of contract.
type Store interface {
	// Get returns the stored record with the given id, or ErrRecordNotFound.
	Get(ctx context.Context, q Querier, id int64) (Record, error)

	// ListChangedSince returns all active records with last_updated
	// strictly greater than since, ordered by id.
	ListChangedSince(ctx context.Context, q Querier, since time.Time) ([]Record, error)

	// Upsert inserts the record if absent, otherwise overwrites all
	// entity-specific fields and the sync metadata of the existing row.
	Upsert(ctx context.Context, q Querier, rec Record) error
}

// Adapter binds an entity-type name to its store and wire-record shape.
type Adapter interface {
	// Name is the entity-type name used on the wire ("products", "sales", ...).
	Name() string

	// Decode parses and validates one wire record. Failures are reported
	// per record as a *ValidationError; they never abort a batch.
	Decode(raw json.RawMessage) (Record, error)

	// Encode serializes a record back to its wire shape.
	Encode(rec Record) (json.RawMessage, error)

	// Store returns the persistence accessor for this entity type.
	Store() Store
}

// TxManager supplies the atomic unit-of-work boundary for a push batch.
type TxManager interface {
	// InTx runs fn inside a transaction, committing when fn returns nil
	// and rolling back otherwise.
	InTx(ctx context.Context, fn func(q Querier) error) error
}
