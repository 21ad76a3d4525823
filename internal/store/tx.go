package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/internal/sync"
)

const (
	txMaxRetries  = 3
	txRetryWindow = 50 * time.Millisecond
)

// txManager implements [sync.TxManager] over the shared *sql.DB.
// Each push batch runs inside exactly one transaction started here; the
// engine never manages transaction state itself.
type txManager struct {
	db     *DB
	logger *logger.Logger
}

// NewTxManager constructs a [sync.TxManager] bound to the given database.
func NewTxManager(db *DB, log *logger.Logger) sync.TxManager {
	return &txManager{db: db, logger: log}
}

// InTx runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back otherwise; a rollback discards every write fn
// performed, so the caller observes either the whole batch or nothing.
//
// When the attempt fails with an error the backend classifies as transient
// (serialization failure, deadlock, connection loss), the whole unit of
// work is retried with exponential backoff. fn must therefore be safe to
// run more than once.
func (t *txManager) InTx(ctx context.Context, fn func(q sync.Querier) error) error {
	log := logger.FromContext(ctx)

	backoff := retry.WithMaxRetries(txMaxRetries, retry.NewExponential(txRetryWindow))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := t.runInTx(ctx, fn)
		if err != nil && t.db.errorClassifier.Classify(err) == Retryable {
			log.Warn().Err(err).Str("func", "txManager.InTx").Msg("retrying transaction after transient database error")
			return retry.RetryableError(err)
		}

		return err
	})
}

func (t *txManager) runInTx(ctx context.Context, fn func(q sync.Querier) error) error {
	log := logger.FromContext(ctx)

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "txManager.InTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Err(rbErr).Str("func", "txManager.InTx").Msg("rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "txManager.InTx").
			Str("pg_code", postgresErrorCode(err)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	return nil
}
