package store

import (
	"context"
	"fmt"

	"github.com/lromeira/pdv-sync/internal/config"
	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/internal/sync"
)

// Storages aggregates every persistence dependency the services need.
type Storages struct {
	DB *DB

	// TxManager supplies the unit-of-work boundary for push batches.
	TxManager sync.TxManager

	// Adapters is the closed set of entity adapters served by this store.
	Adapters []sync.Adapter

	// Users serves the auth endpoints.
	Users UserRepository

	// Checkpoints is nil when no Redis URL is configured; the sync status
	// endpoint then reports no checkpoints.
	Checkpoints CheckpointStore
}

// NewStorages connects the configured backends and wires all repositories.
// The database driver is selected by cfg.DB.Driver ("pgx" or "sqlite3");
// Redis is optional.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case "", "pgx", "postgres":
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case "sqlite3", "sqlite":
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DB.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	storages := &Storages{
		DB:        db,
		TxManager: NewTxManager(db, log),
		Adapters:  NewAdapters(log),
		Users:     NewUserRepository(db, log),
	}

	if cfg.Redis.URL != "" {
		client, redisErr := NewRedisClient(ctx, cfg.Redis, log)
		if redisErr != nil {
			return nil, redisErr
		}
		storages.Checkpoints = NewCheckpointStore(client, cfg.Redis.CheckpointTTL, log)
	}

	return storages, nil
}
