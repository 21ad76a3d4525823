package store

import (
	"database/sql"

	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/migrations"
)

// DB wraps the shared *sql.DB connection together with the driver-specific
// error classifier. All repositories and the transaction manager are built
// on top of it.
type DB struct {
	*sql.DB
	errorClassifier ErrorClassifier
	dialect         string
	logger          *logger.Logger
}

// Migrate applies all embedded goose migrations for the active dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
