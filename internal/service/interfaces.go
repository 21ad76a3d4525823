package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lromeira/pdv-sync/internal/sync"
	"github.com/lromeira/pdv-sync/models"
)

// AuthService handles account registration, credential verification, and
// JWT token lifecycle.
type AuthService interface {
	// RegisterUser creates a new account from the given credentials.
	RegisterUser(ctx context.Context, creds models.Credentials) (models.User, error)

	// Login authenticates an existing account.
	Login(ctx context.Context, creds models.Credentials) (models.User, error)

	// CreateToken issues a signed JWT for the given user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates and parses a raw JWT string.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// SyncService fronts the sync engine for the transport layer and records
// per-terminal checkpoints after successful exchanges.
type SyncService interface {
	// Push applies a batch of client-modified records for one entity type
	// and, when since is non-nil, also returns server-side changes.
	Push(ctx context.Context, userID int64, entity string, batch []json.RawMessage, since *time.Time) (*sync.Result, error)

	// Pull returns active records of one entity type changed strictly
	// after since.
	Pull(ctx context.Context, userID int64, entity string, since time.Time) ([]json.RawMessage, error)

	// Status reports the caller's recorded checkpoints per entity type.
	Status(ctx context.Context, userID int64) (map[string]time.Time, error)
}

// AppInfoService exposes build/runtime metadata about the application.
type AppInfoService interface {
	// GetAppVersion returns the configured application version string.
	GetAppVersion(ctx context.Context) string
}
