package config

import "time"

const (
	defaultTokenIssuer    = "pdv-sync"
	defaultTokenDuration  = 12 * time.Hour
	defaultRequestTimeout = 60 * time.Second
	defaultCheckpointTTL  = 30 * 24 * time.Hour
	defaultVersion        = "dev"
)

// applyDefaults fills in values that have a sensible fallback. Secrets and
// addresses never default; validate rejects their absence instead.
func (c *StructuredConfig) applyDefaults() {
	if c.App.TokenIssuer == "" {
		c.App.TokenIssuer = defaultTokenIssuer
	}
	if c.App.TokenDuration == 0 {
		c.App.TokenDuration = defaultTokenDuration
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = defaultRequestTimeout
	}
	if c.Storage.Redis.CheckpointTTL == 0 {
		c.Storage.Redis.CheckpointTTL = defaultCheckpointTTL
	}
	if c.App.Version == "" {
		c.App.Version = defaultVersion
	}
}

// validate checks that every setting without a usable default is present.
func (c *StructuredConfig) validate() error {
	if c.Server.HTTPAddress == "" {
		return ErrNoServerAddress
	}
	if c.Storage.DB.DSN == "" {
		return ErrNoDatabaseDSN
	}
	if c.App.TokenSignKey == "" {
		return ErrNoTokenSignKey
	}

	return nil
}
