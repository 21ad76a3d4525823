package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lromeira/pdv-sync/internal/config"
	"github.com/lromeira/pdv-sync/internal/logger"
)

const checkpointKeyFormat = "sync:checkpoint:%d:%s"

// CheckpointStore remembers, per caller and entity type, when the last
// successful sync exchange happened. A reconnecting terminal uses this to
// discover its server-known watermark before choosing a last_sync value.
type CheckpointStore interface {
	// Record stores the checkpoint for one user/entity pair.
	Record(ctx context.Context, userID int64, entity string, at time.Time) error

	// All returns every recorded checkpoint of the user, keyed by entity
	// name. Entities without a checkpoint are absent from the map.
	All(ctx context.Context, userID int64, entities []string) (map[string]time.Time, error)
}

// redisCheckpointStore keeps checkpoints in Redis under a TTL, so stale
// terminals age out on their own.
type redisCheckpointStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewRedisClient connects to Redis and verifies the connection with a ping.
func NewRedisClient(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("error pinging redis: %w", err)
	}
	log.Info().Str("func", "NewRedisClient").Msg("connected to redis successfully")

	return client, nil
}

// NewCheckpointStore constructs a Redis-backed [CheckpointStore] with the
// given entry TTL.
func NewCheckpointStore(client *redis.Client, ttl time.Duration, log *logger.Logger) CheckpointStore {
	return &redisCheckpointStore{client: client, ttl: ttl, logger: log}
}

func (s *redisCheckpointStore) Record(ctx context.Context, userID int64, entity string, at time.Time) error {
	key := fmt.Sprintf(checkpointKeyFormat, userID, entity)

	if err := s.client.Set(ctx, key, at.UTC().Format(time.RFC3339Nano), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to record sync checkpoint: %w", err)
	}

	return nil
}

func (s *redisCheckpointStore) All(ctx context.Context, userID int64, entities []string) (map[string]time.Time, error) {
	log := logger.FromContext(ctx)

	checkpoints := make(map[string]time.Time, len(entities))
	for _, entity := range entities {
		key := fmt.Sprintf(checkpointKeyFormat, userID, entity)

		value, err := s.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read sync checkpoint: %w", err)
		}

		at, parseErr := time.Parse(time.RFC3339Nano, value)
		if parseErr != nil {
			// A corrupt entry is dropped rather than failing the status call.
			log.Warn().
				Str("func", "redisCheckpointStore.All").
				Str("key", key).
				Str("value", value).
				Msg("dropping unparsable checkpoint entry")
			continue
		}

		checkpoints[entity] = at
	}

	return checkpoints, nil
}
