package tokenstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/medchain/portal/internal/config"
)

const redisKeyPrefix = "portal:token:"

// RedisStore persists credentials in Redis so portal clients survive gateway
// restarts. Entries expire after the configured TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to Redis using the provided configuration.
func NewRedisClient(cfg config.RedisConfig, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return client
}

// NewRedis wraps an existing Redis client as a credential store.
// A zero ttl keeps entries until explicitly cleared.
func NewRedis(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Save stores the credential for the client.
func (s *RedisStore) Save(ctx context.Context, clientID, credential string) error {
	return s.client.Set(ctx, redisKeyPrefix+clientID, credential, s.ttl).Err()
}

// Load returns the stored credential, if any.
func (s *RedisStore) Load(ctx context.Context, clientID string) (string, bool, error) {
	cred, err := s.client.Get(ctx, redisKeyPrefix+clientID).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return cred, true, nil
}

// Clear removes the credential for the client.
func (s *RedisStore) Clear(ctx context.Context, clientID string) error {
	return s.client.Del(ctx, redisKeyPrefix+clientID).Err()
}

// Ping verifies Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
