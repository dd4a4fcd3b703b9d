package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/yungbote/garage-backend/internal/platform/logger"
)

const (
	redisKeyPrefix = "garage:kv:"
	// keys outlive their TTL by this much so a stale read still sees the entry
	redisExpiryGrace = time.Hour
)

type redisEnvelope struct {
	UserID     uuid.UUID       `json:"userId"`
	Value      json.RawMessage `json:"value"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	TTLSeconds int             `json:"ttlSeconds"`
}

type redisStore struct {
	client redis.UniversalClient
	log    *logger.Logger
	now    func() time.Time
}

func NewRedisStore(client redis.UniversalClient, baseLog *logger.Logger, opts ...Option) Store {
	o := buildOptions(opts)
	return &redisStore{client: client, log: baseLog.With("store", "RedisKV"), now: o.now}
}

func (s *redisStore) makeKey(key string) string {
	return redisKeyPrefix + key
}

func (s *redisStore) Get(ctx context.Context, key string, userID uuid.UUID) (*Entry, error) {
	data, err := s.client.Get(ctx, s.makeKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("kv get %s: %w", key, err)
	}
	var env redisEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		s.log.Warn("dropping undecodable kv entry", "key", key, "error", err)
		return nil, nil
	}
	if env.UserID != userID {
		return nil, nil
	}
	return &Entry{
		Key:       key,
		UserID:    env.UserID,
		Value:     env.Value,
		UpdatedAt: env.UpdatedAt,
		TTL:       time.Duration(env.TTLSeconds) * time.Second,
	}, nil
}

func (s *redisStore) Put(ctx context.Context, key string, userID uuid.UUID, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv put %s: marshal: %w", key, err)
	}
	data, err := json.Marshal(redisEnvelope{
		UserID:     userID,
		Value:      b,
		UpdatedAt:  s.now().UTC(),
		TTLSeconds: int(ttl / time.Second),
	})
	if err != nil {
		return fmt.Errorf("kv put %s: marshal envelope: %w", key, err)
	}
	expiry := redisExpiryGrace
	if ttl > 0 {
		expiry += ttl
	}
	if err := s.client.Set(ctx, s.makeKey(key), data, expiry).Err(); err != nil {
		return fmt.Errorf("kv put %s: %w", key, err)
	}
	return nil
}
