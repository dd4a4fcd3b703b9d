package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/garage-backend/internal/data/repos"
	types "github.com/yungbote/garage-backend/internal/domain"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

// gormEnvelope wraps every value in an object so scalar JSON survives drivers that
// decode jsonb scalars into non-byte column values.
type gormEnvelope struct {
	V json.RawMessage `json:"v"`
}

type gormStore struct {
	repo repos.CacheEntryRepo
	log  *logger.Logger
	now  func() time.Time
}

// NewGormStore keeps entries in the ai_cache table.
func NewGormStore(repo repos.CacheEntryRepo, baseLog *logger.Logger, opts ...Option) Store {
	o := buildOptions(opts)
	return &gormStore{repo: repo, log: baseLog.With("store", "GormKV"), now: o.now}
}

func (s *gormStore) Get(ctx context.Context, key string, userID uuid.UUID) (*Entry, error) {
	row, err := s.repo.Get(ctx, nil, key, userID)
	if err != nil {
		return nil, fmt.Errorf("kv get %s: %w", key, err)
	}
	if row == nil {
		return nil, nil
	}
	var env gormEnvelope
	if err := json.Unmarshal(row.Value, &env); err != nil {
		return nil, fmt.Errorf("kv get %s: decode: %w", key, err)
	}
	return &Entry{
		Key:       row.Key,
		UserID:    row.UserID,
		Value:     env.V,
		UpdatedAt: row.UpdatedAt,
		TTL:       time.Duration(row.TTLSeconds) * time.Second,
	}, nil
}

func (s *gormStore) Put(ctx context.Context, key string, userID uuid.UUID, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv put %s: marshal: %w", key, err)
	}
	b, err := json.Marshal(gormEnvelope{V: raw})
	if err != nil {
		return fmt.Errorf("kv put %s: marshal: %w", key, err)
	}
	entry := &types.CacheEntry{
		Key:        key,
		UserID:     userID,
		Value:      datatypes.JSON(b),
		UpdatedAt:  s.now().UTC(),
		TTLSeconds: int(ttl / time.Second),
	}
	if err := s.repo.Upsert(ctx, nil, entry); err != nil {
		return fmt.Errorf("kv put %s: %w", key, err)
	}
	return nil
}
