package prediction

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/garage-backend/internal/domain"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

type CacheEntryRepo interface {
	Get(ctx context.Context, tx *gorm.DB, key string, userID uuid.UUID) (*types.CacheEntry, error)
	Upsert(ctx context.Context, tx *gorm.DB, entry *types.CacheEntry) error
}

type cacheEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCacheEntryRepo(db *gorm.DB, baseLog *logger.Logger) CacheEntryRepo {
	return &cacheEntryRepo{db: db, log: baseLog.With("repo", "CacheEntryRepo")}
}

// Get returns nil, nil on a miss.
func (cr *cacheEntryRepo) Get(ctx context.Context, tx *gorm.DB, key string, userID uuid.UUID) (*types.CacheEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var row types.CacheEntry
	err := transaction.WithContext(ctx).
		Where("cache_key = ? AND user_id = ?", key, userID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (cr *cacheEntryRepo) Upsert(ctx context.Context, tx *gorm.DB, entry *types.CacheEntry) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if entry == nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cache_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "value", "updated_at", "ttl_seconds"}),
		}).
		Create(entry).Error
}
