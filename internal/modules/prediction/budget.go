package prediction

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/garage-backend/internal/data/kv"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

const refreshCounterTTL = 24 * time.Hour

type refreshCount struct {
	Count int `json:"count"`
}

// RefreshBudget is the per-user daily refresh counter under refresh_calls:day:<date>:<userId>.
// Increments are plain upserts, so two concurrent requests may both pass at count = budget-1.
type RefreshBudget struct {
	store kv.Store
	plans PlanConfig
	log   *logger.Logger
}

func NewRefreshBudget(store kv.Store, plans PlanConfig, log *logger.Logger) *RefreshBudget {
	return &RefreshBudget{store: store, plans: plans, log: log.With("repo", "RefreshBudget")}
}

// Acquire consumes one unit of today's budget or returns ErrBudgetExceeded.
func (b *RefreshBudget) Acquire(ctx context.Context, userID uuid.UUID, plan string, now time.Time) error {
	key := RefreshCounterKey(now, userID)
	limit := b.plans.Budget(plan)

	count, err := b.current(ctx, key, userID, now)
	if err != nil {
		return err
	}
	if count >= limit {
		return ErrBudgetExceeded
	}
	if err := b.store.Put(ctx, key, userID, refreshCount{Count: count + 1}, refreshCounterTTL); err != nil {
		return fmt.Errorf("refresh budget increment: %w", err)
	}
	return nil
}

// Used returns today's consumed count.
func (b *RefreshBudget) Used(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	return b.current(ctx, RefreshCounterKey(now, userID), userID, now)
}

func (b *RefreshBudget) current(ctx context.Context, key string, userID uuid.UUID, now time.Time) (int, error) {
	entry, err := b.store.Get(ctx, key, userID)
	if err != nil {
		return 0, fmt.Errorf("refresh budget read: %w", err)
	}
	if entry == nil || !entry.Fresh(now) {
		return 0, nil
	}
	var v refreshCount
	if err := json.Unmarshal(entry.Value, &v); err != nil {
		b.log.Warn("resetting undecodable refresh counter", "key", key, "error", err)
		return 0, nil
	}
	return v.Count, nil
}
