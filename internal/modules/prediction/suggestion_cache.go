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

const DefaultSuggestionTTL = 24 * time.Hour

type cachedSuggestions struct {
	Suggestions []Suggestion `json:"suggestions"`
	SnippetIDs  []string     `json:"snippetIds,omitempty"`
}

// SuggestionCache memoizes refinement results under pred:v:<vehicleId>:h:<inputsHash>.
type SuggestionCache struct {
	store kv.Store
	ttl   time.Duration
	now   func() time.Time
	log   *logger.Logger
}

func NewSuggestionCache(store kv.Store, ttl time.Duration, now func() time.Time, log *logger.Logger) *SuggestionCache {
	if ttl <= 0 {
		ttl = DefaultSuggestionTTL
	}
	if now == nil {
		now = time.Now
	}
	return &SuggestionCache{store: store, ttl: ttl, now: now, log: log.With("repo", "SuggestionCache")}
}

// Lookup reports a hit only for a fresh, decodable entry. A hit may carry an empty list.
// snippetIDs are the knowledge snippets the suggestions were produced from.
func (c *SuggestionCache) Lookup(ctx context.Context, userID, vehicleID uuid.UUID, inputsHash string) (suggestions []Suggestion, snippetIDs []string, hit bool, err error) {
	key := SuggestionKey(vehicleID, inputsHash)
	entry, err := c.store.Get(ctx, key, userID)
	if err != nil {
		return nil, nil, false, fmt.Errorf("suggestion cache lookup: %w", err)
	}
	if entry == nil || !entry.Fresh(c.now()) {
		return nil, nil, false, nil
	}
	var v cachedSuggestions
	if err := json.Unmarshal(entry.Value, &v); err != nil {
		c.log.Warn("ignoring undecodable suggestion cache entry", "key", key, "error", err)
		return nil, nil, false, nil
	}
	if v.Suggestions == nil {
		v.Suggestions = []Suggestion{}
	}
	return v.Suggestions, v.SnippetIDs, true, nil
}

func (c *SuggestionCache) Save(ctx context.Context, userID, vehicleID uuid.UUID, inputsHash string, suggestions []Suggestion, snippetIDs []string) error {
	if suggestions == nil {
		suggestions = []Suggestion{}
	}
	key := SuggestionKey(vehicleID, inputsHash)
	value := cachedSuggestions{Suggestions: suggestions, SnippetIDs: snippetIDs}
	if err := c.store.Put(ctx, key, userID, value, c.ttl); err != nil {
		return fmt.Errorf("suggestion cache save: %w", err)
	}
	return nil
}
