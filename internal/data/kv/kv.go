// Package kv is the small key/value cache shared by the suggestion memo and the daily
// refresh counter. Entries carry their own TTL; freshness is judged by readers, and
// nothing in this package evicts or deletes.
package kv

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Entry struct {
	Key       string
	UserID    uuid.UUID
	Value     json.RawMessage
	UpdatedAt time.Time
	TTL       time.Duration
}

// Fresh reports now - UpdatedAt < TTL.
func (e *Entry) Fresh(now time.Time) bool {
	if e == nil {
		return false
	}
	return now.Sub(e.UpdatedAt) < e.TTL
}

type Store interface {
	// Get returns nil, nil on a miss. Entries owned by a different user are a miss.
	Get(ctx context.Context, key string, userID uuid.UUID) (*Entry, error)
	// Put marshals value to JSON and upserts it with UpdatedAt = now.
	Put(ctx context.Context, key string, userID uuid.UUID, value any, ttl time.Duration) error
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used to stamp UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
