package session

import (
	"context"
	"errors"
	"time"

	"core_site_echo/internal/services"
)

// RedisStore keeps tab state in Redis, one key per tab. Concurrent saves of one
// tab are last-write-wins.
type RedisStore struct {
	cache *services.RedisCache
	ttl   time.Duration
}

// NewRedisStore stores sessions in cache, refreshing their expiry on every save
func NewRedisStore(cache *services.RedisCache, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: cache, ttl: ttl}
}

func sessionKey(id, tabID string) string {
	return "session:" + storeKey(id, tabID)
}

// Get loads a tab
func (r *RedisStore) Get(ctx context.Context, id, tabID string) (*Session, error) {
	var s Session
	err := r.cache.Get(ctx, sessionKey(id, tabID), &s)
	if errors.Is(err, services.ErrCacheMiss) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes a tab
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	s.UpdatedAt = time.Now()
	return r.cache.Set(ctx, sessionKey(s.ID, s.TabID), s, r.ttl)
}
