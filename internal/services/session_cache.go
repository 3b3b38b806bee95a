package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/withu/backend/internal/models"
)

// SessionCache keeps the last-known profile snapshot in Redis so a client
// reload renders instantly without a Mongo round trip. Strictly best-effort:
// cache failures are logged and the caller falls through to the store. A nil
// *SessionCache is valid and disables caching.
type SessionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

const sessionKeyPrefix = "withu:profile:"

func NewSessionCache(addr string) *SessionCache {
	if addr == "" {
		return nil
	}
	return &SessionCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: 24 * time.Hour,
	}
}

func (c *SessionCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

// Get returns the cached snapshot, or (nil, false) on miss or error.
func (c *SessionCache) Get(ctx context.Context, userID string) (*models.Profile, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, sessionKeyPrefix+userID).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[SessionCache] get user=%s error=%v", userID, err)
		}
		return nil, false
	}
	var prof models.Profile
	if err := json.Unmarshal(raw, &prof); err != nil {
		log.Printf("[SessionCache] decode user=%s error=%v", userID, err)
		return nil, false
	}
	return &prof, true
}

// Set stores the snapshot.
func (c *SessionCache) Set(ctx context.Context, userID string, prof *models.Profile) {
	if c == nil || prof == nil {
		return
	}
	raw, err := json.Marshal(prof)
	if err != nil {
		log.Printf("[SessionCache] encode user=%s error=%v", userID, err)
		return
	}
	if err := c.rdb.Set(ctx, sessionKeyPrefix+userID, raw, c.ttl).Err(); err != nil {
		log.Printf("[SessionCache] set user=%s error=%v", userID, err)
	}
}

// Invalidate drops the snapshot. Called on logout and after every profile
// mutation.
func (c *SessionCache) Invalidate(ctx context.Context, userID string) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, sessionKeyPrefix+userID).Err(); err != nil {
		log.Printf("[SessionCache] invalidate user=%s error=%v", userID, err)
	}
}
