// Package session persists the last-known identity snapshot so page
// loads can rehydrate the auth state without a network round-trip. It
// is kept apart from the token store: page-rendering code may read it
// freely, but it must always be cleared together with the tokens.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cypher125/siwes/internal/domain"
)

// Cache is the session cache contract for one browser session. Get
// returns (nil, nil) when no snapshot is stored.
type Cache interface {
	Get(ctx context.Context) (*domain.Identity, error)
	Set(ctx context.Context, user *domain.Identity) error
	Remove(ctx context.Context) error
}

// Store manages identity snapshots in Redis, keyed by the session-id
// cookie. TTL matches the refresh token lifetime so an orphaned
// snapshot cannot outlive the credentials it describes.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redisClient *redis.Client, ttl time.Duration) *Store {
	return &Store{
		redis: redisClient,
		ttl:   ttl,
	}
}

// Bind returns the cache view for a single session id. An empty id
// yields a cache that is always empty and drops writes, which is what
// a request without a session cookie should see.
func (s *Store) Bind(sessionID string) Cache {
	if sessionID == "" {
		return unboundCache{}
	}
	return &redisCache{store: s, key: fmt.Sprintf("session:user:%s", sessionID)}
}

type redisCache struct {
	store *Store
	key   string
}

func (c *redisCache) Get(ctx context.Context) (*domain.Identity, error) {
	raw, err := c.store.redis.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var user domain.Identity
	if err := json.Unmarshal(raw, &user); err != nil {
		// A corrupt snapshot is treated as absent.
		_ = c.store.redis.Del(ctx, c.key).Err()
		return nil, nil
	}
	return &user, nil
}

func (c *redisCache) Set(ctx context.Context, user *domain.Identity) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := c.store.redis.Set(ctx, c.key, raw, c.store.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (c *redisCache) Remove(ctx context.Context) error {
	if err := c.store.redis.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

type unboundCache struct{}

func (unboundCache) Get(context.Context) (*domain.Identity, error) { return nil, nil }
func (unboundCache) Set(context.Context, *domain.Identity) error   { return nil }
func (unboundCache) Remove(context.Context) error                  { return nil }
