package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edusuite/dashboard-gateway/internal/core/domain"
	"github.com/edusuite/dashboard-gateway/internal/core/ports"
)

// ProfileCache implements ports.ProfileCache on Redis. Entries are keyed by
// a hash of the access token (the raw token never touches Redis) and expire
// after the configured staleness window.
type ProfileCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ ports.ProfileCache = (*ProfileCache)(nil)

func NewProfileCache(rdb *redis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{rdb: rdb, ttl: ttl}
}

func (c *ProfileCache) Get(ctx context.Context, accessToken string) (*domain.UserProfile, error) {
	data, err := c.rdb.Get(ctx, cacheKey(accessToken)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var profile domain.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *ProfileCache) Set(ctx context.Context, accessToken string, profile *domain.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKey(accessToken), data, c.ttl).Err()
}

func (c *ProfileCache) Delete(ctx context.Context, accessToken string) error {
	return c.rdb.Del(ctx, cacheKey(accessToken)).Err()
}

func cacheKey(accessToken string) string {
	sum := sha256.Sum256([]byte(accessToken))
	return "profile:" + hex.EncodeToString(sum[:16])
}
