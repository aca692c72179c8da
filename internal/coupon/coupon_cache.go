package coupon

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultCacheTTL = 5 * time.Minute

//go:generate mockgen -source=coupon_cache.go -destination=../mock/coupon/coupon_cache_mock.go -package=mock
type Cache interface {
	Get(ctx context.Context, code string) (Coupon, bool, error)
	Set(ctx context.Context, c Coupon) error
	Invalidate(ctx context.Context, code string) error
}

type redisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &redisCache{rdb: rdb, ttl: ttl}
}

func cacheKey(code string) string {
	return "coupon:" + strings.ToUpper(code)
}

func (c *redisCache) Get(ctx context.Context, code string) (Coupon, bool, error) {
	raw, err := c.rdb.Get(ctx, cacheKey(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Coupon{}, false, nil
	}
	if err != nil {
		return Coupon{}, false, err
	}

	var out Coupon
	if err := json.Unmarshal(raw, &out); err != nil {
		return Coupon{}, false, err
	}
	return out, true, nil
}

func (c *redisCache) Set(ctx context.Context, cp Coupon) error {
	raw, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKey(cp.Code), raw, c.ttl).Err()
}

func (c *redisCache) Invalidate(ctx context.Context, code string) error {
	return c.rdb.Del(ctx, cacheKey(code)).Err()
}
