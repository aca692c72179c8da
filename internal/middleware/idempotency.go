package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/apperror"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader   = "Idempotency-Key"
	IdempotencyLockKey  = "idempotency_lock_key"
	IdempotencyCacheKey = "idempotency_cache_key"

	idempotencyLockTTL = 30 * time.Second
)

// Idempotency replays a cached success for a repeated Idempotency-Key and rejects
// a concurrent duplicate while the first request is still running. Handlers store
// the result under IdempotencyCacheKey and release IdempotencyLockKey.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" || rdb == nil {
			c.Next()
			return
		}

		scope := CurrentUserID(c)
		if scope == "" {
			scope = c.ClientIP()
		}
		cacheKey := "idempotency:" + scope + ":" + key
		lockKey := cacheKey + ":lock"
		ctx := c.Request.Context()

		cached, err := rdb.Get(ctx, cacheKey).Bytes()
		if err == nil {
			response.Success(c, http.StatusCreated, json.RawMessage(cached), nil)
			c.Abort()
			return
		}
		if err != redis.Nil {
			zap.L().Warn("idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}

		ok, err := rdb.SetNX(ctx, lockKey, "1", idempotencyLockTTL).Result()
		if err != nil {
			zap.L().Warn("idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			response.Error(c, http.StatusConflict, apperror.CodeConflict, "A request with this Idempotency-Key is already in progress", nil)
			c.Abort()
			return
		}

		c.Set(IdempotencyLockKey, lockKey)
		c.Set(IdempotencyCacheKey, cacheKey)
		c.Next()
	}
}
