package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/apperror"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// keyedLimiter hands out one token bucket per key and forgets idle keys.
type keyedLimiter struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	entries map[string]*limiterEntry
	lastGC  time.Time
}

func newKeyedLimiter(rps float64, burst int) *keyedLimiter {
	return &keyedLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		entries: make(map[string]*limiterEntry),
		lastGC:  time.Now(),
	}
}

func (k *keyedLimiter) allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := time.Now()
	if now.Sub(k.lastGC) > limiterIdleTTL {
		for key, e := range k.entries {
			if now.Sub(e.lastSeen) > limiterIdleTTL {
				delete(k.entries, key)
			}
		}
		k.lastGC = now
	}

	e, ok := k.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(k.rps, k.burst)}
		k.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.Allow()
}

func rateLimit(rps float64, burst int, keyFn func(*gin.Context) string) gin.HandlerFunc {
	l := newKeyedLimiter(rps, burst)
	return func(c *gin.Context) {
		if !l.allow(keyFn(c)) {
			response.Error(c, http.StatusTooManyRequests, apperror.CodeTooManyReq, "Too many requests, please slow down", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitByIP limits per client IP. rps may be fractional (0.1 = one request per 10s).
func RateLimitByIP(rps float64, burst int) gin.HandlerFunc {
	return rateLimit(rps, burst, func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	})
}

// RateLimitByUser limits per authenticated user and falls back to the client IP.
func RateLimitByUser(rps float64, burst int) gin.HandlerFunc {
	return rateLimit(rps, burst, func(c *gin.Context) string {
		if uid := CurrentUserID(c); uid != "" {
			return "user:" + uid
		}
		return "ip:" + c.ClientIP()
	})
}
