package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vscooter54-cell/VScooter-sub000/internal/middleware"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeRevocation struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevocation) IsRevoked(_ context.Context, id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[id], nil
}

func setupRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": middleware.CurrentUserID(c),
			"role":    c.GetString(middleware.ContextRole),
		})
	})
	r.GET("/test", handlers...)
	return r
}

func issue(t *testing.T, role string, ttl time.Duration) (string, token.Claims) {
	t.Helper()
	raw, claims, err := token.Generate(testSecret, "user-123", role, ttl)
	require.NoError(t, err)
	return raw, claims
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("missing_token", func(t *testing.T) {
		r := setupRouter(middleware.AuthMiddleware(testSecret, nil))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("valid_bearer_token", func(t *testing.T) {
		raw, _ := issue(t, "CUSTOMER", time.Hour)
		r := setupRouter(middleware.AuthMiddleware(testSecret, nil))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":"user-123"`)
		assert.Contains(t, w.Body.String(), `"role":"CUSTOMER"`)
	})

	t.Run("cookie_fallback", func(t *testing.T) {
		raw, _ := issue(t, "CUSTOMER", time.Hour)
		r := setupRouter(middleware.AuthMiddleware(testSecret, nil))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: raw})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("expired_token", func(t *testing.T) {
		raw, _ := issue(t, "CUSTOMER", -time.Minute)
		r := setupRouter(middleware.AuthMiddleware(testSecret, nil))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "expired")
	})

	t.Run("revoked_token", func(t *testing.T) {
		raw, claims := issue(t, "CUSTOMER", time.Hour)
		r := setupRouter(middleware.AuthMiddleware(testSecret, &fakeRevocation{
			revoked: map[string]bool{claims.ID: true},
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("revocation_store_down_lets_request_through", func(t *testing.T) {
		raw, _ := issue(t, "CUSTOMER", time.Hour)
		r := setupRouter(middleware.AuthMiddleware(testSecret, &fakeRevocation{err: errors.New("redis down")}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non_bearer_scheme", func(t *testing.T) {
		r := setupRouter(middleware.AuthMiddleware(testSecret, nil))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Basic abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRoleMiddleware(t *testing.T) {
	t.Run("admin_allowed", func(t *testing.T) {
		raw, _ := issue(t, "ADMIN", time.Hour)
		r := setupRouter(middleware.AuthMiddleware(testSecret, nil), middleware.RoleMiddleware("ADMIN"))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("customer_forbidden", func(t *testing.T) {
		raw, _ := issue(t, "CUSTOMER", time.Hour)
		r := setupRouter(middleware.AuthMiddleware(testSecret, nil), middleware.RoleMiddleware("ADMIN"))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRateLimitByIP(t *testing.T) {
	r := setupRouter(middleware.RateLimitByIP(0.01, 1))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimitByUser_SeparateBuckets(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/test",
		func(c *gin.Context) {
			c.Set(middleware.ContextUserID, c.Query("u"))
			c.Next()
		},
		middleware.RateLimitByUser(0.01, 1),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	for _, u := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test?u="+u, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test?u=a", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRequestID(t *testing.T) {
	r := setupRouter(middleware.RequestID())

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "req-1", w.Header().Get(middleware.RequestIDHeader))
	})
}

func TestIdempotency_PassThrough(t *testing.T) {
	t.Run("no_header", func(t *testing.T) {
		rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
		defer rdb.Close()

		r := setupRouter(middleware.Idempotency(rdb))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("redis_unreachable", func(t *testing.T) {
		rdb := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 50 * time.Millisecond,
			MaxRetries:  -1,
		})
		defer rdb.Close()

		r := setupRouter(middleware.Idempotency(rdb))
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(middleware.IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
