package order

import (
	"github.com/vscooter54-cell/VScooter-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client, authMw gin.HandlerFunc) {
	orders := r.Group("/orders")
	orders.Use(authMw)
	{
		orders.POST("",
			middleware.RateLimitByUser(0.2, 3),
			middleware.Idempotency(rdb),
			handler.Checkout,
		)
		orders.GET("",
			middleware.RateLimitByUser(5, 10),
			handler.List,
		)
		orders.GET("/:id",
			middleware.RateLimitByUser(5, 10),
			handler.Detail,
		)
		orders.PUT("/:id/cancel",
			middleware.RateLimitByUser(0.5, 2),
			handler.Cancel,
		)
	}

	admin := r.Group("/admin/orders")
	admin.Use(authMw, middleware.RoleMiddleware("ADMIN"))
	{
		admin.PATCH("/:id/status", handler.UpdateStatus)
	}

	// signed by Stripe, no bearer token
	r.POST("/payments/stripe/webhook",
		middleware.RateLimitByIP(20, 50),
		handler.StripeWebhook,
	)
}
