package cart

import (
	"github.com/vscooter54-cell/VScooter-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMw gin.HandlerFunc) {
	carts := r.Group("/carts")
	carts.Use(authMw)
	{
		carts.GET("",
			middleware.RateLimitByUser(10, 20),
			handler.Detail,
		)
		carts.GET("/count",
			middleware.RateLimitByUser(10, 20),
			handler.Count,
		)
		carts.DELETE("",
			middleware.RateLimitByUser(2, 5),
			handler.Clear,
		)
		carts.PUT("/currency",
			middleware.RateLimitByUser(2, 5),
			handler.SetCurrency,
		)

		items := carts.Group("/items")
		{
			items.POST("",
				middleware.RateLimitByUser(5, 10),
				handler.AddItem,
			)
			items.PUT("/:productId",
				middleware.RateLimitByUser(5, 10),
				handler.UpdateQty,
			)
			items.DELETE("/:productId",
				middleware.RateLimitByUser(5, 10),
				handler.DeleteItem,
			)
		}

		// coupon guessing is cheap for an attacker, keep it slow
		carts.POST("/coupon",
			middleware.RateLimitByUser(0.5, 3),
			handler.ApplyCoupon,
		)
		carts.DELETE("/coupon",
			middleware.RateLimitByUser(2, 5),
			handler.RemoveCoupon,
		)

		// called once per login
		carts.POST("/merge",
			middleware.RateLimitByUser(0.5, 2),
			handler.Merge,
		)
	}
}
