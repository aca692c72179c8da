package address

import (
	"github.com/vscooter54-cell/VScooter-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMw gin.HandlerFunc) {
	addresses := r.Group("/addresses")
	addresses.Use(authMw)
	{
		addresses.GET("",
			middleware.RateLimitByUser(5, 10),
			handler.List,
		)
		addresses.POST("",
			middleware.RateLimitByUser(1, 3),
			handler.Create,
		)
	}
}
