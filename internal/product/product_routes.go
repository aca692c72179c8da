package product

import (
	"github.com/vscooter54-cell/VScooter-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	products := r.Group("/products")
	{
		// loose enough for browsing, tight enough to discourage scraping
		products.GET("",
			middleware.RateLimitByIP(10, 20),
			handler.List,
		)
		products.GET("/:id",
			middleware.RateLimitByIP(5, 10),
			handler.Detail,
		)
	}
}
