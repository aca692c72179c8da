package auth

import (
	"github.com/vscooter54-cell/VScooter-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMw gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		// one request per 20s per IP keeps account spam down
		auth.POST("/register",
			middleware.RateLimitByIP(0.05, 3),
			handler.Register,
		)

		// brute-force guard
		auth.POST("/login",
			middleware.RateLimitByIP(0.2, 5),
			handler.Login,
		)

		authenticated := auth.Group("")
		authenticated.Use(authMw)
		{
			authenticated.GET("/me",
				middleware.RateLimitByUser(5, 10),
				handler.Me,
			)
			authenticated.POST("/logout",
				middleware.RateLimitByUser(1, 2),
				handler.Logout,
			)
		}
	}
}
