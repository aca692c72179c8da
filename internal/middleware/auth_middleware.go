package middleware

import (
	"context"
	"errors"
	"strings"

	autherrors "github.com/vscooter54-cell/VScooter-sub000/internal/auth/errors"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/apperror"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/response"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextUserID  = "user_id"
	ContextRole    = "role"
	ContextTokenID = "token_id"
	ContextToken   = "token_claims"
)

// RevocationChecker reports whether a token id was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}

// bearerToken prefers the Authorization header and falls back to the access_token cookie.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if strings.HasPrefix(strings.ToLower(h), "bearer ") {
			return strings.TrimSpace(h[len("bearer "):])
		}
		return ""
	}
	if v, err := c.Cookie("access_token"); err == nil {
		return v
	}
	return ""
}

func AuthMiddleware(secret string, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			abortWith(c, autherrors.ErrUnauthorized)
			return
		}

		claims, err := token.Parse(secret, raw)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				abortWith(c, autherrors.ErrTokenExpired)
				return
			}
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}

		if revoked != nil && claims.ID != "" {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// Redis being down should not log everyone out.
				zap.L().Warn("token revocation check failed", zap.Error(err))
			} else if isRevoked {
				abortWith(c, autherrors.ErrTokenRevoked)
				return
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextTokenID, claims.ID)
		c.Set(ContextToken, claims)

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(ContextRole)
		if userRole == "" {
			abortWith(c, autherrors.ErrForbidden)
			return
		}

		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		abortWith(c, autherrors.ErrForbidden)
	}
}

func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
