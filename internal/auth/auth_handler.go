package auth

import (
	"net/http"
	"time"

	"github.com/vscooter54-cell/VScooter-sub000/internal/middleware"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/apperror"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/response"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(s Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, logger: l}
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func invalidInput(c *gin.Context, err error, message string) {
	httpErr := apperror.FromBinding(err, message)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http register validation failed", zap.Error(err))
		invalidInput(c, err, "Invalid input")
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("http register failed", zap.String("email", req.Email), zap.Error(err))
		writeError(c, err)
		return
	}

	h.logger.Info("http register success", zap.String("user_id", res.ID))
	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err, "Invalid input")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	var expiresAt time.Time
	if v, ok := c.Get(middleware.ContextToken); ok {
		if claims, ok := v.(*token.Claims); ok && claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
	}

	if err := h.service.Logout(c.Request.Context(), c.GetString(middleware.ContextTokenID), expiresAt); err != nil {
		// The client drops its token regardless; revocation is best effort.
		h.logger.Warn("http logout revoke failed", zap.Error(err))
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	res, err := h.service.GetMe(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}
