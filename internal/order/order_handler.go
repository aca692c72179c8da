package order

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/vscooter54-cell/VScooter-sub000/internal/middleware"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/apperror"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	idempotencyTTL = 24 * time.Hour

	// Stripe caps webhook payloads well below this.
	maxWebhookBody        = 64 << 10
	stripeSignatureHeader = "Stripe-Signature"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(svc Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("order.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("order.handler")
	}
	return &Handler{service: svc, rdb: rdb, logger: l}
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("http "+op+" failed",
			zap.String("user_id", middleware.CurrentUserID(c)),
			zap.Error(err),
		)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
}

func invalidInput(c *gin.Context, err error) {
	httpErr := apperror.FromBinding(err, "Invalid input")
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// ==================== CUSTOMER ENDPOINTS ====================

// Checkout POST /orders
func (h *Handler) Checkout(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	if lockKey := c.GetString(middleware.IdempotencyLockKey); lockKey != "" && h.rdb != nil {
		defer h.rdb.Del(c.Request.Context(), lockKey)
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http checkout validation failed", zap.Error(err))
		invalidInput(c, err)
		return
	}

	res, err := h.service.Checkout(c.Request.Context(), userID, c.GetHeader(middleware.IdempotencyHeader), req)
	if err != nil {
		h.fail(c, "checkout", err)
		return
	}

	if cacheKey := c.GetString(middleware.IdempotencyCacheKey); cacheKey != "" && h.rdb != nil {
		data, _ := json.Marshal(res)
		if err := h.rdb.Set(c.Request.Context(), cacheKey, data, idempotencyTTL).Err(); err != nil {
			h.logger.Warn("idempotency cache write failed", zap.String("cache_key", cacheKey), zap.Error(err))
		}
	}

	response.Success(c, http.StatusCreated, res, nil)
}

// List GET /orders
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidInput(c, err)
		return
	}

	res, total, err := h.service.List(c.Request.Context(), middleware.CurrentUserID(c), q)
	if err != nil {
		h.fail(c, "list orders", err)
		return
	}

	pag := response.NewPagination(q.Page, q.Limit, total)
	response.Success(c, http.StatusOK, res, &pag)
}

// Detail GET /orders/:id
func (h *Handler) Detail(c *gin.Context) {
	res, err := h.service.Detail(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.fail(c, "order detail", err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// Cancel PUT /orders/:id/cancel
func (h *Handler) Cancel(c *gin.Context) {
	res, err := h.service.Cancel(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.fail(c, "cancel order", err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// ==================== ADMIN ENDPOINTS ====================

// UpdateStatus PATCH /admin/orders/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	res, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, "update order status", err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// ==================== WEBHOOK ====================

// StripeWebhook POST /payments/stripe/webhook
func (h *Handler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Unreadable payload", nil)
		return
	}

	if err := h.service.HandleWebhook(c.Request.Context(), payload, c.GetHeader(stripeSignatureHeader)); err != nil {
		h.fail(c, "stripe webhook", err)
		return
	}
	c.Status(http.StatusOK)
}
