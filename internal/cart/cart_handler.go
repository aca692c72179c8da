package cart

import (
	"net/http"

	"github.com/vscooter54-cell/VScooter-sub000/internal/middleware"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/apperror"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(s Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("cart.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cart.handler")
	}
	return &Handler{service: s, logger: l}
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

func (h *Handler) Detail(c *gin.Context) {
	res, err := h.service.Detail(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.fail(c, "cart detail", err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Count(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.fail(c, "cart count", err)
		return
	}
	response.Success(c, http.StatusOK, CartCountResponse{Count: count}, nil)
}

func (h *Handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	res, err := h.service.AddItem(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		h.fail(c, "add item", err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) UpdateQty(c *gin.Context) {
	var req UpdateQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	res, err := h.service.UpdateQty(c.Request.Context(), middleware.CurrentUserID(c), c.Param("productId"), req)
	if err != nil {
		h.fail(c, "update qty", err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	res, err := h.service.DeleteItem(c.Request.Context(), middleware.CurrentUserID(c), c.Param("productId"))
	if err != nil {
		h.fail(c, "delete item", err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		h.fail(c, "clear cart", err)
		return
	}
	response.Success(c, http.StatusOK, nil, nil)
}

func (h *Handler) SetCurrency(c *gin.Context) {
	var req CurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	res, err := h.service.SetCurrency(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		h.fail(c, "set currency", err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) ApplyCoupon(c *gin.Context) {
	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	res, err := h.service.ApplyCoupon(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		h.fail(c, "apply coupon", err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) RemoveCoupon(c *gin.Context) {
	res, err := h.service.RemoveCoupon(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.fail(c, "remove coupon", err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Merge(c *gin.Context) {
	var req MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	res, err := h.service.Merge(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		h.logger.Warn("http merge failed",
			zap.String("user_id", middleware.CurrentUserID(c)),
			zap.Int("items", len(req.Items)),
			zap.Error(err),
		)
		h.fail(c, "merge", err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}
