package address

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
	l := zap.L().Named("address.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("address.handler")
	}
	return &Handler{service: s, logger: l}
}

// GET /addresses
func (h *Handler) List(c *gin.Context) {
	res, err := h.service.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.logger.Error("http list addresses failed", zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

// POST /addresses
func (h *Handler) Create(c *gin.Context) {
	var req CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.FromBinding(err, ErrIncompleteAddress.Message)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	res, err := h.service.Create(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}
