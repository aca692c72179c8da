package order

import (
	"net/http"

	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/apperror"
)

var (
	ErrInvalidOrderID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid order id",
		http.StatusBadRequest,
	)

	ErrOrderNotFound = apperror.New(
		apperror.CodeNotFound,
		"Order not found",
		http.StatusNotFound,
	)

	ErrCannotCancel = apperror.New(
		apperror.CodeInvalidState,
		"Order can no longer be cancelled",
		http.StatusConflict,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeValidation,
		"Unknown order status",
		http.StatusBadRequest,
	)

	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Order status cannot change that way",
		http.StatusConflict,
	)

	ErrOrderFailed = apperror.New(
		"ORDER_FAILED",
		"Order could not be placed. Please try again.",
		http.StatusInternalServerError,
	)
)
