package payment

import (
	"net/http"

	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/apperror"
)

var (
	ErrPaymentFailed = apperror.New(
		"PAYMENT_FAILED",
		"Payment could not be processed",
		http.StatusPaymentRequired,
	)

	ErrInvalidSignature = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid webhook signature",
		http.StatusBadRequest,
	)
)
