package coupon

import (
	"errors"
	"net/http"

	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/apperror"
)

var (
	ErrInvalidCoupon = apperror.New(
		"INVALID_COUPON",
		"Invalid coupon code",
		http.StatusUnprocessableEntity,
	)

	ErrCouponExpired = apperror.New(
		"COUPON_EXPIRED",
		"This coupon has expired",
		http.StatusUnprocessableEntity,
	)

	ErrCouponMinSubtotal = apperror.New(
		"COUPON_MIN_SUBTOTAL",
		"Your cart does not meet the minimum subtotal for this coupon",
		http.StatusUnprocessableEntity,
	)

	ErrCouponCurrencyMismatch = apperror.New(
		"COUPON_CURRENCY_MISMATCH",
		"This coupon cannot be used with the selected currency",
		http.StatusUnprocessableEntity,
	)
)

// IsRejection reports whether err is one of the rule violations above, as
// opposed to an infrastructure failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidCoupon) ||
		errors.Is(err, ErrCouponExpired) ||
		errors.Is(err, ErrCouponMinSubtotal) ||
		errors.Is(err, ErrCouponCurrencyMismatch)
}
