package cart

import (
	"net/http"

	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/apperror"
)

var (
	ErrInvalidQuantity = apperror.New(
		apperror.CodeValidation,
		"Quantity must be at least 1",
		http.StatusBadRequest,
	)

	ErrCartItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"Item is not in your cart",
		http.StatusNotFound,
	)

	ErrCartEmpty = apperror.New(
		"CART_EMPTY",
		"Your cart is empty",
		http.StatusUnprocessableEntity,
	)

	ErrEmptyMerge = apperror.New(
		apperror.CodeValidation,
		"Nothing to merge",
		http.StatusBadRequest,
	)
)
