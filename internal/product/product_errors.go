package product

import (
	"net/http"

	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/apperror"
)

var (
	ErrInvalidProductID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid product id",
		http.StatusBadRequest,
	)

	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"Product not found",
		http.StatusNotFound,
	)

	ErrProductUnavailable = apperror.New(
		"PRODUCT_UNAVAILABLE",
		"Product is no longer available",
		http.StatusUnprocessableEntity,
	)

	ErrPriceUnavailable = apperror.New(
		"PRICE_UNAVAILABLE",
		"Product is not priced in the selected currency",
		http.StatusUnprocessableEntity,
	)
)
