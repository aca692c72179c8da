package address

import (
	"net/http"

	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/apperror"
)

var ErrIncompleteAddress = apperror.New(
	apperror.CodeValidation,
	"Please fill in all shipping fields",
	http.StatusBadRequest,
)
