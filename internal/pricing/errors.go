package pricing

import (
	"errors"

	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/apperror"
)

func couponMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
