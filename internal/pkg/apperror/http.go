package apperror

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// FieldError names one rejected request field and the rule it broke.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func ToHTTP(err error) *HTTPError {
	if err == nil {
		return &HTTPError{Status: http.StatusOK}
	}

	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		return &HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	case errors.Is(err, context.DeadlineExceeded):
		return &HTTPError{
			Status:  http.StatusGatewayTimeout,
			Code:    CodeInternalError,
			Message: "request timed out",
		}
	}

	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "internal server error",
	}
}

// FromBinding turns a gin bind error into a 400. Struct tag failures are
// listed per field; anything else (bad JSON, wrong types) is passed through
// as text.
func FromBinding(err error, message string) *HTTPError {
	out := &HTTPError{
		Status:  http.StatusBadRequest,
		Code:    CodeValidation,
		Message: message,
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Details = err.Error()
		return out
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field: lowerFirst(fe.Field()),
			Rule:  fe.Tag(),
		})
	}
	out.Details = fields
	return out
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
