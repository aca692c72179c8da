package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

const (
	StatusUnpaid   = "UNPAID"
	StatusPaid     = "PAID"
	StatusFailed   = "FAILED"
	StatusRefunded = "REFUNDED"
)

type IntentRequest struct {
	Amount          decimal.Decimal
	Currency        string
	PaymentMethodID string
	OrderNumber     string
	CustomerEmail   string
	// IdempotencyKey is forwarded so a retried checkout never charges twice.
	IdempotencyKey string
}

type Intent struct {
	ID           string
	Status       string
	ClientSecret string
}

// Event is the subset of a provider webhook the order flow cares about.
type Event struct {
	ID              string
	Type            string
	PaymentIntentID string
	// PaymentStatus is empty for events that do not change payment state.
	PaymentStatus string
}

//go:generate mockgen -source=payment.go -destination=../mock/payment/payment_mock.go -package=mock
type Gateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (Intent, error)
	ParseWebhook(payload []byte, signature string) (Event, error)
}

// Succeeded reports whether the provider already captured the funds.
func (i Intent) Succeeded() bool {
	return i.Status == "succeeded"
}
