package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

const (
	eventIntentSucceeded = "payment_intent.succeeded"
	eventIntentFailed    = "payment_intent.payment_failed"
	eventChargeRefunded  = "charge.refunded"
)

// zero-decimal currencies are charged in whole units
var zeroDecimal = map[string]bool{
	"JPY": true, "KRW": true, "VND": true, "CLP": true,
}

type StripeGateway struct {
	api           *client.API
	webhookSecret string
	logger        *zap.Logger
}

func NewStripeGateway(secretKey, webhookSecret string, logger *zap.Logger) *StripeGateway {
	return NewStripeGatewayWithBackends(client.New(secretKey, nil), webhookSecret, logger)
}

// NewStripeGatewayWithBackends lets tests point the SDK at a local server.
func NewStripeGatewayWithBackends(api *client.API, webhookSecret string, logger *zap.Logger) *StripeGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StripeGateway{
		api:           api,
		webhookSecret: webhookSecret,
		logger:        logger.Named("payment.stripe"),
	}
}

func minorUnits(amount decimal.Decimal, currency string) int64 {
	if zeroDecimal[strings.ToUpper(currency)] {
		return amount.Round(0).IntPart()
	}
	return amount.Shift(2).Round(0).IntPart()
}

func (g *StripeGateway) CreateIntent(ctx context.Context, req IntentRequest) (Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(minorUnits(req.Amount, req.Currency)),
		Currency:      stripe.String(strings.ToLower(req.Currency)),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	if req.CustomerEmail != "" {
		params.ReceiptEmail = stripe.String(req.CustomerEmail)
	}
	params.Context = ctx
	params.AddMetadata("order_number", req.OrderNumber)
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			g.logger.Warn("card declined",
				zap.String("order_number", req.OrderNumber),
				zap.String("code", string(stripeErr.Code)),
			)
			return Intent{}, ErrPaymentFailed.Wrap(err)
		}
		return Intent{}, fmt.Errorf("create payment intent: %w", err)
	}

	return Intent{
		ID:           pi.ID,
		Status:       string(pi.Status),
		ClientSecret: pi.ClientSecret,
	}, nil
}

func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (Event, error) {
	ev, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return Event{}, ErrInvalidSignature.Wrap(err)
	}

	out := Event{ID: ev.ID, Type: string(ev.Type)}
	switch out.Type {
	case eventIntentSucceeded, eventIntentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(ev.Data.Raw, &pi); err != nil {
			return Event{}, fmt.Errorf("decode payment intent: %w", err)
		}
		out.PaymentIntentID = pi.ID
		out.PaymentStatus = StatusPaid
		if out.Type == eventIntentFailed {
			out.PaymentStatus = StatusFailed
		}
	case eventChargeRefunded:
		var ch stripe.Charge
		if err := json.Unmarshal(ev.Data.Raw, &ch); err != nil {
			return Event{}, fmt.Errorf("decode charge: %w", err)
		}
		if ch.PaymentIntent != nil {
			out.PaymentIntentID = ch.PaymentIntent.ID
			out.PaymentStatus = StatusRefunded
		}
	}
	return out, nil
}
