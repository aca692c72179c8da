package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type TaxPolicy interface {
	Tax(currency string, taxable decimal.Decimal) decimal.Decimal
}

// RateTax applies a flat rate per currency. Unknown currencies are untaxed.
type RateTax struct {
	Rates map[string]decimal.Decimal
}

func (t RateTax) Tax(currency string, taxable decimal.Decimal) decimal.Decimal {
	rate, ok := t.Rates[strings.ToUpper(currency)]
	if !ok || !taxable.IsPositive() {
		return decimal.Zero
	}
	return taxable.Mul(rate).Round(2)
}

type ShippingPolicy interface {
	Shipping(currency string, subtotal decimal.Decimal, items int) decimal.Decimal
}

const (
	ShippingModeFlat   = "flat"
	ShippingModeTiered = "tiered"
)

// FlatShipping charges the same amount for every non-empty cart.
type FlatShipping struct {
	Amount decimal.Decimal
}

func (f FlatShipping) Shipping(_ string, _ decimal.Decimal, items int) decimal.Decimal {
	if items == 0 {
		return decimal.Zero
	}
	return f.Amount
}

// TieredShipping is flat below FreeThreshold and free at or above it.
type TieredShipping struct {
	Amount        decimal.Decimal
	FreeThreshold decimal.Decimal
}

func (t TieredShipping) Shipping(_ string, subtotal decimal.Decimal, items int) decimal.Decimal {
	if items == 0 || subtotal.GreaterThanOrEqual(t.FreeThreshold) {
		return decimal.Zero
	}
	return t.Amount
}

// NewShippingPolicy builds a policy from its config representation.
func NewShippingPolicy(mode, flat, freeThreshold string) (ShippingPolicy, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(flat))
	if err != nil {
		return nil, fmt.Errorf("invalid shipping amount %q: %w", flat, err)
	}

	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ShippingModeFlat:
		return FlatShipping{Amount: amount}, nil
	case ShippingModeTiered, "":
		threshold, err := decimal.NewFromString(strings.TrimSpace(freeThreshold))
		if err != nil {
			return nil, fmt.Errorf("invalid free shipping threshold %q: %w", freeThreshold, err)
		}
		return TieredShipping{Amount: amount, FreeThreshold: threshold}, nil
	default:
		return nil, fmt.Errorf("unknown shipping mode %q", mode)
	}
}
