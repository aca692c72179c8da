package coupon

import (
	"strings"
	"time"

	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/helper"

	"github.com/shopspring/decimal"
)

const (
	TypePercentage = "percentage"
	TypeFixed      = "fixed"
)

var hundred = decimal.NewFromInt(100)

type Coupon struct {
	Code          string          `json:"code"`
	DiscountType  string          `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	Currency      string          `json:"currency,omitempty"`
	MinSubtotal   decimal.Decimal `json:"minSubtotal"`
	ValidFrom     *time.Time      `json:"validFrom,omitempty"`
	ValidTo       *time.Time      `json:"validTo,omitempty"`
	Active        bool            `json:"active"`
}

func fromRow(row dbgen.Coupon) Coupon {
	c := Coupon{
		Code:          row.Code,
		DiscountType:  row.DiscountType,
		DiscountValue: helper.NumericToDecimal(row.DiscountValue),
		MinSubtotal:   helper.NumericToDecimal(row.MinSubtotal),
		Active:        row.IsActive,
	}
	if row.Currency.Valid {
		c.Currency = strings.ToUpper(row.Currency.String)
	}
	if row.ValidFrom.Valid {
		t := row.ValidFrom.Time
		c.ValidFrom = &t
	}
	if row.ValidTo.Valid {
		t := row.ValidTo.Time
		c.ValidTo = &t
	}
	return c
}

// Check evaluates the coupon against a cart. Rules are checked in the order a
// shopper would want to hear about them: existence, dates, currency, minimum.
func (c Coupon) Check(now time.Time, currency string, subtotal decimal.Decimal) error {
	if !c.Active {
		return ErrInvalidCoupon
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return ErrInvalidCoupon
	}
	if c.ValidTo != nil && now.After(*c.ValidTo) {
		return ErrCouponExpired
	}
	if c.DiscountType == TypeFixed && !strings.EqualFold(c.Currency, currency) {
		return ErrCouponCurrencyMismatch
	}
	if c.DiscountType == TypePercentage && c.Currency != "" && !strings.EqualFold(c.Currency, currency) {
		return ErrCouponCurrencyMismatch
	}
	if subtotal.LessThan(c.MinSubtotal) {
		return ErrCouponMinSubtotal
	}
	return nil
}

// DiscountFor returns the discount on subtotal, rounded to cents and capped at subtotal.
func (c Coupon) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal
	switch c.DiscountType {
	case TypePercentage:
		d = subtotal.Mul(c.DiscountValue).Div(hundred)
	case TypeFixed:
		d = c.DiscountValue
	default:
		return decimal.Zero
	}

	d = d.Round(2)
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(subtotal) {
		return subtotal
	}
	return d
}
