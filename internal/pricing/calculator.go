package pricing

import (
	"context"
	"strings"

	"github.com/vscooter54-cell/VScooter-sub000/internal/coupon"
	"github.com/vscooter54-cell/VScooter-sub000/internal/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const priceFetchLimit = 4

type Line struct {
	ProductID uuid.UUID
	Quantity  int32
}

type PricedLine struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type Calculations struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

type Quote struct {
	Currency      string
	Lines         []PricedLine
	Calculations  Calculations
	CouponCode    string
	CouponWarning string
}

type PriceSource interface {
	GetPrice(ctx context.Context, productID uuid.UUID, currency string) (product.PriceQuote, error)
}

type CouponResolver interface {
	Resolve(ctx context.Context, code, currency string, subtotal decimal.Decimal) (coupon.Coupon, error)
}

type Deps struct {
	Prices   PriceSource
	Coupons  CouponResolver
	Tax      TaxPolicy
	Shipping ShippingPolicy
	Logger   *zap.Logger
}

type Calculator struct {
	prices   PriceSource
	coupons  CouponResolver
	tax      TaxPolicy
	shipping ShippingPolicy
	logger   *zap.Logger
}

func NewCalculator(deps Deps) *Calculator {
	if deps.Prices == nil {
		panic("price source cannot be nil")
	}
	if deps.Coupons == nil {
		panic("coupon resolver cannot be nil")
	}
	if deps.Tax == nil {
		deps.Tax = RateTax{}
	}
	if deps.Shipping == nil {
		deps.Shipping = FlatShipping{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Calculator{
		prices:   deps.Prices,
		coupons:  deps.Coupons,
		tax:      deps.Tax,
		shipping: deps.Shipping,
		logger:   deps.Logger,
	}
}

// PriceLines looks up every line's unit price in currency. Results keep the
// order of lines.
func (c *Calculator) PriceLines(ctx context.Context, lines []Line, currency string) ([]PricedLine, error) {
	currency = strings.ToUpper(currency)
	out := make([]PricedLine, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(priceFetchLimit)
	for i, l := range lines {
		g.Go(func() error {
			q, err := c.prices.GetPrice(gctx, l.ProductID, currency)
			if err != nil {
				return err
			}
			unit := q.Unit()
			out[i] = PricedLine{
				ProductID: l.ProductID,
				Name:      q.Name,
				Quantity:  l.Quantity,
				UnitPrice: unit,
				LineTotal: unit.Mul(decimal.NewFromInt32(l.Quantity)).Round(2),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Totals derives the breakdown for already priced lines. cp must already be
// validated for this cart; nil means no discount.
func (c *Calculator) Totals(currency string, lines []PricedLine, cp *coupon.Coupon) Calculations {
	subtotal := decimal.Zero
	items := 0
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal)
		items += int(l.Quantity)
	}

	discount := decimal.Zero
	if cp != nil {
		discount = cp.DiscountFor(subtotal)
	}

	tax := c.tax.Tax(currency, subtotal.Sub(discount))
	shipping := c.shipping.Shipping(currency, subtotal, items)

	total := subtotal.Sub(discount).Add(tax).Add(shipping)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Calculations{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Shipping: shipping,
		Total:    total,
	}
}

// Calculate prices lines and applies couponCode if it still holds for the
// cart. A coupon that no longer qualifies is dropped from the totals and
// reported through CouponWarning.
func (c *Calculator) Calculate(ctx context.Context, lines []Line, currency, couponCode string) (Quote, error) {
	currency = strings.ToUpper(currency)

	priced, err := c.PriceLines(ctx, lines, currency)
	if err != nil {
		return Quote{}, err
	}

	q := Quote{Currency: currency, Lines: priced, CouponCode: couponCode}
	if couponCode == "" {
		q.Calculations = c.Totals(currency, priced, nil)
		return q, nil
	}

	subtotal := c.Totals(currency, priced, nil).Subtotal
	cp, err := c.coupons.Resolve(ctx, couponCode, currency, subtotal)
	if err != nil {
		if !coupon.IsRejection(err) {
			return Quote{}, err
		}
		c.logger.Debug("stored coupon no longer applies",
			zap.String("code", couponCode),
			zap.Error(err),
		)
		q.CouponWarning = couponMessage(err)
		q.Calculations = c.Totals(currency, priced, nil)
		return q, nil
	}

	q.Calculations = c.Totals(currency, priced, &cp)
	return q, nil
}

// Apply resolves code strictly: any rejection is returned to the caller.
func (c *Calculator) Apply(ctx context.Context, lines []Line, currency, code string) (Quote, error) {
	currency = strings.ToUpper(currency)

	priced, err := c.PriceLines(ctx, lines, currency)
	if err != nil {
		return Quote{}, err
	}

	subtotal := c.Totals(currency, priced, nil).Subtotal
	cp, err := c.coupons.Resolve(ctx, code, currency, subtotal)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Currency:     currency,
		Lines:        priced,
		CouponCode:   cp.Code,
		Calculations: c.Totals(currency, priced, &cp),
	}, nil
}
