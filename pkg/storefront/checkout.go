package storefront

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const codePaymentFailed = "PAYMENT_FAILED"

type Step int

const (
	StepShipping Step = iota + 1
	StepReview
	StepPlaced
)

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepReview:
		return "review"
	case StepPlaced:
		return "placed"
	}
	return "unknown"
}

// Checkout drives shipping -> review -> placed for one order attempt.
type Checkout struct {
	session  *Session
	cart     *Manager
	validate *validator.Validate
	logger   *zap.Logger
	onPlaced func(orderID string)

	mu              sync.Mutex
	step            Step
	address         ShippingAddress
	saveAddress     bool
	paymentMethodID string
	idempotencyKey  string
	placing         bool
	errMsg          string
	placed          *PlacedOrder
}

// NewCheckout starts on the shipping step. onPlaced receives the new order
// id once the cart has been cleared.
func NewCheckout(session *Session, cart *Manager, onPlaced func(orderID string), logger *zap.Logger) *Checkout {
	if session == nil || cart == nil {
		panic("storefront: checkout requires session and cart manager")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if onPlaced == nil {
		onPlaced = func(string) {}
	}
	return &Checkout{
		session:  session,
		cart:     cart,
		validate: validator.New(),
		logger:   logger.Named("storefront.checkout"),
		onPlaced: onPlaced,
		step:     StepShipping,
	}
}

func (c *Checkout) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Error is the inline message for the current step, empty when none.
func (c *Checkout) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *Checkout) Address() ShippingAddress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.address
}

func (c *Checkout) Placed() *PlacedOrder {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.placed == nil {
		return nil
	}
	p := *c.placed
	return &p
}

// SetShipping records the form. save asks PlaceOrder to also store the
// address in the user's address book.
func (c *Checkout) SetShipping(addr ShippingAddress, save bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.address = ShippingAddress{
		Street:     strings.TrimSpace(addr.Street),
		City:       strings.TrimSpace(addr.City),
		State:      strings.TrimSpace(addr.State),
		PostalCode: strings.TrimSpace(addr.PostalCode),
		Country:    strings.TrimSpace(addr.Country),
	}
	c.saveAddress = save
}

// SetPaymentMethod issues a new idempotency key when the method changes.
func (c *Checkout) SetPaymentMethod(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id = strings.TrimSpace(id)
	if id != c.paymentMethodID && c.idempotencyKey != "" {
		c.idempotencyKey = uuid.NewString()
	}
	c.paymentMethodID = id
}

// ContinueToReview moves to the review step when every shipping field is
// filled. It never touches the network.
func (c *Checkout) ContinueToReview() Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepShipping {
		return failed(GenericError)
	}
	if err := c.validate.Struct(c.address); err != nil {
		c.errMsg = string(errIncompleteShipping)
		return failed(c.errMsg)
	}

	c.errMsg = ""
	c.step = StepReview
	if c.idempotencyKey == "" {
		c.idempotencyKey = uuid.NewString()
	}
	return ok()
}

// Back returns to the shipping form from review.
func (c *Checkout) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step == StepReview {
		c.step = StepShipping
		c.errMsg = ""
	}
}

// PlaceOrder saves the address if asked, creates the order, clears the cart
// and then calls onPlaced. A failed order keeps the cart and the review step.
// Retrying after a transport or server failure reuses the idempotency key; a
// declined payment gets a fresh one so the next attempt is a new charge.
func (c *Checkout) PlaceOrder(ctx context.Context) Result {
	orderID, res := c.place(ctx)
	if res.Success {
		c.onPlaced(orderID)
	}
	return res
}

type attempt struct {
	address         ShippingAddress
	saveAddress     bool
	paymentMethodID string
	idempotencyKey  string
}

// begin validates the review state and snapshots it for one attempt.
func (c *Checkout) begin() (attempt, Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepReview || c.placing {
		return attempt{}, failed(GenericError)
	}
	if !c.session.Authenticated() {
		c.errMsg = string(errCheckoutNeedsSignIn)
		return attempt{}, failed(c.errMsg)
	}
	if err := c.validate.Struct(c.address); err != nil {
		c.errMsg = string(errIncompleteShipping)
		c.step = StepShipping
		return attempt{}, failed(c.errMsg)
	}

	c.placing = true
	return attempt{
		address:         c.address,
		saveAddress:     c.saveAddress,
		paymentMethodID: c.paymentMethodID,
		idempotencyKey:  c.idempotencyKey,
	}, ok()
}

func (c *Checkout) place(ctx context.Context) (string, Result) {
	a, res := c.begin()
	if !res.Success {
		return "", res
	}

	if a.saveAddress {
		if err := c.session.client.SaveAddress(ctx, a.address); err != nil {
			c.logger.Warn("save address failed", zap.Error(err))
		}
	}

	placed, err := c.session.client.CreateOrder(
		WithIdempotencyKey(ctx, a.idempotencyKey),
		a.address,
		a.paymentMethodID,
	)
	if err != nil {
		c.logger.Info("place order failed", zap.Error(err))
		c.mu.Lock()
		defer c.mu.Unlock()
		c.placing = false
		c.errMsg = UserMessage(err)
		if declined(err) && c.idempotencyKey == a.idempotencyKey {
			c.idempotencyKey = uuid.NewString()
		}
		return "", failed(c.errMsg)
	}

	if res := c.cart.ClearCart(ctx); !res.Success {
		c.logger.Warn("clear cart after order failed",
			zap.String("order_id", placed.Order.ID),
			zap.String("error", res.Error),
		)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.placing = false
	c.placed = &placed
	c.step = StepPlaced
	c.errMsg = ""
	return placed.Order.ID, ok()
}

func declined(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == codePaymentFailed
}
