package storefront

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Name      string           `json:"name,omitempty"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
	LineTotal *decimal.Decimal `json:"lineTotal,omitempty"`
}

type Calculations struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Cart is the client view of either store. Guest carts carry no
// Calculations; pricing happens on the server.
type Cart struct {
	ID            string        `json:"id,omitempty"`
	Items         []CartItem    `json:"items"`
	Currency      string        `json:"currency,omitempty"`
	CouponCode    string        `json:"couponCode,omitempty"`
	CouponWarning string        `json:"couponWarning,omitempty"`
	Calculations  *Calculations `json:"calculations,omitempty"`
}

// guestLine is the exact shape stored under KeyGuestCart.
type guestLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type ShippingAddress struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"paymentStatus"`
	Currency        string          `json:"currency"`
	CouponCode      string          `json:"couponCode,omitempty"`
	Calculations    Calculations    `json:"calculations"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Items           []OrderItem     `json:"items,omitempty"`
	PlacedAt        time.Time       `json:"placedAt"`
}

type Payment struct {
	IntentID     string `json:"intentId,omitempty"`
	Status       string `json:"status"`
	ClientSecret string `json:"clientSecret,omitempty"`
}

type PlacedOrder struct {
	Order   Order   `json:"order"`
	Payment Payment `json:"payment"`
}

type Product struct {
	ID        string           `json:"id"`
	Slug      string           `json:"slug"`
	Name      string           `json:"name"`
	Brand     string           `json:"brand"`
	ImageURL  string           `json:"imageUrl"`
	Currency  string           `json:"currency"`
	Price     decimal.Decimal  `json:"price"`
	SalePrice *decimal.Decimal `json:"salePrice,omitempty"`
}

// Result is what every cart and checkout action returns to the UI.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func ok() Result { return Result{Success: true} }

func failed(msg string) Result { return Result{Error: msg} }
