package order

import (
	"encoding/json"
	"time"

	"github.com/vscooter54-cell/VScooter-sub000/internal/pricing"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/helper"

	"github.com/shopspring/decimal"
)

// ==================== REQUEST STRUCTS ====================

type ShippingAddress struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

type CheckoutRequest struct {
	ShippingAddress ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethodID string          `json:"paymentMethodId" binding:"required"`
}

type ListQuery struct {
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=10" binding:"min=1,max=50"`
	Status string `form:"status"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ==================== RESPONSE STRUCTS ====================

type OrderItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int32           `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type OrderResponse struct {
	ID              string               `json:"id"`
	OrderNumber     string               `json:"orderNumber"`
	Status          string               `json:"status"`
	PaymentStatus   string               `json:"paymentStatus"`
	Currency        string               `json:"currency"`
	CouponCode      string               `json:"couponCode,omitempty"`
	Calculations    pricing.Calculations `json:"calculations"`
	ShippingAddress ShippingAddress      `json:"shippingAddress"`
	Items           []OrderItemResponse  `json:"items,omitempty"`
	PlacedAt        time.Time            `json:"placedAt"`
}

type PaymentResponse struct {
	IntentID     string `json:"intentId,omitempty"`
	Status       string `json:"status"`
	ClientSecret string `json:"clientSecret,omitempty"`
}

type CheckoutResponse struct {
	Order   OrderResponse   `json:"order"`
	Payment PaymentResponse `json:"payment"`
}

func mapOrder(o dbgen.Order, items []dbgen.OrderItem) OrderResponse {
	var addr ShippingAddress
	_ = json.Unmarshal(o.ShippingAddress, &addr)

	res := OrderResponse{
		ID:            o.ID.String(),
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Currency:      o.Currency,
		CouponCode:    helper.NullStringValue(o.CouponCode),
		Calculations: pricing.Calculations{
			Subtotal: helper.NumericToDecimal(o.Subtotal),
			Discount: helper.NumericToDecimal(o.Discount),
			Tax:      helper.NumericToDecimal(o.Tax),
			Shipping: helper.NumericToDecimal(o.Shipping),
			Total:    helper.NumericToDecimal(o.Total),
		},
		ShippingAddress: addr,
		PlacedAt:        o.PlacedAt,
	}

	for _, it := range items {
		res.Items = append(res.Items, OrderItemResponse{
			ProductID: it.ProductID.String(),
			Name:      it.NameSnapshot,
			UnitPrice: helper.NumericToDecimal(it.UnitPrice),
			Quantity:  it.Quantity,
			LineTotal: helper.NumericToDecimal(it.LineTotal),
		})
	}
	return res
}

func mapListRow(r dbgen.ListOrdersRow) OrderResponse {
	return mapOrder(dbgen.Order{
		ID:              r.ID,
		OrderNumber:     r.OrderNumber,
		UserID:          r.UserID,
		Status:          r.Status,
		PaymentStatus:   r.PaymentStatus,
		Currency:        r.Currency,
		CouponCode:      r.CouponCode,
		Subtotal:        r.Subtotal,
		Discount:        r.Discount,
		Tax:             r.Tax,
		Shipping:        r.Shipping,
		Total:           r.Total,
		ShippingAddress: r.ShippingAddress,
		PlacedAt:        r.PlacedAt,
	}, nil)
}
