package cart

import (
	"github.com/vscooter54-cell/VScooter-sub000/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	// Quantity defaults to 1 when omitted or not positive.
	Quantity int32 `json:"quantity"`
}

type UpdateQtyRequest struct {
	Quantity int32 `json:"quantity" binding:"required"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required,max=64"`
}

type CurrencyRequest struct {
	Currency string `json:"currency" binding:"required,len=3,alpha"`
}

type MergeItem struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int32  `json:"quantity" binding:"required,min=1"`
}

type MergeRequest struct {
	Items []MergeItem `json:"items" binding:"required,min=1,dive"`
}

type CartItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type CartResponse struct {
	ID            string               `json:"id,omitempty"`
	Currency      string               `json:"currency"`
	CouponCode    string               `json:"couponCode,omitempty"`
	CouponWarning string               `json:"couponWarning,omitempty"`
	Items         []CartItemResponse   `json:"items"`
	Calculations  pricing.Calculations `json:"calculations"`
}

type CartCountResponse struct {
	Count int64 `json:"count"`
}

// Snapshot is the priced state of a cart at checkout time.
type Snapshot struct {
	CartID uuid.UUID
	Quote  pricing.Quote
}

// Purchase is a placed order as the cart sees it.
type Purchase struct {
	OrderID    uuid.UUID
	CouponCode string
	Items      []PurchasedItem
}

type PurchasedItem struct {
	ProductID uuid.UUID
	Quantity  int32
}

func toResponse(id uuid.UUID, q pricing.Quote) CartResponse {
	items := make([]CartItemResponse, 0, len(q.Lines))
	for _, l := range q.Lines {
		items = append(items, CartItemResponse{
			ProductID: l.ProductID.String(),
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}

	res := CartResponse{
		Currency:      q.Currency,
		CouponCode:    q.CouponCode,
		CouponWarning: q.CouponWarning,
		Items:         items,
		Calculations:  q.Calculations,
	}
	if id != uuid.Nil {
		res.ID = id.String()
	}
	return res
}
