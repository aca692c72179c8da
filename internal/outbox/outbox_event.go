package outbox

import (
	"encoding/json"
	"fmt"

	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AggregateOrder = "ORDER"

	EventOrderPlaced = "ORDER_PLACED"

	HeaderEventType     = "event_type"
	HeaderAggregateType = "aggregate_type"
)

// OrderPlaced is published once per order after the checkout transaction commits.
type OrderPlaced struct {
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	UserID      string          `json:"user_id"`
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	Currency    string          `json:"currency"`
	CouponCode  string          `json:"coupon_code,omitempty"`
	Total       decimal.Decimal `json:"total"`
	Items       []OrderedItem   `json:"items"`
}

// OrderedItem is one frozen order line, enough for consumers to take the
// purchased quantity back out of the cart.
type OrderedItem struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

func NewEvent(aggregateType string, aggregateID uuid.UUID, eventType string, payload any) (dbgen.CreateOutboxEventParams, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return dbgen.CreateOutboxEventParams{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return dbgen.CreateOutboxEventParams{
		ID:            uuid.New(),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Payload:       raw,
	}, nil
}
