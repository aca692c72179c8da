package outbox

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	orderID := uuid.New()

	ev, err := NewEvent(AggregateOrder, orderID, EventOrderPlaced, OrderPlaced{
		OrderID:  orderID.String(),
		UserID:   "u1",
		Currency: "USD",
		Total:    decimal.RequireFromString("899.00"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, ev.ID)
	assert.Equal(t, orderID, ev.AggregateID)
	assert.Equal(t, EventOrderPlaced, ev.EventType)

	var back OrderPlaced
	require.NoError(t, json.Unmarshal(ev.Payload, &back))
	assert.Equal(t, "u1", back.UserID)
	assert.True(t, decimal.RequireFromString("899").Equal(back.Total))
}

func TestNewEvent_Unmarshalable(t *testing.T) {
	_, err := NewEvent(AggregateOrder, uuid.New(), EventOrderPlaced, make(chan int))
	assert.Error(t, err)
}
