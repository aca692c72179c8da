package producer

import (
	"context"

	"github.com/vscooter54-cell/VScooter-sub000/internal/outbox"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"

	"github.com/segmentio/kafka-go"
)

// Writer is satisfied by *kafka.Writer.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// toMessage keys by aggregate so every event of one order lands on the
// same partition in publish order.
func toMessage(event dbgen.OutboxEvent) kafka.Message {
	return kafka.Message{
		Key:   []byte(event.AggregateID.String()),
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: outbox.HeaderEventType, Value: []byte(event.EventType)},
			{Key: outbox.HeaderAggregateType, Value: []byte(event.AggregateType)},
		},
	}
}
