package app

import (
	"context"

	"github.com/vscooter54-cell/VScooter-sub000/internal/email"
	"github.com/vscooter54-cell/VScooter-sub000/internal/messaging/kafka/consumer"
	"github.com/vscooter54-cell/VScooter-sub000/internal/outbox"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func newMailer(infra *Infra) email.Service {
	mailer, err := email.NewResendService(email.ResendConfig{
		APIKey:    infra.Config.ResendAPIKey,
		FromEmail: infra.Config.ResendFromEmail,
	})
	if err != nil {
		infra.Logger.Warn("order emails disabled", zap.Error(err))
		return email.NewNoopService()
	}
	return mailer
}

// RunConsumer handles order events until ctx ends.
func RunConsumer(ctx context.Context, infra *Infra) error {
	cfg := infra.Config

	m, err := buildModules(infra, false)
	if err != nil {
		return err
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   cfg.KafkaTopic,
		GroupID: cfg.KafkaConsumerGroup,
	})
	defer reader.Close()

	c := consumer.New(reader, infra.Logger)
	c.Handle(outbox.EventOrderPlaced, consumer.OrderPlacedHandler(m.cart, newMailer(infra), infra.Logger.Named("order_placed")))

	return c.Run(ctx)
}
