package app

import (
	"context"

	"github.com/vscooter54-cell/VScooter-sub000/internal/messaging/kafka/producer"
	"github.com/vscooter54-cell/VScooter-sub000/internal/outbox"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/connection"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"
)

// RunWorker relays outbox events without serving HTTP.
func RunWorker(ctx context.Context, infra *Infra) error {
	cfg := infra.Config

	writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.KafkaTopic, cfg.DBRetry)
	if err != nil {
		return err
	}
	defer writer.Close()

	worker := producer.NewWorker(infra.DB, outbox.NewRepository(dbgen.New(infra.DB)), writer, producer.Config{
		Interval:  cfg.OutboxInterval,
		BatchSize: cfg.OutboxBatchSize,
	}, infra.Logger)

	return worker.Run(ctx)
}
