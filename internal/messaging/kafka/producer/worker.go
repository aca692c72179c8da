package producer

import (
	"context"
	"database/sql"
	"time"

	"github.com/vscooter54-cell/VScooter-sub000/internal/outbox"

	"go.uber.org/zap"
)

const (
	defaultInterval  = 5 * time.Second
	defaultBatchSize = 10
)

type Config struct {
	Interval  time.Duration
	BatchSize int
}

// Worker relays pending outbox rows to Kafka.
type Worker struct {
	db       *sql.DB
	repo     outbox.Repository
	writer   Writer
	interval time.Duration
	batch    int32
	logger   *zap.Logger
}

func NewWorker(db *sql.DB, repo outbox.Repository, writer Writer, cfg Config, logger *zap.Logger) *Worker {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		db:       db,
		repo:     repo,
		writer:   writer,
		interval: cfg.Interval,
		batch:    int32(cfg.BatchSize),
		logger:   logger.Named("outbox.worker"),
	}
}

// Run polls until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("outbox worker started",
		zap.Duration("interval", w.interval),
		zap.Int32("batch_size", w.batch),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopped")
			return nil
		case <-ticker.C:
			if _, err := w.Flush(ctx); err != nil && ctx.Err() == nil {
				w.logger.Error("outbox flush failed", zap.Error(err))
			}
		}
	}
}

// Flush publishes one batch inside a transaction so concurrent workers skip
// the rows it holds. It returns how many events were sent.
func (w *Worker) Flush(ctx context.Context) (int, error) {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	repo := w.repo.WithTx(tx)
	events, err := repo.ListPending(ctx, w.batch)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	sent := 0
	for _, ev := range events {
		log := w.logger.With(
			zap.String("event_id", ev.ID.String()),
			zap.String("event_type", ev.EventType),
		)

		if err := w.writer.WriteMessages(ctx, toMessage(ev)); err != nil {
			log.Warn("publish failed", zap.Error(err))
			if err := repo.MarkFailed(ctx, ev.ID); err != nil {
				return sent, err
			}
			continue
		}

		if err := repo.MarkSent(ctx, ev.ID); err != nil {
			return sent, err
		}
		sent++
		log.Debug("event published")
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	if sent > 0 {
		w.logger.Info("outbox batch published", zap.Int("sent", sent), zap.Int("pending", len(events)))
	}
	return sent, nil
}
