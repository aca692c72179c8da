package consumer

import (
	"context"
	"errors"
	"time"

	"github.com/vscooter54-cell/VScooter-sub000/internal/outbox"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Reader is satisfied by *kafka.Reader.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type HandlerFunc func(ctx context.Context, payload []byte) error

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent marks a handler error that no retry can fix, such as a payload
// that does not decode. The message is committed and skipped.
func Permanent(err error) error {
	return permanentError{err: err}
}

func isPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}

const (
	defaultRetryDelay    = 500 * time.Millisecond
	defaultMaxRetryDelay = 30 * time.Second
)

type Consumer struct {
	reader        Reader
	handlers      map[string]HandlerFunc
	logger        *zap.Logger
	retryDelay    time.Duration
	maxRetryDelay time.Duration
}

func New(reader Reader, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{
		reader:        reader,
		handlers:      make(map[string]HandlerFunc),
		logger:        logger.Named("consumer"),
		retryDelay:    defaultRetryDelay,
		maxRetryDelay: defaultMaxRetryDelay,
	}
}

// RetryBackoff sets the first delay after a failed handler and the cap the
// doubling delay never exceeds.
func (c *Consumer) RetryBackoff(base, ceiling time.Duration) {
	if base > 0 {
		c.retryDelay = base
	}
	if ceiling >= c.retryDelay {
		c.maxRetryDelay = ceiling
	}
}

// Handle registers fn for messages whose event_type header equals eventType.
func (c *Consumer) Handle(eventType string, fn HandlerFunc) {
	c.handlers[eventType] = fn
}

// Run fetches until ctx is cancelled. A message is committed once its
// handler succeeds. A failing handler is retried with backoff and the
// partition does not advance past it, so nothing behind it is committed; if
// ctx ends first the message stays uncommitted and is redelivered to the
// next reader. Permanent failures and messages without a handler are
// committed and skipped.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("consumer started", zap.Int("handlers", len(c.handlers)))

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				c.logger.Info("consumer stopped")
				return nil
			}
			c.logger.Error("fetch message failed", zap.Error(err))
			continue
		}

		c.dispatch(ctx, msg)
	}
}

func (c *Consumer) dispatch(ctx context.Context, msg kafka.Message) {
	eventType := getHeader(msg.Headers, outbox.HeaderEventType)
	log := c.logger.With(
		zap.String("event_type", eventType),
		zap.Int("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
	)

	handler, ok := c.handlers[eventType]
	if !ok {
		log.Debug("no handler, skipping")
		c.commit(ctx, log, msg)
		return
	}

	delay := c.retryDelay
	for attempt := 1; ; attempt++ {
		err := handler(ctx, msg.Value)
		if err == nil {
			c.commit(ctx, log, msg)
			return
		}
		if isPermanent(err) {
			log.Error("dropping undecodable message", zap.Error(err))
			c.commit(ctx, log, msg)
			return
		}
		log.Error("handle message failed",
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			return
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
		delay *= 2
		if delay > c.maxRetryDelay {
			delay = c.maxRetryDelay
		}
	}
}

func (c *Consumer) commit(ctx context.Context, log *zap.Logger, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit message failed", zap.Error(err))
	}
}

func getHeader(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
