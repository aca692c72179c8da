package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vscooter54-cell/VScooter-sub000/internal/cart"
	"github.com/vscooter54-cell/VScooter-sub000/internal/email"
	"github.com/vscooter54-cell/VScooter-sub000/internal/messaging/kafka/consumer"
	cartMock "github.com/vscooter54-cell/VScooter-sub000/internal/mock/cart"
	"github.com/vscooter54-cell/VScooter-sub000/internal/outbox"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeReader serves queued messages, then cancels the run.
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []kafka.Message
	cancel    context.CancelFunc
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return kafka.Message{}, err
	}
	if len(f.queue) == 0 {
		f.cancel()
		return kafka.Message{}, ctx.Err()
	}
	msg := f.queue[0]
	f.queue = f.queue[1:]
	return msg, nil
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed = append(f.committed, msgs...)
	return nil
}

type fakeCarts struct {
	mu        sync.Mutex
	purchases []cart.Purchase
	users     []uuid.UUID
	failures  int
	calls     int
	onFail    func(calls int)
}

func (f *fakeCarts) RemovePurchased(_ context.Context, id uuid.UUID, p cart.Purchase) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failures < 0 || f.calls <= f.failures {
		if f.onFail != nil {
			f.onFail(f.calls)
		}
		return errors.New("db down")
	}
	f.users = append(f.users, id)
	f.purchases = append(f.purchases, p)
	return nil
}

type fakeMailer struct {
	sent []email.OrderConfirmation
	err  error
}

func (f *fakeMailer) SendOrderConfirmation(_ context.Context, msg email.OrderConfirmation) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func message(eventType string, payload any) kafka.Message {
	raw, _ := json.Marshal(payload)
	return kafka.Message{
		Value:   raw,
		Headers: []kafka.Header{{Key: outbox.HeaderEventType, Value: []byte(eventType)}},
	}
}

func run(t *testing.T, c func(consumer.Reader) *consumer.Consumer, msgs ...kafka.Message) *fakeReader {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	reader := &fakeReader{queue: msgs, cancel: cancel}
	require.NoError(t, c(reader).Run(ctx))
	return reader
}

func TestConsumer_OrderPlaced(t *testing.T) {
	uid, orderID, pid := uuid.New(), uuid.New(), uuid.New()
	placed := outbox.OrderPlaced{
		OrderID:     orderID.String(),
		OrderNumber: "VS-1",
		UserID:      uid.String(),
		Email:       "rider@example.com",
		Name:        "Rider",
		Currency:    "USD",
		CouponCode:  "SAVE10",
		Total:       decimal.RequireFromString("971.03"),
		Items:       []outbox.OrderedItem{{ProductID: pid.String(), Quantity: 2}},
	}

	t.Run("removes_purchase_and_emails", func(t *testing.T) {
		carts, mailer := &fakeCarts{}, &fakeMailer{}
		reader := run(t, func(r consumer.Reader) *consumer.Consumer {
			c := consumer.New(r, nil)
			c.Handle(outbox.EventOrderPlaced, consumer.OrderPlacedHandler(carts, mailer, nil))
			return c
		}, message(outbox.EventOrderPlaced, placed))

		assert.Equal(t, []uuid.UUID{uid}, carts.users)
		assert.Equal(t, []cart.Purchase{{
			OrderID:    orderID,
			CouponCode: "SAVE10",
			Items:      []cart.PurchasedItem{{ProductID: pid, Quantity: 2}},
		}}, carts.purchases)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "VS-1", mailer.sent[0].OrderNumber)
		assert.Len(t, reader.committed, 1)
	})

	t.Run("item_added_after_order_survives", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		repo := cartMock.NewMockRepository(ctrl)
		carts := cart.NewService(cart.Deps{DB: db, Repo: repo, Pricer: cartMock.NewMockPricer(ctrl)})
		cartID := uuid.New()

		// The cart also holds a helmet added after checkout. Only the ordered
		// scooters are deducted and nothing clears the whole cart.
		repo.EXPECT().GetByUserID(gomock.Any(), uid).Return(dbgen.Cart{ID: cartID}, nil)
		sqlMock.ExpectBegin()
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().RecordPurchase(gomock.Any(), cartID, orderID).Return(true, nil)
		repo.EXPECT().DeductItem(gomock.Any(), cartID, pid, int32(2)).Return(int64(0), nil)
		repo.EXPECT().DeleteItem(gomock.Any(), cartID, pid).Return(int64(1), nil)
		repo.EXPECT().DeleteAllItems(gomock.Any(), gomock.Any()).Times(0)
		sqlMock.ExpectCommit()

		reader := run(t, func(r consumer.Reader) *consumer.Consumer {
			c := consumer.New(r, nil)
			c.Handle(outbox.EventOrderPlaced, consumer.OrderPlacedHandler(carts, &fakeMailer{}, nil))
			return c
		}, message(outbox.EventOrderPlaced, placed))

		assert.Len(t, reader.committed, 1)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("email_failure_still_commits", func(t *testing.T) {
		carts, mailer := &fakeCarts{}, &fakeMailer{err: errors.New("resend down")}
		reader := run(t, func(r consumer.Reader) *consumer.Consumer {
			c := consumer.New(r, nil)
			c.Handle(outbox.EventOrderPlaced, consumer.OrderPlacedHandler(carts, mailer, nil))
			return c
		}, message(outbox.EventOrderPlaced, placed))

		assert.Len(t, carts.purchases, 1)
		assert.Len(t, reader.committed, 1)
	})

	t.Run("transient_failure_retried_then_committed", func(t *testing.T) {
		carts, mailer := &fakeCarts{failures: 2}, &fakeMailer{}
		reader := run(t, func(r consumer.Reader) *consumer.Consumer {
			c := consumer.New(r, nil)
			c.RetryBackoff(time.Millisecond, 2*time.Millisecond)
			c.Handle(outbox.EventOrderPlaced, consumer.OrderPlacedHandler(carts, mailer, nil))
			return c
		}, message(outbox.EventOrderPlaced, placed))

		assert.Equal(t, 3, carts.calls)
		assert.Len(t, carts.purchases, 1)
		assert.Len(t, mailer.sent, 1)
		assert.Len(t, reader.committed, 1)
	})

	t.Run("failure_holds_the_partition", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		later := message(outbox.EventOrderPlaced, placed)
		later.Offset = 2
		reader := &fakeReader{queue: []kafka.Message{message(outbox.EventOrderPlaced, placed), later}, cancel: cancel}
		carts := &fakeCarts{failures: -1, onFail: func(calls int) {
			if calls == 3 {
				cancel()
			}
		}}

		c := consumer.New(reader, nil)
		c.RetryBackoff(time.Millisecond, time.Millisecond)
		c.Handle(outbox.EventOrderPlaced, consumer.OrderPlacedHandler(carts, &fakeMailer{}, nil))
		require.NoError(t, c.Run(ctx))

		// Nothing is committed, and the message behind the failing one is
		// never fetched, so a restart resumes at the failed offset.
		assert.Empty(t, reader.committed)
		assert.Len(t, reader.queue, 1)
		assert.Equal(t, int64(2), reader.queue[0].Offset)
		assert.Equal(t, 3, carts.calls)
	})

	t.Run("bad_payload_skipped", func(t *testing.T) {
		carts := &fakeCarts{}
		reader := run(t, func(r consumer.Reader) *consumer.Consumer {
			c := consumer.New(r, nil)
			c.Handle(outbox.EventOrderPlaced, consumer.OrderPlacedHandler(carts, &fakeMailer{}, nil))
			return c
		}, message(outbox.EventOrderPlaced, "not an object"))

		assert.Zero(t, carts.calls)
		assert.Len(t, reader.committed, 1)
	})
}

func TestConsumer_UnknownEventSkipped(t *testing.T) {
	reader := run(t, func(r consumer.Reader) *consumer.Consumer {
		return consumer.New(r, nil)
	}, message("SOMETHING_ELSE", map[string]string{}))

	assert.Len(t, reader.committed, 1)
}
