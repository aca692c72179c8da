package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	autherrors "github.com/vscooter54-cell/VScooter-sub000/internal/auth/errors"
	"github.com/vscooter54-cell/VScooter-sub000/internal/cart"
	"github.com/vscooter54-cell/VScooter-sub000/internal/outbox"
	"github.com/vscooter54-cell/VScooter-sub000/internal/payment"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/helper"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=order_service.go -destination=../mock/order/order_service_mock.go -package=mock
type Service interface {
	Checkout(ctx context.Context, userID, idempotencyKey string, req CheckoutRequest) (CheckoutResponse, error)
	List(ctx context.Context, userID string, q ListQuery) ([]OrderResponse, int64, error)
	Detail(ctx context.Context, userID, orderID string) (OrderResponse, error)
	Cancel(ctx context.Context, userID, orderID string) (OrderResponse, error)

	UpdateStatus(ctx context.Context, orderID string, req UpdateStatusRequest) (OrderResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// CartSource is implemented by cart.Service.
type CartSource interface {
	Snapshot(ctx context.Context, userID uuid.UUID) (cart.Snapshot, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   outbox.Repository
	carts    CartSource
	payments payment.Gateway
	logger   *zap.Logger
	now      func() time.Time
}

type Deps struct {
	DB       *sql.DB
	Repo     Repository
	Outbox   outbox.Repository
	Carts    CartSource
	Payments payment.Gateway
	Logger   *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.DB == nil {
		panic("db cannot be nil")
	}
	if deps.Repo == nil {
		panic("order repository cannot be nil")
	}
	if deps.Outbox == nil {
		panic("outbox repository cannot be nil")
	}
	if deps.Carts == nil {
		panic("cart source cannot be nil")
	}
	if deps.Payments == nil {
		panic("payment gateway cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &service{
		db:       deps.DB,
		repo:     deps.Repo,
		outbox:   deps.Outbox,
		carts:    deps.Carts,
		payments: deps.Payments,
		logger:   deps.Logger,
		now:      time.Now,
	}
}

func parseUserID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, autherrors.ErrInvalidUserID
	}
	return uid, nil
}

// keyedOrders namespaces order numbers derived from idempotency keys.
var keyedOrders = uuid.MustParse("6f1d3c2e-8a47-4b5e-9c0a-52e7d1b4f390")

// orderNumber is stable for a given user and idempotency key so a retried
// checkout lands on the same order row and the same payment intent.
func (s *service) orderNumber(uid uuid.UUID, idempotencyKey string) string {
	if idempotencyKey == "" {
		return fmt.Sprintf("VS-%s-%s",
			s.now().UTC().Format("20060102"),
			strings.ToUpper(uuid.New().String()[:6]),
		)
	}
	id := uuid.NewSHA1(keyedOrders, []byte(uid.String()+":"+idempotencyKey))
	return "VS-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:12])
}

// intentKey scopes the gateway idempotency key to everything the intent
// carries, so a retry with a different card or total is a new attempt.
func intentKey(number string, req payment.IntentRequest) string {
	return strings.Join([]string{
		number,
		req.PaymentMethodID,
		req.Currency,
		req.Amount.StringFixed(2),
	}, ":")
}

// ========================
// checkout
// ========================

// Checkout freezes the priced cart into an order. The payment intent is
// created before the transaction so a declined card leaves nothing behind.
// The ordered lines are removed from the cart by the client and again by
// the ORDER_PLACED consumer. Replaying an idempotency key returns the order
// it already produced.
func (s *service) Checkout(ctx context.Context, userID, idempotencyKey string, req CheckoutRequest) (CheckoutResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return CheckoutResponse{}, err
	}

	number := s.orderNumber(uid, idempotencyKey)
	if idempotencyKey != "" {
		existing, err := s.repo.GetByOrderNumber(ctx, number)
		switch {
		case err == nil:
			return s.replay(ctx, existing)
		case !errors.Is(err, sql.ErrNoRows):
			return CheckoutResponse{}, err
		}
	}

	snap, err := s.carts.Snapshot(ctx, uid)
	if err != nil {
		return CheckoutResponse{}, err
	}
	quote := snap.Quote

	user, err := s.repo.GetUserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CheckoutResponse{}, autherrors.ErrUserNotFound
		}
		return CheckoutResponse{}, err
	}

	address, err := json.Marshal(req.ShippingAddress)
	if err != nil {
		return CheckoutResponse{}, ErrOrderFailed.Wrap(err)
	}

	paymentStatus := payment.StatusPaid
	var intent payment.Intent
	if quote.Calculations.Total.IsPositive() {
		ir := payment.IntentRequest{
			Amount:          quote.Calculations.Total,
			Currency:        quote.Currency,
			PaymentMethodID: req.PaymentMethodID,
			OrderNumber:     number,
			CustomerEmail:   user.Email,
		}
		ir.IdempotencyKey = intentKey(number, ir)
		intent, err = s.payments.CreateIntent(ctx, ir)
		if err != nil {
			if errors.Is(err, payment.ErrPaymentFailed) {
				return CheckoutResponse{}, err
			}
			s.logger.Error("create payment intent failed",
				zap.String("user_id", userID),
				zap.String("order_number", number),
				zap.Error(err),
			)
			return CheckoutResponse{}, ErrOrderFailed.Wrap(err)
		}
		if !intent.Succeeded() {
			paymentStatus = payment.StatusUnpaid
		}
	}

	couponCode := sql.NullString{}
	if quote.CouponWarning == "" {
		couponCode = helper.RawStringToNull(quote.CouponCode)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CheckoutResponse{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	repo := s.repo.WithTx(tx)
	events := s.outbox.WithTx(tx)

	o, err := repo.CreateOrder(ctx, dbgen.CreateOrderParams{
		OrderNumber:     number,
		UserID:          uid,
		Status:          StatusPending,
		PaymentStatus:   paymentStatus,
		Currency:        quote.Currency,
		CouponCode:      couponCode,
		Subtotal:        helper.DecimalToNumeric(quote.Calculations.Subtotal),
		Discount:        helper.DecimalToNumeric(quote.Calculations.Discount),
		Tax:             helper.DecimalToNumeric(quote.Calculations.Tax),
		Shipping:        helper.DecimalToNumeric(quote.Calculations.Shipping),
		Total:           helper.DecimalToNumeric(quote.Calculations.Total),
		ShippingAddress: address,
		PaymentMethodID: req.PaymentMethodID,
		PaymentIntentID: helper.RawStringToNull(intent.ID),
		ClientSecret:    helper.RawStringToNull(intent.ClientSecret),
	})
	if err != nil {
		return CheckoutResponse{}, err
	}

	items := make([]dbgen.OrderItem, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		item := dbgen.CreateOrderItemParams{
			OrderID:      o.ID,
			ProductID:    l.ProductID,
			NameSnapshot: l.Name,
			UnitPrice:    helper.DecimalToNumeric(l.UnitPrice),
			Quantity:     l.Quantity,
			LineTotal:    helper.DecimalToNumeric(l.LineTotal),
		}
		if err := repo.CreateOrderItem(ctx, item); err != nil {
			return CheckoutResponse{}, err
		}
		items = append(items, dbgen.OrderItem{
			OrderID:      item.OrderID,
			ProductID:    item.ProductID,
			NameSnapshot: item.NameSnapshot,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			LineTotal:    item.LineTotal,
		})
	}

	ev, err := outbox.NewEvent(outbox.AggregateOrder, o.ID, outbox.EventOrderPlaced, outbox.OrderPlaced{
		OrderID:     o.ID.String(),
		OrderNumber: o.OrderNumber,
		UserID:      uid.String(),
		Email:       user.Email,
		Name:        user.Name,
		Currency:    quote.Currency,
		CouponCode:  couponCode.String,
		Total:       quote.Calculations.Total,
		Items:       orderedItems(items),
	})
	if err != nil {
		return CheckoutResponse{}, err
	}
	if err := events.Create(ctx, ev); err != nil {
		return CheckoutResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return CheckoutResponse{}, err
	}
	committed = true

	s.logger.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("order_number", o.OrderNumber),
		zap.String("payment_status", paymentStatus),
	)

	return CheckoutResponse{
		Order: mapOrder(o, items),
		Payment: PaymentResponse{
			IntentID:     intent.ID,
			Status:       paymentStatus,
			ClientSecret: intent.ClientSecret,
		},
	}, nil
}

func (s *service) replay(ctx context.Context, o dbgen.Order) (CheckoutResponse, error) {
	items, err := s.repo.GetItems(ctx, o.ID)
	if err != nil {
		return CheckoutResponse{}, err
	}
	s.logger.Info("checkout replayed",
		zap.String("order_id", o.ID.String()),
		zap.String("order_number", o.OrderNumber),
	)
	return CheckoutResponse{
		Order: mapOrder(o, items),
		Payment: PaymentResponse{
			IntentID:     o.PaymentIntentID.String,
			Status:       o.PaymentStatus,
			ClientSecret: o.ClientSecret.String,
		},
	}, nil
}

func orderedItems(items []dbgen.OrderItem) []outbox.OrderedItem {
	out := make([]outbox.OrderedItem, 0, len(items))
	for _, it := range items {
		out = append(out, outbox.OrderedItem{
			ProductID: it.ProductID.String(),
			Quantity:  it.Quantity,
		})
	}
	return out
}

// ========================
// queries
// ========================

func (s *service) List(ctx context.Context, userID string, q ListQuery) ([]OrderResponse, int64, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, 0, err
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}

	status := strings.ToUpper(strings.TrimSpace(q.Status))
	if status != "" && !knownStatus(status) {
		return nil, 0, ErrInvalidStatus
	}

	rows, err := s.repo.List(ctx, dbgen.ListOrdersParams{
		UserID:     uid,
		Status:     helper.RawStringToNull(status),
		PageLimit:  int32(q.Limit),
		PageOffset: int32((q.Page - 1) * q.Limit),
	})
	if err != nil {
		return nil, 0, err
	}

	var total int64
	out := make([]OrderResponse, 0, len(rows))
	for _, r := range rows {
		total = r.TotalCount
		out = append(out, mapListRow(r))
	}
	return out, total, nil
}

func (s *service) Detail(ctx context.Context, userID, orderID string) (OrderResponse, error) {
	o, err := s.owned(ctx, userID, orderID)
	if err != nil {
		return OrderResponse{}, err
	}

	items, err := s.repo.GetItems(ctx, o.ID)
	if err != nil {
		return OrderResponse{}, err
	}
	return mapOrder(o, items), nil
}

// owned loads an order and hides it from anyone but its owner.
func (s *service) owned(ctx context.Context, userID, orderID string) (dbgen.Order, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return dbgen.Order{}, err
	}
	o, err := s.get(ctx, orderID)
	if err != nil {
		return dbgen.Order{}, err
	}
	if o.UserID != uid {
		return dbgen.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) get(ctx context.Context, orderID string) (dbgen.Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return dbgen.Order{}, ErrInvalidOrderID
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dbgen.Order{}, ErrOrderNotFound
		}
		return dbgen.Order{}, err
	}
	return o, nil
}

// ========================
// status
// ========================

func (s *service) Cancel(ctx context.Context, userID, orderID string) (OrderResponse, error) {
	o, err := s.owned(ctx, userID, orderID)
	if err != nil {
		return OrderResponse{}, err
	}
	if !canTransition(o.Status, StatusCancelled) {
		return OrderResponse{}, ErrCannotCancel
	}

	updated, err := s.repo.UpdateStatus(ctx, o.ID, StatusCancelled)
	if err != nil {
		return OrderResponse{}, err
	}
	s.logger.Info("order cancelled",
		zap.String("order_id", o.ID.String()),
		zap.String("from", o.Status),
	)
	return mapOrder(updated, nil), nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID string, req UpdateStatusRequest) (OrderResponse, error) {
	next := strings.ToUpper(strings.TrimSpace(req.Status))
	if !knownStatus(next) {
		return OrderResponse{}, ErrInvalidStatus
	}

	o, err := s.get(ctx, orderID)
	if err != nil {
		return OrderResponse{}, err
	}
	if !canTransition(o.Status, next) {
		return OrderResponse{}, ErrInvalidStatusTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, o.ID, next)
	if err != nil {
		return OrderResponse{}, err
	}
	s.logger.Info("order status updated",
		zap.String("order_id", o.ID.String()),
		zap.String("from", o.Status),
		zap.String("to", next),
	)
	return mapOrder(updated, nil), nil
}

// ========================
// payment webhook
// ========================

var paymentTransitions = map[string][]string{
	payment.StatusUnpaid: {payment.StatusPaid, payment.StatusFailed},
	payment.StatusFailed: {payment.StatusPaid},
	payment.StatusPaid:   {payment.StatusRefunded},
}

func canTransitionPayment(from, to string) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// HandleWebhook applies a verified provider event. Events for unknown
// intents, replays and out-of-order deliveries are acknowledged without
// changes so the provider stops retrying.
func (s *service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	ev, err := s.payments.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}
	if ev.PaymentStatus == "" || ev.PaymentIntentID == "" {
		s.logger.Debug("webhook event ignored", zap.String("type", ev.Type))
		return nil
	}

	log := s.logger.With(
		zap.String("event_id", ev.ID),
		zap.String("payment_intent_id", ev.PaymentIntentID),
	)

	o, err := s.repo.GetByPaymentIntentID(ctx, ev.PaymentIntentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("webhook for unknown payment intent")
			return nil
		}
		return err
	}

	if !canTransitionPayment(o.PaymentStatus, ev.PaymentStatus) {
		log.Info("payment status unchanged",
			zap.String("current", o.PaymentStatus),
			zap.String("incoming", ev.PaymentStatus),
		)
		return nil
	}

	if _, err := s.repo.UpdatePaymentStatus(ctx, o.ID, ev.PaymentStatus); err != nil {
		return err
	}
	log.Info("payment status updated",
		zap.String("order_id", o.ID.String()),
		zap.String("from", o.PaymentStatus),
		zap.String("to", ev.PaymentStatus),
	)
	return nil
}
