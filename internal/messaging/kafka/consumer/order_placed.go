package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vscooter54-cell/VScooter-sub000/internal/cart"
	"github.com/vscooter54-cell/VScooter-sub000/internal/email"
	"github.com/vscooter54-cell/VScooter-sub000/internal/outbox"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PurchaseRemover is implemented by cart.Service.
type PurchaseRemover interface {
	RemovePurchased(ctx context.Context, userID uuid.UUID, p cart.Purchase) error
}

// OrderPlacedHandler takes the ordered quantities out of the buyer's cart and
// sends the confirmation. The cart records each order it applied, so
// redelivery does not deduct twice. A failed email is logged and not retried
// so the customer never gets duplicates.
func OrderPlacedHandler(carts PurchaseRemover, mailer email.Service, logger *zap.Logger) HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, payload []byte) error {
		var ev outbox.OrderPlaced
		if err := json.Unmarshal(payload, &ev); err != nil {
			return Permanent(fmt.Errorf("decode %s: %w", outbox.EventOrderPlaced, err))
		}

		p, uid, err := purchase(ev)
		if err != nil {
			return Permanent(err)
		}

		if err := carts.RemovePurchased(ctx, uid, p); err != nil {
			return fmt.Errorf("remove purchased items: %w", err)
		}
		logger.Info("purchased items removed from cart",
			zap.String("user_id", ev.UserID),
			zap.String("order_number", ev.OrderNumber),
			zap.Int("lines", len(p.Items)),
		)

		if ev.Email == "" {
			return nil
		}
		err = mailer.SendOrderConfirmation(ctx, email.OrderConfirmation{
			To:          ev.Email,
			Name:        ev.Name,
			OrderNumber: ev.OrderNumber,
			Currency:    ev.Currency,
			Total:       ev.Total,
		})
		if err != nil {
			logger.Warn("order confirmation email failed",
				zap.String("order_number", ev.OrderNumber),
				zap.Error(err),
			)
		}
		return nil
	}
}

func purchase(ev outbox.OrderPlaced) (cart.Purchase, uuid.UUID, error) {
	uid, err := uuid.Parse(ev.UserID)
	if err != nil {
		return cart.Purchase{}, uuid.Nil, fmt.Errorf("decode %s user id: %w", outbox.EventOrderPlaced, err)
	}
	orderID, err := uuid.Parse(ev.OrderID)
	if err != nil {
		return cart.Purchase{}, uuid.Nil, fmt.Errorf("decode %s order id: %w", outbox.EventOrderPlaced, err)
	}

	p := cart.Purchase{
		OrderID:    orderID,
		CouponCode: ev.CouponCode,
		Items:      make([]cart.PurchasedItem, 0, len(ev.Items)),
	}
	for _, it := range ev.Items {
		pid, err := uuid.Parse(it.ProductID)
		if err != nil {
			return cart.Purchase{}, uuid.Nil, fmt.Errorf("decode %s product id: %w", outbox.EventOrderPlaced, err)
		}
		p.Items = append(p.Items, cart.PurchasedItem{ProductID: pid, Quantity: it.Quantity})
	}
	return p, uid, nil
}
