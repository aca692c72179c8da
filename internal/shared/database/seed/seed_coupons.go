package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"

	"go.uber.org/zap"
)

func Coupons(ctx context.Context, q *dbgen.Queries, log *zap.Logger) error {
	now := time.Now()
	expired := sql.NullTime{Time: now.AddDate(0, 0, -1), Valid: true}

	coupons := []dbgen.CreateCouponParams{
		{Upper: "SAVE10", DiscountType: "percentage", DiscountValue: "10", MinSubtotal: "0", IsActive: true},
		{Upper: "RIDE50", DiscountType: "fixed", DiscountValue: "50", Currency: nullable("USD"), MinSubtotal: "300", IsActive: true},
		{Upper: "EURO20", DiscountType: "fixed", DiscountValue: "20", Currency: nullable("EUR"), MinSubtotal: "100", IsActive: true},
		{Upper: "SUMMER", DiscountType: "percentage", DiscountValue: "15", MinSubtotal: "0", ValidTo: expired, IsActive: true},
	}

	for _, c := range coupons {
		if _, err := q.CreateCoupon(ctx, c); err != nil {
			return fmt.Errorf("seed coupon %s: %w", c.Upper, err)
		}
		log.Info("seeded coupon", zap.String("code", c.Upper))
	}
	return nil
}
