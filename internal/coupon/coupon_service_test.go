package coupon_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/vscooter54-cell/VScooter-sub000/internal/coupon"
	couponMock "github.com/vscooter54-cell/VScooter-sub000/internal/mock/coupon"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T) (coupon.Service, *couponMock.MockRepository, *couponMock.MockCache) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := couponMock.NewMockRepository(ctrl)
	cache := couponMock.NewMockCache(ctrl)
	svc := coupon.NewService(coupon.Deps{
		Repo:  repo,
		Cache: cache,
		Now:   func() time.Time { return fixedNow },
	})
	return svc, repo, cache
}

func TestService_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("cache_hit_skips_database", func(t *testing.T) {
		svc, _, cache := setup(t)
		cache.EXPECT().Get(ctx, "SAVE10").Return(coupon.Coupon{Code: "SAVE10", Active: true}, true, nil)

		c, err := svc.Lookup(ctx, " save10 ")
		require.NoError(t, err)
		assert.Equal(t, "SAVE10", c.Code)
	})

	t.Run("cache_miss_loads_and_stores", func(t *testing.T) {
		svc, repo, cache := setup(t)
		cache.EXPECT().Get(ctx, "SAVE10").Return(coupon.Coupon{}, false, nil)
		repo.EXPECT().GetByCode(ctx, "SAVE10").Return(dbgen.Coupon{
			Code: "SAVE10", DiscountType: "percentage", DiscountValue: "10.00", MinSubtotal: "0.00", IsActive: true,
		}, nil)
		cache.EXPECT().Set(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c coupon.Coupon) error {
			assert.True(t, decimal.NewFromInt(10).Equal(c.DiscountValue))
			return nil
		})

		_, err := svc.Lookup(ctx, "SAVE10")
		require.NoError(t, err)
	})

	t.Run("cache_error_falls_back_to_database", func(t *testing.T) {
		svc, repo, cache := setup(t)
		cache.EXPECT().Get(ctx, "SAVE10").Return(coupon.Coupon{}, false, errors.New("redis down"))
		repo.EXPECT().GetByCode(ctx, "SAVE10").Return(dbgen.Coupon{Code: "SAVE10", DiscountValue: "10", MinSubtotal: "0", IsActive: true}, nil)
		cache.EXPECT().Set(ctx, gomock.Any()).Return(errors.New("redis down"))

		c, err := svc.Lookup(ctx, "SAVE10")
		require.NoError(t, err)
		assert.Equal(t, "SAVE10", c.Code)
	})

	t.Run("unknown_code", func(t *testing.T) {
		svc, repo, cache := setup(t)
		cache.EXPECT().Get(ctx, "NOPE").Return(coupon.Coupon{}, false, nil)
		repo.EXPECT().GetByCode(ctx, "NOPE").Return(dbgen.Coupon{}, sql.ErrNoRows)

		_, err := svc.Lookup(ctx, "nope")
		assert.ErrorIs(t, err, coupon.ErrInvalidCoupon)
	})

	t.Run("blank_code", func(t *testing.T) {
		svc, _, _ := setup(t)
		_, err := svc.Lookup(ctx, "  ")
		assert.ErrorIs(t, err, coupon.ErrInvalidCoupon)
	})
}

func TestService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("expired", func(t *testing.T) {
		svc, repo, cache := setup(t)
		cache.EXPECT().Get(ctx, "SPRING").Return(coupon.Coupon{}, false, nil)
		repo.EXPECT().GetByCode(ctx, "SPRING").Return(dbgen.Coupon{
			Code: "SPRING", DiscountType: "percentage", DiscountValue: "20", MinSubtotal: "0", IsActive: true,
			ValidTo: sql.NullTime{Time: fixedNow.Add(-time.Hour), Valid: true},
		}, nil)
		cache.EXPECT().Set(ctx, gomock.Any()).Return(nil)

		_, err := svc.Resolve(ctx, "SPRING", "USD", decimal.NewFromInt(100))
		assert.ErrorIs(t, err, coupon.ErrCouponExpired)
	})

	t.Run("fixed_in_other_currency", func(t *testing.T) {
		svc, _, cache := setup(t)
		cache.EXPECT().Get(ctx, "EUR50").Return(coupon.Coupon{
			Code: "EUR50", DiscountType: coupon.TypeFixed, DiscountValue: decimal.NewFromInt(50), Currency: "EUR", Active: true,
		}, true, nil)

		_, err := svc.Resolve(ctx, "EUR50", "USD", decimal.NewFromInt(100))
		assert.ErrorIs(t, err, coupon.ErrCouponCurrencyMismatch)
	})

	t.Run("valid", func(t *testing.T) {
		svc, _, cache := setup(t)
		cache.EXPECT().Get(ctx, "SAVE10").Return(coupon.Coupon{
			Code: "SAVE10", DiscountType: coupon.TypePercentage, DiscountValue: decimal.NewFromInt(10), Active: true,
		}, true, nil)

		c, err := svc.Resolve(ctx, "SAVE10", "USD", decimal.NewFromInt(100))
		require.NoError(t, err)
		assert.Equal(t, "SAVE10", c.Code)
	})
}
