package coupon

import (
	"context"

	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"
)

//go:generate mockgen -source=coupon_repo.go -destination=../mock/coupon/coupon_repo_mock.go -package=mock
type Repository interface {
	GetByCode(ctx context.Context, code string) (dbgen.Coupon, error)
	Upsert(ctx context.Context, arg dbgen.CreateCouponParams) (dbgen.Coupon, error)
}

type repository struct {
	queries *dbgen.Queries
}

func NewRepository(q *dbgen.Queries) Repository {
	return &repository{queries: q}
}

func (r *repository) GetByCode(ctx context.Context, code string) (dbgen.Coupon, error) {
	return r.queries.GetCouponByCode(ctx, code)
}

func (r *repository) Upsert(ctx context.Context, arg dbgen.CreateCouponParams) (dbgen.Coupon, error) {
	return r.queries.CreateCoupon(ctx, arg)
}
