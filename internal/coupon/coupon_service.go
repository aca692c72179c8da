package coupon

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=coupon_service.go -destination=../mock/coupon/coupon_service_mock.go -package=mock
type Service interface {
	// Lookup loads a coupon without evaluating it against a cart.
	Lookup(ctx context.Context, code string) (Coupon, error)
	// Resolve loads and validates a coupon for a cart in currency with subtotal.
	Resolve(ctx context.Context, code, currency string, subtotal decimal.Decimal) (Coupon, error)
}

type service struct {
	repo   Repository
	cache  Cache
	now    func() time.Time
	logger *zap.Logger
}

type Deps struct {
	Repo   Repository
	Cache  Cache
	Now    func() time.Time
	Logger *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.Repo == nil {
		panic("coupon repository cannot be nil")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &service{
		repo:   deps.Repo,
		cache:  deps.Cache,
		now:    deps.Now,
		logger: deps.Logger,
	}
}

func (s *service) Lookup(ctx context.Context, code string) (Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Coupon{}, ErrInvalidCoupon
	}

	if s.cache != nil {
		c, ok, err := s.cache.Get(ctx, code)
		if err != nil {
			s.logger.Warn("coupon cache read failed", zap.String("code", code), zap.Error(err))
		} else if ok {
			return c, nil
		}
	}

	row, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Coupon{}, ErrInvalidCoupon
		}
		return Coupon{}, err
	}

	c := fromRow(row)
	if s.cache != nil {
		if err := s.cache.Set(ctx, c); err != nil {
			s.logger.Warn("coupon cache write failed", zap.String("code", code), zap.Error(err))
		}
	}
	return c, nil
}

func (s *service) Resolve(ctx context.Context, code, currency string, subtotal decimal.Decimal) (Coupon, error) {
	c, err := s.Lookup(ctx, code)
	if err != nil {
		return Coupon{}, err
	}
	if err := c.Check(s.now(), currency, subtotal); err != nil {
		return Coupon{}, err
	}
	return c, nil
}
