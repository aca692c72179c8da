package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/helper"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=product_service.go -destination=../mock/product/product_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, q ListQuery) ([]ProductResponse, int64, error)
	GetByID(ctx context.Context, id string) (ProductDetailResponse, error)
	GetPrice(ctx context.Context, productID uuid.UUID, currency string) (PriceQuote, error)
}

type service struct {
	repo            Repository
	defaultCurrency string
	logger          *zap.Logger
}

func NewService(repo Repository, defaultCurrency string, logger ...*zap.Logger) Service {
	l := zap.NewNop()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("product.service")
	}
	return &service{
		repo:            repo,
		defaultCurrency: strings.ToUpper(defaultCurrency),
		logger:          l,
	}
}

func (s *service) List(ctx context.Context, q ListQuery) ([]ProductResponse, int64, error) {
	currency := strings.ToUpper(q.Currency)
	if currency == "" {
		currency = s.defaultCurrency
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 12
	}

	rows, err := s.repo.List(ctx, dbgen.ListProductsParams{
		Currency:   currency,
		Search:     helper.RawStringToNull(strings.TrimSpace(q.Search)),
		PageLimit:  int32(q.Limit),
		PageOffset: int32((q.Page - 1) * q.Limit),
	})
	if err != nil {
		return nil, 0, err
	}

	var total int64
	res := make([]ProductResponse, 0, len(rows))
	for _, r := range rows {
		total = r.TotalCount
		item := ProductResponse{
			ID:       r.ID.String(),
			Slug:     r.Slug,
			Name:     r.Name,
			Brand:    r.Brand,
			ImageURL: r.ImageUrl,
			InStock:  r.Stock > 0,
			Currency: currency,
			Price:    helper.NumericToDecimal(r.Price),
		}
		if sale := helper.NullNumericToDecimal(r.SalePrice); sale.Valid {
			item.SalePrice = &sale.Decimal
		}
		res = append(res, item)
	}

	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProductDetailResponse, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return ProductDetailResponse{}, ErrInvalidProductID
	}

	p, err := s.repo.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProductDetailResponse{}, ErrProductNotFound
		}
		return ProductDetailResponse{}, err
	}
	if !p.IsActive {
		return ProductDetailResponse{}, ErrProductNotFound
	}

	priceRows, err := s.repo.ListPrices(ctx, pid)
	if err != nil {
		return ProductDetailResponse{}, err
	}

	var specs Specs
	if len(p.Specs) > 0 {
		if err := json.Unmarshal(p.Specs, &specs); err != nil {
			s.logger.Warn("malformed product specs", zap.String("product_id", id), zap.Error(err))
		}
	}

	prices := make([]PriceResponse, 0, len(priceRows))
	for _, pr := range priceRows {
		item := PriceResponse{
			Currency: pr.Currency,
			Price:    helper.NumericToDecimal(pr.Price),
		}
		if sale := helper.NullNumericToDecimal(pr.SalePrice); sale.Valid {
			item.SalePrice = &sale.Decimal
		}
		prices = append(prices, item)
	}

	return ProductDetailResponse{
		ID:          p.ID.String(),
		Slug:        p.Slug,
		Name:        p.Name,
		Brand:       p.Brand,
		Description: p.Description,
		ImageURL:    p.ImageUrl,
		Specs:       specs,
		Stock:       p.Stock,
		Prices:      prices,
	}, nil
}

// GetPrice resolves the unit price used by the cart. Missing price rows mean the
// product is not sold in that currency.
func (s *service) GetPrice(ctx context.Context, productID uuid.UUID, currency string) (PriceQuote, error) {
	currency = strings.ToUpper(currency)

	row, err := s.repo.GetPrice(ctx, dbgen.GetProductPriceParams{ID: productID, Currency: currency})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := s.repo.GetByID(ctx, productID); errors.Is(getErr, sql.ErrNoRows) {
				return PriceQuote{}, ErrProductNotFound
			}
			return PriceQuote{}, ErrPriceUnavailable
		}
		return PriceQuote{}, err
	}
	if !row.IsActive {
		return PriceQuote{}, ErrProductUnavailable
	}

	return PriceQuote{
		ProductID: row.ID,
		Name:      row.Name,
		Currency:  currency,
		Price:     helper.NumericToDecimal(row.Price),
		SalePrice: helper.NullNumericToDecimal(row.SalePrice),
	}, nil
}
