package product

import (
	"context"

	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"

	"github.com/google/uuid"
)

//go:generate mockgen -source=product_repo.go -destination=../mock/product/product_repo_mock.go -package=mock
type Repository interface {
	List(ctx context.Context, arg dbgen.ListProductsParams) ([]dbgen.ListProductsRow, error)
	GetByID(ctx context.Context, id uuid.UUID) (dbgen.Product, error)
	ListPrices(ctx context.Context, productID uuid.UUID) ([]dbgen.ListProductPricesRow, error)
	GetPrice(ctx context.Context, arg dbgen.GetProductPriceParams) (dbgen.GetProductPriceRow, error)
}

type repository struct {
	queries *dbgen.Queries
}

func NewRepository(q *dbgen.Queries) Repository {
	return &repository{queries: q}
}

func (r *repository) List(ctx context.Context, arg dbgen.ListProductsParams) ([]dbgen.ListProductsRow, error) {
	return r.queries.ListProducts(ctx, arg)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (dbgen.Product, error) {
	return r.queries.GetProductByID(ctx, id)
}

func (r *repository) ListPrices(ctx context.Context, productID uuid.UUID) ([]dbgen.ListProductPricesRow, error) {
	return r.queries.ListProductPrices(ctx, productID)
}

func (r *repository) GetPrice(ctx context.Context, arg dbgen.GetProductPriceParams) (dbgen.GetProductPriceRow, error) {
	return r.queries.GetProductPrice(ctx, arg)
}
