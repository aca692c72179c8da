package address

import (
	"context"

	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"

	"github.com/google/uuid"
)

//go:generate mockgen -source=address_repo.go -destination=../mock/address/address_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, arg dbgen.CreateAddressParams) (dbgen.Address, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]dbgen.Address, error)
}

type repository struct {
	queries *dbgen.Queries
}

func NewRepository(q *dbgen.Queries) Repository {
	return &repository{queries: q}
}

func (r *repository) Create(ctx context.Context, arg dbgen.CreateAddressParams) (dbgen.Address, error) {
	return r.queries.CreateAddress(ctx, arg)
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]dbgen.Address, error) {
	return r.queries.ListAddressesByUser(ctx, userID)
}
