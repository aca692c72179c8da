package order

import (
	"context"
	"database/sql"

	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"

	"github.com/google/uuid"
)

//go:generate mockgen -source=order_repo.go -destination=../mock/order/order_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx dbgen.DBTX) Repository
	CreateOrder(ctx context.Context, arg dbgen.CreateOrderParams) (dbgen.Order, error)
	CreateOrderItem(ctx context.Context, arg dbgen.CreateOrderItemParams) error
	GetByID(ctx context.Context, id uuid.UUID) (dbgen.Order, error)
	GetByOrderNumber(ctx context.Context, number string) (dbgen.Order, error)
	GetByPaymentIntentID(ctx context.Context, intentID string) (dbgen.Order, error)
	GetItems(ctx context.Context, orderID uuid.UUID) ([]dbgen.OrderItem, error)
	List(ctx context.Context, arg dbgen.ListOrdersParams) ([]dbgen.ListOrdersRow, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (dbgen.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) (dbgen.Order, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (dbgen.GetUserByIDRow, error)
}

type repository struct {
	queries *dbgen.Queries
}

func NewRepository(q *dbgen.Queries) Repository {
	return &repository{queries: q}
}

func (r *repository) WithTx(tx dbgen.DBTX) Repository {
	if sqlTx, ok := tx.(*sql.Tx); ok {
		return &repository{
			queries: r.queries.WithTx(sqlTx),
		}
	}
	return r
}

func (r *repository) CreateOrder(ctx context.Context, arg dbgen.CreateOrderParams) (dbgen.Order, error) {
	return r.queries.CreateOrder(ctx, arg)
}

func (r *repository) CreateOrderItem(ctx context.Context, arg dbgen.CreateOrderItemParams) error {
	return r.queries.CreateOrderItem(ctx, arg)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (dbgen.Order, error) {
	return r.queries.GetOrderByID(ctx, id)
}

func (r *repository) GetByOrderNumber(ctx context.Context, number string) (dbgen.Order, error) {
	return r.queries.GetOrderByNumber(ctx, number)
}

func (r *repository) GetByPaymentIntentID(ctx context.Context, intentID string) (dbgen.Order, error) {
	return r.queries.GetOrderByPaymentIntentID(ctx, sql.NullString{String: intentID, Valid: true})
}

func (r *repository) GetItems(ctx context.Context, orderID uuid.UUID) ([]dbgen.OrderItem, error) {
	return r.queries.GetOrderItems(ctx, orderID)
}

func (r *repository) List(ctx context.Context, arg dbgen.ListOrdersParams) ([]dbgen.ListOrdersRow, error) {
	return r.queries.ListOrders(ctx, arg)
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (dbgen.Order, error) {
	return r.queries.UpdateOrderStatus(ctx, dbgen.UpdateOrderStatusParams{ID: id, Status: status})
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) (dbgen.Order, error) {
	return r.queries.UpdateOrderPaymentStatus(ctx, dbgen.UpdateOrderPaymentStatusParams{ID: id, PaymentStatus: status})
}

func (r *repository) GetUserByID(ctx context.Context, id uuid.UUID) (dbgen.GetUserByIDRow, error) {
	return r.queries.GetUserByID(ctx, id)
}
