package cart

import (
	"context"
	"database/sql"

	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"

	"github.com/google/uuid"
)

//go:generate mockgen -source=cart_repo.go -destination=../mock/cart/cart_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx dbgen.DBTX) Repository

	Create(ctx context.Context, userID uuid.UUID, currency string) (dbgen.Cart, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (dbgen.Cart, error)
	UpdateCoupon(ctx context.Context, cartID uuid.UUID, code sql.NullString) (dbgen.Cart, error)
	UpdateCurrency(ctx context.Context, cartID uuid.UUID, currency string) (dbgen.Cart, error)

	ListItems(ctx context.Context, cartID uuid.UUID) ([]dbgen.CartItem, error)
	SumQuantity(ctx context.Context, cartID uuid.UUID) (int64, error)
	AddItem(ctx context.Context, arg dbgen.AddCartItemParams) (dbgen.CartItem, error)
	UpdateQty(ctx context.Context, arg dbgen.UpdateCartItemQtyParams) (dbgen.CartItem, error)
	DeleteItem(ctx context.Context, cartID, productID uuid.UUID) (int64, error)
	DeleteAllItems(ctx context.Context, cartID uuid.UUID) error
	DeductItem(ctx context.Context, cartID, productID uuid.UUID, qty int32) (int64, error)
	RecordPurchase(ctx context.Context, cartID, orderID uuid.UUID) (bool, error)
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

func (r *repository) Create(ctx context.Context, userID uuid.UUID, currency string) (dbgen.Cart, error) {
	return r.queries.CreateCart(ctx, dbgen.CreateCartParams{
		UserID:   userID,
		Currency: currency,
	})
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) (dbgen.Cart, error) {
	return r.queries.GetCartByUserID(ctx, userID)
}

func (r *repository) UpdateCoupon(ctx context.Context, cartID uuid.UUID, code sql.NullString) (dbgen.Cart, error) {
	return r.queries.UpdateCartCoupon(ctx, dbgen.UpdateCartCouponParams{
		ID:         cartID,
		CouponCode: code,
	})
}

func (r *repository) UpdateCurrency(ctx context.Context, cartID uuid.UUID, currency string) (dbgen.Cart, error) {
	return r.queries.UpdateCartCurrency(ctx, dbgen.UpdateCartCurrencyParams{
		ID:       cartID,
		Currency: currency,
	})
}

func (r *repository) ListItems(ctx context.Context, cartID uuid.UUID) ([]dbgen.CartItem, error) {
	return r.queries.ListCartItems(ctx, cartID)
}

func (r *repository) SumQuantity(ctx context.Context, cartID uuid.UUID) (int64, error) {
	return r.queries.SumCartQuantity(ctx, cartID)
}

func (r *repository) AddItem(ctx context.Context, arg dbgen.AddCartItemParams) (dbgen.CartItem, error) {
	return r.queries.AddCartItem(ctx, arg)
}

func (r *repository) UpdateQty(ctx context.Context, arg dbgen.UpdateCartItemQtyParams) (dbgen.CartItem, error) {
	return r.queries.UpdateCartItemQty(ctx, arg)
}

func (r *repository) DeleteItem(ctx context.Context, cartID, productID uuid.UUID) (int64, error) {
	return r.queries.DeleteCartItem(ctx, dbgen.DeleteCartItemParams{
		CartID:    cartID,
		ProductID: productID,
	})
}

func (r *repository) DeleteAllItems(ctx context.Context, cartID uuid.UUID) error {
	return r.queries.DeleteAllCartItems(ctx, cartID)
}

// DeductItem lowers a line by qty and reports 0 when the line is missing or
// would drop below one.
func (r *repository) DeductItem(ctx context.Context, cartID, productID uuid.UUID, qty int32) (int64, error) {
	return r.queries.DeductCartItem(ctx, dbgen.DeductCartItemParams{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  qty,
	})
}

// RecordPurchase returns false when the order was already applied to the cart.
func (r *repository) RecordPurchase(ctx context.Context, cartID, orderID uuid.UUID) (bool, error) {
	n, err := r.queries.RecordCartPurchase(ctx, dbgen.RecordCartPurchaseParams{
		CartID:  cartID,
		OrderID: orderID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
