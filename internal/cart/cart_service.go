package cart

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"

	autherrors "github.com/vscooter54-cell/VScooter-sub000/internal/auth/errors"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pricing"
	"github.com/vscooter54-cell/VScooter-sub000/internal/product"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/helper"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=cart_service.go -destination=../mock/cart/cart_service_mock.go -package=mock
type Service interface {
	Detail(ctx context.Context, userID string) (CartResponse, error)
	Count(ctx context.Context, userID string) (int64, error)

	AddItem(ctx context.Context, userID string, req AddItemRequest) (CartResponse, error)
	UpdateQty(ctx context.Context, userID, productID string, req UpdateQtyRequest) (CartResponse, error)
	DeleteItem(ctx context.Context, userID, productID string) (CartResponse, error)
	Clear(ctx context.Context, userID string) error

	SetCurrency(ctx context.Context, userID string, req CurrencyRequest) (CartResponse, error)
	ApplyCoupon(ctx context.Context, userID string, req ApplyCouponRequest) (CartResponse, error)
	RemoveCoupon(ctx context.Context, userID string) (CartResponse, error)

	Merge(ctx context.Context, userID string, req MergeRequest) (CartResponse, error)

	// Snapshot prices the cart for order creation. An empty cart is an error.
	Snapshot(ctx context.Context, userID uuid.UUID) (Snapshot, error)
	// ClearByUser empties the cart and drops its coupon. Missing carts are ignored.
	ClearByUser(ctx context.Context, userID uuid.UUID) error
	// RemovePurchased takes an order's quantities back out of the cart once.
	// Lines added after the order survive.
	RemovePurchased(ctx context.Context, userID uuid.UUID, p Purchase) error
}

// Pricer is implemented by *pricing.Calculator.
type Pricer interface {
	PriceLines(ctx context.Context, lines []pricing.Line, currency string) ([]pricing.PricedLine, error)
	Calculate(ctx context.Context, lines []pricing.Line, currency, couponCode string) (pricing.Quote, error)
	Apply(ctx context.Context, lines []pricing.Line, currency, code string) (pricing.Quote, error)
}

type service struct {
	db              *sql.DB
	repo            Repository
	pricer          Pricer
	defaultCurrency string
	logger          *zap.Logger
}

type Deps struct {
	DB              *sql.DB
	Repo            Repository
	Pricer          Pricer
	DefaultCurrency string
	Logger          *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.DB == nil {
		panic("db cannot be nil")
	}
	if deps.Repo == nil {
		panic("cart repository cannot be nil")
	}
	if deps.Pricer == nil {
		panic("pricer cannot be nil")
	}
	if deps.DefaultCurrency == "" {
		deps.DefaultCurrency = "USD"
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &service{
		db:              deps.DB,
		repo:            deps.Repo,
		pricer:          deps.Pricer,
		defaultCurrency: strings.ToUpper(deps.DefaultCurrency),
		logger:          deps.Logger,
	}
}

// ========================
// helpers
// ========================

func parseUserID(userID string) (uuid.UUID, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, autherrors.ErrInvalidUserID
	}
	return id, nil
}

func parseProductID(productID string) (uuid.UUID, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		return uuid.Nil, product.ErrInvalidProductID
	}
	return id, nil
}

// findCart returns ok=false when the user has never added anything.
func (s *service) findCart(ctx context.Context, repo Repository, uid uuid.UUID) (dbgen.Cart, bool, error) {
	c, err := repo.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dbgen.Cart{}, false, nil
		}
		return dbgen.Cart{}, false, err
	}
	return c, true, nil
}

func (s *service) getOrCreateCart(ctx context.Context, repo Repository, uid uuid.UUID) (dbgen.Cart, error) {
	c, ok, err := s.findCart(ctx, repo, uid)
	if err != nil {
		return dbgen.Cart{}, err
	}
	if ok {
		return c, nil
	}
	return repo.Create(ctx, uid, s.defaultCurrency)
}

func (s *service) lines(ctx context.Context, repo Repository, cartID uuid.UUID) ([]pricing.Line, error) {
	items, err := repo.ListItems(ctx, cartID)
	if err != nil {
		return nil, err
	}
	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return lines, nil
}

func (s *service) price(ctx context.Context, c dbgen.Cart) (CartResponse, error) {
	lines, err := s.lines(ctx, s.repo, c.ID)
	if err != nil {
		return CartResponse{}, err
	}
	q, err := s.pricer.Calculate(ctx, lines, c.Currency, helper.NullStringValue(c.CouponCode))
	if err != nil {
		return CartResponse{}, err
	}
	return toResponse(c.ID, q), nil
}

func (s *service) emptyCart() CartResponse {
	return CartResponse{
		Currency: s.defaultCurrency,
		Items:    []CartItemResponse{},
	}
}

// ========================
// reads
// ========================

func (s *service) Detail(ctx context.Context, userID string) (CartResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return CartResponse{}, err
	}

	c, ok, err := s.findCart(ctx, s.repo, uid)
	if err != nil {
		return CartResponse{}, err
	}
	if !ok {
		return s.emptyCart(), nil
	}
	return s.price(ctx, c)
}

func (s *service) Count(ctx context.Context, userID string) (int64, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return 0, err
	}

	c, ok, err := s.findCart(ctx, s.repo, uid)
	if err != nil || !ok {
		return 0, err
	}
	return s.repo.SumQuantity(ctx, c.ID)
}

// ========================
// item mutations
// ========================

func (s *service) AddItem(ctx context.Context, userID string, req AddItemRequest) (CartResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return CartResponse{}, err
	}
	pid, err := parseProductID(req.ProductID)
	if err != nil {
		return CartResponse{}, err
	}
	qty := req.Quantity
	if qty <= 0 {
		qty = 1
	}

	c, err := s.getOrCreateCart(ctx, s.repo, uid)
	if err != nil {
		return CartResponse{}, err
	}

	// reject unknown, inactive and unpriced products before touching the cart
	if _, err := s.pricer.PriceLines(ctx, []pricing.Line{{ProductID: pid, Quantity: qty}}, c.Currency); err != nil {
		return CartResponse{}, err
	}

	if _, err := s.repo.AddItem(ctx, dbgen.AddCartItemParams{
		CartID:    c.ID,
		ProductID: pid,
		Quantity:  qty,
	}); err != nil {
		return CartResponse{}, err
	}

	return s.price(ctx, c)
}

func (s *service) UpdateQty(ctx context.Context, userID, productID string, req UpdateQtyRequest) (CartResponse, error) {
	if req.Quantity < 1 {
		return CartResponse{}, ErrInvalidQuantity
	}
	uid, err := parseUserID(userID)
	if err != nil {
		return CartResponse{}, err
	}
	pid, err := parseProductID(productID)
	if err != nil {
		return CartResponse{}, err
	}

	c, ok, err := s.findCart(ctx, s.repo, uid)
	if err != nil {
		return CartResponse{}, err
	}
	if !ok {
		return CartResponse{}, ErrCartItemNotFound
	}

	if _, err := s.repo.UpdateQty(ctx, dbgen.UpdateCartItemQtyParams{
		CartID:    c.ID,
		ProductID: pid,
		Quantity:  req.Quantity,
	}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CartResponse{}, ErrCartItemNotFound
		}
		return CartResponse{}, err
	}

	return s.price(ctx, c)
}

// DeleteItem succeeds whether or not the product was in the cart.
func (s *service) DeleteItem(ctx context.Context, userID, productID string) (CartResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return CartResponse{}, err
	}
	pid, err := parseProductID(productID)
	if err != nil {
		return CartResponse{}, err
	}

	c, ok, err := s.findCart(ctx, s.repo, uid)
	if err != nil {
		return CartResponse{}, err
	}
	if !ok {
		return s.emptyCart(), nil
	}

	if _, err := s.repo.DeleteItem(ctx, c.ID, pid); err != nil {
		return CartResponse{}, err
	}
	return s.price(ctx, c)
}

func (s *service) Clear(ctx context.Context, userID string) error {
	uid, err := parseUserID(userID)
	if err != nil {
		return err
	}
	return s.ClearByUser(ctx, uid)
}

func (s *service) ClearByUser(ctx context.Context, userID uuid.UUID) error {
	c, ok, err := s.findCart(ctx, s.repo, userID)
	if err != nil || !ok {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	if err := repo.DeleteAllItems(ctx, c.ID); err != nil {
		return err
	}
	if _, err := repo.UpdateCoupon(ctx, c.ID, sql.NullString{}); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) RemovePurchased(ctx context.Context, userID uuid.UUID, p Purchase) error {
	c, ok, err := s.findCart(ctx, s.repo, userID)
	if err != nil || !ok {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	fresh, err := repo.RecordPurchase(ctx, c.ID, p.OrderID)
	if err != nil {
		return err
	}
	if !fresh {
		s.logger.Debug("purchase already applied",
			zap.String("cart_id", c.ID.String()),
			zap.String("order_id", p.OrderID.String()),
		)
		return nil
	}

	for _, it := range p.Items {
		left, err := repo.DeductItem(ctx, c.ID, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if left > 0 {
			continue
		}
		if _, err := repo.DeleteItem(ctx, c.ID, it.ProductID); err != nil {
			return err
		}
	}

	if p.CouponCode != "" && strings.EqualFold(helper.NullStringValue(c.CouponCode), p.CouponCode) {
		if _, err := repo.UpdateCoupon(ctx, c.ID, sql.NullString{}); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ========================
// currency & coupon
// ========================

// SetCurrency re-prices the cart in another currency. Amounts are never
// converted; every line must carry a price in the new currency.
func (s *service) SetCurrency(ctx context.Context, userID string, req CurrencyRequest) (CartResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return CartResponse{}, err
	}
	currency := strings.ToUpper(req.Currency)

	c, err := s.getOrCreateCart(ctx, s.repo, uid)
	if err != nil {
		return CartResponse{}, err
	}
	if c.Currency == currency {
		return s.price(ctx, c)
	}

	lines, err := s.lines(ctx, s.repo, c.ID)
	if err != nil {
		return CartResponse{}, err
	}
	if _, err := s.pricer.PriceLines(ctx, lines, currency); err != nil {
		return CartResponse{}, err
	}

	updated, err := s.repo.UpdateCurrency(ctx, c.ID, currency)
	if err != nil {
		return CartResponse{}, err
	}

	s.logger.Info("cart currency changed",
		zap.String("cart_id", c.ID.String()),
		zap.String("from", c.Currency),
		zap.String("to", currency),
	)
	return s.price(ctx, updated)
}

// ApplyCoupon replaces any coupon on the cart. A rejected code leaves the
// cart untouched.
func (s *service) ApplyCoupon(ctx context.Context, userID string, req ApplyCouponRequest) (CartResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return CartResponse{}, err
	}

	c, err := s.getOrCreateCart(ctx, s.repo, uid)
	if err != nil {
		return CartResponse{}, err
	}

	lines, err := s.lines(ctx, s.repo, c.ID)
	if err != nil {
		return CartResponse{}, err
	}

	q, err := s.pricer.Apply(ctx, lines, c.Currency, req.Code)
	if err != nil {
		return CartResponse{}, err
	}

	if _, err := s.repo.UpdateCoupon(ctx, c.ID, helper.RawStringToNull(q.CouponCode)); err != nil {
		return CartResponse{}, err
	}
	return toResponse(c.ID, q), nil
}

func (s *service) RemoveCoupon(ctx context.Context, userID string) (CartResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return CartResponse{}, err
	}

	c, ok, err := s.findCart(ctx, s.repo, uid)
	if err != nil {
		return CartResponse{}, err
	}
	if !ok {
		return s.emptyCart(), nil
	}

	updated, err := s.repo.UpdateCoupon(ctx, c.ID, sql.NullString{})
	if err != nil {
		return CartResponse{}, err
	}
	return s.price(ctx, updated)
}

// ========================
// merge
// ========================

// Merge folds a guest cart into the user's cart, summing quantities per
// product. Either every line is applied or none is.
func (s *service) Merge(ctx context.Context, userID string, req MergeRequest) (CartResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return CartResponse{}, err
	}

	merged, err := collapse(req.Items)
	if err != nil {
		return CartResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CartResponse{}, err
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)

	c, err := s.getOrCreateCart(ctx, repo, uid)
	if err != nil {
		return CartResponse{}, err
	}

	if _, err := s.pricer.PriceLines(ctx, merged, c.Currency); err != nil {
		return CartResponse{}, err
	}

	for _, l := range merged {
		if _, err := repo.AddItem(ctx, dbgen.AddCartItemParams{
			CartID:    c.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		}); err != nil {
			return CartResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return CartResponse{}, err
	}

	s.logger.Info("guest cart merged",
		zap.String("user_id", uid.String()),
		zap.Int("lines", len(merged)),
	)
	return s.price(ctx, c)
}

// collapse sums duplicate products, keeping first-seen order.
func collapse(items []MergeItem) ([]pricing.Line, error) {
	if len(items) == 0 {
		return nil, ErrEmptyMerge
	}

	idx := make(map[uuid.UUID]int, len(items))
	out := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		pid, err := parseProductID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if i, ok := idx[pid]; ok {
			sum := int64(out[i].Quantity) + int64(it.Quantity)
			if sum > math.MaxInt32 {
				return nil, ErrInvalidQuantity
			}
			out[i].Quantity = int32(sum)
			continue
		}
		idx[pid] = len(out)
		out = append(out, pricing.Line{ProductID: pid, Quantity: it.Quantity})
	}
	return out, nil
}

// ========================
// checkout
// ========================

func (s *service) Snapshot(ctx context.Context, userID uuid.UUID) (Snapshot, error) {
	c, ok, err := s.findCart(ctx, s.repo, userID)
	if err != nil {
		return Snapshot{}, err
	}
	if !ok {
		return Snapshot{}, ErrCartEmpty
	}

	lines, err := s.lines(ctx, s.repo, c.ID)
	if err != nil {
		return Snapshot{}, err
	}
	if len(lines) == 0 {
		return Snapshot{}, ErrCartEmpty
	}

	q, err := s.pricer.Calculate(ctx, lines, c.Currency, helper.NullStringValue(c.CouponCode))
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{CartID: c.ID, Quote: q}, nil
}
