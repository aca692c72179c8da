package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// userError is an error whose text is already fit to show.
type userError string

func (e userError) Error() string { return string(e) }

const (
	errCouponNeedsSignIn   userError = "Please sign in to use coupons"
	errCheckoutNeedsSignIn userError = "Please sign in to checkout"
	errInvalidQuantity     userError = "Quantity must be at least 1"
	errIncompleteShipping  userError = "Please fill in all shipping fields"
)

// Store is the backing store behind Manager. The guest and server carts
// expose the same operations.
type Store interface {
	Load(ctx context.Context) (*Cart, error)
	AddItem(ctx context.Context, productID string, quantity int) (*Cart, error)
	UpdateQuantity(ctx context.Context, productID string, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, productID string) (*Cart, error)
	Clear(ctx context.Context) error
	ApplyCoupon(ctx context.Context, code string) (*Cart, error)
	RemoveCoupon(ctx context.Context) (*Cart, error)
}

// ==================== GUEST ====================

type guestStore struct {
	storage Storage
}

func newGuestStore(s Storage) *guestStore {
	return &guestStore{storage: s}
}

func (g *guestStore) lines() ([]guestLine, error) {
	raw, found, err := g.storage.Get(KeyGuestCart)
	if err != nil || !found {
		return nil, err
	}
	var lines []guestLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (g *guestStore) save(lines []guestLine) (*Cart, error) {
	if lines == nil {
		lines = []guestLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return nil, err
	}
	if err := g.storage.Set(KeyGuestCart, string(raw)); err != nil {
		return nil, err
	}
	return guestCart(lines), nil
}

func guestCart(lines []guestLine) *Cart {
	items := make([]CartItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, CartItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return &Cart{Items: items}
}

// Load returns nil when no guest cart was ever written.
func (g *guestStore) Load(context.Context) (*Cart, error) {
	lines, err := g.lines()
	if err != nil || lines == nil {
		return nil, err
	}
	return guestCart(lines), nil
}

func (g *guestStore) AddItem(_ context.Context, productID string, quantity int) (*Cart, error) {
	lines, err := g.lines()
	if err != nil {
		return nil, err
	}
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += quantity
			return g.save(lines)
		}
	}
	return g.save(append(lines, guestLine{ProductID: productID, Quantity: quantity}))
}

func (g *guestStore) UpdateQuantity(_ context.Context, productID string, quantity int) (*Cart, error) {
	lines, err := g.lines()
	if err != nil || lines == nil {
		return nil, err
	}
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			return g.save(lines)
		}
	}
	return guestCart(lines), nil
}

func (g *guestStore) RemoveItem(_ context.Context, productID string) (*Cart, error) {
	lines, err := g.lines()
	if err != nil || lines == nil {
		return nil, err
	}
	kept := lines[:0]
	for _, l := range lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(lines) {
		return guestCart(lines), nil
	}
	return g.save(kept)
}

func (g *guestStore) Clear(context.Context) error {
	return g.storage.Delete(KeyGuestCart)
}

func (g *guestStore) ApplyCoupon(context.Context, string) (*Cart, error) {
	return nil, errCouponNeedsSignIn
}

func (g *guestStore) RemoveCoupon(context.Context) (*Cart, error) {
	return nil, errCouponNeedsSignIn
}

// ==================== SERVER ====================

type serverStore struct {
	client *Client
}

func newServerStore(c *Client) *serverStore {
	return &serverStore{client: c}
}

type quantityBody struct {
	ProductID string `json:"productId,omitempty"`
	Quantity  int    `json:"quantity"`
}

func itemPath(productID string) string {
	return "/items/" + url.PathEscape(productID)
}

func (s *serverStore) Load(ctx context.Context) (*Cart, error) {
	return s.client.cart(ctx, http.MethodGet, "", nil)
}

func (s *serverStore) AddItem(ctx context.Context, productID string, quantity int) (*Cart, error) {
	return s.client.cart(ctx, http.MethodPost, "/items", quantityBody{ProductID: productID, Quantity: quantity})
}

func (s *serverStore) UpdateQuantity(ctx context.Context, productID string, quantity int) (*Cart, error) {
	return s.client.cart(ctx, http.MethodPut, itemPath(productID), quantityBody{Quantity: quantity})
}

func (s *serverStore) RemoveItem(ctx context.Context, productID string) (*Cart, error) {
	return s.client.cart(ctx, http.MethodDelete, itemPath(productID), nil)
}

func (s *serverStore) Clear(ctx context.Context) error {
	return s.client.do(ctx, http.MethodDelete, "/carts", nil, nil)
}

func (s *serverStore) ApplyCoupon(ctx context.Context, code string) (*Cart, error) {
	return s.client.cart(ctx, http.MethodPost, "/coupon", map[string]string{"code": code})
}

func (s *serverStore) RemoveCoupon(ctx context.Context) (*Cart, error) {
	return s.client.cart(ctx, http.MethodDelete, "/coupon", nil)
}
