package storefront_test

import (
	"context"
	"testing"

	"github.com/vscooter54-cell/VScooter-sub000/pkg/storefront"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	api     *fakeAPI
	storage *storefront.MemoryStorage
	session *storefront.Session
	cart    *storefront.Manager
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api := newFakeAPI(t)
	storage := storefront.NewMemoryStorage()
	session := storefront.NewSession(api.client(t), storage, nil)
	cart := storefront.NewManager(session, nil)
	t.Cleanup(cart.Close)
	return &harness{api: api, storage: storage, session: session, cart: cart}
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	res := h.session.Login(context.Background(), "rider@example.com", "secret123")
	require.True(t, res.Success, res.Error)
}

func (h *harness) guestCartJSON(t *testing.T) (string, bool) {
	t.Helper()
	raw, found, err := h.storage.Get(storefront.KeyGuestCart)
	require.NoError(t, err)
	return raw, found
}

func TestManager_GuestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("accumulates_same_product", func(t *testing.T) {
		h := newHarness(t)

		require.True(t, h.cart.AddItem(ctx, "X", 2).Success)
		require.True(t, h.cart.AddItem(ctx, "X", 3).Success)

		raw, found := h.guestCartJSON(t)
		require.True(t, found)
		assert.JSONEq(t, `[{"productId":"X","quantity":5}]`, raw)
		assert.Equal(t, 5, h.cart.CartCount())
		assert.Empty(t, h.api.callLog())
	})

	t.Run("defaults_quantity_to_one", func(t *testing.T) {
		h := newHarness(t)

		require.True(t, h.cart.AddItem(ctx, "X", 0).Success)
		require.True(t, h.cart.AddItem(ctx, "Y", -4).Success)

		raw, _ := h.guestCartJSON(t)
		assert.JSONEq(t, `[{"productId":"X","quantity":1},{"productId":"Y","quantity":1}]`, raw)
	})

	t.Run("no_calculations_for_guest", func(t *testing.T) {
		h := newHarness(t)
		require.True(t, h.cart.AddItem(ctx, "X", 1).Success)

		c := h.cart.Cart()
		require.NotNil(t, c)
		assert.Nil(t, c.Calculations)
		assert.True(t, h.cart.CartTotal().IsZero())
	})
}

func TestManager_GuestRemoveItem(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	require.True(t, h.cart.AddItem(ctx, "X", 1).Success)
	require.True(t, h.cart.AddItem(ctx, "Y", 2).Success)

	require.True(t, h.cart.RemoveItem(ctx, "missing").Success)
	raw, _ := h.guestCartJSON(t)
	assert.JSONEq(t, `[{"productId":"X","quantity":1},{"productId":"Y","quantity":2}]`, raw)

	require.True(t, h.cart.RemoveItem(ctx, "X").Success)
	require.True(t, h.cart.RemoveItem(ctx, "X").Success)
	raw, _ = h.guestCartJSON(t)
	assert.JSONEq(t, `[{"productId":"Y","quantity":2}]`, raw)
	assert.Equal(t, 2, h.cart.CartCount())
}

func TestManager_GuestEditsWithoutCart(t *testing.T) {
	ctx := context.Background()

	t.Run("update_keeps_cart_nil", func(t *testing.T) {
		h := newHarness(t)

		require.True(t, h.cart.UpdateQuantity(ctx, "X", 2).Success)
		assert.Nil(t, h.cart.Cart())
		_, found := h.guestCartJSON(t)
		assert.False(t, found)
	})

	t.Run("remove_keeps_cart_nil", func(t *testing.T) {
		h := newHarness(t)

		require.True(t, h.cart.RemoveItem(ctx, "X").Success)
		assert.Nil(t, h.cart.Cart())
		_, found := h.guestCartJSON(t)
		assert.False(t, found)
	})
}

func TestManager_GuestUpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites", func(t *testing.T) {
		h := newHarness(t)
		require.True(t, h.cart.AddItem(ctx, "X", 1).Success)

		require.True(t, h.cart.UpdateQuantity(ctx, "X", 4).Success)
		assert.Equal(t, 4, h.cart.CartCount())
	})

	t.Run("missing_product_is_noop", func(t *testing.T) {
		h := newHarness(t)
		require.True(t, h.cart.AddItem(ctx, "X", 1).Success)

		require.True(t, h.cart.UpdateQuantity(ctx, "Y", 4).Success)
		raw, _ := h.guestCartJSON(t)
		assert.JSONEq(t, `[{"productId":"X","quantity":1}]`, raw)
	})

	t.Run("below_one_rejected", func(t *testing.T) {
		h := newHarness(t)
		require.True(t, h.cart.AddItem(ctx, "X", 2).Success)

		res := h.cart.UpdateQuantity(ctx, "X", 0)
		assert.False(t, res.Success)
		assert.NotEmpty(t, res.Error)
		assert.Equal(t, 2, h.cart.CartCount())
	})
}

func TestManager_GuestCoupon(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	require.True(t, h.cart.AddItem(ctx, "X", 1).Success)

	res := h.cart.ApplyCoupon(ctx, "SAVE10")
	assert.Equal(t, storefront.Result{Error: "Please sign in to use coupons"}, res)

	res = h.cart.RemoveCoupon(ctx)
	assert.Equal(t, "Please sign in to use coupons", res.Error)
	assert.Empty(t, h.api.callLog())
}

func TestManager_GuestClearCart(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	require.True(t, h.cart.AddItem(ctx, "X", 1).Success)

	require.True(t, h.cart.ClearCart(ctx).Success)

	_, found := h.guestCartJSON(t)
	assert.False(t, found)
	assert.Nil(t, h.cart.Cart())
	assert.Equal(t, 0, h.cart.CartCount())
}

func TestManager_EmptyDerivedValues(t *testing.T) {
	h := newHarness(t)

	assert.Nil(t, h.cart.Cart())
	assert.Equal(t, 0, h.cart.CartCount())
	assert.True(t, h.cart.CartTotal().IsZero())
	assert.False(t, h.cart.Loading())
}

func TestManager_ServerCart(t *testing.T) {
	ctx := context.Background()

	t.Run("add_update_remove", func(t *testing.T) {
		h := newHarness(t)
		h.login(t)

		require.True(t, h.cart.AddItem(ctx, "A", 2).Success)
		require.True(t, h.cart.AddItem(ctx, "A", 1).Success)
		assert.Equal(t, 3, h.cart.CartCount())
		assert.True(t, decimal.NewFromInt(30).Equal(h.cart.CartTotal()))

		require.True(t, h.cart.UpdateQuantity(ctx, "A", 1).Success)
		assert.Equal(t, 1, h.cart.CartCount())

		require.True(t, h.cart.RemoveItem(ctx, "A").Success)
		assert.Equal(t, 0, h.cart.CartCount())

		_, found := h.guestCartJSON(t)
		assert.False(t, found)
	})

	t.Run("coupon_apply_then_remove_restores_calculations", func(t *testing.T) {
		h := newHarness(t)
		h.api.seed(line{ProductID: "A", Quantity: 2})
		h.login(t)

		before := *h.cart.Cart().Calculations

		require.True(t, h.cart.ApplyCoupon(ctx, " SAVE10 ").Success)
		applied := h.cart.Cart()
		assert.Equal(t, "SAVE10", applied.CouponCode)
		assert.True(t, decimal.NewFromInt(2).Equal(applied.Calculations.Discount))
		assert.True(t, decimal.NewFromInt(18).Equal(h.cart.CartTotal()))

		require.True(t, h.cart.RemoveCoupon(ctx).Success)
		after := *h.cart.Cart().Calculations
		assert.True(t, after.Discount.IsZero())
		assert.True(t, before.Total.Equal(after.Total))
		assert.True(t, before.Subtotal.Equal(after.Subtotal))
	})

	t.Run("invalid_coupon_keeps_cart", func(t *testing.T) {
		h := newHarness(t)
		h.api.seed(line{ProductID: "A", Quantity: 1})
		h.login(t)
		before := h.cart.Cart()

		res := h.cart.ApplyCoupon(ctx, "NOPE")
		assert.False(t, res.Success)
		assert.Equal(t, "Coupon code is not valid", res.Error)
		assert.Equal(t, before, h.cart.Cart())
	})

	t.Run("generic_message_when_backend_has_none", func(t *testing.T) {
		h := newHarness(t)
		h.login(t)
		h.api.configure(func(f *fakeAPI) { f.failAdd = true })

		res := h.cart.AddItem(ctx, "A", 1)
		assert.Equal(t, storefront.Result{Error: storefront.GenericError}, res)
	})

	t.Run("transport_error", func(t *testing.T) {
		h := newHarness(t)
		h.login(t)
		h.api.srv.Close()

		res := h.cart.AddItem(ctx, "A", 1)
		assert.Equal(t, storefront.Result{Error: storefront.GenericError}, res)
		assert.True(t, h.session.Authenticated())
	})

	t.Run("clear", func(t *testing.T) {
		h := newHarness(t)
		h.api.seed(line{ProductID: "A", Quantity: 1})
		h.login(t)

		require.True(t, h.cart.ClearCart(ctx).Success)
		assert.Nil(t, h.cart.Cart())
		assert.Equal(t, 1, h.api.count("DELETE /carts"))
	})
}

func TestManager_LoginMerge(t *testing.T) {
	ctx := context.Background()

	t.Run("sums_into_server_cart", func(t *testing.T) {
		h := newHarness(t)
		h.api.seed(line{ProductID: "A", Quantity: 1}, line{ProductID: "B", Quantity: 1})
		require.True(t, h.cart.AddItem(ctx, "A", 2).Success)

		h.login(t)

		assert.Equal(t, []line{{ProductID: "A", Quantity: 2}}, h.api.merged())
		_, found := h.guestCartJSON(t)
		assert.False(t, found)

		c := h.cart.Cart()
		require.Len(t, c.Items, 2)
		assert.Equal(t, "A", c.Items[0].ProductID)
		assert.Equal(t, 3, c.Items[0].Quantity)
		assert.Equal(t, "B", c.Items[1].ProductID)
		assert.Equal(t, 1, c.Items[1].Quantity)
		assert.Equal(t, 1, h.api.count("POST /carts/merge"))
	})

	t.Run("guest_add_then_login", func(t *testing.T) {
		h := newHarness(t)
		require.True(t, h.cart.AddItem(ctx, "X", 1).Success)
		raw, _ := h.guestCartJSON(t)
		assert.JSONEq(t, `[{"productId":"X","quantity":1}]`, raw)

		h.login(t)

		assert.Equal(t, []line{{ProductID: "X", Quantity: 1}}, h.api.merged())
		_, found := h.guestCartJSON(t)
		assert.False(t, found)
		assert.Equal(t, 1, h.cart.CartCount())
	})

	t.Run("empty_guest_cart_skips_merge", func(t *testing.T) {
		h := newHarness(t)
		h.api.seed(line{ProductID: "B", Quantity: 2})

		h.login(t)

		assert.Zero(t, h.api.count("POST /carts/merge"))
		assert.Equal(t, 1, h.api.count("GET /carts"))
		assert.Equal(t, 2, h.cart.CartCount())
	})

	t.Run("failure_keeps_guest_cart_and_login", func(t *testing.T) {
		h := newHarness(t)
		h.api.configure(func(f *fakeAPI) { f.failMerge = true })
		h.api.seed(line{ProductID: "B", Quantity: 1})
		require.True(t, h.cart.AddItem(ctx, "A", 2).Success)

		h.login(t)

		assert.True(t, h.session.Authenticated())
		raw, found := h.guestCartJSON(t)
		require.True(t, found)
		assert.JSONEq(t, `[{"productId":"A","quantity":2}]`, raw)
		assert.Equal(t, 1, h.cart.CartCount())
		assert.Equal(t, 1, h.api.count("POST /carts/merge"))
	})

	t.Run("restore_does_not_merge", func(t *testing.T) {
		h := newHarness(t)
		require.True(t, h.cart.AddItem(ctx, "A", 1).Success)
		require.NoError(t, h.storage.Set(storefront.KeyToken, fakeToken))

		require.True(t, h.session.Restore(ctx))

		assert.Zero(t, h.api.count("POST /carts/merge"))
		_, found := h.guestCartJSON(t)
		assert.True(t, found)
	})
}

func TestManager_LogoutLoadsGuestCart(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.api.seed(line{ProductID: "A", Quantity: 4})
	h.login(t)
	require.Equal(t, 4, h.cart.CartCount())

	h.session.Logout(ctx)

	assert.False(t, h.session.Authenticated())
	assert.Nil(t, h.cart.Cart())
	assert.Equal(t, 1, h.api.count("POST /auth/logout"))

	require.True(t, h.cart.AddItem(ctx, "Z", 1).Success)
	assert.Equal(t, 1, h.cart.CartCount())
}
