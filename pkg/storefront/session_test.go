package storefront_test

import (
	"context"
	"testing"

	"github.com/vscooter54-cell/VScooter-sub000/pkg/storefront"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("persists_token_and_user", func(t *testing.T) {
		h := newHarness(t)
		var events []storefront.AuthEvent
		unsubscribe := h.session.Subscribe(func(_ context.Context, ev storefront.AuthEvent) {
			events = append(events, ev)
		})
		defer unsubscribe()

		h.login(t)

		token, found, err := h.storage.Get(storefront.KeyToken)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, fakeToken, token)

		raw, found, _ := h.storage.Get(storefront.KeyUser)
		require.True(t, found)
		assert.JSONEq(t, `{"id":"u-1","email":"rider@example.com","name":"Rider","role":"CUSTOMER"}`, raw)

		require.Len(t, events, 1)
		assert.True(t, events[0].Authenticated)
		assert.Equal(t, storefront.ReasonLogin, events[0].Reason)
		assert.Equal(t, "u-1", h.session.User().ID)
	})

	t.Run("bad_credentials", func(t *testing.T) {
		h := newHarness(t)

		res := h.session.Login(ctx, "rider@example.com", "wrong")
		assert.Equal(t, storefront.Result{Error: "Invalid email or password"}, res)
		assert.False(t, h.session.Authenticated())
		assert.Nil(t, h.session.User())
	})
}

func TestSession_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing_stored", func(t *testing.T) {
		h := newHarness(t)
		assert.False(t, h.session.Restore(ctx))
		assert.Empty(t, h.api.callLog())
	})

	t.Run("stored_session", func(t *testing.T) {
		h := newHarness(t)
		h.api.seed(line{ProductID: "A", Quantity: 3})
		require.NoError(t, h.storage.Set(storefront.KeyToken, fakeToken))
		require.NoError(t, h.storage.Set(storefront.KeyUser, `{"id":"u-1","email":"rider@example.com"}`))

		require.True(t, h.session.Restore(ctx))
		assert.Equal(t, "rider@example.com", h.session.User().Email)
		assert.Equal(t, 3, h.cart.CartCount())
	})

	t.Run("corrupt_user_clears_session", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.storage.Set(storefront.KeyToken, fakeToken))
		require.NoError(t, h.storage.Set(storefront.KeyUser, `{not json`))

		assert.False(t, h.session.Restore(ctx))
		_, found, _ := h.storage.Get(storefront.KeyToken)
		assert.False(t, found)
	})
}

func TestSession_Unauthorized(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.api.seed(line{ProductID: "A", Quantity: 1})
	h.login(t)
	require.NoError(t, h.storage.Set(storefront.KeyGuestCart, `[{"productId":"G","quantity":2}]`))

	redirected := 0
	h.session.OnUnauthorized = func() { redirected++ }
	var reasons []storefront.AuthReason
	h.session.Subscribe(func(_ context.Context, ev storefront.AuthEvent) {
		reasons = append(reasons, ev.Reason)
	})

	h.api.configure(func(f *fakeAPI) { f.revoked = true })
	res := h.cart.AddItem(ctx, "A", 1)

	assert.False(t, res.Success)
	assert.False(t, h.session.Authenticated())
	assert.Equal(t, 1, redirected)
	assert.Equal(t, []storefront.AuthReason{storefront.ReasonExpired}, reasons)

	_, found, _ := h.storage.Get(storefront.KeyToken)
	assert.False(t, found)
	_, found, _ = h.storage.Get(storefront.KeyUser)
	assert.False(t, found)

	// the guest cart takes over again
	assert.Equal(t, 2, h.cart.CartCount())

	h.cart.Refresh(ctx)
	assert.Equal(t, 1, redirected)
}

func TestSession_LogoutWithRevokedToken(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.configure(func(f *fakeAPI) { f.revoked = true })

	redirected := false
	h.session.OnUnauthorized = func() { redirected = true }
	var reasons []storefront.AuthReason
	h.session.Subscribe(func(_ context.Context, ev storefront.AuthEvent) {
		reasons = append(reasons, ev.Reason)
	})

	h.session.Logout(context.Background())

	assert.False(t, h.session.Authenticated())
	assert.False(t, redirected)
	assert.Equal(t, []storefront.AuthReason{storefront.ReasonLogout}, reasons)
}

func TestNewClient(t *testing.T) {
	_, err := storefront.NewClient(storefront.Options{})
	assert.Error(t, err)

	c, err := storefront.NewClient(storefront.Options{BaseURL: "http://localhost:8080/"})
	require.NoError(t, err)
	assert.NotNil(t, c)
}
