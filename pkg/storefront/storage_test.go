package storefront_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vscooter54-cell/VScooter-sub000/pkg/storefront"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "storefront.json")

	t.Run("missing_file_reads_empty", func(t *testing.T) {
		s := storefront.NewFileStorage(path)
		_, found, err := s.Get(storefront.KeyToken)
		require.NoError(t, err)
		assert.False(t, found)
		require.NoError(t, s.Delete(storefront.KeyToken))
	})

	t.Run("survives_reopen", func(t *testing.T) {
		s := storefront.NewFileStorage(path)
		require.NoError(t, s.Set(storefront.KeyToken, "abc"))
		require.NoError(t, s.Set(storefront.KeyGuestCart, `[{"productId":"X","quantity":1}]`))

		reopened := storefront.NewFileStorage(path)
		v, found, err := reopened.Get(storefront.KeyGuestCart)
		require.NoError(t, err)
		require.True(t, found)
		assert.JSONEq(t, `[{"productId":"X","quantity":1}]`, v)

		require.NoError(t, reopened.Delete(storefront.KeyToken))
		_, found, _ = s.Get(storefront.KeyToken)
		assert.False(t, found)
	})

	t.Run("corrupt_file", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{oops"), 0o600))

		_, _, err := storefront.NewFileStorage(bad).Get(storefront.KeyToken)
		assert.Error(t, err)
	})
}

func TestCookieConsent(t *testing.T) {
	s := storefront.NewMemoryStorage()

	_, _, ok := storefront.CookieConsent(s)
	assert.False(t, ok)

	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, storefront.SetCookieConsent(s, true, at))

	accepted, gotAt, ok := storefront.CookieConsent(s)
	assert.True(t, ok)
	assert.True(t, accepted)
	assert.True(t, at.Equal(gotAt))
}
