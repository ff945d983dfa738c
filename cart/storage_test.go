package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/cart"
)

func newStorage(t *testing.T) *cart.Storage {
	t.Helper()
	s, err := cart.NewStorage(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newStorage(t)

	items := cart.Add(cart.Add(cart.Items{}, product("A", 19.99), 2), product("B", 5), 1)
	require.NoError(t, cart.Save(s, items))

	loaded := cart.Load(s)
	require.Len(t, loaded, 2)
	assert.Equal(t, items[0].Product.ID, loaded[0].Product.ID)
	assert.Equal(t, 2, loaded[0].Quantity)
	assert.Equal(t, items[1].Product.ID, loaded[1].Product.ID)
}

func TestLoad_MissingIsEmpty(t *testing.T) {
	s := newStorage(t)
	assert.Equal(t, cart.Items{}, cart.Load(s))
}

func TestLoad_CorruptIsDiscarded(t *testing.T) {
	s := newStorage(t)
	require.NoError(t, s.Set(cart.CartKey, []byte("{not json")))

	assert.Equal(t, cart.Items{}, cart.Load(s))

	// the corrupt value is gone, not waiting to break the next session
	_, ok := s.Get(cart.CartKey)
	assert.False(t, ok)
}

func TestToken(t *testing.T) {
	s := newStorage(t)
	assert.Empty(t, s.Token())

	require.NoError(t, s.SetToken("abc.def.ghi"))
	assert.Equal(t, "abc.def.ghi", s.Token())

	s.ClearToken()
	assert.Empty(t, s.Token())
}
