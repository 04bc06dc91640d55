package suppliers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsync/partsync/internal/domain/supplier"
)

func TestGatewayRegistry(t *testing.T) {
	newAdapters := func(t *testing.T) (*MouserAdapter, *DigikeyAdapter) {
		mouser, err := NewMouserAdapter(NewMouserConfig("key"))
		require.NoError(t, err)
		digikey, err := NewDigikeyAdapter(NewDigikeyConfig("id", "secret"))
		require.NoError(t, err)
		return mouser, digikey
	}

	t.Run("registration order is preserved", func(t *testing.T) {
		mouser, digikey := newAdapters(t)

		registry := NewGatewayRegistry()
		require.NoError(t, registry.Register(mouser))
		require.NoError(t, registry.Register(digikey))

		assert.Equal(t, []supplier.Code{supplier.CodeMouser, supplier.CodeDigikey}, registry.Codes())
	})

	t.Run("get returns the registered gateway", func(t *testing.T) {
		mouser, digikey := newAdapters(t)

		registry := NewGatewayRegistry()
		require.NoError(t, registry.Register(digikey))
		require.NoError(t, registry.Register(mouser))

		gateway, err := registry.Get(supplier.CodeDigikey)
		require.NoError(t, err)
		assert.Equal(t, supplier.CodeDigikey, gateway.Code())
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		mouser, _ := newAdapters(t)

		registry := NewGatewayRegistry()
		require.NoError(t, registry.Register(mouser))

		err := registry.Register(mouser)
		assert.ErrorIs(t, err, supplier.ErrAlreadyRegistered)
	})

	t.Run("unregistered code fails", func(t *testing.T) {
		registry := NewGatewayRegistry()

		gateway, err := registry.Get(supplier.CodeDigikey)
		assert.ErrorIs(t, err, supplier.ErrNotConfigured)
		assert.Nil(t, gateway)
	})

	t.Run("codes on empty registry", func(t *testing.T) {
		registry := NewGatewayRegistry()
		assert.Empty(t, registry.Codes())
	})
}
