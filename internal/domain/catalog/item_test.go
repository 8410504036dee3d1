package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("creates active item with normalized SKU", func(t *testing.T) {
		item, err := NewItem("wid-001", "Widget", "pcs")
		require.NoError(t, err)

		assert.Equal(t, "WID-001", item.SKU)
		assert.Equal(t, ItemStatusActive, item.Status)
		assert.True(t, item.IsActive())
	})

	t.Run("rejects empty SKU", func(t *testing.T) {
		_, err := NewItem("  ", "Widget", "pcs")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewItem("WID-001", "", "pcs")
		assert.Error(t, err)
	})

	t.Run("rejects empty unit", func(t *testing.T) {
		_, err := NewItem("WID-001", "Widget", "")
		assert.Error(t, err)
	})
}

func TestItemUpdate(t *testing.T) {
	item, err := NewItem("WID-001", "Widget", "pcs")
	require.NoError(t, err)

	require.NoError(t, item.Update("Widget v2", "4006381333931"))
	assert.Equal(t, "Widget v2", item.Name)
	assert.Equal(t, "4006381333931", item.Barcode)

	assert.Error(t, item.Update("", ""))
}

func TestItemStatus(t *testing.T) {
	item, err := NewItem("WID-001", "Widget", "pcs")
	require.NoError(t, err)

	item.Deactivate()
	assert.False(t, item.IsActive())

	item.Activate()
	assert.True(t, item.IsActive())
}
