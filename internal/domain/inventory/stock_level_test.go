package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockLevel(t *testing.T) {
	t.Run("starts at zero", func(t *testing.T) {
		level, err := NewStockLevel(uuid.New(), uuid.New(), nil)
		require.NoError(t, err)
		assert.True(t, level.Quantity.IsZero())
	})

	t.Run("rejects empty item", func(t *testing.T) {
		_, err := NewStockLevel(uuid.Nil, uuid.New(), nil)
		assert.Error(t, err)
	})

	t.Run("rejects empty location", func(t *testing.T) {
		_, err := NewStockLevel(uuid.New(), uuid.Nil, nil)
		assert.Error(t, err)
	})
}

func TestAdjust(t *testing.T) {
	level, err := NewStockLevel(uuid.New(), uuid.New(), nil)
	require.NoError(t, err)
	startVersion := level.GetVersion()

	level.Adjust(decimal.NewFromInt(10))
	assert.Equal(t, decimal.NewFromInt(10), level.Quantity)

	level.Adjust(decimal.NewFromInt(-3))
	assert.Equal(t, decimal.NewFromInt(7), level.Quantity)
	assert.Equal(t, startVersion+2, level.GetVersion())

	// concurrent movements are not netted, so corrections can overshoot
	level.Adjust(decimal.NewFromInt(-12))
	assert.Equal(t, decimal.NewFromInt(-5), level.Quantity)
}
