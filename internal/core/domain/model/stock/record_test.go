package stock_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	t.Run("should create record with initial stock", func(t *testing.T) {
		productID := kernel.NewUUID()

		record, err := stock.NewRecord(productID, 12.5)

		require.NoError(t, err)
		assert.True(t, record.ProductID().IsEqual(productID))
		assert.InDelta(t, 12.5, record.CurrentStock(), 0.0001)
		assert.Equal(t, int64(1), record.Version())
		require.NoError(t, record.Validate())
	})

	t.Run("should reject negative initial stock", func(t *testing.T) {
		_, err := stock.NewRecord(kernel.NewUUID(), -1)

		require.Error(t, err)
	})

	t.Run("zero value record fails validation", func(t *testing.T) {
		var record stock.Record

		require.ErrorIs(t, record.Validate(), stock.ErrRecordIsNotConstructed)
	})
}

func TestRecord_Decrement(t *testing.T) {
	t.Run("should decrement available stock", func(t *testing.T) {
		record, err := stock.NewRecord(kernel.NewUUID(), 10)
		require.NoError(t, err)

		require.NoError(t, record.Decrement(4))

		assert.InDelta(t, 6, record.CurrentStock(), 0.0001)
	})

	t.Run("should support fractional quantities", func(t *testing.T) {
		record, err := stock.NewRecord(kernel.NewUUID(), 2.5)
		require.NoError(t, err)

		require.NoError(t, record.Decrement(1.25))

		assert.InDelta(t, 1.25, record.CurrentStock(), 0.0001)
	})

	t.Run("should fail with insufficient stock and leave count unchanged", func(t *testing.T) {
		record, err := stock.NewRecord(kernel.NewUUID(), 3)
		require.NoError(t, err)

		err = record.Decrement(5)

		require.ErrorIs(t, err, stock.ErrInsufficientStock)
		var insufficientErr *stock.InsufficientStockError
		require.ErrorAs(t, err, &insufficientErr)
		assert.InDelta(t, 5, insufficientErr.Requested, 0.0001)
		assert.InDelta(t, 3, insufficientErr.Available, 0.0001)
		assert.InDelta(t, 3, record.CurrentStock(), 0.0001)
	})

	t.Run("should reject non-positive quantities", func(t *testing.T) {
		record, err := stock.NewRecord(kernel.NewUUID(), 3)
		require.NoError(t, err)

		require.Error(t, record.Decrement(0))
		require.Error(t, record.Decrement(-1))
	})
}

func TestRecord_Increment(t *testing.T) {
	t.Run("should restore stock symmetrically", func(t *testing.T) {
		record, err := stock.NewRecord(kernel.NewUUID(), 10)
		require.NoError(t, err)

		require.NoError(t, record.Decrement(10))
		require.NoError(t, record.Increment(10))

		assert.InDelta(t, 10, record.CurrentStock(), 0.0001)
	})

	t.Run("should reject non-positive quantities", func(t *testing.T) {
		record, err := stock.NewRecord(kernel.NewUUID(), 10)
		require.NoError(t, err)

		require.Error(t, record.Increment(0))
	})
}

func TestRestoreRecord(t *testing.T) {
	t.Run("should restore stock and version", func(t *testing.T) {
		record, err := stock.RestoreRecord(kernel.NewUUID(), 7.75, 42)

		require.NoError(t, err)
		assert.InDelta(t, 7.75, record.CurrentStock(), 0.0001)
		assert.Equal(t, int64(42), record.Version())
	})

	t.Run("should reject version below one", func(t *testing.T) {
		_, err := stock.RestoreRecord(kernel.NewUUID(), 7.75, 0)

		require.Error(t, err)
	})
}
