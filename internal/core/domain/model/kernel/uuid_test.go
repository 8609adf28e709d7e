package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonicalUUID = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	id := kernel.NewUUID()

	require.NoError(t, id.Validate())
	assert.False(t, id.IsEqual(kernel.NewUUID()), "generated identifiers must be unique")
}

func TestUUIDFromString(t *testing.T) {
	t.Run("accepts every format uuid.Parse understands", func(t *testing.T) {
		for _, input := range []string{
			canonicalUUID,
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(input)

			require.NoError(t, err, input)
			assert.Equal(t, canonicalUUID, id.String())
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, input := range []string{
			"",
			"not-a-uuid",
			"550e8400-e29b-41d4-a716",
			"550e8400-e29b-41d4-a716-446655440000-extra",
		} {
			_, err := kernel.UUIDFromString(input)

			require.Error(t, err, input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("round-trips through Bytes", func(t *testing.T) {
		id := kernel.NewUUID()
		raw := id.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, id.IsEqual(restored))
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e, 0x84})

		require.Error(t, err)
	})

	t.Run("rejects the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_IsEqual(t *testing.T) {
	id1, err := kernel.UUIDFromString(canonicalUUID)
	require.NoError(t, err)
	id2, err := kernel.UUIDFromString(canonicalUUID)
	require.NoError(t, err)

	assert.True(t, id1.IsEqual(id2))
	assert.False(t, id1.IsEqual(kernel.NewUUID()))
}

func TestUUID_Validate(t *testing.T) {
	t.Run("zero value is not constructed", func(t *testing.T) {
		var id kernel.UUID

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})

	t.Run("parsed nil UUID is not constructed", func(t *testing.T) {
		id, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
		require.NoError(t, err)

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}
