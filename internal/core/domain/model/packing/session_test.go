package packing_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	t.Run("should create active session", func(t *testing.T) {
		now := time.Now()
		orderID := kernel.NewUUID()

		session, err := packing.NewSession(kernel.NewUUID(), orderID, kernel.NewUUID(), now)

		require.NoError(t, err)
		assert.True(t, session.OrderID().IsEqual(orderID))
		assert.True(t, session.Active())
		assert.Equal(t, now, session.StartedAt())
		assert.Equal(t, now, session.LastActivityAt())
		require.NoError(t, session.Validate())
	})

	t.Run("should reject invalid identifiers", func(t *testing.T) {
		_, err := packing.NewSession(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), time.Now())

		require.Error(t, err)
	})

	t.Run("zero value session fails validation", func(t *testing.T) {
		var session packing.Session

		require.ErrorIs(t, session.Validate(), packing.ErrSessionIsNotConstructed)
	})
}

func TestSession_Touch(t *testing.T) {
	t.Run("should push last activity forward", func(t *testing.T) {
		start := time.Now()
		session, err := packing.NewSession(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), start)
		require.NoError(t, err)

		later := start.Add(10 * time.Minute)
		require.NoError(t, session.Touch(later))

		assert.Equal(t, later, session.LastActivityAt())
	})

	t.Run("should fail for a closed session", func(t *testing.T) {
		session, err := packing.NewSession(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Now())
		require.NoError(t, err)
		session.Close()

		err = session.Touch(time.Now())

		require.ErrorIs(t, err, packing.ErrSessionIsNotActive)
	})
}

func TestSession_IsStale(t *testing.T) {
	threshold := 30 * time.Minute

	t.Run("session idle for 31 minutes is stale", func(t *testing.T) {
		start := time.Now()
		session, err := packing.NewSession(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), start)
		require.NoError(t, err)

		assert.True(t, session.IsStale(threshold, start.Add(31*time.Minute)))
	})

	t.Run("session idle for 29 minutes is not stale", func(t *testing.T) {
		start := time.Now()
		session, err := packing.NewSession(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), start)
		require.NoError(t, err)

		assert.False(t, session.IsStale(threshold, start.Add(29*time.Minute)))
	})

	t.Run("touch resets the staleness clock", func(t *testing.T) {
		start := time.Now()
		session, err := packing.NewSession(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), start)
		require.NoError(t, err)

		require.NoError(t, session.Touch(start.Add(20*time.Minute)))

		assert.False(t, session.IsStale(threshold, start.Add(45*time.Minute)))
		assert.True(t, session.IsStale(threshold, start.Add(51*time.Minute)))
	})

	t.Run("closed session is never stale", func(t *testing.T) {
		start := time.Now()
		session, err := packing.NewSession(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), start)
		require.NoError(t, err)
		session.Close()

		assert.False(t, session.IsStale(threshold, start.Add(2*time.Hour)))
	})
}

func TestRestoreSession(t *testing.T) {
	t.Run("should restore full state", func(t *testing.T) {
		start := time.Now().Add(-time.Hour)
		lastActivity := start.Add(15 * time.Minute)

		session, err := packing.RestoreSession(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			start, lastActivity, false,
		)

		require.NoError(t, err)
		assert.Equal(t, start, session.StartedAt())
		assert.Equal(t, lastActivity, session.LastActivityAt())
		assert.False(t, session.Active())
	})
}
