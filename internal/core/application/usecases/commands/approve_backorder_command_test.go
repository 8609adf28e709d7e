package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApproveBackorderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	itemID := kernel.NewUUID()

	cmd, err := commands.NewApproveBackorderCommand(orderID, []kernel.UUID{itemID}, staff.Manager)
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Len(t, cmd.ApprovedItemIDs(), 1)
	assert.Equal(t, staff.Manager, cmd.ActorRole())
}

func TestNewApproveBackorderCommand_EmptyListIsRejection(t *testing.T) {
	cmd, err := commands.NewApproveBackorderCommand(kernel.NewUUID(), nil, staff.Manager)
	require.NoError(t, err)
	assert.Empty(t, cmd.ApprovedItemIDs())
}

func TestNewApproveBackorderCommand_InvalidItemID(t *testing.T) {
	_, err := commands.NewApproveBackorderCommand(
		kernel.NewUUID(), []kernel.UUID{{}}, staff.Manager,
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewApproveBackorderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewApproveBackorderCommand(kernel.UUID{}, nil, staff.Manager)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestApproveBackorderCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.ApproveBackorderCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrApproveBackorderCommandIsNotConstructed)
}
