package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdjustPackingQuantityCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	itemID := kernel.NewUUID()

	cmd, err := commands.NewAdjustPackingQuantityCommand(orderID, itemID, 1.5, staff.Packer)

	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, itemID, cmd.ItemID())
	assert.InDelta(t, 1.5, cmd.Quantity(), 0.0001)
	assert.Equal(t, staff.Packer, cmd.ActorRole())
	require.NoError(t, cmd.Validate())
}

func TestNewAdjustPackingQuantityCommand_RejectsNonWarehouseRoles(t *testing.T) {
	for _, role := range []staff.Role{staff.Sales, staff.Driver, staff.System} {
		_, err := commands.NewAdjustPackingQuantityCommand(
			kernel.NewUUID(), kernel.NewUUID(), 1, role,
		)
		require.ErrorIs(t, err, commands.ErrRoleCannotAdjustPacking, role.String())
	}
}

func TestNewAdjustPackingQuantityCommand_RejectsNonPositiveQuantity(t *testing.T) {
	for _, quantity := range []float64{0, -1.5} {
		_, err := commands.NewAdjustPackingQuantityCommand(
			kernel.NewUUID(), kernel.NewUUID(), quantity, staff.Packer,
		)
		require.Error(t, err)
	}
}

func TestNewAdjustPackingQuantityCommand_RejectsInvalidIDs(t *testing.T) {
	_, err := commands.NewAdjustPackingQuantityCommand(
		kernel.UUID{}, kernel.NewUUID(), 1, staff.Packer,
	)
	require.Error(t, err)

	_, err = commands.NewAdjustPackingQuantityCommand(
		kernel.NewUUID(), kernel.UUID{}, 1, staff.Packer,
	)
	require.Error(t, err)
}

func TestAdjustPackingQuantityCommand_ValidateUnconstructed(t *testing.T) {
	var cmd commands.AdjustPackingQuantityCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrAdjustPackingQuantityCommandIsNotConstructed)
}
