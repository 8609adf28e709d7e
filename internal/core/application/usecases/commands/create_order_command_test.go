package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/staff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLineItem(t *testing.T, quantity float64, unitPriceCents int64) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), quantity, unitPriceCents)
	require.NoError(t, err)
	return item
}

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	items := []order.LineItem{testLineItem(t, 2, 1500)}

	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, items, staff.Sales)
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, customerID, cmd.CustomerID())
	assert.Len(t, cmd.Items(), 1)
	assert.Equal(t, staff.Sales, cmd.ActorRole())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	items := []order.LineItem{testLineItem(t, 2, 1500)}

	_, err := commands.NewCreateOrderCommand(invalidID, kernel.NewUUID(), items, staff.Sales)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_NoItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), nil, staff.Sales)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrLineItemsAreRequired)
}

func TestNewCreateOrderCommand_UnknownRole(t *testing.T) {
	items := []order.LineItem{testLineItem(t, 2, 1500)}

	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), items, staff.UnknownRole)
	require.Error(t, err)
}

func TestCreateOrderCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
