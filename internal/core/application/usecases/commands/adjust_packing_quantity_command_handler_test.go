package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/credit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdjustPackingQuantityCommandHandler_Handle_ShortPackReleasesCredit(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	sessionID := kernel.NewUUID()
	item := testLineItem(t, 2, 1500) // 30.00 reserved at confirmation
	testOrder := restoreTestOrder(
		t, orderID, customerID, []order.LineItem{item}, order.Packing, false, &sessionID,
	)

	startedAt := time.Now().Add(-time.Hour)
	session := activeSession(t, sessionID, orderID, startedAt)

	record, err := stock.NewRecord(item.ProductID(), 10)
	require.NoError(t, err)

	account, err := credit.RestoreAccount(customerID, 100_000, 3000)
	require.NoError(t, err)

	cmd, err := commands.NewAdjustPackingQuantityCommand(orderID, item.ID(), 1.5, staff.Packer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	stockRepo := new(MockStockRepository)
	creditRepo := new(MockCreditRepository)
	sessionRepo := new(MockPackingSessionRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("StockRepository").Return(stockRepo)
	uow.On("CreditRepository").Return(creditRepo)
	uow.On("PackingSessionRepository").Return(sessionRepo)
	orderRepo.On("GetForUpdate", ctx, orderID).Return(testOrder, nil).Once()
	orderRepo.On("Update", ctx, testOrder).Return(nil).Once()
	sessionRepo.On("GetActiveByOrderID", ctx, orderID).Return(session, nil).Once()
	sessionRepo.On("Update", ctx, session).Return(nil).Once()
	stockRepo.On("GetByProductID", ctx, item.ProductID()).Return(record, nil).Once()
	creditRepo.On("GetForUpdate", ctx, customerID).Return(account, nil).Once()
	creditRepo.On("Update", ctx, account).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdjustPackingQuantityCommandHandler(factory)

	adjusted, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.InDelta(t, 1.5, adjusted.Items()[0].Quantity(), 0.0001)
	assert.Equal(t, int64(2250), adjusted.ChargeableTotalCents())
	// 7.50 came off the reservation.
	assert.Equal(t, int64(2250), account.BalanceCents())
	assert.True(t, session.LastActivityAt().After(startedAt),
		"activity should push the staleness deadline forward")
	uow.AssertExpectations(t)
}

func TestAdjustPackingQuantityCommandHandler_Handle_UpwardAdjustmentHitsCreditLimit(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	sessionID := kernel.NewUUID()
	item := testLineItem(t, 2, 1500)
	testOrder := restoreTestOrder(
		t, orderID, customerID, []order.LineItem{item}, order.Packing, false, &sessionID,
	)
	session := activeSession(t, sessionID, orderID, time.Now().Add(-time.Minute))

	record, err := stock.NewRecord(item.ProductID(), 10)
	require.NoError(t, err)

	// 30.00 already reserved; the extra 15.00 does not fit the 32.00 limit.
	account, err := credit.RestoreAccount(customerID, 3200, 3000)
	require.NoError(t, err)

	cmd, err := commands.NewAdjustPackingQuantityCommand(orderID, item.ID(), 3, staff.Packer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	stockRepo := new(MockStockRepository)
	creditRepo := new(MockCreditRepository)
	sessionRepo := new(MockPackingSessionRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("StockRepository").Return(stockRepo)
	uow.On("CreditRepository").Return(creditRepo)
	uow.On("PackingSessionRepository").Return(sessionRepo)
	orderRepo.On("GetForUpdate", ctx, orderID).Return(testOrder, nil).Once()
	sessionRepo.On("GetActiveByOrderID", ctx, orderID).Return(session, nil).Once()
	stockRepo.On("GetByProductID", ctx, item.ProductID()).Return(record, nil).Once()
	creditRepo.On("GetForUpdate", ctx, customerID).Return(account, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdjustPackingQuantityCommandHandler(factory)

	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, credit.ErrCreditLimitExceeded)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	sessionRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAdjustPackingQuantityCommandHandler_Handle_InsufficientStockForNewQuantity(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	sessionID := kernel.NewUUID()
	item := testLineItem(t, 2, 1500)
	testOrder := restoreTestOrder(
		t, orderID, customerID, []order.LineItem{item}, order.Packing, false, &sessionID,
	)
	session := activeSession(t, sessionID, orderID, time.Now().Add(-time.Minute))

	record, err := stock.NewRecord(item.ProductID(), 1)
	require.NoError(t, err)

	cmd, err := commands.NewAdjustPackingQuantityCommand(orderID, item.ID(), 5, staff.Packer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	stockRepo := new(MockStockRepository)
	sessionRepo := new(MockPackingSessionRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("StockRepository").Return(stockRepo)
	uow.On("PackingSessionRepository").Return(sessionRepo)
	orderRepo.On("GetForUpdate", ctx, orderID).Return(testOrder, nil).Once()
	sessionRepo.On("GetActiveByOrderID", ctx, orderID).Return(session, nil).Once()
	stockRepo.On("GetByProductID", ctx, item.ProductID()).Return(record, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdjustPackingQuantityCommandHandler(factory)

	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, stock.ErrInsufficientStock)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertNotCalled(t, "CreditRepository")
}

func TestAdjustPackingQuantityCommandHandler_Handle_NoActiveSession(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	item := testLineItem(t, 2, 1500)
	testOrder := restoreTestOrder(
		t, orderID, kernel.NewUUID(), []order.LineItem{item}, order.Confirmed, false, nil,
	)

	cmd, err := commands.NewAdjustPackingQuantityCommand(orderID, item.ID(), 1, staff.Packer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	sessionRepo := new(MockPackingSessionRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, orderID).Return(testOrder, nil).Once(),
		uow.On("PackingSessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("GetActiveByOrderID", ctx, orderID).
			Return(nil, errs.NewObjectNotFoundError("active packing session", orderID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdjustPackingQuantityCommandHandler(factory)

	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	var notFoundErr *errs.ObjectNotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
