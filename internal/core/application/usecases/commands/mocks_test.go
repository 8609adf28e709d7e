package commands_test

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/credit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockStockRepository struct{ mock.Mock }

func (m *MockStockRepository) Add(ctx context.Context, r *stock.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockStockRepository) GetByProductID(ctx context.Context, productID kernel.UUID) (*stock.Record, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Record), args.Error(1)
}

func (m *MockStockRepository) GetByProductIDs(
	ctx context.Context, productIDs []kernel.UUID,
) (map[kernel.UUID]*stock.Record, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]*stock.Record), args.Error(1)
}

func (m *MockStockRepository) Update(ctx context.Context, r *stock.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type MockCreditRepository struct{ mock.Mock }

func (m *MockCreditRepository) Add(ctx context.Context, a *credit.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockCreditRepository) GetForUpdate(ctx context.Context, customerID kernel.UUID) (*credit.Account, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credit.Account), args.Error(1)
}

func (m *MockCreditRepository) Update(ctx context.Context, a *credit.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

type MockPackingSessionRepository struct{ mock.Mock }

func (m *MockPackingSessionRepository) Add(ctx context.Context, s *packing.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockPackingSessionRepository) Update(ctx context.Context, s *packing.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockPackingSessionRepository) Get(ctx context.Context, id kernel.UUID) (*packing.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packing.Session), args.Error(1)
}

func (m *MockPackingSessionRepository) GetActiveByOrderID(
	ctx context.Context, orderID kernel.UUID,
) (*packing.Session, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packing.Session), args.Error(1)
}

func (m *MockPackingSessionRepository) GetAllStale(
	ctx context.Context, cutoff time.Time,
) ([]*packing.Session, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*packing.Session), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) StockRepository() ports.StockRepository {
	args := m.Called()
	return args.Get(0).(ports.StockRepository)
}

func (m *MockUoW) CreditRepository() ports.CreditRepository {
	args := m.Called()
	return args.Get(0).(ports.CreditRepository)
}

func (m *MockUoW) PackingSessionRepository() ports.PackingSessionRepository {
	args := m.Called()
	return args.Get(0).(ports.PackingSessionRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.Event) {
	m.Called(ctx, event)
}
