package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker satisfies the repository tracker with no bookkeeping;
// query tests only need persisted rows, not tracked aggregates.
type mockAggregateTracker struct{}

func (mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ interface{}) {}

type OrderQueryHandlersTestSuite struct {
	suite.Suite
	container        *postgres.PostgresContainer
	db               *gorm.DB
	getOrderHandler  queries.GetOrderQueryHandler
	getActiveHandler queries.GetActiveOrdersQueryHandler
	orderRepo        *orderrepo.GormOrderRepository
}

func (suite *OrderQueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.getOrderHandler = queries.NewGetOrderQueryHandler(db)
	suite.getActiveHandler = queries.NewGetActiveOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, mockAggregateTracker{})
}

func (suite *OrderQueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderQueryHandlersTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders").Error
	suite.Require().NoError(err)
}

func (suite *OrderQueryHandlersTestSuite) TestGetOrder_ReturnsFullReadModel() {
	item1 := suite.newLineItem(2, 1500)
	item2 := suite.newLineItem(1, 4200)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{item1, item2})
	suite.Require().NoError(err)
	err = suite.orderRepo.Add(context.Background(), o)
	suite.Require().NoError(err)

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	resp, err := suite.getOrderHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(o.ID(), resp.ID)
	suite.Equal(o.CustomerID(), resp.CustomerID)
	suite.Equal(order.AwaitingApproval, resp.Status)
	suite.Equal(order.BackorderNone, resp.BackorderStatus)
	suite.False(resp.StockConsumed)
	suite.Require().Len(resp.Items, 2)
	suite.Equal(item1.ID(), resp.Items[0].ID)
	suite.InDelta(item1.Quantity(), resp.Items[0].Quantity, 0.0001)
	suite.Equal(int64(7200), resp.TotalCents)
	suite.Equal(int64(7200), resp.ChargeableTotalCents)
}

func (suite *OrderQueryHandlersTestSuite) TestGetOrder_PartialApproval_ChargeableCoversApprovedOnly() {
	item1 := suite.newLineItem(2, 1500)
	item2 := suite.newLineItem(1, 4200)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{item1, item2})
	suite.Require().NoError(err)
	err = o.MarkBackorderPending()
	suite.Require().NoError(err)
	_, err = o.ResolveBackorder([]kernel.UUID{item1.ID()})
	suite.Require().NoError(err)
	err = suite.orderRepo.Add(context.Background(), o)
	suite.Require().NoError(err)

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	resp, err := suite.getOrderHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(order.BackorderPartial, resp.BackorderStatus)
	suite.Equal(int64(7200), resp.TotalCents)
	suite.Equal(int64(3000), resp.ChargeableTotalCents)
}

func (suite *OrderQueryHandlersTestSuite) TestGetOrder_NonExistent_ReturnsNotFoundError() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.getOrderHandler.Handle(context.Background(), query)

	suite.Require().Error(err)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderQueryHandlersTestSuite) TestGetOrder_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrderQuery{}

	_, err := suite.getOrderHandler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetOrderQuery constructor")
}

func (suite *OrderQueryHandlersTestSuite) TestGetActiveOrders_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.getActiveHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *OrderQueryHandlersTestSuite) TestGetActiveOrders_ExcludesTerminalStatuses() {
	active := []*order.Order{
		suite.addOrderWithStatus(order.AwaitingApproval),
		suite.addOrderWithStatus(order.Confirmed),
		suite.addOrderWithStatus(order.Packing),
		suite.addOrderWithStatus(order.ReadyForDelivery),
		suite.addOrderWithStatus(order.OutForDelivery),
	}
	terminal := []*order.Order{
		suite.addOrderWithStatus(order.Delivered),
		suite.addOrderWithStatus(order.Cancelled),
	}

	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.getActiveHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Len(result, len(active))

	resultIDs := make(map[kernel.UUID]bool)
	for _, r := range result {
		resultIDs[r.ID] = true
	}
	for _, o := range active {
		suite.True(resultIDs[o.ID()], "Order %s should be in results", o.ID())
	}
	for _, o := range terminal {
		suite.False(resultIDs[o.ID()], "Terminal order %s should not be in results", o.ID())
	}
}

func (suite *OrderQueryHandlersTestSuite) TestGetActiveOrders_SortedByID() {
	for range 3 {
		suite.addOrderWithStatus(order.Confirmed)
	}

	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.getActiveHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Len(result, 3)

	for i := range len(result) - 1 {
		suite.Less(result[i].ID.String(), result[i+1].ID.String(),
			"Orders should be sorted by ID")
	}
}

func (suite *OrderQueryHandlersTestSuite) newLineItem(quantity float64, unitPriceCents int64) order.LineItem {
	item, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), quantity, unitPriceCents)
	suite.Require().NoError(err)
	return item
}

func (suite *OrderQueryHandlersTestSuite) addOrderWithStatus(status order.Status) *order.Order {
	item := suite.newLineItem(1, 1000)
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{item},
		status, order.BackorderNone, false, nil,
	)
	suite.Require().NoError(err)
	err = suite.orderRepo.Add(context.Background(), o)
	suite.Require().NoError(err)
	return o
}

func TestOrderQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueryHandlersTestSuite))
}
