package cmd

import (
	"log/slog"
	"os"

	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	publisher  ports.EventPublisher
	table      *services.TransitionTable
	gate       *services.AuthorizationGate

	// Shared across the transition, approval and sweep handlers so every
	// status change rides the same authorization and side-effect path.
	transitionHandler *commands.TransitionOrderCommandHandler
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	publisher := notify.NewSlogEventPublisher(logger)
	table := services.NewTransitionTable()
	gate := services.NewAuthorizationGate(table)

	root := CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		publisher:  publisher,
		table:      table,
		gate:       gate,
	}

	transitionHandler := commands.NewTransitionOrderCommandHandler(root.newUoWFactory(), gate, publisher)
	root.transitionHandler = &transitionHandler

	return root
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.newUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() *commands.TransitionOrderCommandHandler {
	return c.transitionHandler
}

func (c *CompositionRoot) CreateApproveBackorderCommandHandler() commands.ApproveBackorderCommandHandler {
	return commands.NewApproveBackorderCommandHandler(c.newUoWFactory(), c.transitionHandler, c.publisher)
}

func (c *CompositionRoot) CreateAdjustPackingQuantityCommandHandler() commands.AdjustPackingQuantityCommandHandler {
	return commands.NewAdjustPackingQuantityCommandHandler(c.newUoWFactory())
}

func (c *CompositionRoot) TransitionTable() *services.TransitionTable {
	return c.table
}

func (c *CompositionRoot) CreateSweepPackingSessionsCommandHandler() *commands.SweepPackingSessionsCommandHandler {
	return commands.NewSweepPackingSessionsCommandHandler(
		c.newUoWFactory(),
		c.transitionHandler,
		c.publisher,
		c.config.PackingTimeout,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSweepPackingSessionsCommandHandler(),
		c.config.PackingSweepInterval,
		c.logger,
	)
}

func (c *CompositionRoot) newUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
