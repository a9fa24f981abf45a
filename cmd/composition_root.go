package cmd

import (
	"fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/storefront"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/period"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/metric"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
	calendar   period.Calendar
	feed       ports.UpstreamFeed
	metrics    *metric.Metrics
	logger     *zap.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) (CompositionRoot, error) {
	loc, err := config.Location()
	if err != nil {
		return CompositionRoot{}, err
	}
	clock := kernel.SystemClock{}
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      clock,
		calendar:   period.NewCalendar(clock, loc),
		feed:       storefront.NewClient(config.UpstreamBaseURL, config.UpstreamAPIKey, config.UpstreamTimeout, logger),
		metrics:    metric.NewMetrics(),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) Metrics() *metric.Metrics {
	return c.metrics
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uowFactoryAll() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateHTTPHandlers() http.Handlers {
	orders := c.orderUoWFactory()
	all := c.uowFactoryAll()
	return http.Handlers{
		CreateOrder:        commands.NewCreateOrderCommandHandler(orders, c.clock),
		UpdateOrder:        commands.NewUpdateOrderCommandHandler(orders),
		DeleteOrder:        commands.NewDeleteOrderCommandHandler(orders),
		BulkDelete:         commands.NewBulkDeleteOrdersCommandHandler(orders),
		BulkDeleteByFilter: commands.NewBulkDeleteOrdersByFilterCommandHandler(orders, c.calendar),
		PrepareOrder:       commands.NewPrepareOrderCommandHandler(orders, c.clock),
		ControlOrder:       commands.NewControlOrderCommandHandler(orders, c.clock),
		PackOrder:          commands.NewPackOrderCommandHandler(orders, c.clock),
		RegisterUser:       commands.NewRegisterUserCommandHandler(all),
		ForgetUser:         commands.NewForgetUserCommandHandler(all),

		ListOrders: queries.NewListOrdersQueryHandler(c.gormDB, c.calendar, c.logger),
		StageQueue: queries.NewStageQueueQueryHandler(c.gormDB, c.calendar, c.logger),
		GetOrder:   queries.NewGetOrderQueryHandler(c.gormDB),
		Dashboard: queries.NewGetDashboardQueryHandler(
			c.gormDB, c.calendar, services.NewReportCalculator(), c.logger),
		UpstreamOrders: queries.NewUpstreamOrdersQueryHandler(c.feed, c.gormDB, c.calendar, c.logger),
		ListUsers:      queries.NewListUsersQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(c.CreateHTTPHandlers(), c.metrics, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	reconciler := queries.NewReconcileUpstreamQueryHandler(c.feed, c.gormDB, c.calendar)
	return jobs.NewJobManager(
		jobs.NewUpstreamReconciliationJob(
			reconciler, c.metrics, c.config.UpstreamSyncSchedule, c.config.UpstreamTimeout, c.logger),
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
