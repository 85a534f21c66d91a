package cmd

import (
	"log/slog"

	"fulfillment/internal/adapters/in/auth"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/in/ws"
	"fulfillment/internal/adapters/out/paymentgateway"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/routeplanner"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	logger     *slog.Logger

	depot    kernel.GeoLocation
	verifier *auth.TokenVerifier
	planner  ports.RoutePlanner
	payments ports.PaymentGateway

	vehicles  *ws.VehicleRegistry
	observers *ws.ObserverRegistry
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	depot, err := kernel.NewGeoLocation(configs.DepotLatitude, configs.DepotLongitude)
	if err != nil {
		return nil, err
	}
	verifier, err := auth.NewTokenVerifier(configs.JWTSecret, configs.JWTIssuer)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		depot:      depot,
		verifier:   verifier,
		planner: routeplanner.NewClient(
			configs.RoutePlannerURL, configs.RoutePlannerProject, configs.RoutePlannerToken, logger),
		payments:  paymentgateway.NewClient(configs.PaymentGatewayURL, configs.PaymentGatewayKey, logger),
		vehicles:  ws.NewVehicleRegistry(logger),
		observers: ws.NewObserverRegistry(logger),
	}, nil
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.uowFactoryFunc())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.StockUoWFactory = FuncStockUoWFactory(func() commands.StockUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateDispatchOrdersCommandHandler() commands.DispatchOrdersCommandHandler {
	return commands.NewDispatchOrdersCommandHandler(
		c.uowFactoryFunc(), c.planner, c.observers, c.depot, c.configs.RoutePlanTimeout, c.logger)
}

func (c *CompositionRoot) CreateRegisterVehicleCommandHandler() commands.RegisterVehicleCommandHandler {
	return commands.NewRegisterVehicleCommandHandler(c.vehicleUoWFactoryFunc())
}

func (c *CompositionRoot) CreateAuthenticateVehicleCommandHandler() commands.AuthenticateVehicleCommandHandler {
	return commands.NewAuthenticateVehicleCommandHandler(c.vehicleUoWFactoryFunc())
}

func (c *CompositionRoot) CreateReportTelemetryCommandHandler() commands.ReportTelemetryCommandHandler {
	return commands.NewReportTelemetryCommandHandler(c.vehicleUoWFactoryFunc())
}

func (c *CompositionRoot) CreateGetOrderRouteQueryHandler() queries.GetOrderRouteQueryHandler {
	return queries.NewGetOrderRouteQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCustomerOrdersQueryHandler() queries.ListCustomerOrdersQueryHandler {
	return queries.NewListCustomerOrdersQueryHandler(c.gormDB)
}

// CreateHTTPRouter wires the REST API and both websocket channels onto one echo instance.
func (c *CompositionRoot) CreateHTTPRouter() (*echo.Echo, error) {
	server := httpin.NewServer(
		c.CreateConfirmOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateCompleteDeliveryCommandHandler(),
		c.CreateRegisterVehicleCommandHandler(),
		c.CreateGetOrderRouteQueryHandler(),
		c.CreateListCustomerOrdersQueryHandler(),
		c.payments,
		c.logger,
	)

	vehicleChannel := ws.NewVehicleHandler(
		c.vehicles,
		c.CreateAuthenticateVehicleCommandHandler(),
		c.CreateReportTelemetryCommandHandler(),
		c.CreateDispatchOrdersCommandHandler(),
		c.logger,
	)
	observerChannel := ws.NewObserverHandler(c.observers, c.verifier, c.logger)

	return httpin.NewRouter(server, c.verifier, vehicleChannel, observerChannel, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.vehicles, c.configs.DispatchSweepSchedule, c.logger)
}

func (c *CompositionRoot) uowFactoryFunc() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) vehicleUoWFactoryFunc() commands.VehicleUoWFactory {
	return FuncVehicleUoWFactory(func() commands.VehicleUoW {
		return c.uowFactory.Create()
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncStockUoWFactory func() commands.StockUoW

func (f FuncStockUoWFactory) Create() commands.StockUoW {
	return f()
}

type FuncVehicleUoWFactory func() commands.VehicleUoW

func (f FuncVehicleUoWFactory) Create() commands.VehicleUoW {
	return f()
}
