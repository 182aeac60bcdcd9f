package cmd

import (
	"log/slog"

	"sales/internal/adapters/out/dispatch"
	"sales/internal/adapters/out/inventory"
	"sales/internal/adapters/out/postgres"
	"sales/internal/core/application/usecases/commands"
	"sales/internal/core/application/usecases/queries"
	"sales/internal/core/domain/services"
	"sales/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires repositories, external clients and use case handlers.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	inventory  ports.InventoryClient
	dispatch   ports.DispatchClient
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		inventory:  inventory.NewClient(config.InventoryAPIURL, config.ExternalCallTimeout, logger),
		dispatch:   dispatch.NewClient(config.DispatchAPIURL, config.ExternalCallTimeout, logger),
		logger:     logger,
	}
}

// InventoryClient exposes the shared inventory client for the HTTP layer's
// product catalog proxy.
func (c *CompositionRoot) InventoryClient() ports.InventoryClient {
	return c.inventory
}

// DispatchClient exposes the shared dispatch client for the HTTP layer's
// delivery availability check.
func (c *CompositionRoot) DispatchClient() ports.DispatchClient {
	return c.dispatch
}

func (c *CompositionRoot) CreateCreateSaleCommandHandler() commands.CreateSaleCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	calculator := services.NewFulfillmentCalculator(c.inventory, c.logger)
	return commands.NewCreateSaleCommandHandler(f, calculator, c.inventory, c.dispatch, c.logger)
}

func (c *CompositionRoot) CreateCompleteSaleCommandHandler() commands.CompleteSaleCommandHandler {
	var f commands.SaleUoWFactory = FuncSaleUoWFactory(func() commands.SaleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteSaleCommandHandler(f)
}

func (c *CompositionRoot) CreateCleanupExpiredSalesCommandHandler() commands.CleanupExpiredSalesCommandHandler {
	var f commands.SaleUoWFactory = FuncSaleUoWFactory(func() commands.SaleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCleanupExpiredSalesCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateCustomerCommandHandler() commands.CreateCustomerCommandHandler {
	var f commands.CustomerUoWFactory = FuncCustomerUoWFactory(func() commands.CustomerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCustomerCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateCustomerCommandHandler() commands.UpdateCustomerCommandHandler {
	var f commands.CustomerUoWFactory = FuncCustomerUoWFactory(func() commands.CustomerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCustomerCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAllSalesQueryHandler() queries.GetAllSalesQueryHandler {
	return queries.NewGetAllSalesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSaleQueryHandler() queries.GetSaleQueryHandler {
	return queries.NewGetSaleQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllCustomersQueryHandler() queries.GetAllCustomersQueryHandler {
	return queries.NewGetAllCustomersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerQueryHandler() queries.GetCustomerQueryHandler {
	return queries.NewGetCustomerQueryHandler(c.gormDB)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncSaleUoWFactory func() commands.SaleUoW

func (f FuncSaleUoWFactory) Create() commands.SaleUoW {
	return f()
}

type FuncCustomerUoWFactory func() commands.CustomerUoW

func (f FuncCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}
