// Package commands contains the write operations of the fulfillment core.
// Every command is validated by its constructor, and every handler runs its writes inside
// a unit of work: Begin, deferred Rollback, Commit.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	StockLedgerFactory interface {
		StockLedger() ports.StockLedger
	}

	AuditLogFactory interface {
		AuditLog() ports.AuditLog
	}

	// OrderUoW covers order state changes that release no stock.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AuditLogFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// StockUoW covers order changes that move units back into the ledger.
	StockUoW interface {
		TxManager
		OrderRepoFactory
		StockLedgerFactory
		AuditLogFactory
	}

	StockUoWFactory interface {
		Create() StockUoW
	}

	VehicleUoW interface {
		TxManager
		VehicleRepoFactory
	}

	VehicleUoWFactory interface {
		Create() VehicleUoW
	}

	// UoW exposes every repository; used by confirmation and dispatch.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//   // ... reserve, persist, audit
	//   return uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		VehicleRepoFactory
		StockLedgerFactory
		AuditLogFactory
		Cart() ports.Cart
		Catalog() ports.Catalog
	}

	UoWFactory interface {
		Create() UoW
	}
)
