package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/routing"
	"fulfillment/internal/core/domain/model/vehicle"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetOwned(ctx context.Context, id, customerID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id, customerID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByPaymentReference(ctx context.Context, ref string) (*order.Order, error) {
	args := m.Called(ctx, ref)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetAllAwaitingDispatch(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, customerID)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) UpdateIfStatus(ctx context.Context, o *order.Order, expected order.Status) (bool, error) {
	args := m.Called(ctx, o, expected)
	return args.Bool(0), args.Error(1)
}

type MockStockLedger struct{ mock.Mock }

func (m *MockStockLedger) Reserve(ctx context.Context, itemID kernel.UUID, qty int) error {
	return m.Called(ctx, itemID, qty).Error(0)
}

func (m *MockStockLedger) Release(ctx context.Context, itemID kernel.UUID, qty int) error {
	return m.Called(ctx, itemID, qty).Error(0)
}

func (m *MockStockLedger) Available(ctx context.Context, itemID kernel.UUID) (int, error) {
	args := m.Called(ctx, itemID)
	return args.Int(0), args.Error(1)
}

type MockCart struct{ mock.Mock }

func (m *MockCart) Lines(ctx context.Context, customerID kernel.UUID) ([]ports.CartLine, error) {
	args := m.Called(ctx, customerID)
	lines, _ := args.Get(0).([]ports.CartLine)
	return lines, args.Error(1)
}

func (m *MockCart) Clear(ctx context.Context, customerID kernel.UUID) error {
	return m.Called(ctx, customerID).Error(0)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) GetItems(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]ports.CatalogItem, error) {
	args := m.Called(ctx, ids)
	items, _ := args.Get(0).(map[kernel.UUID]ports.CatalogItem)
	return items, args.Error(1)
}

type MockAuditLog struct{ mock.Mock }

func (m *MockAuditLog) Record(ctx context.Context, record ports.AuditRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockAuditLog) DeliveredAt(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]time.Time, error) {
	args := m.Called(ctx, ids)
	res, _ := args.Get(0).(map[kernel.UUID]time.Time)
	return res, args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Add(ctx context.Context, v *vehicle.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*vehicle.Vehicle)
	return v, args.Error(1)
}

func (m *MockVehicleRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*vehicle.Vehicle)
	return v, args.Error(1)
}

// MockUoW satisfies every unit of work interface in the commands package.
type MockUoW struct {
	mock.Mock
	orders   *MockOrderRepository
	vehicles *MockVehicleRepository
	ledger   *MockStockLedger
	cart     *MockCart
	catalog  *MockCatalog
	audit    *MockAuditLog
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:   new(MockOrderRepository),
		vehicles: new(MockVehicleRepository),
		ledger:   new(MockStockLedger),
		cart:     new(MockCart),
		catalog:  new(MockCatalog),
		audit:    new(MockAuditLog),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository     { return m.orders }
func (m *MockUoW) VehicleRepository() ports.VehicleRepository { return m.vehicles }
func (m *MockUoW) StockLedger() ports.StockLedger             { return m.ledger }
func (m *MockUoW) Cart() ports.Cart                           { return m.cart }
func (m *MockUoW) Catalog() ports.Catalog                     { return m.catalog }
func (m *MockUoW) AuditLog() ports.AuditLog                   { return m.audit }

func (m *MockUoW) assertAll(t *testing.T) {
	t.Helper()
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.vehicles.AssertExpectations(t)
	m.ledger.AssertExpectations(t)
	m.cart.AssertExpectations(t)
	m.catalog.AssertExpectations(t)
	m.audit.AssertExpectations(t)
}

type uowFactory struct{ uow *MockUoW }

func (f uowFactory) Create() commands.UoW { return f.uow }

type stockUoWFactory struct{ uow *MockUoW }

func (f stockUoWFactory) Create() commands.StockUoW { return f.uow }

type orderUoWFactory struct{ uow *MockUoW }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }

type vehicleUoWFactory struct{ uow *MockUoW }

func (f vehicleUoWFactory) Create() commands.VehicleUoW { return f.uow }

type MockRoutePlanner struct{ mock.Mock }

func (m *MockRoutePlanner) Plan(ctx context.Context, depot kernel.GeoLocation, stops []routing.Stop) ([]routing.Route, error) {
	args := m.Called(ctx, depot, stops)
	routes, _ := args.Get(0).([]routing.Route)
	return routes, args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyOrderUpdate(ctx context.Context, customerID kernel.UUID) bool {
	return m.Called(ctx, customerID).Bool(0)
}

func testLocation(t *testing.T) kernel.GeoLocation {
	t.Helper()
	loc, err := kernel.NewGeoLocation(37.3352, -121.8811)
	require.NoError(t, err)
	return loc
}

func testDestination(t *testing.T) kernel.Destination {
	t.Helper()
	d, err := kernel.NewDestination("1 Washington Sq", testLocation(t))
	require.NoError(t, err)
	return d
}

func testOrder(t *testing.T, customerID kernel.UUID, lines ...order.Line) *order.Order {
	t.Helper()
	if len(lines) == 0 {
		l, err := order.NewLine(kernel.NewUUID(), "Bread", 2, 300, 24)
		require.NoError(t, err)
		lines = []order.Line{l}
	}
	o, err := order.NewOrder(kernel.NewUUID(), customerID, kernel.NewUUID().String(),
		testDestination(t), lines, time.Now())
	require.NoError(t, err)
	return o
}

func testVehicle(t *testing.T) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "secret", testLocation(t))
	require.NoError(t, err)
	return v
}
