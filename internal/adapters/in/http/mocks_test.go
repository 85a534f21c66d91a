package http

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderConfirmer struct {
	mock.Mock
}

func (m *MockOrderConfirmer) Handle(ctx context.Context, cmd commands.ConfirmOrderCommand) (kernel.UUID, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

type MockOrderCanceler struct {
	mock.Mock
}

func (m *MockOrderCanceler) Handle(ctx context.Context, cmd commands.CancelOrderCommand) (order.Projection, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(order.Projection), args.Error(1)
}

type MockDeliveryCompleter struct {
	mock.Mock
}

func (m *MockDeliveryCompleter) Handle(ctx context.Context, cmd commands.CompleteDeliveryCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockVehicleRegistrar struct {
	mock.Mock
}

func (m *MockVehicleRegistrar) Handle(ctx context.Context, cmd commands.RegisterVehicleCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockOrderRouteReader struct {
	mock.Mock
}

func (m *MockOrderRouteReader) Handle(
	ctx context.Context,
	query queries.GetOrderRouteQuery,
) (queries.GetOrderRouteQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderRouteQueryResponse), args.Error(1)
}

type MockOrderHistoryReader struct {
	mock.Mock
}

func (m *MockOrderHistoryReader) Handle(
	ctx context.Context,
	query queries.ListCustomerOrdersQuery,
) ([]queries.CustomerOrderResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.CustomerOrderResponse), args.Error(1)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) VerifyCharge(
	ctx context.Context,
	paymentReference string,
	customerID kernel.UUID,
) (ports.PaymentStatus, error) {
	args := m.Called(ctx, paymentReference, customerID)
	return args.Get(0).(ports.PaymentStatus), args.Error(1)
}
