package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func twoLines(t *testing.T) []order.Line {
	t.Helper()
	a, err := order.NewLine(kernel.NewUUID(), "Eggs", 2, 450, 24)
	require.NoError(t, err)
	b, err := order.NewLine(kernel.NewUUID(), "Rice", 1, 799, 80)
	require.NoError(t, err)
	return []order.Line{a, b}
}

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customer := kernel.NewUUID()
	lines := twoLines(t)
	o := testOrder(t, customer, lines...)
	cmd, err := commands.NewCancelOrderCommand(o.ID(), customer)
	require.NoError(t, err)

	uow := newMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.orders.On("GetOwned", ctx, o.ID(), customer).Return(o, nil).Once(),
		uow.orders.On("UpdateIfStatus", ctx, o, order.AwaitingDispatch).Return(true, nil).Once(),
		uow.ledger.On("Release", ctx, lines[0].ItemID(), 2).Return(nil).Once(),
		uow.ledger.On("Release", ctx, lines[1].ItemID(), 1).Return(nil).Once(),
		uow.audit.On("Record", ctx, mock.MatchedBy(func(r ports.AuditRecord) bool {
			return r.Action == ports.AuditOrderCanceled && r.TargetID.IsEqual(o.ID())
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCancelOrderCommandHandler(stockUoWFactory{uow: uow})
	projection, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Canceled, projection.Status)
	assert.NotNil(t, projection.CanceledAt)
	assert.Len(t, projection.Items, 2)
	assert.Equal(t, int64(2*450+799), projection.Totals.ItemsCents)
	uow.assertAll(t)
}

func TestCancelOrderCommandHandler_Handle_RejectsShippedOrder(t *testing.T) {
	ctx := t.Context()
	customer := kernel.NewUUID()
	o := testOrder(t, customer)
	require.NoError(t, o.Ship(kernel.NewUUID(), "poly"))
	cmd, err := commands.NewCancelOrderCommand(o.ID(), customer)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.orders.On("GetOwned", ctx, o.ID(), customer).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCancelOrderCommandHandler(stockUoWFactory{uow: uow})
	_, err = h.Handle(ctx, cmd)

	var transitionErr *errs.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "SHIPPED", transitionErr.Current)
	assert.Equal(t, "CANCELED", transitionErr.Requested)
	uow.ledger.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
	uow.assertAll(t)
}

func TestCancelOrderCommandHandler_Handle_LosesRaceToDispatch(t *testing.T) {
	ctx := t.Context()
	customer := kernel.NewUUID()
	o := testOrder(t, customer)
	cmd, err := commands.NewCancelOrderCommand(o.ID(), customer)
	require.NoError(t, err)

	shipped, err := order.RestoreOrder(o.ID(), customer, o.PaymentReference(), o.Destination(), o.Lines(),
		order.Shipped, ptr(kernel.NewUUID()), ptr("poly"), o.CreatedAt(), nil)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.orders.On("GetOwned", ctx, o.ID(), customer).Return(o, nil).Once()
	uow.orders.On("UpdateIfStatus", ctx, o, order.AwaitingDispatch).Return(false, nil).Once()
	uow.orders.On("Get", ctx, o.ID()).Return(shipped, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCancelOrderCommandHandler(stockUoWFactory{uow: uow})
	_, err = h.Handle(ctx, cmd)

	var transitionErr *errs.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "SHIPPED", transitionErr.Current)
	uow.ledger.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.assertAll(t)
}

func TestCancelOrderCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	stranger := kernel.NewUUID()
	cmd, err := commands.NewCancelOrderCommand(orderID, stranger)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.orders.On("GetOwned", ctx, orderID, stranger).
		Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCancelOrderCommandHandler(stockUoWFactory{uow: uow})
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.assertAll(t)
}

func ptr[T any](v T) *T {
	return &v
}
