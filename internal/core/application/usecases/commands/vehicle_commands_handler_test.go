package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vehicle"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReportTelemetryCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	v := testVehicle(t)
	require.NoError(t, v.StartDelivering())
	moved, err := kernel.NewGeoLocation(37.30, -121.90)
	require.NoError(t, err)
	cmd, err := commands.NewReportTelemetryCommand(v.ID(), vehicle.Ready, moved)
	require.NoError(t, err)

	uow := newMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.vehicles.On("Get", ctx, v.ID()).Return(v, nil).Once(),
		uow.vehicles.On("Update", ctx, v).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	err = commands.NewReportTelemetryCommandHandler(vehicleUoWFactory{uow: uow}).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, v.IsReady())
	assert.Equal(t, moved, v.Location())
	uow.assertAll(t)
}

func TestRegisterVehicleCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewRegisterVehicleCommand(id, "s3cret", testLocation(t))
	require.NoError(t, err)

	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.vehicles.On("Add", ctx, mock.MatchedBy(func(v *vehicle.Vehicle) bool {
		return v.ID().IsEqual(id) && v.Authenticate("s3cret") == nil
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	err = commands.NewRegisterVehicleCommandHandler(vehicleUoWFactory{uow: uow}).Handle(ctx, cmd)

	require.NoError(t, err)
	uow.assertAll(t)
}

func TestAuthenticateVehicleCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	v := testVehicle(t)
	unknown := kernel.NewUUID()

	uow := newMockUoW()
	uow.vehicles.On("Get", ctx, v.ID()).Return(v, nil)
	uow.vehicles.On("Get", ctx, unknown).Return(nil, errs.NewObjectNotFoundError("vehicle", unknown.String()))
	h := commands.NewAuthenticateVehicleCommandHandler(vehicleUoWFactory{uow: uow})

	assert.NoError(t, h.Handle(ctx, v.ID(), "secret"))
	assert.ErrorIs(t, h.Handle(ctx, v.ID(), "wrong"), errs.ErrAuthFailed)
	assert.ErrorIs(t, h.Handle(ctx, unknown, "secret"), errs.ErrAuthFailed)
	assert.ErrorIs(t, h.Handle(ctx, kernel.UUID{}, "secret"), errs.ErrAuthFailed)
}
