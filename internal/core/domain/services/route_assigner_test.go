package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/routing"
	"fulfillment/internal/core/domain/model/vehicle"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, lat, lon float64) *order.Order {
	t.Helper()
	loc, err := kernel.NewGeoLocation(lat, lon)
	require.NoError(t, err)
	dest, err := kernel.NewDestination("somewhere", loc)
	require.NoError(t, err)
	line, err := order.NewLine(kernel.NewUUID(), "Milk", 1, 399, 64)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID().String(), dest,
		[]order.Line{line}, time.Now())
	require.NoError(t, err)
	return o
}

func newVehicle(t *testing.T) *vehicle.Vehicle {
	t.Helper()
	loc, err := kernel.NewGeoLocation(37.3352, -121.8811)
	require.NoError(t, err)
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "secret", loc)
	require.NoError(t, err)
	return v
}

func TestRouteAssigner_Stops(t *testing.T) {
	o1 := newOrder(t, 37.1, -121.1)
	o2 := newOrder(t, 37.2, -121.2)

	stops, err := services.NewRouteAssigner().Stops([]*order.Order{o1, o2})

	require.NoError(t, err)
	require.Len(t, stops, 2)
	assert.True(t, stops[0].OrderID.IsEqual(o1.ID()))
	assert.InDelta(t, 37.2, stops[1].Location.Latitude(), 1e-9)
}

func TestRouteAssigner_Assign(t *testing.T) {
	t.Run("should match by order id regardless of position", func(t *testing.T) {
		o1 := newOrder(t, 37.1, -121.1)
		o2 := newOrder(t, 37.2, -121.2)
		v := newVehicle(t)
		route, err := routing.NewRoute([]kernel.UUID{o2.ID(), o1.ID()}, "poly")
		require.NoError(t, err)

		result, err := services.NewRouteAssigner().Assign(v, []*order.Order{o1, o2}, []routing.Route{route})

		require.NoError(t, err)
		require.Len(t, result.Shipped, 2)
		assert.True(t, result.Shipped[0].IsEqual(o2))
		assert.Empty(t, result.Skipped)
		for _, o := range []*order.Order{o1, o2} {
			assert.Equal(t, order.Shipped, o.Status())
			assert.True(t, o.Vehicle().IsEqual(v.ID()))
			assert.Equal(t, "poly", *o.Polyline())
		}
	})

	t.Run("should report unknown labels and skipped orders", func(t *testing.T) {
		o1 := newOrder(t, 37.1, -121.1)
		o2 := newOrder(t, 37.2, -121.2)
		stranger := kernel.NewUUID()
		route, err := routing.NewRoute([]kernel.UUID{stranger, o1.ID(), o1.ID()}, "poly")
		require.NoError(t, err)

		result, err := services.NewRouteAssigner().Assign(newVehicle(t), []*order.Order{o1, o2}, []routing.Route{route})

		require.NoError(t, err)
		require.Len(t, result.Shipped, 1)
		require.Len(t, result.UnknownOrderIDs, 1)
		assert.True(t, result.UnknownOrderIDs[0].IsEqual(stranger))
		require.Len(t, result.Skipped, 1)
		assert.True(t, result.Skipped[0].IsEqual(o2))
		assert.Equal(t, order.AwaitingDispatch, o2.Status())
	})

	t.Run("should ignore orders no longer awaiting", func(t *testing.T) {
		o1 := newOrder(t, 37.1, -121.1)
		require.NoError(t, o1.Cancel(time.Now()))
		route, err := routing.NewRoute([]kernel.UUID{o1.ID()}, "poly")
		require.NoError(t, err)

		result, err := services.NewRouteAssigner().Assign(newVehicle(t), []*order.Order{o1}, []routing.Route{route})

		require.NoError(t, err)
		assert.Empty(t, result.Shipped)
		assert.Equal(t, order.Canceled, o1.Status())
	})

	t.Run("should refuse a vehicle that is not ready", func(t *testing.T) {
		v := newVehicle(t)
		require.NoError(t, v.StartDelivering())

		_, err := services.NewRouteAssigner().Assign(v, nil, nil)

		assert.ErrorIs(t, err, services.ErrVehicleNotReady)
	})
}
