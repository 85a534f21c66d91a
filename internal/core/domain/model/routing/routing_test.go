package routing_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/routing"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStop(t *testing.T) {
	loc, err := kernel.NewGeoLocation(1, 2)
	require.NoError(t, err)

	_, err = routing.NewStop(kernel.NewUUID(), loc)
	assert.NoError(t, err)

	_, err = routing.NewStop(kernel.UUID{}, loc)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	_, err = routing.NewStop(kernel.NewUUID(), kernel.GeoLocation{})
	assert.ErrorIs(t, err, kernel.ErrGeoLocationIsNotConstructed)
}

func TestNewRoute(t *testing.T) {
	ids := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}

	r, err := routing.NewRoute(ids, "_p~iF~ps|U")
	require.NoError(t, err)
	ids[0] = kernel.NewUUID()
	assert.False(t, r.OrderIDs[0].IsEqual(ids[0]))

	_, err = routing.NewRoute(ids, "")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
