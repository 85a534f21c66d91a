package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderRouteQuery_Valid(t *testing.T) {
	orderID, customerID := kernel.NewUUID(), kernel.NewUUID()

	query, err := queries.NewGetOrderRouteQuery(orderID, customerID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, orderID, query.OrderID())
	assert.Equal(t, customerID, query.CustomerID())
}

func TestNewGetOrderRouteQuery_ZeroIDs(t *testing.T) {
	_, err := queries.NewGetOrderRouteQuery(kernel.UUID{}, kernel.NewUUID())
	require.Error(t, err)

	_, err = queries.NewGetOrderRouteQuery(kernel.NewUUID(), kernel.UUID{})
	require.Error(t, err)
}

func TestGetOrderRouteQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderRouteQuery{}
	assert.ErrorIs(t, query.Validate(), queries.ErrGetOrderRouteQueryIsNotConstructed)
}

func TestNewListCustomerOrdersQuery_Valid(t *testing.T) {
	customerID := kernel.NewUUID()

	query, err := queries.NewListCustomerOrdersQuery(customerID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, customerID, query.CustomerID())
}

func TestListCustomerOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ListCustomerOrdersQuery{}
	assert.ErrorIs(t, query.Validate(), queries.ErrListCustomerOrdersQueryIsNotConstructed)
}
