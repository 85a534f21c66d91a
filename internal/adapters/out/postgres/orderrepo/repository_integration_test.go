package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.repository = orderrepo.NewGormOrderRepository(suite.pg.DB)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RestoresOrderWithLines() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	created := suite.newOrder(customerID, "pi_roundtrip", time.Now().Add(-time.Minute))

	suite.Require().NoError(suite.repository.Add(ctx, created))

	restored, err := suite.repository.Get(ctx, created.ID())
	suite.Require().NoError(err)

	suite.Equal(created.ID(), restored.ID())
	suite.Equal(customerID, restored.CustomerID())
	suite.Equal("pi_roundtrip", restored.PaymentReference())
	suite.Equal(order.AwaitingDispatch, restored.Status())
	suite.Equal("1 Infinite Loop", restored.Destination().Address())
	suite.InDelta(37.3318, restored.Destination().Location().Latitude(), 1e-9)
	suite.Nil(restored.Vehicle())
	suite.Nil(restored.Polyline())
	suite.Nil(restored.CanceledAt())
	suite.WithinDuration(created.CreatedAt(), restored.CreatedAt(), time.Millisecond)

	suite.Require().Len(restored.Lines(), 2)
	suite.Equal("Apples", restored.Lines()[0].Name())
	suite.Equal("Flour", restored.Lines()[1].Name())
	suite.Equal(created.Totals(), restored.Totals())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicatePaymentReference_ReturnsAlreadyExists() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(kernel.NewUUID(), "pi_dup", time.Now())))

	err := suite.repository.Add(ctx, suite.newOrder(kernel.NewUUID(), "pi_dup", time.Now()))

	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_UnknownOrder_ReturnsNotFound() {
	o, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(o)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetOwned_OtherCustomer_ReturnsNotFound() {
	ctx := context.Background()
	owner := kernel.NewUUID()
	o := suite.newOrder(owner, "pi_owned", time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	found, err := suite.repository.GetOwned(ctx, o.ID(), owner)
	suite.Require().NoError(err)
	suite.Equal(o.ID(), found.ID())

	_, err = suite.repository.GetOwned(ctx, o.ID(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByPaymentReference() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID(), "pi_lookup", time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	found, err := suite.repository.GetByPaymentReference(ctx, "pi_lookup")
	suite.Require().NoError(err)
	suite.Equal(o.ID(), found.ID())

	_, err = suite.repository.GetByPaymentReference(ctx, "pi_missing")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllAwaitingDispatch_OldestFirstAndSkipsCanceled() {
	ctx := context.Background()
	now := time.Now()

	newer := suite.newOrder(kernel.NewUUID(), "pi_newer", now)
	older := suite.newOrder(kernel.NewUUID(), "pi_older", now.Add(-time.Hour))
	canceled := suite.newOrder(kernel.NewUUID(), "pi_canceled", now.Add(-2*time.Hour))
	for _, o := range []*order.Order{newer, older, canceled} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	suite.Require().NoError(canceled.Cancel(now))
	applied, err := suite.repository.UpdateIfStatus(ctx, canceled, order.AwaitingDispatch)
	suite.Require().NoError(err)
	suite.Require().True(applied)

	awaiting, err := suite.repository.GetAllAwaitingDispatch(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(awaiting, 2)
	suite.Equal(older.ID(), awaiting[0].ID())
	suite.Equal(newer.ID(), awaiting[1].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByCustomer_NewestFirst() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	now := time.Now()

	first := suite.newOrder(customerID, "pi_first", now.Add(-time.Hour))
	second := suite.newOrder(customerID, "pi_second", now)
	foreign := suite.newOrder(kernel.NewUUID(), "pi_foreign", now)
	for _, o := range []*order.Order{first, second, foreign} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	orders, err := suite.repository.ListByCustomer(ctx, customerID)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 2)
	suite.Equal(second.ID(), orders[0].ID())
	suite.Equal(first.ID(), orders[1].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateIfStatus_Ship_PersistsRoute() {
	ctx := context.Background()
	vehicleID := suite.insertVehicle()
	o := suite.newOrder(kernel.NewUUID(), "pi_ship", time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.Ship(vehicleID, "encoded_polyline"))
	applied, err := suite.repository.UpdateIfStatus(ctx, o, order.AwaitingDispatch)
	suite.Require().NoError(err)
	suite.True(applied)

	restored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Shipped, restored.Status())
	suite.Require().NotNil(restored.Vehicle())
	suite.Equal(vehicleID, *restored.Vehicle())
	suite.Equal("encoded_polyline", *restored.Polyline())
	suite.Len(restored.Lines(), 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateIfStatus_StaleExpectedStatus_NotApplied() {
	ctx := context.Background()
	vehicleID := suite.insertVehicle()
	o := suite.newOrder(kernel.NewUUID(), "pi_race", time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	canceledCopy, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(canceledCopy.Cancel(time.Now()))
	applied, err := suite.repository.UpdateIfStatus(ctx, canceledCopy, order.AwaitingDispatch)
	suite.Require().NoError(err)
	suite.Require().True(applied)

	suite.Require().NoError(o.Ship(vehicleID, "encoded_polyline"))
	applied, err = suite.repository.UpdateIfStatus(ctx, o, order.AwaitingDispatch)
	suite.Require().NoError(err)
	suite.False(applied)

	restored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Canceled, restored.Status())
	suite.Nil(restored.Vehicle())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSchema_RejectsShippedWithoutRoute() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID(), "pi_check", time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	err := suite.pg.DB.Exec("UPDATE orders SET status = 'SHIPPED' WHERE id = ?", o.ID().Bytes()).Error

	suite.Require().Error(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(
	customerID kernel.UUID,
	paymentReference string,
	createdAt time.Time,
) *order.Order {
	location, err := kernel.NewGeoLocation(37.3318, -122.0312)
	suite.Require().NoError(err)
	destination, err := kernel.NewDestination("1 Infinite Loop", location)
	suite.Require().NoError(err)

	apples, err := order.NewLine(kernel.NewUUID(), "Apples", 3, 250, 16)
	suite.Require().NoError(err)
	flour, err := order.NewLine(kernel.NewUUID(), "Flour", 1, 499, 80)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), customerID, paymentReference, destination,
		[]order.Line{apples, flour}, createdAt)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) insertVehicle() kernel.UUID {
	id := kernel.NewUUID()
	suite.Require().NoError(suite.pg.DB.Exec(
		"INSERT INTO vehicles (id, secret_hash, latitude, longitude, status) VALUES (?, ?, ?, ?, ?)",
		id.Bytes(), []byte("hash"), 37.3352, -121.8811, "READY",
	).Error)
	return id
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.pg.DB.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
