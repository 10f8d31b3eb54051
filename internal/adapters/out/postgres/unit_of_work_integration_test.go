package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/postgres/assignmentrepo"
	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that a status change, its audit
// row, and a driver-assignment upsert commit and roll back as one unit
// against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.HistoryDTO{}, &assignmentrepo.AssignmentDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_history, driver_assignments").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) seedOrder(id int64, status order.Status) {
	restored, err := order.RestoreOrder(id, "LND-0001", "jane@example.com", status)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(context.Background()))
	suite.Require().NoError(uow.OrderRepository().Add(context.Background(), restored))
	suite.Require().NoError(uow.Commit(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_StatusHistoryAndAssignmentVisibleTogether() {
	ctx := context.Background()
	suite.seedOrder(1, order.Confirmed)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err := uow.OrderRepository().Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.TransitionTo(order.PickupAssigned))

	staffID := int64(3)
	record, err := order.NewHistoryRecord(1, order.Confirmed, order.PickupAssigned, &staffID, "driver en route")
	suite.Require().NoError(err)

	pickup, err := assignment.NewDriverAssignment(1, 7, assignment.Pickup)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.OrderRepository().UpdateStatus(ctx, loaded, order.Confirmed))
	suite.Require().NoError(uow.OrderRepository().AddHistory(ctx, record))
	suite.Require().NoError(uow.AssignmentRepository().Upsert(ctx, pickup))
	suite.Require().NoError(uow.Commit(ctx))

	// A fresh unit of work sees all three writes.
	fresh := suite.factory.Create()

	reloaded, err := fresh.OrderRepository().Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal(order.PickupAssigned, reloaded.Status())

	trail, err := fresh.OrderRepository().GetHistory(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(trail, 1)
	suite.Equal(order.PickupAssigned, trail[0].NewStatus())

	assignments, err := fresh.AssignmentRepository().GetByOrder(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(assignments, 1)
	suite.Equal(int64(7), assignments[0].DriverID())
	suite.Equal(assignment.Pickup, assignments[0].Kind())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllWrites() {
	ctx := context.Background()
	suite.seedOrder(1, order.Confirmed)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err := uow.OrderRepository().Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.TransitionTo(order.PickupAssigned))

	record, err := order.NewHistoryRecord(1, order.Confirmed, order.PickupAssigned, nil, "")
	suite.Require().NoError(err)

	pickup, err := assignment.NewDriverAssignment(1, 7, assignment.Pickup)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.OrderRepository().UpdateStatus(ctx, loaded, order.Confirmed))
	suite.Require().NoError(uow.OrderRepository().AddHistory(ctx, record))
	suite.Require().NoError(uow.AssignmentRepository().Upsert(ctx, pickup))
	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()

	reloaded, err := fresh.OrderRepository().Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, reloaded.Status())

	trail, err := fresh.OrderRepository().GetHistory(ctx, 1)
	suite.Require().NoError(err)
	suite.Empty(trail)

	assignments, err := fresh.AssignmentRepository().GetByOrder(ctx, 1)
	suite.Require().NoError(err)
	suite.Empty(assignments)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUpsert_SameKeyTwice_SingleRow() {
	ctx := context.Background()
	suite.seedOrder(1, order.PickupAssigned)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	first, err := assignment.NewDriverAssignment(1, 7, assignment.Pickup)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AssignmentRepository().Upsert(ctx, first))

	second, err := assignment.NewDriverAssignment(1, 7, assignment.Pickup)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AssignmentRepository().Upsert(ctx, second))

	// Same driver on the delivery leg is a distinct row.
	delivery, err := assignment.NewDriverAssignment(1, 7, assignment.Delivery)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AssignmentRepository().Upsert(ctx, delivery))

	suite.Require().NoError(uow.Commit(ctx))

	assignments, err := suite.factory.Create().AssignmentRepository().GetByOrder(ctx, 1)
	suite.Require().NoError(err)
	suite.Len(assignments, 2)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(context.Background()))
	suite.Require().Error(uow.Rollback(context.Background()))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
