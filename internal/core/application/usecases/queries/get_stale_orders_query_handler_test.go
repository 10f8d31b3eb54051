package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GetStaleOrdersQueryHandlerTestSuite verifies the watchdog's staleness query
// against a real PostgreSQL database.
type GetStaleOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetStaleOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetStaleOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	suite.handler = queries.NewGetStaleOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db)
}

func (suite *GetStaleOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetStaleOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

// seedOrderAged creates an order whose last status change happened `age` ago.
func (suite *GetStaleOrdersQueryHandlerTestSuite) seedOrderAged(id int64, status order.Status, age time.Duration) {
	restored, err := order.RestoreOrder(id, fmt.Sprintf("LND-%04d", id), "customer@example.com", status)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), restored))
	suite.Require().NoError(suite.db.Exec(
		"UPDATE orders SET updated_at = ? WHERE id = ?",
		time.Now().UTC().Add(-age), id).Error)
}

func (suite *GetStaleOrdersQueryHandlerTestSuite) TestHandle_ReturnsOnlyOrdersOlderThanThreshold() {
	suite.seedOrderAged(1, order.ProcessingStarted, 2*time.Hour)
	suite.seedOrderAged(2, order.PickupAssigned, 10*time.Minute)
	suite.seedOrderAged(3, order.QualityCheck, 3*time.Hour)

	query, err := queries.NewGetStaleOrdersQuery(time.Hour)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	// Oldest first.
	suite.Equal(int64(3), result[0].ID)
	suite.Equal(int64(1), result[1].ID)
	suite.Equal(order.QualityCheck, result[0].Status)
}

func (suite *GetStaleOrdersQueryHandlerTestSuite) TestHandle_TerminalOrdersNeverCountAsStale() {
	suite.seedOrderAged(1, order.Delivered, 48*time.Hour)
	suite.seedOrderAged(2, order.Cancelled, 48*time.Hour)
	suite.seedOrderAged(3, order.Refunded, 48*time.Hour)

	query, err := queries.NewGetStaleOrdersQuery(time.Hour)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetStaleOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetStaleOrdersQuery(time.Hour)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func TestGetStaleOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetStaleOrdersQueryHandlerTestSuite))
}
