package queries_test

import (
	"context"
	"testing"
	"time"

	"sales/internal/adapters/out/postgres/customerrepo"
	"sales/internal/adapters/out/postgres/salerepo"
	"sales/internal/core/application/usecases/queries"
	"sales/internal/core/domain/model/kernel"
	"sales/internal/core/domain/model/sale"
	"sales/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type SalesQueryHandlerTestSuite struct {
	suite.Suite
	container     *postgres.PostgresContainer
	db            *gorm.DB
	listHandler   queries.GetAllSalesQueryHandler
	singleHandler queries.GetSaleQueryHandler
}

func (suite *SalesQueryHandlerTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&customerrepo.CustomerDTO{}, &salerepo.SaleDTO{}, &salerepo.ItemDTO{})
	suite.Require().NoError(err)

	suite.listHandler = queries.NewGetAllSalesQueryHandler(db)
	suite.singleHandler = queries.NewGetSaleQueryHandler(db)
}

func (suite *SalesQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *SalesQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE sale_items, sales, customers").Error)
}

func (suite *SalesQueryHandlerTestSuite) TestGetAllSales_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetAllSalesQuery()

	result, err := suite.listHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *SalesQueryHandlerTestSuite) TestGetAllSales_ReturnsSalesNewestFirst() {
	customerID := suite.seedCustomer("ada@example.com")
	older := suite.seedSale(customerID, "COMPLETED", time.Now().Add(-time.Hour))
	newer := suite.seedSale(customerID, "PENDING", time.Now())

	result, err := suite.listHandler.Handle(context.Background(), queries.NewGetAllSalesQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(newer.String(), result[0].ID.String())
	suite.Equal(older.String(), result[1].ID.String())
	suite.Equal("Ada Lovelace", result[0].Customer.Name)
	suite.Equal("ada@example.com", result[0].Customer.Email)
	suite.Require().Len(result[0].Items, 1)
	suite.Equal("prod-chair", result[0].Items[0].ProductID)
	suite.InDelta(2*49.90, result[0].Items[0].Subtotal, 0.001)
}

func (suite *SalesQueryHandlerTestSuite) TestGetAllSales_PendingSaleCarriesExpiration() {
	customerID := suite.seedCustomer("ada@example.com")
	suite.seedSale(customerID, "PENDING", time.Now())

	result, err := suite.listHandler.Handle(context.Background(), queries.NewGetAllSalesQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("PENDING", result[0].Status)
	suite.NotNil(result[0].ExpiresAt)
}

func (suite *SalesQueryHandlerTestSuite) TestGetSale_ExistingSale_ReturnsSale() {
	customerID := suite.seedCustomer("ada@example.com")
	saleID := suite.seedSale(customerID, "COMPLETED", time.Now())

	query, err := queries.NewGetSaleQuery(saleID)
	suite.Require().NoError(err)

	result, err := suite.singleHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(saleID.String(), result.ID.String())
	suite.Equal("COMPLETED", result.Status)
	suite.Require().Len(result.Items, 1)
	suite.Equal(2, result.Items[0].Quantity)
}

func (suite *SalesQueryHandlerTestSuite) TestGetSale_NonExistentSale_ReturnsNotFoundError() {
	query, err := queries.NewGetSaleQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.singleHandler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *SalesQueryHandlerTestSuite) seedCustomer(email string) kernel.UUID {
	id := kernel.NewUUID()
	dto := customerrepo.CustomerDTO{
		ID:        id.Bytes(),
		Name:      "Ada Lovelace",
		Email:     email,
		Address:   "12 Main St",
		CreatedAt: time.Now(),
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return id
}

func (suite *SalesQueryHandlerTestSuite) seedSale(customerID kernel.UUID, status string, createdAt time.Time) kernel.UUID {
	id := kernel.NewUUID()

	var expiresAt *time.Time
	if status == sale.StatusPending.String() {
		deadline := createdAt.Add(sale.PendingTTL)
		expiresAt = &deadline
	}

	dto := salerepo.SaleDTO{
		ID:             id.Bytes(),
		CustomerID:     customerID.Bytes(),
		Total:          2 * 49.90,
		DeliveryMethod: "PICKUP",
		Status:         status,
		ExpiresAt:      expiresAt,
		CreatedAt:      createdAt,
		Items: []salerepo.ItemDTO{
			{ID: uuid.New(), SaleID: id.Bytes(), ProductID: "prod-chair", Quantity: 2, UnitPrice: 49.90},
		},
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return id
}

func TestSalesQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SalesQueryHandlerTestSuite))
}
