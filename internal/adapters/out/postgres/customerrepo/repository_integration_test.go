package customerrepo_test

import (
	"context"
	"testing"
	"time"

	"sales/internal/adapters/out/postgres/customerrepo"
	"sales/internal/core/domain/model/customer"
	"sales/internal/core/domain/model/kernel"
	"sales/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// CustomerRepositoryIntegrationTestSuite provides integration tests for
// CustomerRepository using PostgreSQL containers. The connection is opened
// with TranslateError so unique-email violations map to domain errors.
type CustomerRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *customerrepo.GormCustomerRepository
	tracker    *MockAggregateTracker
}

func (suite *CustomerRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&customerrepo.CustomerDTO{}))
}

func (suite *CustomerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE customers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = customerrepo.NewGormCustomerRepository(suite.db, suite.tracker)
}

func (suite *CustomerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestAdd_ValidCustomer_Success() {
	ctx := context.Background()
	testCustomer := suite.createTestCustomer("ada@example.com")

	suite.tracker.On("TrackAggregate", testCustomer.ID(), testCustomer).Once()

	err := suite.repository.Add(ctx, testCustomer)
	suite.Require().NoError(err)

	suite.assertCustomerCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestAdd_DuplicateEmail_ReturnsAlreadyExistsError() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	first := suite.createTestCustomer("ada@example.com")
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second := suite.createTestCustomer("ada@example.com")
	err := suite.repository.Add(ctx, second)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
	suite.assertCustomerCount(1)
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestGet_ExistingCustomer_ReturnsCustomer() {
	ctx := context.Background()
	testCustomer := suite.createTestCustomer("ada@example.com")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testCustomer))

	loaded, err := suite.repository.Get(ctx, testCustomer.ID())

	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(testCustomer))
	suite.Equal("ada@example.com", loaded.Email().String())
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestGet_NonExistentCustomer_ReturnsNotFoundError() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestGetByEmail_ExistingCustomer_ReturnsCustomer() {
	ctx := context.Background()
	testCustomer := suite.createTestCustomer("ada@example.com")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testCustomer))

	email, err := kernel.NewEmail("ada@example.com")
	suite.Require().NoError(err)

	loaded, err := suite.repository.GetByEmail(ctx, email)

	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(testCustomer))
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestGetByEmail_UnknownEmail_ReturnsNotFoundError() {
	ctx := context.Background()

	email, err := kernel.NewEmail("nobody@example.com")
	suite.Require().NoError(err)

	_, err = suite.repository.GetByEmail(ctx, email)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestUpdate_ChangesContactDetails() {
	ctx := context.Background()
	testCustomer := suite.createTestCustomer("ada@example.com")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testCustomer))

	newEmail, err := kernel.NewEmail("ada.king@example.com")
	suite.Require().NoError(err)
	newAddress, err := kernel.NewAddress("1 Analytical Way")
	suite.Require().NoError(err)
	phone := "+56933334444"
	suite.Require().NoError(testCustomer.UpdateContact("Ada King", newEmail, newAddress, &phone, nil))

	suite.Require().NoError(suite.repository.Update(ctx, testCustomer))

	loaded, err := suite.repository.Get(ctx, testCustomer.ID())
	suite.Require().NoError(err)
	suite.Equal("Ada King", loaded.Name())
	suite.Equal("ada.king@example.com", loaded.Email().String())
	suite.Require().NotNil(loaded.Phone())
	suite.Equal(phone, *loaded.Phone())
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestUpdate_EmailTakenByAnotherCustomer_ReturnsAlreadyExistsError() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	first := suite.createTestCustomer("ada@example.com")
	second := suite.createTestCustomer("grace@example.com")
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	takenEmail, err := kernel.NewEmail("ada@example.com")
	suite.Require().NoError(err)
	suite.Require().NoError(second.UpdateContact(second.Name(), takenEmail, second.Address(), nil, nil))

	err = suite.repository.Update(ctx, second)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestUpdate_NonExistentCustomer_ReturnsError() {
	ctx := context.Background()
	testCustomer := suite.createTestCustomer("ada@example.com")

	err := suite.repository.Update(ctx, testCustomer)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *CustomerRepositoryIntegrationTestSuite) createTestCustomer(emailValue string) *customer.Customer {
	email, err := kernel.NewEmail(emailValue)
	suite.Require().NoError(err)
	address, err := kernel.NewAddress("12 Main St")
	suite.Require().NoError(err)

	c, err := customer.NewCustomer(kernel.NewUUID(), "Ada Lovelace", email, address, nil, nil, time.Now())
	suite.Require().NoError(err)
	return c
}

func (suite *CustomerRepositoryIntegrationTestSuite) assertCustomerCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&customerrepo.CustomerDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestCustomerRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerRepositoryIntegrationTestSuite))
}
