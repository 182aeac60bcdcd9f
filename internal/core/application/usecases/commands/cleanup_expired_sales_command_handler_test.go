package commands_test

import (
	"errors"
	"testing"
	"time"

	"sales/internal/core/application/usecases/commands"
	"sales/internal/core/domain/model/sale"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCleanupExpiredSalesCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewCleanupExpiredSalesCommand()

	first := pendingSale(t, time.Now().Add(-time.Hour))
	second := pendingSale(t, time.Now().Add(-time.Minute))
	expired := []*sale.Sale{first, second}

	saleRepo := new(MockCreateSaleRepository)
	uow := new(MockSaleUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SaleRepository").Return(saleRepo).Once(),
		saleRepo.On("GetAllExpired", ctx, mock.AnythingOfType("time.Time")).Return(expired, nil).Once(),
		saleRepo.On("Delete", ctx, first.ID()).Return(nil).Once(),
		saleRepo.On("Delete", ctx, second.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSaleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCleanupExpiredSalesCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	require.Len(t, result.DeletedIDs, 2)
	assert.Equal(t, first.ID(), result.DeletedIDs[0])
	assert.Equal(t, second.ID(), result.DeletedIDs[1])
	saleRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCleanupExpiredSalesCommandHandler_Handle_NothingExpired(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewCleanupExpiredSalesCommand()

	saleRepo := new(MockCreateSaleRepository)
	uow := new(MockSaleUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SaleRepository").Return(saleRepo).Once(),
		saleRepo.On("GetAllExpired", ctx, mock.AnythingOfType("time.Time")).Return([]*sale.Sale{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSaleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCleanupExpiredSalesCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.DeletedIDs)
	saleRepo.AssertNotCalled(t, "Delete")
}

func TestCleanupExpiredSalesCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CleanupExpiredSalesCommand{} // not constructed properly

	factory := new(MockSaleUoWFactory)
	handler := commands.NewCleanupExpiredSalesCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCleanupExpiredSalesCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCleanupExpiredSalesCommandHandler_Handle_QueryError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewCleanupExpiredSalesCommand()

	saleRepo := new(MockCreateSaleRepository)
	uow := new(MockSaleUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SaleRepository").Return(saleRepo).Once(),
		saleRepo.On("GetAllExpired", ctx, mock.AnythingOfType("time.Time")).
			Return(nil, errors.New("database error")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSaleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCleanupExpiredSalesCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
}

func TestCleanupExpiredSalesCommandHandler_Handle_DeleteError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewCleanupExpiredSalesCommand()

	expiredSale := pendingSale(t, time.Now().Add(-time.Hour))

	saleRepo := new(MockCreateSaleRepository)
	uow := new(MockSaleUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SaleRepository").Return(saleRepo).Once(),
		saleRepo.On("GetAllExpired", ctx, mock.AnythingOfType("time.Time")).
			Return([]*sale.Sale{expiredSale}, nil).
			Once(),
		saleRepo.On("Delete", ctx, expiredSale.ID()).Return(errors.New("delete error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSaleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCleanupExpiredSalesCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "delete error")
	uow.AssertNotCalled(t, "Commit")
}
