package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"karrirconnect-backend/internal/domain"
	"karrirconnect-backend/internal/repository"
	"karrirconnect-backend/internal/service"
)

func TestLedgerService_HasAvailablePoints(t *testing.T) {
	ctx := context.Background()
	companyRepo := new(MockCompanyRepo)
	svc := service.NewLedgerService(companyRepo, new(MockJobRepo), new(MockLedgerRepo))

	companyRepo.On("GetBalance", ctx, int32(1)).Return(int32(3), nil).Once()
	ok, err := svc.HasAvailablePoints(ctx, 1)
	assert.NoError(t, err)
	assert.True(t, ok)

	companyRepo.On("GetBalance", ctx, int32(1)).Return(int32(0), nil).Once()
	ok, err = svc.HasAvailablePoints(ctx, 1)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestLedgerService_CanPublishListing(t *testing.T) {
	ctx := context.Background()

	t.Run("Allowed", func(t *testing.T) {
		companyRepo := new(MockCompanyRepo)
		jobRepo := new(MockJobRepo)
		svc := service.NewLedgerService(companyRepo, jobRepo, new(MockLedgerRepo))

		companyRepo.On("GetByID", ctx, int32(1)).Return(
			&domain.Company{ID: 1, PointBalance: 2, MaxActiveJobs: 5}, nil)
		jobRepo.On("CountActiveByCompany", ctx, int32(1)).Return(int32(4), nil)

		ok, err := svc.CanPublishListing(ctx, 1)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("No Points", func(t *testing.T) {
		companyRepo := new(MockCompanyRepo)
		jobRepo := new(MockJobRepo)
		svc := service.NewLedgerService(companyRepo, jobRepo, new(MockLedgerRepo))

		companyRepo.On("GetByID", ctx, int32(1)).Return(
			&domain.Company{ID: 1, PointBalance: 0, MaxActiveJobs: 5}, nil)

		ok, err := svc.CanPublishListing(ctx, 1)
		assert.NoError(t, err)
		assert.False(t, ok)
		jobRepo.AssertNotCalled(t, "CountActiveByCompany", mock.Anything, mock.Anything)
	})

	t.Run("At Listing Limit", func(t *testing.T) {
		companyRepo := new(MockCompanyRepo)
		jobRepo := new(MockJobRepo)
		svc := service.NewLedgerService(companyRepo, jobRepo, new(MockLedgerRepo))

		companyRepo.On("GetByID", ctx, int32(1)).Return(
			&domain.Company{ID: 1, PointBalance: 10, MaxActiveJobs: 5}, nil)
		jobRepo.On("CountActiveByCompany", ctx, int32(1)).Return(int32(5), nil)

		ok, err := svc.CanPublishListing(ctx, 1)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestLedgerService_Credit(t *testing.T) {
	ctx := context.Background()

	t.Run("Refund", func(t *testing.T) {
		companyRepo := new(MockCompanyRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := service.NewLedgerService(companyRepo, new(MockJobRepo), ledgerRepo)

		companyRepo.On("GetByID", ctx, int32(1)).Return(&domain.Company{ID: 1}, nil)
		ledgerRepo.On("CreditPoints", ctx, mock.AnythingOfType("*domain.PointTransaction")).
			Run(func(args mock.Arguments) {
				credit := args.Get(1).(*domain.PointTransaction)
				credit.ID = 400
				assert.Equal(t, domain.TransactionKindRefund, credit.Kind)
				assert.Equal(t, int32(1), credit.Points)
				assert.Equal(t, domain.TransactionStatusCompleted, credit.Status)
			}).
			Return(nil)

		tx, err := svc.Credit(ctx, service.CreditCommand{
			CompanyID:   1,
			ActorID:     7,
			Points:      1,
			Kind:        domain.TransactionKindRefund,
			Description: "refund for listing taken down by support",
		})
		assert.NoError(t, err)
		assert.Equal(t, int32(400), tx.ID)
	})

	t.Run("Rejects Non-Positive Points", func(t *testing.T) {
		svc := service.NewLedgerService(new(MockCompanyRepo), new(MockJobRepo), new(MockLedgerRepo))

		_, err := svc.Credit(ctx, service.CreditCommand{
			CompanyID: 1, ActorID: 7, Points: 0, Kind: domain.TransactionKindRefund,
		})
		assert.Error(t, err)
	})

	t.Run("Rejects Usage Kind", func(t *testing.T) {
		svc := service.NewLedgerService(new(MockCompanyRepo), new(MockJobRepo), new(MockLedgerRepo))

		_, err := svc.Credit(ctx, service.CreditCommand{
			CompanyID: 1, ActorID: 7, Points: 1, Kind: domain.TransactionKindUsage,
		})
		assert.Error(t, err)
	})
}

func TestLedgerService_GetTransaction_ScopedToCompany(t *testing.T) {
	ctx := context.Background()
	ledgerRepo := new(MockLedgerRepo)
	svc := service.NewLedgerService(new(MockCompanyRepo), new(MockJobRepo), ledgerRepo)

	ledgerRepo.On("GetTransaction", ctx, int32(300)).Return(
		&domain.PointTransaction{ID: 300, CompanyID: 2}, nil)

	tx, err := svc.GetTransaction(ctx, 1, 300)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	assert.Nil(t, tx)
}

func TestLedgerService_GetTransactions_NormalizesPaging(t *testing.T) {
	ctx := context.Background()
	ledgerRepo := new(MockLedgerRepo)
	svc := service.NewLedgerService(new(MockCompanyRepo), new(MockJobRepo), ledgerRepo)

	ledgerRepo.On("ListTransactions", ctx, int32(1), repository.TransactionFilter{Page: 1, PageSize: 50}).
		Return([]domain.PointTransaction{}, int32(0), nil)

	_, _, err := svc.GetTransactions(ctx, 1, repository.TransactionFilter{Page: 0, PageSize: 0})
	assert.NoError(t, err)
	ledgerRepo.AssertExpectations(t)
}
