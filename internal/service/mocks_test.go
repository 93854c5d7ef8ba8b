package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"karrirconnect-backend/internal/domain"
	"karrirconnect-backend/internal/repository"
)

// MockCompanyRepo
type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) Create(ctx context.Context, company *domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}
func (m *MockCompanyRepo) GetByID(ctx context.Context, id int32) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}
func (m *MockCompanyRepo) GetBalance(ctx context.Context, companyID int32) (int32, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int32), args.Error(1)
}

// MockPackageRepo
type MockPackageRepo struct {
	mock.Mock
}

func (m *MockPackageRepo) GetByID(ctx context.Context, id int32) (*domain.PointPackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointPackage), args.Error(1)
}
func (m *MockPackageRepo) ListActive(ctx context.Context) ([]domain.PointPackage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PointPackage), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) CreateListingWithDebit(ctx context.Context, listing *domain.JobListing, debit *domain.PointTransaction) error {
	args := m.Called(ctx, listing, debit)
	return args.Error(0)
}
func (m *MockLedgerRepo) CreateInvitationWithDebit(ctx context.Context, inv *domain.JobInvitation, debit *domain.PointTransaction) error {
	args := m.Called(ctx, inv, debit)
	return args.Error(0)
}
func (m *MockLedgerRepo) CreditPoints(ctx context.Context, credit *domain.PointTransaction) error {
	args := m.Called(ctx, credit)
	return args.Error(0)
}
func (m *MockLedgerRepo) CreatePendingPurchase(ctx context.Context, purchase *domain.PointTransaction) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}
func (m *MockLedgerRepo) CompletePurchase(ctx context.Context, transactionID int32) (bool, error) {
	args := m.Called(ctx, transactionID)
	return args.Bool(0), args.Error(1)
}
func (m *MockLedgerRepo) FailPurchase(ctx context.Context, transactionID int32) (bool, error) {
	args := m.Called(ctx, transactionID)
	return args.Bool(0), args.Error(1)
}
func (m *MockLedgerRepo) GetTransaction(ctx context.Context, id int32) (*domain.PointTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointTransaction), args.Error(1)
}
func (m *MockLedgerRepo) ListTransactions(ctx context.Context, companyID int32, filter repository.TransactionFilter) ([]domain.PointTransaction, int32, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.PointTransaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockLedgerRepo) SumCompletedPoints(ctx context.Context, companyID int32) (int32, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockLedgerRepo) ListStalePendingPurchases(ctx context.Context, before time.Time) ([]domain.PointTransaction, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PointTransaction), args.Error(1)
}

// MockJobRepo
type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int32) (*domain.JobListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobListing), args.Error(1)
}
func (m *MockJobRepo) CountActiveByCompany(ctx context.Context, companyID int32) (int32, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockJobRepo) ListByCompany(ctx context.Context, companyID int32, page, pageSize int32) ([]domain.JobListing, int32, error) {
	args := m.Called(ctx, companyID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.JobListing), args.Get(1).(int32), args.Error(2)
}
func (m *MockJobRepo) UpdateStatus(ctx context.Context, id int32, from, to domain.ListingStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

// MockInvitationRepo
type MockInvitationRepo struct {
	mock.Mock
}

func (m *MockInvitationRepo) ExistsPending(ctx context.Context, companyID, candidateID int32, jobID *int32) (bool, error) {
	args := m.Called(ctx, companyID, candidateID, jobID)
	return args.Bool(0), args.Error(1)
}
func (m *MockInvitationRepo) GetByID(ctx context.Context, id int32) (*domain.JobInvitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobInvitation), args.Error(1)
}
func (m *MockInvitationRepo) ListByCompany(ctx context.Context, companyID int32, page, pageSize int32) ([]domain.JobInvitation, int32, error) {
	args := m.Called(ctx, companyID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.JobInvitation), args.Get(1).(int32), args.Error(2)
}
func (m *MockInvitationRepo) UpdateStatus(ctx context.Context, id int32, from, to domain.InvitationStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockInvitationRepo) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendInvitationNotification(ctx context.Context, toEmail, toName, companyName, message string) error {
	args := m.Called(ctx, toEmail, toName, companyName, message)
	return args.Error(0)
}
func (m *MockEmailService) SendPurchaseReceipt(ctx context.Context, toEmail, companyName, packageName string, points int32, amount int64) error {
	args := m.Called(ctx, toEmail, companyName, packageName, points, amount)
	return args.Error(0)
}

// MockMessageService
type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) SendMessage(ctx context.Context, phoneNumber, message string) error {
	args := m.Called(ctx, phoneNumber, message)
	return args.Error(0)
}
