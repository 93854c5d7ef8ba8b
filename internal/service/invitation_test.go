package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"karrirconnect-backend/internal/domain"
	"karrirconnect-backend/internal/repository"
	"karrirconnect-backend/internal/service"
	"karrirconnect-backend/internal/worker"
)

func newTestPool(t *testing.T) *worker.Pool {
	t.Helper()
	pool := worker.NewPool(16, 5*time.Second)
	pool.Start(1)
	return pool
}

func TestInvitationService_SendInvitation(t *testing.T) {
	ctx := context.Background()
	company := &domain.Company{ID: 1, Name: "Acme", Email: "hr@acme.test", PointBalance: 3}
	candidate := &domain.User{ID: 20, Name: "Siti", Email: "siti@test.com", PhoneNumber: "+628123456789"}

	t.Run("Success", func(t *testing.T) {
		companyRepo := new(MockCompanyRepo)
		userRepo := new(MockUserRepo)
		invRepo := new(MockInvitationRepo)
		ledgerRepo := new(MockLedgerRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		messageSvc := new(MockMessageService)
		pool := newTestPool(t)

		svc := service.NewInvitationService(companyRepo, userRepo, invRepo, ledgerRepo, noteRepo, emailSvc, messageSvc, pool)

		companyRepo.On("GetByID", ctx, int32(1)).Return(company, nil)
		userRepo.On("GetByID", ctx, int32(20)).Return(candidate, nil)
		invRepo.On("ExistsPending", ctx, int32(1), int32(20), (*int32)(nil)).Return(false, nil)
		ledgerRepo.On("CreateInvitationWithDebit", ctx,
			mock.AnythingOfType("*domain.JobInvitation"),
			mock.AnythingOfType("*domain.PointTransaction")).
			Run(func(args mock.Arguments) {
				inv := args.Get(1).(*domain.JobInvitation)
				debit := args.Get(2).(*domain.PointTransaction)
				inv.ID = 55
				debit.ID = 200

				assert.Equal(t, domain.InvitationStatusPending, inv.Status)
				assert.Equal(t, int32(-1), debit.Points)
				assert.Equal(t, domain.UsageReasonJobInvitation, debit.Description)
			}).
			Return(nil)
		noteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)
		emailSvc.On("SendInvitationNotification", mock.Anything, "siti@test.com", "Siti", "Acme", "Join us!").Return(nil)
		messageSvc.On("SendMessage", mock.Anything, "+628123456789", mock.AnythingOfType("string")).Return(nil)

		inv, err := svc.SendInvitation(ctx, service.SendInvitationCommand{
			CompanyID: 1, CandidateID: 20, ActorID: 7, Message: "Join us!",
		})
		assert.NoError(t, err)
		assert.Equal(t, int32(55), inv.ID)

		// Drain the pool so the async notification fan-out has run.
		pool.Shutdown()
		noteRepo.AssertExpectations(t)
		emailSvc.AssertExpectations(t)
		messageSvc.AssertExpectations(t)
	})

	t.Run("Duplicate Pending Invitation", func(t *testing.T) {
		companyRepo := new(MockCompanyRepo)
		userRepo := new(MockUserRepo)
		invRepo := new(MockInvitationRepo)
		ledgerRepo := new(MockLedgerRepo)
		pool := newTestPool(t)
		defer pool.Shutdown()

		svc := service.NewInvitationService(companyRepo, userRepo, invRepo, ledgerRepo,
			new(MockNotificationRepo), new(MockEmailService), new(MockMessageService), pool)

		companyRepo.On("GetByID", ctx, int32(1)).Return(company, nil)
		userRepo.On("GetByID", ctx, int32(20)).Return(candidate, nil)
		invRepo.On("ExistsPending", ctx, int32(1), int32(20), (*int32)(nil)).Return(true, nil)

		inv, err := svc.SendInvitation(ctx, service.SendInvitationCommand{
			CompanyID: 1, CandidateID: 20, ActorID: 7,
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateInvitation)
		assert.Nil(t, inv)
		ledgerRepo.AssertNotCalled(t, "CreateInvitationWithDebit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Insufficient Points", func(t *testing.T) {
		companyRepo := new(MockCompanyRepo)
		userRepo := new(MockUserRepo)
		invRepo := new(MockInvitationRepo)
		ledgerRepo := new(MockLedgerRepo)
		emailSvc := new(MockEmailService)
		pool := newTestPool(t)

		svc := service.NewInvitationService(companyRepo, userRepo, invRepo, ledgerRepo,
			new(MockNotificationRepo), emailSvc, new(MockMessageService), pool)

		companyRepo.On("GetByID", ctx, int32(1)).Return(company, nil)
		userRepo.On("GetByID", ctx, int32(20)).Return(candidate, nil)
		invRepo.On("ExistsPending", ctx, int32(1), int32(20), (*int32)(nil)).Return(false, nil)
		ledgerRepo.On("CreateInvitationWithDebit", ctx, mock.Anything, mock.Anything).
			Return(domain.ErrInsufficientPoints)

		inv, err := svc.SendInvitation(ctx, service.SendInvitationCommand{
			CompanyID: 1, CandidateID: 20, ActorID: 7,
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientPoints)
		assert.Nil(t, inv)

		pool.Shutdown()
		emailSvc.AssertNotCalled(t, "SendInvitationNotification",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestInvitationService_RespondInvitation(t *testing.T) {
	ctx := context.Background()

	newSvc := func(invRepo *MockInvitationRepo) service.InvitationService {
		pool := newTestPool(t)
		t.Cleanup(pool.Shutdown)
		return service.NewInvitationService(new(MockCompanyRepo), new(MockUserRepo), invRepo,
			new(MockLedgerRepo), new(MockNotificationRepo), new(MockEmailService), new(MockMessageService), pool)
	}

	t.Run("Accept", func(t *testing.T) {
		invRepo := new(MockInvitationRepo)
		svc := newSvc(invRepo)

		invRepo.On("GetByID", ctx, int32(55)).Return(
			&domain.JobInvitation{ID: 55, CompanyID: 1, CandidateID: 20, Status: domain.InvitationStatusPending}, nil)
		invRepo.On("UpdateStatus", ctx, int32(55), domain.InvitationStatusPending, domain.InvitationStatusAccepted).
			Return(true, nil)

		inv, err := svc.RespondInvitation(ctx, 55, 20, true)
		assert.NoError(t, err)
		assert.Equal(t, domain.InvitationStatusAccepted, inv.Status)
	})

	t.Run("Decline Keeps Point Consumed", func(t *testing.T) {
		invRepo := new(MockInvitationRepo)
		ledgerRepo := new(MockLedgerRepo)
		pool := newTestPool(t)
		t.Cleanup(pool.Shutdown)
		svc := service.NewInvitationService(new(MockCompanyRepo), new(MockUserRepo), invRepo,
			ledgerRepo, new(MockNotificationRepo), new(MockEmailService), new(MockMessageService), pool)

		invRepo.On("GetByID", ctx, int32(55)).Return(
			&domain.JobInvitation{ID: 55, CompanyID: 1, CandidateID: 20, Status: domain.InvitationStatusPending}, nil)
		invRepo.On("UpdateStatus", ctx, int32(55), domain.InvitationStatusPending, domain.InvitationStatusDeclined).
			Return(true, nil)

		inv, err := svc.RespondInvitation(ctx, 55, 20, false)
		assert.NoError(t, err)
		assert.Equal(t, domain.InvitationStatusDeclined, inv.Status)
		// No refund is issued on decline.
		ledgerRepo.AssertNotCalled(t, "CreditPoints", mock.Anything, mock.Anything)
	})

	t.Run("Wrong Candidate", func(t *testing.T) {
		invRepo := new(MockInvitationRepo)
		svc := newSvc(invRepo)

		invRepo.On("GetByID", ctx, int32(55)).Return(
			&domain.JobInvitation{ID: 55, CompanyID: 1, CandidateID: 20, Status: domain.InvitationStatusPending}, nil)

		inv, err := svc.RespondInvitation(ctx, 55, 99, true)
		assert.ErrorIs(t, err, domain.ErrInvitationNotFound)
		assert.Nil(t, inv)
	})

	t.Run("Already Responded", func(t *testing.T) {
		invRepo := new(MockInvitationRepo)
		svc := newSvc(invRepo)

		invRepo.On("GetByID", ctx, int32(55)).Return(
			&domain.JobInvitation{ID: 55, CompanyID: 1, CandidateID: 20, Status: domain.InvitationStatusAccepted}, nil)
		invRepo.On("UpdateStatus", ctx, int32(55), domain.InvitationStatusPending, domain.InvitationStatusDeclined).
			Return(false, nil)

		inv, err := svc.RespondInvitation(ctx, 55, 20, false)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Nil(t, inv)
	})
}

// fakeLedgerRepo applies debits against an in-memory balance under a mutex,
// mimicking the row-level atomicity of the conditional UPDATE.
type fakeLedgerRepo struct {
	MockLedgerRepo
	mu      sync.Mutex
	balance int32
	nextID  int32
}

func (f *fakeLedgerRepo) CreateInvitationWithDebit(ctx context.Context, inv *domain.JobInvitation, debit *domain.PointTransaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.balance < -debit.Points {
		return domain.ErrInsufficientPoints
	}
	f.balance += debit.Points
	f.nextID++
	inv.ID = f.nextID
	debit.ID = f.nextID
	return nil
}

var _ repository.LedgerRepository = (*fakeLedgerRepo)(nil)

func TestInvitationService_ConcurrentSendsNeverOversell(t *testing.T) {
	ctx := context.Background()
	company := &domain.Company{ID: 1, Name: "Acme", PointBalance: 1}
	ledgerRepo := &fakeLedgerRepo{balance: 1}

	companyRepo := new(MockCompanyRepo)
	userRepo := new(MockUserRepo)
	invRepo := new(MockInvitationRepo)
	noteRepo := new(MockNotificationRepo)
	emailSvc := new(MockEmailService)
	messageSvc := new(MockMessageService)
	pool := newTestPool(t)

	companyRepo.On("GetByID", mock.Anything, int32(1)).Return(company, nil)
	userRepo.On("GetByID", mock.Anything, mock.AnythingOfType("int32")).
		Return(&domain.User{ID: 20, Name: "Candidate", Email: "c@test.com"}, nil)
	invRepo.On("ExistsPending", mock.Anything, int32(1), mock.AnythingOfType("int32"), (*int32)(nil)).
		Return(false, nil)
	noteRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	emailSvc.On("SendInvitationNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	messageSvc.On("SendMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := service.NewInvitationService(companyRepo, userRepo, invRepo, ledgerRepo, noteRepo, emailSvc, messageSvc, pool)

	const senders = 3
	results := make(chan error, senders)
	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		candidateID := int32(20 + i)
		go func() {
			defer wg.Done()
			_, err := svc.SendInvitation(ctx, service.SendInvitationCommand{
				CompanyID: 1, CandidateID: candidateID, ActorID: 7,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)
	pool.Shutdown()

	succeeded, insufficient := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case err == domain.ErrInsufficientPoints:
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one sender should win the last point")
	assert.Equal(t, senders-1, insufficient)
	assert.Equal(t, int32(0), ledgerRepo.balance)
}
