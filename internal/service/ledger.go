package service

import (
	"context"
	"time"

	"karrirconnect-backend/internal/domain"
	"karrirconnect-backend/internal/repository"
)

type ledgerService struct {
	companyRepo repository.CompanyRepository
	jobRepo     repository.JobRepository
	ledgerRepo  repository.LedgerRepository
}

func NewLedgerService(companyRepo repository.CompanyRepository, jobRepo repository.JobRepository, ledgerRepo repository.LedgerRepository) LedgerService {
	return &ledgerService{
		companyRepo: companyRepo,
		jobRepo:     jobRepo,
		ledgerRepo:  ledgerRepo,
	}
}

func (s *ledgerService) GetBalance(ctx context.Context, companyID int32) (int32, error) {
	return s.companyRepo.GetBalance(ctx, companyID)
}

// HasAvailablePoints is an advisory read for UI gating. The authoritative
// check happens inside the conditional debit; a true here can still lose
// the race to a concurrent consumer.
func (s *ledgerService) HasAvailablePoints(ctx context.Context, companyID int32) (bool, error) {
	balance, err := s.companyRepo.GetBalance(ctx, companyID)
	if err != nil {
		return false, err
	}
	return balance > 0, nil
}

func (s *ledgerService) CanPublishListing(ctx context.Context, companyID int32) (bool, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return false, err
	}
	if company.PointBalance <= 0 {
		return false, nil
	}
	active, err := s.jobRepo.CountActiveByCompany(ctx, companyID)
	if err != nil {
		return false, err
	}
	return active < company.MaxActiveJobs, nil
}

func (s *ledgerService) Credit(ctx context.Context, cmd CreditCommand) (*domain.PointTransaction, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.companyRepo.GetByID(ctx, cmd.CompanyID); err != nil {
		return nil, err
	}

	credit := &domain.PointTransaction{
		CompanyID:           cmd.CompanyID,
		Kind:                cmd.Kind,
		Points:              cmd.Points,
		Status:              domain.TransactionStatusCompleted,
		RelatedJobID:        cmd.RelatedJobID,
		RelatedInvitationID: cmd.RelatedInvitationID,
		Description:         cmd.Description,
		CreatedBy:           cmd.ActorID,
		CreatedOn:           time.Now(),
	}
	if err := s.ledgerRepo.CreditPoints(ctx, credit); err != nil {
		return nil, err
	}
	return credit, nil
}

func (s *ledgerService) GetTransaction(ctx context.Context, companyID, transactionID int32) (*domain.PointTransaction, error) {
	tx, err := s.ledgerRepo.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx.CompanyID != companyID {
		return nil, domain.ErrTransactionNotFound
	}
	return tx, nil
}

func (s *ledgerService) GetTransactions(ctx context.Context, companyID int32, filter repository.TransactionFilter) ([]domain.PointTransaction, int32, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 200 {
		filter.PageSize = 50
	}
	return s.ledgerRepo.ListTransactions(ctx, companyID, filter)
}
