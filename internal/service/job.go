package service

import (
	"context"
	"fmt"
	"time"

	"karrirconnect-backend/internal/domain"
	"karrirconnect-backend/internal/logger"
	"karrirconnect-backend/internal/repository"
)

const listingDebitPoints = 1

type jobService struct {
	companyRepo repository.CompanyRepository
	jobRepo     repository.JobRepository
	ledgerRepo  repository.LedgerRepository
}

func NewJobService(companyRepo repository.CompanyRepository, jobRepo repository.JobRepository, ledgerRepo repository.LedgerRepository) JobService {
	return &jobService{
		companyRepo: companyRepo,
		jobRepo:     jobRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// PublishListing creates a PUBLISHED listing and its one-point usage debit
// in a single database transaction. When the balance is too low the whole
// unit rolls back and domain.ErrInsufficientPoints is returned.
func (s *jobService) PublishListing(ctx context.Context, cmd PublishListingCommand) (*domain.JobListing, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.GetByID(ctx, cmd.CompanyID)
	if err != nil {
		return nil, err
	}

	active, err := s.jobRepo.CountActiveByCompany(ctx, cmd.CompanyID)
	if err != nil {
		return nil, err
	}
	if active >= company.MaxActiveJobs {
		return nil, domain.ErrListingLimitReached
	}

	listing := &domain.JobListing{
		CompanyID:   cmd.CompanyID,
		Title:       cmd.Title,
		Description: cmd.Description,
		Location:    cmd.Location,
		Status:      domain.ListingStatusPublished,
		CreatedBy:   cmd.ActorID,
		CreatedOn:   time.Now(),
	}
	debit := &domain.PointTransaction{
		CompanyID:   cmd.CompanyID,
		Kind:        domain.TransactionKindUsage,
		Points:      -listingDebitPoints,
		Status:      domain.TransactionStatusCompleted,
		Description: domain.UsageReasonJobPosting,
		CreatedBy:   cmd.ActorID,
		CreatedOn:   listing.CreatedOn,
	}

	if err := s.ledgerRepo.CreateListingWithDebit(ctx, listing, debit); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "job listing published",
		"company_id", cmd.CompanyID, "listing_id", listing.ID, "transaction_id", debit.ID)
	return listing, nil
}

func (s *jobService) CloseListing(ctx context.Context, companyID, listingID int32) error {
	listing, err := s.jobRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.CompanyID != companyID {
		return domain.ErrListingNotFound
	}

	ok, err := s.jobRepo.UpdateStatus(ctx, listingID, domain.ListingStatusPublished, domain.ListingStatusClosed)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("listing %d is not published: %w", listingID, domain.ErrInvalidTransition)
	}
	return nil
}

func (s *jobService) GetListing(ctx context.Context, listingID int32) (*domain.JobListing, error) {
	return s.jobRepo.GetByID(ctx, listingID)
}

func (s *jobService) ListListings(ctx context.Context, companyID, page, pageSize int32) ([]domain.JobListing, int32, error) {
	return s.jobRepo.ListByCompany(ctx, companyID, page, pageSize)
}
