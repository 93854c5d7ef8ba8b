package service

import (
	"context"
	"errors"
	"strings"

	"karrirconnect-backend/internal/domain"
	"karrirconnect-backend/internal/repository"
)

// PublishListingCommand carries everything needed to create and publish a
// job listing in one step.
type PublishListingCommand struct {
	CompanyID   int32
	ActorID     int32
	Title       string
	Description string
	Location    string
}

func (c PublishListingCommand) Validate() error {
	if c.CompanyID <= 0 {
		return errors.New("company id is required")
	}
	if c.ActorID <= 0 {
		return errors.New("actor id is required")
	}
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("title is required")
	}
	return nil
}

type SendInvitationCommand struct {
	CompanyID   int32
	CandidateID int32
	JobID       *int32
	ActorID     int32
	Message     string
}

func (c SendInvitationCommand) Validate() error {
	if c.CompanyID <= 0 {
		return errors.New("company id is required")
	}
	if c.CandidateID <= 0 {
		return errors.New("candidate id is required")
	}
	if c.ActorID <= 0 {
		return errors.New("actor id is required")
	}
	if c.JobID != nil && *c.JobID <= 0 {
		return errors.New("job id must be positive when set")
	}
	return nil
}

type PurchaseCommand struct {
	CompanyID int32
	PackageID int32
	ActorID   int32
}

func (c PurchaseCommand) Validate() error {
	if c.CompanyID <= 0 {
		return errors.New("company id is required")
	}
	if c.PackageID <= 0 {
		return errors.New("package id is required")
	}
	if c.ActorID <= 0 {
		return errors.New("actor id is required")
	}
	return nil
}

// CreditCommand appends a positive adjustment to a company's ledger,
// used for refunds and manual corrections.
type CreditCommand struct {
	CompanyID           int32
	ActorID             int32
	Points              int32
	Kind                domain.TransactionKind
	Description         string
	RelatedJobID        *int32
	RelatedInvitationID *int32
}

func (c CreditCommand) Validate() error {
	if c.CompanyID <= 0 {
		return errors.New("company id is required")
	}
	if c.ActorID <= 0 {
		return errors.New("actor id is required")
	}
	if c.Points <= 0 {
		return errors.New("points must be positive")
	}
	if c.Kind != domain.TransactionKindRefund && c.Kind != domain.TransactionKindPurchase {
		return errors.New("credit kind must be REFUND or PURCHASE")
	}
	return nil
}

// PackageOffer is a point package decorated for display.
type PackageOffer struct {
	domain.PointPackage
	TotalPoints    int32  `json:"total_points"`
	FormattedPrice string `json:"formatted_price"`
}

// LedgerService answers balance and history questions and appends credits.
// Debits never go through it directly; they are written by JobService and
// InvitationService as part of their atomic units.
type LedgerService interface {
	GetBalance(ctx context.Context, companyID int32) (int32, error)
	HasAvailablePoints(ctx context.Context, companyID int32) (bool, error)
	CanPublishListing(ctx context.Context, companyID int32) (bool, error)
	Credit(ctx context.Context, cmd CreditCommand) (*domain.PointTransaction, error)
	GetTransaction(ctx context.Context, companyID, transactionID int32) (*domain.PointTransaction, error)
	GetTransactions(ctx context.Context, companyID int32, filter repository.TransactionFilter) ([]domain.PointTransaction, int32, error)
}

// JobService owns the listing lifecycle. Publishing debits one point and
// creates the listing in the same database transaction.
type JobService interface {
	PublishListing(ctx context.Context, cmd PublishListingCommand) (*domain.JobListing, error)
	CloseListing(ctx context.Context, companyID, listingID int32) error
	GetListing(ctx context.Context, listingID int32) (*domain.JobListing, error)
	ListListings(ctx context.Context, companyID, page, pageSize int32) ([]domain.JobListing, int32, error)
}

// InvitationService owns the invitation lifecycle. Sending debits one point
// and creates the invitation in the same database transaction; candidate
// notifications are dispatched after commit.
type InvitationService interface {
	SendInvitation(ctx context.Context, cmd SendInvitationCommand) (*domain.JobInvitation, error)
	RespondInvitation(ctx context.Context, invitationID, candidateID int32, accept bool) (*domain.JobInvitation, error)
	ListInvitations(ctx context.Context, companyID, page, pageSize int32) ([]domain.JobInvitation, int32, error)
}

// PurchaseService runs the two-phase purchase flow: a pending transaction is
// opened at checkout and settled later by the payment gateway callback.
type PurchaseService interface {
	ListPackages(ctx context.Context) ([]PackageOffer, error)
	PurchasePackage(ctx context.Context, cmd PurchaseCommand) (*domain.PointTransaction, error)
	ConfirmPurchase(ctx context.Context, transactionID int32, paymentRef string, success bool) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendInvitationNotification(ctx context.Context, toEmail, toName, companyName, message string) error
	SendPurchaseReceipt(ctx context.Context, toEmail, companyName, packageName string, points int32, amount int64) error
}

// MessageService delivers short notifications over WhatsApp.
type MessageService interface {
	SendMessage(ctx context.Context, phoneNumber, message string) error
}
