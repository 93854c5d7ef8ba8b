package repository

import (
	"context"
	"time"

	"karrirconnect-backend/internal/domain"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id int32) (*domain.Company, error)
	GetBalance(ctx context.Context, companyID int32) (int32, error)
}

type PackageRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.PointPackage, error)
	ListActive(ctx context.Context) ([]domain.PointPackage, error)
}

// TransactionFilter narrows ledger listings. Zero values mean "no filter".
type TransactionFilter struct {
	Kind     domain.TransactionKind
	Status   domain.TransactionStatus
	Page     int32
	PageSize int32
}

// LedgerRepository is append-and-query only. Transactions are never deleted
// or edited after reaching a terminal status; corrections are appended as
// offsetting REFUND or USAGE rows.
//
// The *WithDebit methods are the atomic units pairing one domain row with
// one completed usage debit: each runs inside a single database transaction
// scoped to the company's balance row and either applies completely or not
// at all. A conditional decrement (point_balance >= n) guarded by
// rows-affected makes concurrent debits race-free per company.
type LedgerRepository interface {
	CreateListingWithDebit(ctx context.Context, listing *domain.JobListing, debit *domain.PointTransaction) error
	CreateInvitationWithDebit(ctx context.Context, inv *domain.JobInvitation, debit *domain.PointTransaction) error
	CreditPoints(ctx context.Context, credit *domain.PointTransaction) error

	CreatePendingPurchase(ctx context.Context, purchase *domain.PointTransaction) error
	// CompletePurchase flips a PENDING purchase to COMPLETED and credits the
	// balance in the same transaction. Returns false when the purchase is
	// already terminal, making confirmation replays a no-op.
	CompletePurchase(ctx context.Context, transactionID int32) (bool, error)
	FailPurchase(ctx context.Context, transactionID int32) (bool, error)

	GetTransaction(ctx context.Context, id int32) (*domain.PointTransaction, error)
	ListTransactions(ctx context.Context, companyID int32, filter TransactionFilter) ([]domain.PointTransaction, int32, error)
	SumCompletedPoints(ctx context.Context, companyID int32) (int32, error)
	ListStalePendingPurchases(ctx context.Context, before time.Time) ([]domain.PointTransaction, error)
}

type JobRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.JobListing, error)
	CountActiveByCompany(ctx context.Context, companyID int32) (int32, error)
	ListByCompany(ctx context.Context, companyID int32, page, pageSize int32) ([]domain.JobListing, int32, error)
	// UpdateStatus applies the transition only when the listing is currently
	// in the expected status; returns false when the row was not updated.
	UpdateStatus(ctx context.Context, id int32, from, to domain.ListingStatus) (bool, error)
}

type InvitationRepository interface {
	ExistsPending(ctx context.Context, companyID, candidateID int32, jobID *int32) (bool, error)
	GetByID(ctx context.Context, id int32) (*domain.JobInvitation, error)
	ListByCompany(ctx context.Context, companyID int32, page, pageSize int32) ([]domain.JobInvitation, int32, error)
	UpdateStatus(ctx context.Context, id int32, from, to domain.InvitationStatus) (bool, error)
	ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
