package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"karrirconnect-backend/internal/domain"
	"karrirconnect-backend/internal/logger"
	"karrirconnect-backend/internal/repository"
	"karrirconnect-backend/internal/utils"
	"karrirconnect-backend/internal/worker"
)

type purchaseService struct {
	companyRepo repository.CompanyRepository
	pkgRepo     repository.PackageRepository
	ledgerRepo  repository.LedgerRepository
	emailSvc    EmailService
	pool        *worker.Pool
}

func NewPurchaseService(
	companyRepo repository.CompanyRepository,
	pkgRepo repository.PackageRepository,
	ledgerRepo repository.LedgerRepository,
	emailSvc EmailService,
	pool *worker.Pool,
) PurchaseService {
	return &purchaseService{
		companyRepo: companyRepo,
		pkgRepo:     pkgRepo,
		ledgerRepo:  ledgerRepo,
		emailSvc:    emailSvc,
		pool:        pool,
	}
}

func (s *purchaseService) ListPackages(ctx context.Context) ([]PackageOffer, error) {
	pkgs, err := s.pkgRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	offers := make([]PackageOffer, 0, len(pkgs))
	for _, p := range pkgs {
		offers = append(offers, PackageOffer{
			PointPackage:   p,
			TotalPoints:    p.TotalPoints(),
			FormattedPrice: utils.FormatRupiah(p.Price),
		})
	}
	return offers, nil
}

// PurchasePackage opens a PENDING purchase transaction carrying the package
// snapshot (points, bonus, price) and a fresh payment reference. The balance
// is untouched until the gateway confirms payment.
func (s *purchaseService) PurchasePackage(ctx context.Context, cmd PurchaseCommand) (*domain.PointTransaction, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.companyRepo.GetByID(ctx, cmd.CompanyID); err != nil {
		return nil, err
	}

	pkg, err := s.pkgRepo.GetByID(ctx, cmd.PackageID)
	if err != nil {
		return nil, err
	}
	if !pkg.IsActive {
		return nil, domain.ErrPackageInactive
	}

	ref := uuid.NewString()
	purchase := &domain.PointTransaction{
		CompanyID:   cmd.CompanyID,
		Kind:        domain.TransactionKindPurchase,
		Points:      pkg.TotalPoints(),
		Amount:      pkg.Price,
		Status:      domain.TransactionStatusPending,
		PackageID:   &pkg.ID,
		PaymentRef:  &ref,
		Description: fmt.Sprintf("Purchase of %s", pkg.Name),
		CreatedBy:   cmd.ActorID,
		CreatedOn:   time.Now(),
	}
	if err := s.ledgerRepo.CreatePendingPurchase(ctx, purchase); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "point purchase opened",
		"company_id", cmd.CompanyID, "package_id", pkg.ID, "transaction_id", purchase.ID, "payment_ref", ref)
	return purchase, nil
}

// ConfirmPurchase settles a pending purchase from the payment gateway
// callback. The payment reference must match the one issued at checkout.
// Replays of an already-settled transaction are acknowledged as no-ops so
// gateway retries stay harmless.
func (s *purchaseService) ConfirmPurchase(ctx context.Context, transactionID int32, paymentRef string, success bool) error {
	purchase, err := s.ledgerRepo.GetTransaction(ctx, transactionID)
	if err != nil {
		return err
	}
	if purchase.Kind != domain.TransactionKindPurchase {
		return fmt.Errorf("transaction %d is not a purchase: %w", transactionID, domain.ErrInvalidTransition)
	}
	if purchase.PaymentRef == nil || *purchase.PaymentRef != paymentRef {
		return domain.ErrPaymentRefMismatch
	}

	if !success {
		failed, err := s.ledgerRepo.FailPurchase(ctx, transactionID)
		if err != nil {
			return err
		}
		if !failed {
			logger.InfoContext(ctx, "purchase failure replayed, ignoring", "transaction_id", transactionID)
		}
		return nil
	}

	credited, err := s.ledgerRepo.CompletePurchase(ctx, transactionID)
	if err != nil {
		return err
	}
	if !credited {
		logger.InfoContext(ctx, "purchase confirmation replayed, ignoring", "transaction_id", transactionID)
		return nil
	}

	logger.InfoContext(ctx, "point purchase completed",
		"company_id", purchase.CompanyID, "transaction_id", transactionID, "points", purchase.Points)

	s.dispatchReceipt(purchase)
	return nil
}

func (s *purchaseService) dispatchReceipt(purchase *domain.PointTransaction) {
	companyID := purchase.CompanyID
	points, amount := purchase.Points, purchase.Amount
	description := purchase.Description
	txID := purchase.ID

	submitted := s.pool.Submit(worker.Task{
		Name: "purchase-receipt",
		Run: func(ctx context.Context) error {
			company, err := s.companyRepo.GetByID(ctx, companyID)
			if err != nil {
				return err
			}
			return s.emailSvc.SendPurchaseReceipt(ctx, company.Email, company.Name, description, points, amount)
		},
	})
	if !submitted {
		logger.Warn("purchase receipt not dispatched", "transaction_id", txID)
	}
}
