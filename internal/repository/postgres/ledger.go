package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"karrirconnect-backend/internal/domain"
	"karrirconnect-backend/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

const transactionColumns = `id, company_id, kind, points, amount, status, package_id, payment_ref,
	related_job_id, related_invitation_id, COALESCE(description, ''), created_by, created_on`

// debitBalance decrements the company balance only when enough points remain.
// Rows-affected 0 means another debit won the race; the caller's transaction
// rolls back and nothing is applied.
func debitBalance(ctx context.Context, tx *sql.Tx, companyID, points int32) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE companies SET point_balance = point_balance - $1 WHERE id = $2 AND point_balance >= $1`,
		points, companyID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrInsufficientPoints
	}
	return nil
}

func creditBalance(ctx context.Context, tx *sql.Tx, companyID, points int32) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE companies SET point_balance = point_balance + $1 WHERE id = $2`,
		points, companyID)
	return err
}

func insertTransaction(ctx context.Context, tx *sql.Tx, pt *domain.PointTransaction) error {
	query := `INSERT INTO point_transactions (company_id, kind, points, amount, status, package_id,
	          payment_ref, related_job_id, related_invitation_id, description, created_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	pt.CreatedOn = time.Now()
	return tx.QueryRowContext(ctx, query,
		pt.CompanyID, pt.Kind, pt.Points, pt.Amount, pt.Status, pt.PackageID,
		pt.PaymentRef, pt.RelatedJobID, pt.RelatedInvitationID, pt.Description,
		pt.CreatedBy, pt.CreatedOn).Scan(&pt.ID)
}

func (r *ledgerRepository) CreateListingWithDebit(ctx context.Context, listing *domain.JobListing, debit *domain.PointTransaction) error {
	if debit.Points >= 0 {
		return fmt.Errorf("debit delta must be negative, got %d", debit.Points)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	listing.CreatedOn = time.Now()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO job_listings (company_id, title, description, location, status, created_by, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		listing.CompanyID, listing.Title, listing.Description, listing.Location,
		listing.Status, listing.CreatedBy, listing.CreatedOn).Scan(&listing.ID)
	if err != nil {
		return err
	}

	if err := debitBalance(ctx, tx, debit.CompanyID, -debit.Points); err != nil {
		return err
	}

	debit.RelatedJobID = &listing.ID
	if err := insertTransaction(ctx, tx, debit); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *ledgerRepository) CreateInvitationWithDebit(ctx context.Context, inv *domain.JobInvitation, debit *domain.PointTransaction) error {
	if debit.Points >= 0 {
		return fmt.Errorf("debit delta must be negative, got %d", debit.Points)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	inv.CreatedOn = time.Now()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO job_invitations (company_id, candidate_id, job_id, sender_id, message, status, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		inv.CompanyID, inv.CandidateID, inv.JobID, inv.SenderID, inv.Message,
		inv.Status, inv.CreatedOn).Scan(&inv.ID)
	if err != nil {
		return err
	}

	if err := debitBalance(ctx, tx, debit.CompanyID, -debit.Points); err != nil {
		return err
	}

	debit.RelatedInvitationID = &inv.ID
	if err := insertTransaction(ctx, tx, debit); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *ledgerRepository) CreditPoints(ctx context.Context, credit *domain.PointTransaction) error {
	if credit.Points <= 0 {
		return fmt.Errorf("credit delta must be positive, got %d", credit.Points)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := creditBalance(ctx, tx, credit.CompanyID, credit.Points); err != nil {
		return err
	}
	if err := insertTransaction(ctx, tx, credit); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *ledgerRepository) CreatePendingPurchase(ctx context.Context, purchase *domain.PointTransaction) error {
	// Pending purchases never touch the balance; the credit happens in
	// CompletePurchase, in lock step with the status flip.
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertTransaction(ctx, tx, purchase); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ledgerRepository) CompletePurchase(ctx context.Context, transactionID int32) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE point_transactions SET status = $1 WHERE id = $2 AND status = $3`,
		domain.TransactionStatusCompleted, transactionID, domain.TransactionStatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		// Already terminal: a replayed confirmation must not credit twice.
		return false, nil
	}

	var companyID, points int32
	err = tx.QueryRowContext(ctx,
		`SELECT company_id, points FROM point_transactions WHERE id = $1`,
		transactionID).Scan(&companyID, &points)
	if err != nil {
		return false, err
	}

	if err := creditBalance(ctx, tx, companyID, points); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

func (r *ledgerRepository) FailPurchase(ctx context.Context, transactionID int32) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE point_transactions SET status = $1 WHERE id = $2 AND status = $3`,
		domain.TransactionStatusFailed, transactionID, domain.TransactionStatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ledgerRepository) GetTransaction(ctx context.Context, id int32) (*domain.PointTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM point_transactions WHERE id = $1`
	pt := &domain.PointTransaction{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&pt.ID, &pt.CompanyID, &pt.Kind, &pt.Points, &pt.Amount, &pt.Status,
		&pt.PackageID, &pt.PaymentRef, &pt.RelatedJobID, &pt.RelatedInvitationID,
		&pt.Description, &pt.CreatedBy, &pt.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return pt, nil
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, companyID int32, filter repository.TransactionFilter) ([]domain.PointTransaction, int32, error) {
	where := `WHERE company_id = $1`
	args := []any{companyID}
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		where += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var count int32
	countQuery := `SELECT count(*) FROM point_transactions ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM point_transactions %s ORDER BY created_on DESC, id DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.PointTransaction
	for rows.Next() {
		var pt domain.PointTransaction
		if err := rows.Scan(
			&pt.ID, &pt.CompanyID, &pt.Kind, &pt.Points, &pt.Amount, &pt.Status,
			&pt.PackageID, &pt.PaymentRef, &pt.RelatedJobID, &pt.RelatedInvitationID,
			&pt.Description, &pt.CreatedBy, &pt.CreatedOn); err != nil {
			return nil, 0, err
		}
		txs = append(txs, pt)
	}
	return txs, count, rows.Err()
}

func (r *ledgerRepository) SumCompletedPoints(ctx context.Context, companyID int32) (int32, error) {
	var sum int32
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(points), 0) FROM point_transactions WHERE company_id = $1 AND status = $2`,
		companyID, domain.TransactionStatusCompleted).Scan(&sum)
	return sum, err
}

func (r *ledgerRepository) ListStalePendingPurchases(ctx context.Context, before time.Time) ([]domain.PointTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM point_transactions
	          WHERE kind = $1 AND status = $2 AND created_on < $3 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query,
		domain.TransactionKindPurchase, domain.TransactionStatusPending, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.PointTransaction
	for rows.Next() {
		var pt domain.PointTransaction
		if err := rows.Scan(
			&pt.ID, &pt.CompanyID, &pt.Kind, &pt.Points, &pt.Amount, &pt.Status,
			&pt.PackageID, &pt.PaymentRef, &pt.RelatedJobID, &pt.RelatedInvitationID,
			&pt.Description, &pt.CreatedBy, &pt.CreatedOn); err != nil {
			return nil, err
		}
		txs = append(txs, pt)
	}
	return txs, rows.Err()
}
