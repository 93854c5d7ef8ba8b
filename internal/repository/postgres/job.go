package postgres

import (
	"context"
	"database/sql"

	"karrirconnect-backend/internal/domain"
	"karrirconnect-backend/internal/repository"
)

// Job listings are created only through LedgerRepository.CreateListingWithDebit
// so a listing can never exist without its paired usage debit.
type jobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) repository.JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) GetByID(ctx context.Context, id int32) (*domain.JobListing, error) {
	j := &domain.JobListing{}
	query := `SELECT id, company_id, title, COALESCE(description, ''), COALESCE(location, ''), status, created_by, created_on
	          FROM job_listings WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location, &j.Status, &j.CreatedBy, &j.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrListingNotFound
	}
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (r *jobRepository) CountActiveByCompany(ctx context.Context, companyID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM job_listings WHERE company_id = $1 AND status = $2`,
		companyID, domain.ListingStatusPublished).Scan(&count)
	return count, err
}

func (r *jobRepository) ListByCompany(ctx context.Context, companyID int32, page, pageSize int32) ([]domain.JobListing, int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM job_listings WHERE company_id = $1`, companyID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	query := `SELECT id, company_id, title, COALESCE(description, ''), COALESCE(location, ''), status, created_by, created_on
	          FROM job_listings WHERE company_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, companyID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var listings []domain.JobListing
	for rows.Next() {
		var j domain.JobListing
		if err := rows.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location, &j.Status, &j.CreatedBy, &j.CreatedOn); err != nil {
			return nil, 0, err
		}
		listings = append(listings, j)
	}
	return listings, count, rows.Err()
}

func (r *jobRepository) UpdateStatus(ctx context.Context, id int32, from, to domain.ListingStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE job_listings SET status = $1 WHERE id = $2 AND status = $3`,
		to, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
