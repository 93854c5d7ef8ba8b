package postgres

import (
	"context"
	"database/sql"
	"time"

	"karrirconnect-backend/internal/domain"
	"karrirconnect-backend/internal/repository"
)

type companyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) repository.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, c *domain.Company) error {
	query := `INSERT INTO companies (name, email, point_balance, max_active_jobs, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	c.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query, c.Name, c.Email, c.PointBalance, c.MaxActiveJobs, c.CreatedOn).Scan(&c.ID)
}

func (r *companyRepository) GetByID(ctx context.Context, id int32) (*domain.Company, error) {
	c := &domain.Company{}
	query := `SELECT id, name, email, point_balance, max_active_jobs, created_on FROM companies WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.PointBalance, &c.MaxActiveJobs, &c.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *companyRepository) GetBalance(ctx context.Context, companyID int32) (int32, error) {
	var balance int32
	query := `SELECT COALESCE(point_balance, 0) FROM companies WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, companyID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, domain.ErrCompanyNotFound
	}
	return balance, err
}
