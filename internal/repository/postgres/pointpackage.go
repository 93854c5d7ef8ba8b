package postgres

import (
	"context"
	"database/sql"

	"karrirconnect-backend/internal/domain"
	"karrirconnect-backend/internal/repository"
)

type packageRepository struct {
	db *sql.DB
}

func NewPackageRepository(db *sql.DB) repository.PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) GetByID(ctx context.Context, id int32) (*domain.PointPackage, error) {
	p := &domain.PointPackage{}
	query := `SELECT id, name, points, bonus_points, price, is_active, created_on FROM point_packages WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Points, &p.BonusPoints, &p.Price, &p.IsActive, &p.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrPackageNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *packageRepository) ListActive(ctx context.Context) ([]domain.PointPackage, error) {
	query := `SELECT id, name, points, bonus_points, price, is_active, created_on
	          FROM point_packages WHERE is_active = TRUE ORDER BY price`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pkgs []domain.PointPackage
	for rows.Next() {
		var p domain.PointPackage
		if err := rows.Scan(&p.ID, &p.Name, &p.Points, &p.BonusPoints, &p.Price, &p.IsActive, &p.CreatedOn); err != nil {
			return nil, err
		}
		pkgs = append(pkgs, p)
	}
	return pkgs, rows.Err()
}
