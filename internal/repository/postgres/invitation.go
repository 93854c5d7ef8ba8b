package postgres

import (
	"context"
	"database/sql"
	"time"

	"karrirconnect-backend/internal/domain"
	"karrirconnect-backend/internal/repository"
)

type invitationRepository struct {
	db *sql.DB
}

func NewInvitationRepository(db *sql.DB) repository.InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) ExistsPending(ctx context.Context, companyID, candidateID int32, jobID *int32) (bool, error) {
	// A nil jobID matches any pending invitation to the candidate; a concrete
	// jobID narrows the guard to that listing.
	query := `SELECT EXISTS (
	            SELECT 1 FROM job_invitations
	            WHERE company_id = $1 AND candidate_id = $2 AND status = $3
	              AND ($4::int IS NULL OR job_id = $4)
	          )`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, companyID, candidateID, domain.InvitationStatusPending, jobID).Scan(&exists)
	return exists, err
}

func (r *invitationRepository) GetByID(ctx context.Context, id int32) (*domain.JobInvitation, error) {
	inv := &domain.JobInvitation{}
	query := `SELECT id, company_id, candidate_id, job_id, sender_id, COALESCE(message, ''), status, created_on
	          FROM job_invitations WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&inv.ID, &inv.CompanyID, &inv.CandidateID, &inv.JobID, &inv.SenderID,
		&inv.Message, &inv.Status, &inv.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrInvitationNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) ListByCompany(ctx context.Context, companyID int32, page, pageSize int32) ([]domain.JobInvitation, int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM job_invitations WHERE company_id = $1`, companyID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	query := `SELECT id, company_id, candidate_id, job_id, sender_id, COALESCE(message, ''), status, created_on
	          FROM job_invitations WHERE company_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, companyID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var invs []domain.JobInvitation
	for rows.Next() {
		var inv domain.JobInvitation
		if err := rows.Scan(
			&inv.ID, &inv.CompanyID, &inv.CandidateID, &inv.JobID, &inv.SenderID,
			&inv.Message, &inv.Status, &inv.CreatedOn); err != nil {
			return nil, 0, err
		}
		invs = append(invs, inv)
	}
	return invs, count, rows.Err()
}

func (r *invitationRepository) UpdateStatus(ctx context.Context, id int32, from, to domain.InvitationStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE job_invitations SET status = $1 WHERE id = $2 AND status = $3`,
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

func (r *invitationRepository) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE job_invitations SET status = $1 WHERE status = $2 AND created_on < $3`,
		domain.InvitationStatusExpired, domain.InvitationStatusPending, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
