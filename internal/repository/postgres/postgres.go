package postgres

import (
	"database/sql"

	"karrirconnect-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.CompanyRepository
	repository.PackageRepository
	repository.LedgerRepository
	repository.JobRepository
	repository.InvitationRepository
	repository.UserRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		CompanyRepository:      NewCompanyRepository(db),
		PackageRepository:      NewPackageRepository(db),
		LedgerRepository:       NewLedgerRepository(db),
		JobRepository:          NewJobRepository(db),
		InvitationRepository:   NewInvitationRepository(db),
		UserRepository:         NewUserRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
