package service

import (
	"context"
	"fmt"
	"time"

	"karrirconnect-backend/internal/domain"
	"karrirconnect-backend/internal/logger"
	"karrirconnect-backend/internal/repository"
	"karrirconnect-backend/internal/worker"
)

const invitationDebitPoints = 1

type invitationService struct {
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
	invRepo     repository.InvitationRepository
	ledgerRepo  repository.LedgerRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
	messageSvc  MessageService
	pool        *worker.Pool
}

func NewInvitationService(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	invRepo repository.InvitationRepository,
	ledgerRepo repository.LedgerRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	messageSvc MessageService,
	pool *worker.Pool,
) InvitationService {
	return &invitationService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
		invRepo:     invRepo,
		ledgerRepo:  ledgerRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
		messageSvc:  messageSvc,
		pool:        pool,
	}
}

// SendInvitation creates a PENDING invitation and its one-point usage debit
// in a single database transaction. The point is consumed at send time and
// is not returned when the candidate later declines. Candidate notifications
// go out on the worker pool after the commit.
func (s *invitationService) SendInvitation(ctx context.Context, cmd SendInvitationCommand) (*domain.JobInvitation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.GetByID(ctx, cmd.CompanyID)
	if err != nil {
		return nil, err
	}
	candidate, err := s.userRepo.GetByID(ctx, cmd.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("candidate %d: %w", cmd.CandidateID, err)
	}

	exists, err := s.invRepo.ExistsPending(ctx, cmd.CompanyID, cmd.CandidateID, cmd.JobID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateInvitation
	}

	inv := &domain.JobInvitation{
		CompanyID:   cmd.CompanyID,
		CandidateID: cmd.CandidateID,
		JobID:       cmd.JobID,
		SenderID:    cmd.ActorID,
		Message:     cmd.Message,
		Status:      domain.InvitationStatusPending,
		CreatedOn:   time.Now(),
	}
	debit := &domain.PointTransaction{
		CompanyID:   cmd.CompanyID,
		Kind:        domain.TransactionKindUsage,
		Points:      -invitationDebitPoints,
		Status:      domain.TransactionStatusCompleted,
		Description: domain.UsageReasonJobInvitation,
		CreatedBy:   cmd.ActorID,
		CreatedOn:   inv.CreatedOn,
	}

	if err := s.ledgerRepo.CreateInvitationWithDebit(ctx, inv, debit); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "job invitation sent",
		"company_id", cmd.CompanyID, "invitation_id", inv.ID, "transaction_id", debit.ID)

	s.dispatchCandidateNotifications(inv, company, candidate, cmd.Message)
	return inv, nil
}

func (s *invitationService) dispatchCandidateNotifications(inv *domain.JobInvitation, company *domain.Company, candidate *domain.User, message string) {
	invID, companyName := inv.ID, company.Name
	email, name, phone := candidate.Email, candidate.Name, candidate.PhoneNumber
	userID, companyID := candidate.ID, company.ID

	submitted := s.pool.Submit(worker.Task{
		Name: "invitation-notify",
		Run: func(ctx context.Context) error {
			note := &domain.Notification{
				UserID:    userID,
				CompanyID: companyID,
				Title:     "New job invitation",
				Message:   fmt.Sprintf("%s invited you to apply for a position.", companyName),
				Attributes: map[string]string{
					"invitation_id": fmt.Sprintf("%d", invID),
				},
			}
			if err := s.noteRepo.Create(ctx, note); err != nil {
				logger.Error("failed to store invitation notification", "invitation_id", invID, "error", err)
			}

			// Email and WhatsApp are best-effort; the invitation stands either way.
			if err := s.emailSvc.SendInvitationNotification(ctx, email, name, companyName, message); err != nil {
				logger.Error("failed to email invitation", "invitation_id", invID, "error", err)
			}
			if phone != "" {
				if err := s.messageSvc.SendMessage(ctx, phone,
					fmt.Sprintf("Hi %s, %s sent you a job invitation on KarrirConnect. Check your inbox for details.", name, companyName)); err != nil {
					logger.Error("failed to send invitation whatsapp", "invitation_id", invID, "error", err)
				}
			}
			return nil
		},
	})
	if !submitted {
		logger.Warn("invitation notification not dispatched", "invitation_id", invID)
	}
}

func (s *invitationService) RespondInvitation(ctx context.Context, invitationID, candidateID int32, accept bool) (*domain.JobInvitation, error) {
	inv, err := s.invRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if inv.CandidateID != candidateID {
		return nil, domain.ErrInvitationNotFound
	}

	to := domain.InvitationStatusDeclined
	if accept {
		to = domain.InvitationStatusAccepted
	}
	ok, err := s.invRepo.UpdateStatus(ctx, invitationID, domain.InvitationStatusPending, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("invitation %d is not pending: %w", invitationID, domain.ErrInvalidTransition)
	}

	inv.Status = to
	return inv, nil
}

func (s *invitationService) ListInvitations(ctx context.Context, companyID, page, pageSize int32) ([]domain.JobInvitation, int32, error) {
	return s.invRepo.ListByCompany(ctx, companyID, page, pageSize)
}
