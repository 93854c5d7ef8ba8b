package domain

import "time"

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "PENDING"
	InvitationStatusAccepted InvitationStatus = "ACCEPTED"
	InvitationStatusDeclined InvitationStatus = "DECLINED"
	InvitationStatusExpired  InvitationStatus = "EXPIRED"
)

// JobInvitation is a direct invitation from a company to a candidate.
// At most one PENDING invitation may exist per (company, candidate, job).
// The point is consumed when the invitation is sent; accept/decline/expire
// transitions never touch the ledger.
type JobInvitation struct {
	ID          int32            `json:"id"`
	CompanyID   int32            `json:"company_id"`
	CandidateID int32            `json:"candidate_id"`
	JobID       *int32           `json:"job_id,omitempty"`
	SenderID    int32            `json:"sender_id"`
	Message     string           `json:"message"`
	Status      InvitationStatus `json:"status"`
	CreatedOn   time.Time        `json:"created_on"`
}
