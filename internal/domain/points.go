package domain

import "time"

type TransactionKind string

const (
	TransactionKindPurchase TransactionKind = "PURCHASE"
	TransactionKindUsage    TransactionKind = "USAGE"
	TransactionKindRefund   TransactionKind = "REFUND"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Usage reasons recorded on usage debits.
const (
	UsageReasonJobPosting    = "job_posting"
	UsageReasonJobInvitation = "job_invitation"
)

// PointTransaction is an append-only ledger record. Rows in a terminal
// status are never edited; corrections are made by appending offsetting
// REFUND or USAGE rows.
type PointTransaction struct {
	ID                  int32             `json:"id"`
	CompanyID           int32             `json:"company_id"`
	Kind                TransactionKind   `json:"kind"`
	Points              int32             `json:"points"` // signed delta: positive for credit, negative for debit
	Amount              int64             `json:"amount,omitempty"` // rupiah, purchases only
	Status              TransactionStatus `json:"status"`
	PackageID           *int32            `json:"package_id,omitempty"`
	PaymentRef          *string           `json:"payment_ref,omitempty"`
	RelatedJobID        *int32            `json:"related_job_id,omitempty"`
	RelatedInvitationID *int32            `json:"related_invitation_id,omitempty"`
	Description         string            `json:"description"`
	CreatedBy           int32             `json:"created_by"`
	CreatedOn           time.Time         `json:"created_on"`
}

// Terminal reports whether the transaction has reached a final status.
func (t *PointTransaction) Terminal() bool {
	return t.Status == TransactionStatusCompleted || t.Status == TransactionStatusFailed
}
