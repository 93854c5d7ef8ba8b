package domain

import "errors"

var (
	ErrInsufficientPoints  = errors.New("insufficient points")
	ErrDuplicateInvitation = errors.New("a pending invitation already exists for this candidate")
	ErrListingLimitReached = errors.New("active job listing limit reached")
	ErrPackageNotFound     = errors.New("point package not found")
	ErrPackageInactive     = errors.New("point package is not active")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrTransactionNotFound = errors.New("point transaction not found")
	ErrPaymentRefMismatch  = errors.New("payment reference does not match")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInvitationNotFound  = errors.New("job invitation not found")
	ErrListingNotFound     = errors.New("job listing not found")
)
