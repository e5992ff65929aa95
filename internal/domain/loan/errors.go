package loan

import "errors"

var (
	ErrNotFound               = errors.New("loan not found")
	ErrInvalidTerms           = errors.New("invalid loan terms")
	ErrAlreadyDecided         = errors.New("loan already decided")
	ErrNotActive              = errors.New("loan is not active")
	ErrInstallmentOutOfRange  = errors.New("installment number out of range")
	ErrInstallmentAlreadyPaid = errors.New("installment already paid")
)
