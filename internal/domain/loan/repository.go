package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// Row-locked read used by the unit of work before state transitions.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetRequestedByCustomerID(ctx context.Context, customerID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error

	// Schedule persistence; installments are written as one batch at
	// approval and only the paid flag changes afterwards.
	CreateInstallments(ctx context.Context, batch []Installment) error
	ListInstallments(ctx context.Context, loanRef uint64) ([]Installment, error)
	SaveInstallment(ctx context.Context, inst *Installment) error
}
