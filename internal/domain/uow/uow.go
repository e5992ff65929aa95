package uow

import (
	"context"

	"loanbook/internal/domain/account"
	"loanbook/internal/domain/customer"
	"loanbook/internal/domain/loan"
)

type Repos struct {
	Loans     loan.Repository
	Accounts  account.Repository
	Customers customer.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
