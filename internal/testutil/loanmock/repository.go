package loanmock

import (
	"context"

	domain "loanbook/internal/domain/loan"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields a test needs; unfilled ones are benign no-ops
// or context.Canceled for reads.
type Repo struct {
	CreateFn                   func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn              func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn     func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetRequestedByCustomerIDFn func(ctx context.Context, customerID string) (*domain.Loan, error)
	SaveFn                     func(ctx context.Context, l *domain.Loan) error
	CreateInstallmentsFn       func(ctx context.Context, batch []domain.Installment) error
	ListInstallmentsFn         func(ctx context.Context, loanRef uint64) ([]domain.Installment, error)
	SaveInstallmentFn          func(ctx context.Context, inst *domain.Installment) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetRequestedByCustomerID(ctx context.Context, customerID string) (*domain.Loan, error) {
	if m.GetRequestedByCustomerIDFn != nil {
		return m.GetRequestedByCustomerIDFn(ctx, customerID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) CreateInstallments(ctx context.Context, batch []domain.Installment) error {
	if m.CreateInstallmentsFn != nil {
		return m.CreateInstallmentsFn(ctx, batch)
	}
	return nil
}

func (m *Repo) ListInstallments(ctx context.Context, loanRef uint64) ([]domain.Installment, error) {
	if m.ListInstallmentsFn != nil {
		return m.ListInstallmentsFn(ctx, loanRef)
	}
	return nil, nil
}

func (m *Repo) SaveInstallment(ctx context.Context, inst *domain.Installment) error {
	if m.SaveInstallmentFn != nil {
		return m.SaveInstallmentFn(ctx, inst)
	}
	return nil
}
