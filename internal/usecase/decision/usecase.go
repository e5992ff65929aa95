package decision

import (
	"context"
	"errors"
	"time"

	domainAccount "loanbook/internal/domain/account"
	domainLoan "loanbook/internal/domain/loan"
	"loanbook/internal/domain/uow"

	"gorm.io/gorm"
)

type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

// Approve runs the requested→active transition in one transaction: the loan
// row is locked, the destination account is credited with the principal, and
// the full installment batch is written before the state lands on active.
func (u *Usecase) Approve(ctx context.Context, loanID string) (*DecisionDTO, error) {
	var dto *DecisionDTO

	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		dest, err := r.Accounts.GetByAccountIDForUpdate(ctx, l.AccountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainAccount.ErrNotFound
			}
			return err
		}

		if err := l.Approve(dest); err != nil {
			return err
		}
		now := time.Now().UTC()
		l.StatusUpdatedAt = now

		if err := r.Accounts.Save(ctx, dest); err != nil {
			return err
		}
		if err := r.Loans.CreateInstallments(ctx, l.Installments); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		dto = &DecisionDTO{
			LoanID:          l.LoanID,
			Status:          string(l.Status),
			DecidedAt:       now,
			DisbursedAmount: l.Principal,
			Installments:    len(l.Installments),
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// Deny is terminal and touches no account.
func (u *Usecase) Deny(ctx context.Context, loanID string) (*DecisionDTO, error) {
	var dto *DecisionDTO

	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if err := l.Deny(); err != nil {
			return err
		}
		now := time.Now().UTC()
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = &DecisionDTO{LoanID: l.LoanID, Status: string(l.Status), DecidedAt: now}
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}
