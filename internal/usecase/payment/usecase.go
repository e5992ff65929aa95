package payment

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

// Pay debits the source account for one installment inside a transaction.
// The debit is persisted together with the paid flag and, when the last
// installment closes, the settled state — all or nothing.
func (u *Usecase) Pay(ctx context.Context, in PayInput) (*PaymentDTO, error) {
	if len(in.AccountID) != 32 {
		return nil, errors.New("invalid input")
	}
	var dto *PaymentDTO

	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		insts, err := r.Loans.ListInstallments(ctx, l.ID)
		if err != nil {
			return err
		}
		l.Installments = insts

		src, err := r.Accounts.GetByAccountIDForUpdate(ctx, in.AccountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainAccount.ErrNotFound
			}
			return err
		}

		if err := l.Pay(in.Number, src); err != nil {
			return err
		}
		now := time.Now().UTC()
		inst := &l.Installments[in.Number-1]
		inst.PaidAt = &now

		if err := r.Accounts.Save(ctx, src); err != nil {
			return err
		}
		if err := r.Loans.SaveInstallment(ctx, inst); err != nil {
			return err
		}
		if l.Status == domainLoan.StatusSettled {
			l.StatusUpdatedAt = now
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
		}

		dto = &PaymentDTO{
			LoanID:     l.LoanID,
			Number:     inst.Number,
			Amount:     inst.Amount,
			PaidAt:     now,
			LoanStatus: string(l.Status),
			Settled:    l.Status == domainLoan.StatusSettled,
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
