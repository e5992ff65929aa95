package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainAccount "loanbook/internal/domain/account"
	domainCustomer "loanbook/internal/domain/customer"
	"loanbook/internal/domain/loan"
	"loanbook/pkg/clock"
	"loanbook/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	loans     loan.Repository
	accounts  domainAccount.Repository
	customers domainCustomer.Repository
	clk       clock.Clock
}

func NewUsecase(loans loan.Repository, accounts domainAccount.Repository, customers domainCustomer.Repository, clk clock.Clock) *Usecase {
	return &Usecase{loans: loans, accounts: accounts, customers: customers, clk: clk}
}

func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if len(in.CustomerID) != 32 || len(in.AccountID) != 32 {
		return nil, errors.New("invalid input")
	}

	if _, err := u.customers.GetByCustomerID(ctx, in.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainCustomer.ErrNotFound
		}
		return nil, err
	}
	if _, err := u.accounts.GetByAccountID(ctx, in.AccountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainAccount.ErrNotFound
		}
		return nil, err
	}

	// Block if the customer already has a pending (requested) loan.
	pending, err := u.loans.GetRequestedByCustomerID(ctx, in.CustomerID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("customer %s already has a requested loan: %s", in.CustomerID, pending.LoanID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	// Contract date is read once, here; everything downstream derives from it.
	l, err := loan.New(in.CustomerID, in.AccountID, in.Principal, in.MonthlyRate, in.TermMonths, u.clk.Now().UTC())
	if err != nil {
		return nil, err
	}
	l.LoanID = id.NewID32()
	l.StatusUpdatedAt = time.Now().UTC()

	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l), nil
}

// Schedule returns the generated installments; empty for loans that never
// reached approval.
func (u *Usecase) Schedule(ctx context.Context, loanID string) (*ScheduleDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	insts, err := u.loans.ListInstallments(ctx, l.ID)
	if err != nil {
		return nil, err
	}

	out := &ScheduleDTO{LoanID: l.LoanID, Status: string(l.Status), Installments: make([]InstallmentDTO, 0, len(insts))}
	for _, inst := range insts {
		out.Installments = append(out.Installments, InstallmentDTO{
			Number:  inst.Number,
			Amount:  inst.Amount,
			DueDate: inst.DueDate,
			Paid:    inst.Paid,
			PaidAt:  inst.PaidAt,
		})
	}
	return out, nil
}

func toDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:            l.LoanID,
		CustomerID:        l.CustomerID,
		AccountID:         l.AccountID,
		Principal:         l.Principal,
		MonthlyRate:       l.MonthlyRate,
		TermMonths:        l.TermMonths,
		ContractDate:      l.ContractDate,
		InstallmentAmount: l.InstallmentAmount,
		TotalPayable:      l.TotalPayable(),
		TotalInterest:     l.TotalInterest(),
		Status:            string(l.Status),
		CreatedAt:         l.CreatedAt,
	}
}
