package loan

import (
	"math"
	"time"

	"loanbook/internal/domain/account"
)

// CalcInstallmentAmount compounds the full principal over the term and
// splits it evenly: principal * (1 + rate/100)^term / term.
//
// This is deliberately not the textbook annuity formula; the product
// compounds the total rather than amortizing the remaining balance, and the
// raw float64 result is stored unrounded. Round for display only.
func CalcInstallmentAmount(principal, monthlyRate float64, termMonths int) float64 {
	factor := 1 + monthlyRate/100
	return principal * math.Pow(factor, float64(termMonths)) / float64(termMonths)
}

// New builds a requested loan. The contract date is captured here, once,
// and the installment amount is fixed from the same inputs — both are
// available before the approve/deny decision.
func New(customerID, accountID string, principal, monthlyRate float64, termMonths int, contractDate time.Time) (*Loan, error) {
	if principal <= 0 || monthlyRate < 0 || termMonths < 1 {
		return nil, ErrInvalidTerms
	}
	return &Loan{
		CustomerID:        customerID,
		AccountID:         accountID,
		Principal:         principal,
		MonthlyRate:       monthlyRate,
		TermMonths:        termMonths,
		ContractDate:      contractDate,
		InstallmentAmount: CalcInstallmentAmount(principal, monthlyRate, termMonths),
		Status:            StatusRequested,
	}, nil
}

// TotalPayable is installment amount times term, derived on every call.
func (l *Loan) TotalPayable() float64 {
	return l.InstallmentAmount * float64(l.TermMonths)
}

// TotalInterest is the payable total minus the principal.
func (l *Loan) TotalInterest() float64 {
	return l.TotalPayable() - l.Principal
}

// Approve moves a requested loan to active: credit the principal to the
// destination account, then generate the full schedule. Any other starting
// status leaves the loan and the account untouched.
func (l *Loan) Approve(dest *account.Account) error {
	if l.Status != StatusRequested {
		return ErrAlreadyDecided
	}
	l.Status = StatusApproved
	dest.Deposit(l.Principal)
	l.generateInstallments()
	l.Status = StatusActive
	return nil
}

// Deny is terminal and touches no account.
func (l *Loan) Deny() error {
	if l.Status != StatusRequested {
		return ErrAlreadyDecided
	}
	l.Status = StatusDenied
	return nil
}

// generateInstallments replaces the schedule wholesale: installment k is
// due k calendar months after the contract date (AddDate normalization,
// so day-31 contracts roll over in shorter months).
func (l *Loan) generateInstallments() {
	l.Installments = make([]Installment, 0, l.TermMonths)
	for k := 1; k <= l.TermMonths; k++ {
		l.Installments = append(l.Installments, Installment{
			LoanID:  l.ID,
			Number:  k,
			Amount:  l.InstallmentAmount,
			DueDate: l.ContractDate.AddDate(0, k, 0),
		})
	}
}

// Pay settles a single installment from the source account. Checks run in
// order: loan must carry a schedule, the number must be in range, the
// installment unpaid, and the debit must succeed — only then is the
// installment marked paid, so a failed debit never corrupts the schedule.
// When the last open installment is paid the loan settles.
func (l *Loan) Pay(number int, source *account.Account) error {
	if l.Status != StatusActive && l.Status != StatusSettled {
		return ErrNotActive
	}
	if number < 1 || number > len(l.Installments) {
		return ErrInstallmentOutOfRange
	}
	inst := &l.Installments[number-1]
	if inst.Paid {
		return ErrInstallmentAlreadyPaid
	}
	if err := source.Withdraw(inst.Amount); err != nil {
		return err
	}
	inst.Paid = true

	for i := range l.Installments {
		if !l.Installments[i].Paid {
			return nil
		}
	}
	l.Status = StatusSettled
	return nil
}
