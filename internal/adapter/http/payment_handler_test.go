package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	domainAccount "loanbook/internal/domain/account"
	domainLoan "loanbook/internal/domain/loan"
	"loanbook/internal/domain/uow"
	"loanbook/internal/testutil/accountmock"
	"loanbook/internal/testutil/loanmock"
	"loanbook/internal/testutil/uowmock"
	"loanbook/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

// activeLoanWithSchedule builds an approved loan plus its stored installments.
func activeLoanWithSchedule(t *testing.T) (*domainLoan.Loan, []domainLoan.Installment) {
	t.Helper()
	l, err := domainLoan.New(testCustomerID, testAccountID, 1000, 2, 3, testNow)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.ID = 1
	l.LoanID = testLoanID
	if err := l.Approve(&domainAccount.Account{AccountID: testAccountID}); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	stored := make([]domainLoan.Installment, len(l.Installments))
	copy(stored, l.Installments)
	return l, stored
}

func paymentEcho(loans *loanmock.Repo, accounts *accountmock.Repo) *echo.Echo {
	tx := uowmock.Passthrough(uow.Repos{Loans: loans, Accounts: accounts})
	h := NewPaymentHandler(payment.NewUsecase(tx))

	e := newEcho()
	e.POST("/loans/:loan_id/payments", h.PayInstallment)
	return e
}

func payBody(number int) string {
	return fmt.Sprintf(`{"number":%d,"account_id":%q}`, number, testAccountID)
}

func TestPayInstallment_Success(t *testing.T) {
	l, stored := activeLoanWithSchedule(t)
	src := &domainAccount.Account{AccountID: testAccountID, Balance: 5000}
	var savedInst *domainLoan.Installment

	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*domainLoan.Loan, error) {
			return l, nil
		},
		ListInstallmentsFn: func(ctx context.Context, loanRef uint64) ([]domainLoan.Installment, error) {
			return stored, nil
		},
		SaveInstallmentFn: func(ctx context.Context, inst *domainLoan.Installment) error {
			savedInst = inst
			return nil
		},
	}
	accounts := &accountmock.Repo{
		GetByAccountIDForUpdateFn: func(ctx context.Context, accountID string) (*domainAccount.Account, error) {
			return src, nil
		},
	}
	e := paymentEcho(loans, accounts)

	rec := doJSON(e, http.MethodPost, "/loans/"+testLoanID+"/payments", payBody(1))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var dto payment.PaymentDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.Number != 1 || dto.Settled || dto.LoanStatus != "active" {
		t.Errorf("dto = %+v", dto)
	}
	if savedInst == nil || !savedInst.Paid || savedInst.PaidAt == nil {
		t.Errorf("installment not persisted paid: %+v", savedInst)
	}
	if src.Balance >= 5000 {
		t.Errorf("account not debited: %v", src.Balance)
	}
}

func TestPayInstallment_Validation(t *testing.T) {
	e := paymentEcho(&loanmock.Repo{}, &accountmock.Repo{})

	rec := doJSON(e, http.MethodPost, "/loans/"+testLoanID+"/payments", `{"number":0,"account_id":"nope"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	resp := decodeErr(t, rec)
	if !containsFieldMsg(resp.Details, "AccountID", "hex") {
		t.Errorf("missing account_id detail: %+v", resp.Details)
	}
}

func TestPayInstallment_OutOfRange(t *testing.T) {
	l, stored := activeLoanWithSchedule(t)
	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*domainLoan.Loan, error) {
			return l, nil
		},
		ListInstallmentsFn: func(ctx context.Context, loanRef uint64) ([]domainLoan.Installment, error) {
			return stored, nil
		},
	}
	accounts := &accountmock.Repo{
		GetByAccountIDForUpdateFn: func(ctx context.Context, accountID string) (*domainAccount.Account, error) {
			return &domainAccount.Account{AccountID: testAccountID, Balance: 5000}, nil
		},
	}
	e := paymentEcho(loans, accounts)

	rec := doJSON(e, http.MethodPost, "/loans/"+testLoanID+"/payments", payBody(9))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestPayInstallment_InsufficientFunds(t *testing.T) {
	l, stored := activeLoanWithSchedule(t)
	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*domainLoan.Loan, error) {
			return l, nil
		},
		ListInstallmentsFn: func(ctx context.Context, loanRef uint64) ([]domainLoan.Installment, error) {
			return stored, nil
		},
	}
	accounts := &accountmock.Repo{
		GetByAccountIDForUpdateFn: func(ctx context.Context, accountID string) (*domainAccount.Account, error) {
			return &domainAccount.Account{AccountID: testAccountID, Balance: 1}, nil
		},
	}
	e := paymentEcho(loans, accounts)

	rec := doJSON(e, http.MethodPost, "/loans/"+testLoanID+"/payments", payBody(1))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestPayInstallment_AlreadyPaidConflict(t *testing.T) {
	l, stored := activeLoanWithSchedule(t)
	stored[0].Paid = true

	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*domainLoan.Loan, error) {
			return l, nil
		},
		ListInstallmentsFn: func(ctx context.Context, loanRef uint64) ([]domainLoan.Installment, error) {
			return stored, nil
		},
	}
	accounts := &accountmock.Repo{
		GetByAccountIDForUpdateFn: func(ctx context.Context, accountID string) (*domainAccount.Account, error) {
			return &domainAccount.Account{AccountID: testAccountID, Balance: 5000}, nil
		},
	}
	e := paymentEcho(loans, accounts)

	rec := doJSON(e, http.MethodPost, "/loans/"+testLoanID+"/payments", payBody(1))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestPayInstallment_SettlesOnFinalPayment(t *testing.T) {
	l, stored := activeLoanWithSchedule(t)
	stored[0].Paid = true
	stored[1].Paid = true
	var savedLoan *domainLoan.Loan

	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*domainLoan.Loan, error) {
			return l, nil
		},
		ListInstallmentsFn: func(ctx context.Context, loanRef uint64) ([]domainLoan.Installment, error) {
			return stored, nil
		},
		SaveFn: func(ctx context.Context, in *domainLoan.Loan) error {
			savedLoan = in
			return nil
		},
	}
	accounts := &accountmock.Repo{
		GetByAccountIDForUpdateFn: func(ctx context.Context, accountID string) (*domainAccount.Account, error) {
			return &domainAccount.Account{AccountID: testAccountID, Balance: 5000}, nil
		},
	}
	e := paymentEcho(loans, accounts)

	rec := doJSON(e, http.MethodPost, "/loans/"+testLoanID+"/payments", payBody(3))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var dto payment.PaymentDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !dto.Settled || dto.LoanStatus != "settled" {
		t.Errorf("dto = %+v", dto)
	}
	if savedLoan == nil || savedLoan.Status != domainLoan.StatusSettled {
		t.Errorf("settled state not persisted: %+v", savedLoan)
	}
}
