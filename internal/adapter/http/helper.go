package http

import (
	"errors"
	"net/http"

	domainAccount "loanbook/internal/domain/account"
	domainCustomer "loanbook/internal/domain/customer"
	domainLoan "loanbook/internal/domain/loan"
)

// statusFor maps domain sentinels to HTTP codes; anything unknown is a 400
// so repository/infra errors never leak a 500 with internals attached.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainLoan.ErrNotFound),
		errors.Is(err, domainAccount.ErrNotFound),
		errors.Is(err, domainCustomer.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainLoan.ErrAlreadyDecided),
		errors.Is(err, domainLoan.ErrNotActive),
		errors.Is(err, domainLoan.ErrInstallmentAlreadyPaid):
		return http.StatusConflict
	case errors.Is(err, domainLoan.ErrInstallmentOutOfRange),
		errors.Is(err, domainLoan.ErrInvalidTerms),
		errors.Is(err, domainAccount.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
