package account

import (
	"context"
	"errors"
	"time"

	domainAccount "loanbook/internal/domain/account"
	domainCustomer "loanbook/internal/domain/customer"
	"loanbook/internal/domain/uow"
	"loanbook/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	accounts  domainAccount.Repository
	customers domainCustomer.Repository
	uow       uow.UnitOfWork
}

func NewUsecase(accounts domainAccount.Repository, customers domainCustomer.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{accounts: accounts, customers: customers, uow: tx}
}

type OpenInput struct {
	CustomerID     string  `json:"customer_id"`
	InitialBalance float64 `json:"initial_balance"`
}

type AccountDTO struct {
	AccountID  string    `json:"account_id"`
	CustomerID string    `json:"customer_id"`
	Balance    float64   `json:"balance"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *Usecase) Open(ctx context.Context, in OpenInput) (*AccountDTO, error) {
	if len(in.CustomerID) != 32 || in.InitialBalance < 0 {
		return nil, errors.New("invalid input")
	}
	if _, err := u.customers.GetByCustomerID(ctx, in.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainCustomer.ErrNotFound
		}
		return nil, err
	}

	a := &domainAccount.Account{
		AccountID:  id.NewID32(),
		CustomerID: in.CustomerID,
		Balance:    in.InitialBalance,
	}
	if err := u.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return toDTO(a), nil
}

func (u *Usecase) Get(ctx context.Context, accountID string) (*AccountDTO, error) {
	a, err := u.accounts.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainAccount.ErrNotFound
		}
		return nil, err
	}
	return toDTO(a), nil
}

// Deposit tops up an account under a row lock so concurrent debits from
// loan payments cannot lose the update.
func (u *Usecase) Deposit(ctx context.Context, accountID string, amount float64) (*AccountDTO, error) {
	if amount <= 0 {
		return nil, errors.New("invalid input")
	}
	var dto *AccountDTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Accounts.GetByAccountIDForUpdate(ctx, accountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainAccount.ErrNotFound
			}
			return err
		}
		a.Deposit(amount)
		if err := r.Accounts.Save(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return dto, nil
}

func toDTO(a *domainAccount.Account) *AccountDTO {
	return &AccountDTO{AccountID: a.AccountID, CustomerID: a.CustomerID, Balance: a.Balance, CreatedAt: a.CreatedAt}
}
