package customer

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "loanbook/internal/domain/customer"
	"loanbook/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

type CustomerDTO struct {
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *Usecase) Register(ctx context.Context, name string) (*CustomerDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("invalid input")
	}
	c := &domain.Customer{CustomerID: id.NewID32(), Name: name}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &CustomerDTO{CustomerID: c.CustomerID, Name: c.Name, CreatedAt: c.CreatedAt}, nil
}

func (u *Usecase) Get(ctx context.Context, customerID string) (*CustomerDTO, error) {
	c, err := u.repo.GetByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &CustomerDTO{CustomerID: c.CustomerID, Name: c.Name, CreatedAt: c.CreatedAt}, nil
}
