package account

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type Account struct {
	ID         uint64         `gorm:"primaryKey;column:id" json:"-"`
	AccountID  string         `gorm:"size:32;uniqueIndex:ux_accounts_account_id_active" json:"account_id"`
	CustomerID string         `gorm:"size:32;index" json:"customer_id"`
	Balance    float64        `gorm:"type:decimal(18,6)" json:"balance"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Account) TableName() string { return "accounts" }

// Deposit never fails; amounts are validated at the edges.
func (a *Account) Deposit(amount float64) {
	a.Balance += amount
}

// Withdraw debits the balance or leaves it untouched on insufficient funds.
func (a *Account) Withdraw(amount float64) error {
	if a.Balance < amount {
		return ErrInsufficientFunds
	}
	a.Balance -= amount
	return nil
}
