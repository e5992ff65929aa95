package customer

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("customer not found")

// Customer is carried for record-keeping only; no loan arithmetic
// consumes it.
type Customer struct {
	ID         uint64         `gorm:"primaryKey;column:id" json:"-"`
	CustomerID string         `gorm:"size:32;uniqueIndex:ux_customers_customer_id_active" json:"customer_id"`
	Name       string         `gorm:"size:255" json:"name"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Customer) TableName() string { return "customers" }
