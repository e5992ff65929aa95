package loan

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusRequested Status = "requested"
	StatusApproved  Status = "approved"
	StatusDenied    Status = "denied"
	StatusActive    Status = "active"
	StatusSettled   Status = "settled"
)

type Loan struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID     string `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	CustomerID string `gorm:"size:32;index:idx_loans_customer_active" json:"customer_id"`
	// Destination account credited with the principal on approval.
	AccountID   string  `gorm:"size:32" json:"account_id"`
	Principal   float64 `gorm:"type:decimal(18,2)" json:"principal"`
	MonthlyRate float64 `gorm:"type:decimal(6,4)" json:"monthly_rate"`
	TermMonths  int     `gorm:"column:term_months" json:"term_months"`
	// ContractDate anchors the due-date ladder; captured once at construction.
	ContractDate time.Time `gorm:"type:date" json:"contract_date"`
	// InstallmentAmount is computed once at construction and never recomputed,
	// even while the loan is still requested or ends up denied.
	InstallmentAmount float64        `gorm:"type:decimal(18,6)" json:"installment_amount"`
	Status            Status         `gorm:"type:enum('requested','approved','denied','active','settled');default:'requested'" json:"status"`
	StatusUpdatedAt   time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Owned schedule, fixed length == TermMonths once generated. Loaded and
	// persisted explicitly by the repository, never auto-saved as an
	// association.
	Installments []Installment `gorm:"-" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Installment is one scheduled repayment unit. Paid is the only mutable
// field and flips to true exactly once.
type Installment struct {
	ID        uint64     `gorm:"primaryKey;column:id" json:"-"`
	LoanID    uint64     `gorm:"column:loan_id;not null;index;uniqueIndex:ux_installments_loan_number" json:"-"`
	Number    int        `gorm:"column:number;not null;uniqueIndex:ux_installments_loan_number" json:"number"`
	Amount    float64    `gorm:"type:decimal(18,6)" json:"amount"`
	DueDate   time.Time  `gorm:"type:date" json:"due_date"`
	Paid      bool       `gorm:"column:paid;default:false" json:"paid"`
	PaidAt    *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"-"`
}

func (Installment) TableName() string { return "installments" }
