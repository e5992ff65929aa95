package loan

import "time"

type CreateLoanInput struct {
	CustomerID  string  `json:"customer_id"`
	AccountID   string  `json:"account_id"`
	Principal   float64 `json:"principal"`
	MonthlyRate float64 `json:"monthly_rate"`
	TermMonths  int     `json:"term_months"`
}

type LoanDTO struct {
	LoanID            string    `json:"loan_id"`
	CustomerID        string    `json:"customer_id"`
	AccountID         string    `json:"account_id"`
	Principal         float64   `json:"principal"`
	MonthlyRate       float64   `json:"monthly_rate"`
	TermMonths        int       `json:"term_months"`
	ContractDate      time.Time `json:"contract_date"`
	InstallmentAmount float64   `json:"installment_amount"`
	TotalPayable      float64   `json:"total_payable"`
	TotalInterest     float64   `json:"total_interest"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

type InstallmentDTO struct {
	Number  int        `json:"number"`
	Amount  float64    `json:"amount"`
	DueDate time.Time  `json:"due_date"`
	Paid    bool       `json:"paid"`
	PaidAt  *time.Time `json:"paid_at,omitempty"`
}

type ScheduleDTO struct {
	LoanID       string           `json:"loan_id"`
	Status       string           `json:"status"`
	Installments []InstallmentDTO `json:"installments"`
}
