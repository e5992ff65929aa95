package payment

import "time"

type PayInput struct {
	LoanID string
	// 1-based installment number.
	Number int
	// Source account to debit.
	AccountID string
}

type PaymentDTO struct {
	LoanID     string    `json:"loan_id"`
	Number     int       `json:"number"`
	Amount     float64   `json:"amount"`
	PaidAt     time.Time `json:"paid_at"`
	LoanStatus string    `json:"loan_status"`
	Settled    bool      `json:"settled"`
}
