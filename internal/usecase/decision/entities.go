package decision

import "time"

type DecisionDTO struct {
	LoanID    string    `json:"loan_id"`
	Status    string    `json:"status"`
	DecidedAt time.Time `json:"decided_at"`
	// Set on approval only: the amount credited to the destination account.
	DisbursedAmount float64 `json:"disbursed_amount,omitempty"`
	Installments    int     `json:"installments,omitempty"`
}
