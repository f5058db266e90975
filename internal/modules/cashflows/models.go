package cashflows

import (
	"fmt"

	"tradebook/internal/domain"
)

// CashFlowRequest is the entry-form payload for recording a capital movement.
// Amount is signed: positive deposits, negative withdrawals.
type CashFlowRequest struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// Validate enforces the entry-form rules.
func (r CashFlowRequest) Validate() error {
	if !domain.ValidDate(r.Date) {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", r.Date)
	}
	if r.Amount == 0 {
		return fmt.Errorf("amount cannot be zero")
	}
	return nil
}

func (r CashFlowRequest) toCashFlow(id string) domain.CashFlow {
	return domain.CashFlow{ID: id, Date: r.Date, Amount: r.Amount}
}
