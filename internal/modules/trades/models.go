package trades

import (
	"fmt"

	"tradebook/internal/domain"
)

// TradeRequest is the entry-form payload for creating or editing a trade.
// Validation happens here, at the entry boundary; the analytics core trusts
// structurally valid records.
type TradeRequest struct {
	Date       string           `json:"date"`
	TradeType  domain.TradeType `json:"tradeType"`
	Stocks     string           `json:"stocks"`
	Profit     *float64         `json:"profit"`
	Loss       *float64         `json:"loss"`
	Commission float64          `json:"commission"`
}

// Validate enforces the entry-form rules: a well-formed date, at most one of
// profit/loss, positive magnitudes, non-negative commission.
func (r TradeRequest) Validate() error {
	if !domain.ValidDate(r.Date) {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", r.Date)
	}
	if r.Profit != nil && r.Loss != nil && *r.Profit != 0 && *r.Loss != 0 {
		return fmt.Errorf("a trade cannot have both profit and loss")
	}
	if r.Profit != nil && *r.Profit < 0 {
		return fmt.Errorf("profit must be a positive magnitude")
	}
	if r.Loss != nil && *r.Loss < 0 {
		return fmt.Errorf("loss must be a positive magnitude")
	}
	if r.Commission < 0 {
		return fmt.Errorf("commission cannot be negative")
	}
	return nil
}

// toTrade builds the domain record for a given id.
func (r TradeRequest) toTrade(id string) domain.Trade {
	return domain.Trade{
		ID:         id,
		Date:       r.Date,
		TradeType:  r.TradeType,
		Stocks:     r.Stocks,
		Profit:     r.Profit,
		Loss:       r.Loss,
		Commission: r.Commission,
	}
}
