package domain

import "time"

// DateLayout is the calendar-date format used throughout the ledger.
// Dates carry no time component; the string form sorts chronologically.
const DateLayout = "2006-01-02"

// TradeType categorizes a trade by instrument.
type TradeType string

const (
	TradeTypeStocks    TradeType = "Stocks"
	TradeTypeCommodity TradeType = "Commodity"
	TradeTypeOptions   TradeType = "Options"
)

// CanonicalTradeTypes lists the categories that always appear in per-type
// breakdowns, even with zero trades. Unknown values recorded by older clients
// pass through as ad hoc categories.
var CanonicalTradeTypes = []TradeType{TradeTypeStocks, TradeTypeCommodity, TradeTypeOptions}

// Trade is a single day's net result for one instrument. At most one of
// Profit/Loss is populated; both are stored as positive magnitudes and the
// sign is implied by which field is set. A trade with neither is a
// zero-result entry (its commission still counts toward totals).
type Trade struct {
	ID         string    `json:"id"`
	Date       string    `json:"date"` // YYYY-MM-DD
	TradeType  TradeType `json:"tradeType,omitempty"`
	Stocks     string    `json:"stocks"` // instrument label (legacy field name)
	Profit     *float64  `json:"profit,omitempty"`
	Loss       *float64  `json:"loss,omitempty"`
	Commission float64   `json:"commission"`
}

// CashFlow is a single capital movement: positive amount = deposit,
// negative = withdrawal.
type CashFlow struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"` // YYYY-MM-DD
	Amount float64 `json:"amount"`
}

// Portfolio is the aggregate snapshot: the shape persisted locally and
// exchanged with the remote store, and the sole input of the analytics
// functions.
type Portfolio struct {
	OpeningBalance float64    `json:"openingBalance"`
	Trades         []Trade    `json:"trades"`
	CashFlows      []CashFlow `json:"cashFlows"`
}

// Type returns the trade's category, defaulting to Stocks when absent.
func (t Trade) Type() TradeType {
	if t.TradeType == "" {
		return TradeTypeStocks
	}
	return t.TradeType
}

// HasProfit reports whether the profit side is populated. A present-but-zero
// amount counts as absent, matching the zero-defaulting of optional numerics.
func (t Trade) HasProfit() bool {
	return t.Profit != nil && *t.Profit != 0
}

// HasLoss reports whether the loss side is populated. Profit takes precedence
// everywhere, so a malformed record with both sides set behaves as a profit.
func (t Trade) HasLoss() bool {
	return !t.HasProfit() && t.Loss != nil && *t.Loss != 0
}

// Net returns the trade's signed contribution to the balance: commission is
// subtracted from a win and added to a loss. Zero-result trades contribute
// nothing here; their commission is only visible in commission totals.
func (t Trade) Net() float64 {
	switch {
	case t.HasProfit():
		return *t.Profit - t.Commission
	case t.HasLoss():
		return -(*t.Loss + t.Commission)
	default:
		return 0
	}
}

// ParseDate parses a ledger calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}
