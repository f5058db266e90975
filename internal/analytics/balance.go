// Package analytics derives balances, time series and aggregate statistics
// from a portfolio snapshot. Every function is pure: it reads the snapshot,
// performs no I/O, and degrades on malformed input instead of failing.
package analytics

import (
	"sort"

	"tradebook/internal/domain"
)

// TransactionType tags a balance-history point with its source record kind.
type TransactionType string

const (
	TransactionCash  TransactionType = "cash"
	TransactionTrade TransactionType = "trade"
)

// BalancePoint is the balance immediately after one transaction was applied.
type BalancePoint struct {
	Date    string          `json:"date"`
	Balance float64         `json:"balance"`
	Type    TransactionType `json:"type"`
}

// CurrentBalance replays every cash flow and trade on top of the opening
// balance. Summation is commutative, so the result is independent of record
// order and of record dates; entries with malformed dates still count.
func CurrentBalance(p domain.Portfolio) float64 {
	balance := p.OpeningBalance
	for _, cf := range p.CashFlows {
		balance += cf.Amount
	}
	for _, tr := range p.Trades {
		balance += tr.Net()
	}
	return balance
}

type transaction struct {
	date   string
	amount float64
	kind   TransactionType
}

// BalanceHistory reconstructs the balance after each transaction in
// chronological order. Ordering is deterministic: date ascending, cash flows
// before trades on the same date, input order otherwise (the local store
// returns records in creation order, so replay is stable across loads).
// Records with unparseable dates cannot be placed on the timeline and are
// omitted from the series; they still count toward CurrentBalance.
func BalanceHistory(p domain.Portfolio) []BalancePoint {
	txs := make([]transaction, 0, len(p.CashFlows)+len(p.Trades))
	for _, cf := range p.CashFlows {
		if !domain.ValidDate(cf.Date) {
			continue
		}
		txs = append(txs, transaction{date: cf.Date, amount: cf.Amount, kind: TransactionCash})
	}
	for _, tr := range p.Trades {
		if !domain.ValidDate(tr.Date) {
			continue
		}
		txs = append(txs, transaction{date: tr.Date, amount: tr.Net(), kind: TransactionTrade})
	}

	// YYYY-MM-DD sorts chronologically as a string.
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].date < txs[j].date
	})

	history := make([]BalancePoint, 0, len(txs))
	balance := p.OpeningBalance
	for _, tx := range txs {
		balance += tx.amount
		history = append(history, BalancePoint{Date: tx.date, Balance: balance, Type: tx.kind})
	}
	return history
}
