package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/internal/domain"
)

func f(v float64) *float64 { return &v }

func TestCurrentBalance(t *testing.T) {
	p := domain.Portfolio{
		OpeningBalance: 10000,
		Trades: []domain.Trade{
			{ID: "t1", Date: "2024-02-01", Profit: f(500), Commission: 10},
			{ID: "t2", Date: "2024-02-02", Loss: f(200), Commission: 5},
		},
		CashFlows: []domain.CashFlow{
			{ID: "c1", Date: "2024-01-10", Amount: 2000},
			{ID: "c2", Date: "2024-01-20", Amount: -500},
		},
	}

	// 10000 + 2000 - 500 + 490 - 205
	assert.InDelta(t, 11785, CurrentBalance(p), 1e-9)
}

func TestCurrentBalanceOrderIndependent(t *testing.T) {
	trades := []domain.Trade{
		{Date: "2024-03-05", Profit: f(100), Commission: 1},
		{Date: "2024-03-01", Loss: f(40), Commission: 2},
		{Date: "2024-03-03", Profit: f(75)},
	}
	cashFlows := []domain.CashFlow{
		{Date: "2024-03-04", Amount: 300},
		{Date: "2024-03-02", Amount: -100},
	}

	forward := domain.Portfolio{OpeningBalance: 1000, Trades: trades, CashFlows: cashFlows}

	reversed := domain.Portfolio{OpeningBalance: 1000}
	for i := len(trades) - 1; i >= 0; i-- {
		reversed.Trades = append(reversed.Trades, trades[i])
	}
	for i := len(cashFlows) - 1; i >= 0; i-- {
		reversed.CashFlows = append(reversed.CashFlows, cashFlows[i])
	}

	assert.InDelta(t, CurrentBalance(forward), CurrentBalance(reversed), 1e-9)
}

func TestCurrentBalanceMalformedDateStillCounts(t *testing.T) {
	p := domain.Portfolio{
		OpeningBalance: 100,
		Trades:         []domain.Trade{{Date: "garbage", Profit: f(50)}},
	}
	assert.InDelta(t, 150, CurrentBalance(p), 1e-9)
}

func TestBalanceHistory(t *testing.T) {
	p := domain.Portfolio{
		OpeningBalance: 10000,
		Trades: []domain.Trade{
			{ID: "t1", Date: "2024-01-15", Profit: f(500), Commission: 10},
		},
		CashFlows: []domain.CashFlow{
			{ID: "c1", Date: "2024-01-10", Amount: 2000},
		},
	}

	history := BalanceHistory(p)
	require.Len(t, history, 2)

	assert.Equal(t, "2024-01-10", history[0].Date)
	assert.InDelta(t, 12000, history[0].Balance, 1e-9)
	assert.Equal(t, TransactionCash, history[0].Type)

	assert.Equal(t, "2024-01-15", history[1].Date)
	assert.InDelta(t, 12490, history[1].Balance, 1e-9)
	assert.Equal(t, TransactionTrade, history[1].Type)

	// Scalar result and last series point agree.
	assert.InDelta(t, CurrentBalance(p), history[1].Balance, 1e-9)
}

func TestBalanceHistorySameDateCashBeforeTrade(t *testing.T) {
	p := domain.Portfolio{
		OpeningBalance: 100,
		Trades: []domain.Trade{
			{ID: "t1", Date: "2024-01-10", Profit: f(10)},
		},
		CashFlows: []domain.CashFlow{
			{ID: "c1", Date: "2024-01-10", Amount: 50},
		},
	}

	history := BalanceHistory(p)
	require.Len(t, history, 2)
	assert.Equal(t, TransactionCash, history[0].Type)
	assert.InDelta(t, 150, history[0].Balance, 1e-9)
	assert.Equal(t, TransactionTrade, history[1].Type)
	assert.InDelta(t, 160, history[1].Balance, 1e-9)
}

func TestBalanceHistorySkipsMalformedDates(t *testing.T) {
	p := domain.Portfolio{
		OpeningBalance: 100,
		Trades: []domain.Trade{
			{ID: "bad", Date: "2024-13-45", Profit: f(10)},
			{ID: "ok", Date: "2024-01-05", Profit: f(20)},
		},
	}

	history := BalanceHistory(p)
	require.Len(t, history, 1)
	assert.Equal(t, "2024-01-05", history[0].Date)
	assert.InDelta(t, 120, history[0].Balance, 1e-9)
}

func TestBalanceHistoryEmpty(t *testing.T) {
	history := BalanceHistory(domain.Portfolio{OpeningBalance: 500})
	assert.Empty(t, history)
}
