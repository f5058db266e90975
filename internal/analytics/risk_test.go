package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/internal/domain"
)

func TestRiskMetrics(t *testing.T) {
	p := domain.Portfolio{
		OpeningBalance: 1000,
		Trades: []domain.Trade{
			{Date: "2024-01-01", Profit: f(200)}, // balance 1200
			{Date: "2024-01-02", Loss: f(300)},   // balance 900 (drawdown from 1200)
			{Date: "2024-01-03", Profit: f(150)}, // balance 1050
		},
	}

	m := Risk(p)

	// Peak 1200, trough 900.
	assert.InDelta(t, 300.0/1200.0, m.MaxDrawdown, 1e-9)
	assert.InDelta(t, 150.0/1200.0, m.CurrentDrawdown, 1e-9)

	// Gross profit 350, gross loss 300.
	assert.InDelta(t, 1.17, m.ProfitFactor, 1e-9)

	// Daily nets: +200, -300, +150.
	assert.InDelta(t, 50.0/3.0, m.Expectancy, 1e-9)
	assert.Greater(t, m.DailyVolatility, 0.0)

	// Equity-curve returns average out negative here.
	assert.Less(t, m.SharpeRatio, 0.0)
}

func TestRiskMetricsEmptyPortfolio(t *testing.T) {
	m := Risk(domain.Portfolio{OpeningBalance: 500})
	assert.Zero(t, m.MaxDrawdown)
	assert.Zero(t, m.ProfitFactor)
	assert.Zero(t, m.Expectancy)
	assert.Zero(t, m.DailyVolatility)
	assert.Zero(t, m.SharpeRatio)
}

func TestSmoothedBalance(t *testing.T) {
	p := domain.Portfolio{
		OpeningBalance: 100,
		Trades: []domain.Trade{
			{Date: "2024-01-01", Profit: f(10)}, // 110
			{Date: "2024-01-02", Profit: f(10)}, // 120
			{Date: "2024-01-03", Loss: f(30)},   // 90
			{Date: "2024-01-04", Profit: f(20)}, // 110
		},
	}

	smoothed := SmoothedBalance(p, 2)
	require.Len(t, smoothed, 3)
	assert.Equal(t, "2024-01-02", smoothed[0].Date)
	assert.InDelta(t, 115, smoothed[0].Balance, 1e-9)
	assert.InDelta(t, 105, smoothed[1].Balance, 1e-9)
	assert.InDelta(t, 100, smoothed[2].Balance, 1e-9)
}

func TestSmoothedBalanceTooShort(t *testing.T) {
	p := domain.Portfolio{
		OpeningBalance: 100,
		Trades:         []domain.Trade{{Date: "2024-01-01", Profit: f(10)}},
	}
	assert.Nil(t, SmoothedBalance(p, 5))
}
