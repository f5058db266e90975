package analytics

import (
	"math"

	"tradebook/internal/domain"
	"tradebook/pkg/formulas"
)

// RiskMetrics summarizes the shape of the equity curve and the distribution
// of daily results.
type RiskMetrics struct {
	MaxDrawdown     float64 `json:"maxDrawdown"`     // deepest peak-to-trough fall, fraction
	CurrentDrawdown float64 `json:"currentDrawdown"` // fall from peak at last point, fraction
	ProfitFactor    float64 `json:"profitFactor"`    // gross profit / gross loss; 0 when no losses
	Expectancy      float64 `json:"expectancy"`      // mean daily net
	DailyVolatility float64 `json:"dailyVolatility"` // stddev of daily nets
	SharpeRatio     float64 `json:"sharpeRatio"`     // annualized, from equity-curve returns
}

// Risk computes equity-curve and daily-distribution metrics for a portfolio.
// Zero-valued metrics mean "not enough data", never an error.
func Risk(p domain.Portfolio) RiskMetrics {
	var m RiskMetrics

	history := BalanceHistory(p)
	equity := make([]float64, len(history))
	for i, pt := range history {
		equity[i] = pt.Balance
	}
	if dd := formulas.Drawdown(equity); dd != nil {
		m.MaxDrawdown = dd.MaxDrawdown
		m.CurrentDrawdown = dd.CurrentDrawdown
	}
	// Risk-free rate 0: cash parked in the ledger earns nothing.
	if sharpe := formulas.SharpeRatio(formulas.Returns(equity), 0, 252); sharpe != nil {
		m.SharpeRatio = roundTo(*sharpe, 2)
	}

	daily := DailyStats(p.Trades)
	nets := make([]float64, len(daily))
	grossProfit, grossLoss := 0.0, 0.0
	for i, day := range daily {
		nets[i] = day.Net
		grossProfit += day.Profit
		grossLoss += day.Loss
	}
	if grossLoss > 0 {
		m.ProfitFactor = roundTo(grossProfit/grossLoss, 2)
	}
	m.Expectancy = formulas.Mean(nets)
	m.DailyVolatility = formulas.StdDev(nets)

	return m
}

// SmoothedBalance returns the balance series with a simple moving average
// over the given number of points, for chart overlays. Points inside the
// warm-up window are omitted. Nil when the series is shorter than the period.
func SmoothedBalance(p domain.Portfolio, period int) []BalancePoint {
	history := BalanceHistory(p)
	equity := make([]float64, len(history))
	for i, pt := range history {
		equity[i] = pt.Balance
	}

	sma := formulas.SMA(equity, period)
	if sma == nil {
		return nil
	}

	smoothed := make([]BalancePoint, 0, len(history))
	for i, pt := range history {
		if math.IsNaN(sma[i]) || (i < period-1) {
			continue
		}
		smoothed = append(smoothed, BalancePoint{Date: pt.Date, Balance: sma[i], Type: pt.Type})
	}
	return smoothed
}
