package formulas

import (
	"math"
)

// SharpeRatio computes the annualized Sharpe ratio from periodic returns.
//
//	Sharpe = (mean return - periodic risk-free rate) / stddev of returns
//	Annualized: Sharpe x sqrt(periodsPerYear)
//
// riskFreeRate is annual, as a decimal. Nil with fewer than two returns or
// zero volatility.
func SharpeRatio(returns []float64, riskFreeRate float64, periodsPerYear int) *float64 {
	if len(returns) < 2 {
		return nil
	}

	stdDev := StdDev(returns)
	if stdDev == 0 {
		return nil
	}

	periodicRiskFree := riskFreeRate / float64(periodsPerYear)
	sharpe := (Mean(returns) - periodicRiskFree) / stdDev

	annualized := sharpe * math.Sqrt(float64(periodsPerYear))
	return &annualized
}
