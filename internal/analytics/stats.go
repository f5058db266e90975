package analytics

import (
	"github.com/shopspring/decimal"

	"tradebook/internal/domain"
)

// TotalProfitLoss sums each trade's net contribution (commission subtracted
// from wins, added to losses).
func TotalProfitLoss(trades []domain.Trade) float64 {
	total := 0.0
	for _, tr := range trades {
		total += tr.Net()
	}
	return total
}

// TotalCashFlow sums the signed cash-flow amounts.
func TotalCashFlow(cashFlows []domain.CashFlow) float64 {
	total := 0.0
	for _, cf := range cashFlows {
		total += cf.Amount
	}
	return total
}

// ROI returns the return on invested capital as a percentage rounded to two
// decimals: totalPL / (openingBalance + totalCashFlow) * 100. A zero capital
// base yields 0 rather than an error; there is no meaningful return without
// capital.
func ROI(openingBalance, totalPL, totalCashFlow float64) float64 {
	invested := openingBalance + totalCashFlow
	if invested == 0 {
		return 0
	}
	return roundTo(totalPL/invested*100, 2)
}

// WinRate returns the percentage of trades with positive net profit, rounded
// to one decimal. Empty input yields 0.
func WinRate(trades []domain.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for _, tr := range trades {
		if tr.Net() > 0 {
			wins++
		}
	}
	return roundTo(float64(wins)/float64(len(trades))*100, 1)
}

// BestTrade returns the profitable trade with the largest net profit, or nil
// when no trade is net-profitable. Ties keep the first occurrence.
func BestTrade(trades []domain.Trade) *domain.Trade {
	var best *domain.Trade
	for i := range trades {
		tr := &trades[i]
		if !tr.HasProfit() || tr.Net() <= 0 {
			continue
		}
		if best == nil || tr.Net() > best.Net() {
			best = tr
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

// WorstTrade returns the losing trade with the largest net loss magnitude, or
// nil when no trade is losing. Ties keep the first occurrence.
func WorstTrade(trades []domain.Trade) *domain.Trade {
	var worst *domain.Trade
	for i := range trades {
		tr := &trades[i]
		if !tr.HasLoss() {
			continue
		}
		if worst == nil || -tr.Net() > -worst.Net() {
			worst = tr
		}
	}
	if worst == nil {
		return nil
	}
	out := *worst
	return &out
}

// TotalCommission sums commission across all trades, including zero-result
// entries whose commission never reaches the balance replay.
func TotalCommission(trades []domain.Trade) float64 {
	total := 0.0
	for _, tr := range trades {
		total += tr.Commission
	}
	return total
}

// roundTo rounds half away from zero at the given number of decimals.
// Going through decimal avoids float artifacts like 4.084999999 at the 2dp
// boundary.
func roundTo(v float64, places int32) float64 {
	r, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return r
}
