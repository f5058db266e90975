package analytics

import "tradebook/internal/domain"

// TypeStats is one instrument category's slice of the ledger. Profit and Loss
// are commission-netted per-side sums, Net their difference.
type TypeStats struct {
	Profit     float64 `json:"profit"`
	Loss       float64 `json:"loss"`
	Commission float64 `json:"commission"`
	Net        float64 `json:"net"`
	Trades     int     `json:"trades"`
}

// BreakdownByType partitions trades by instrument category. The three
// canonical categories are always present (zero-valued when empty) so
// consumers never guard for missing keys; unrecognized category strings are
// preserved as additional keys rather than rejected.
func BreakdownByType(trades []domain.Trade) map[domain.TradeType]TypeStats {
	breakdown := make(map[domain.TradeType]TypeStats, len(domain.CanonicalTradeTypes))
	for _, tt := range domain.CanonicalTradeTypes {
		breakdown[tt] = TypeStats{}
	}

	for _, tr := range trades {
		stats := breakdown[tr.Type()]

		switch {
		case tr.HasProfit():
			stats.Profit += *tr.Profit - tr.Commission
		case tr.HasLoss():
			stats.Loss += *tr.Loss + tr.Commission
		}
		stats.Commission += tr.Commission
		stats.Trades++

		breakdown[tr.Type()] = stats
	}

	for tt, stats := range breakdown {
		stats.Net = stats.Profit - stats.Loss
		breakdown[tt] = stats
	}
	return breakdown
}

// CountByType returns the number of trades per category, canonical categories
// always present.
func CountByType(trades []domain.Trade) map[domain.TradeType]int {
	counts := make(map[domain.TradeType]int, len(domain.CanonicalTradeTypes))
	for _, tt := range domain.CanonicalTradeTypes {
		counts[tt] = 0
	}
	for _, tr := range trades {
		counts[tr.Type()]++
	}
	return counts
}

// WinRateByType returns each category's win rate (positive net profit, one
// decimal), 0 for categories with no trades.
func WinRateByType(trades []domain.Trade) map[domain.TradeType]float64 {
	type tally struct{ wins, total int }

	tallies := make(map[domain.TradeType]*tally, len(domain.CanonicalTradeTypes))
	for _, tt := range domain.CanonicalTradeTypes {
		tallies[tt] = &tally{}
	}

	for _, tr := range trades {
		tl, ok := tallies[tr.Type()]
		if !ok {
			tl = &tally{}
			tallies[tr.Type()] = tl
		}
		tl.total++
		if tr.Net() > 0 {
			tl.wins++
		}
	}

	rates := make(map[domain.TradeType]float64, len(tallies))
	for tt, tl := range tallies {
		if tl.total == 0 {
			rates[tt] = 0
			continue
		}
		rates[tt] = roundTo(float64(tl.wins)/float64(tl.total)*100, 1)
	}
	return rates
}
