package analytics

import (
	"sort"

	"tradebook/internal/domain"
)

// DailyStat aggregates one calendar date's trades. Profit and Loss are
// per-side sums with commission applied (subtracted from wins, added to
// losses) and Net is their difference, so daily nets summed over all days
// reconcile exactly with TotalProfitLoss.
type DailyStat struct {
	Date       string  `json:"date"`
	Profit     float64 `json:"profit"`
	Loss       float64 `json:"loss"`
	Commission float64 `json:"commission"`
	Net        float64 `json:"net"`
	Trades     int     `json:"trades"`
}

// DailyStats groups trades by calendar date in ascending order. Trades with
// malformed dates have no calendar day to land on and are skipped.
func DailyStats(trades []domain.Trade) []DailyStat {
	byDate := make(map[string]*DailyStat)
	for _, tr := range trades {
		if !domain.ValidDate(tr.Date) {
			continue
		}
		day, ok := byDate[tr.Date]
		if !ok {
			day = &DailyStat{Date: tr.Date}
			byDate[tr.Date] = day
		}

		switch {
		case tr.HasProfit():
			day.Profit += *tr.Profit - tr.Commission
		case tr.HasLoss():
			day.Loss += *tr.Loss + tr.Commission
		}
		day.Commission += tr.Commission
		day.Trades++
	}

	stats := make([]DailyStat, 0, len(byDate))
	for _, day := range byDate {
		day.Net = day.Profit - day.Loss
		stats = append(stats, *day)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date < stats[j].Date })
	return stats
}
