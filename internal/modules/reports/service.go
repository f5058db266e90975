package reports

import (
	"context"

	"github.com/rs/zerolog"

	"tradebook/internal/analytics"
	"tradebook/internal/domain"
	"tradebook/internal/storage"
)

// Summary carries every scalar the dashboard shows, recomputed from the
// current snapshot on each request.
type Summary struct {
	OpeningBalance  float64       `json:"openingBalance"`
	CurrentBalance  float64       `json:"currentBalance"`
	TotalProfitLoss float64       `json:"totalProfitLoss"`
	TotalCashFlow   float64       `json:"totalCashFlow"`
	ROI             float64       `json:"roi"`
	WinRate         float64       `json:"winRate"`
	TotalCommission float64       `json:"totalCommission"`
	TradeCount      int           `json:"tradeCount"`
	BestTrade       *domain.Trade `json:"bestTrade"`
	WorstTrade      *domain.Trade `json:"worstTrade"`
}

// TypeBreakdown bundles the per-category views so the dashboard needs one
// request for the whole tab.
type TypeBreakdown struct {
	Breakdown map[domain.TradeType]analytics.TypeStats `json:"breakdown"`
	Counts    map[domain.TradeType]int                 `json:"counts"`
	WinRates  map[domain.TradeType]float64             `json:"winRates"`
}

// Service computes report payloads from the active snapshot store.
type Service struct {
	store storage.Store
	log   zerolog.Logger
}

// NewService creates a new reports service
func NewService(store storage.Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("service", "reports").Logger(),
	}
}

// Portfolio returns the raw snapshot.
func (s *Service) Portfolio(ctx context.Context) (*domain.Portfolio, error) {
	return s.store.Load(ctx)
}

// Restore replaces the stored snapshot with an imported one.
func (s *Service) Restore(ctx context.Context, p *domain.Portfolio) error {
	return s.store.Save(ctx, p)
}

// Summary computes the dashboard scalars.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	p, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	totalPL := analytics.TotalProfitLoss(p.Trades)
	totalCash := analytics.TotalCashFlow(p.CashFlows)

	return &Summary{
		OpeningBalance:  p.OpeningBalance,
		CurrentBalance:  analytics.CurrentBalance(*p),
		TotalProfitLoss: totalPL,
		TotalCashFlow:   totalCash,
		ROI:             analytics.ROI(p.OpeningBalance, totalPL, totalCash),
		WinRate:         analytics.WinRate(p.Trades),
		TotalCommission: analytics.TotalCommission(p.Trades),
		TradeCount:      len(p.Trades),
		BestTrade:       analytics.BestTrade(p.Trades),
		WorstTrade:      analytics.WorstTrade(p.Trades),
	}, nil
}

// BalanceHistory returns the balance-over-time series for charting.
func (s *Service) BalanceHistory(ctx context.Context) ([]analytics.BalancePoint, error) {
	p, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.BalanceHistory(*p), nil
}

// SmoothedBalanceHistory returns the SMA overlay for the balance chart.
func (s *Service) SmoothedBalanceHistory(ctx context.Context, period int) ([]analytics.BalancePoint, error) {
	p, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.SmoothedBalance(*p, period), nil
}

// Daily returns the per-calendar-date rollups.
func (s *Service) Daily(ctx context.Context) ([]analytics.DailyStat, error) {
	p, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.DailyStats(p.Trades), nil
}

// ByType returns the per-instrument-category views.
func (s *Service) ByType(ctx context.Context) (*TypeBreakdown, error) {
	p, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &TypeBreakdown{
		Breakdown: analytics.BreakdownByType(p.Trades),
		Counts:    analytics.CountByType(p.Trades),
		WinRates:  analytics.WinRateByType(p.Trades),
	}, nil
}

// Risk returns equity-curve risk metrics.
func (s *Service) Risk(ctx context.Context) (analytics.RiskMetrics, error) {
	p, err := s.store.Load(ctx)
	if err != nil {
		return analytics.RiskMetrics{}, err
	}
	return analytics.Risk(*p), nil
}
