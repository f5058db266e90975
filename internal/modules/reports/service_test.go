package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/internal/domain"
	"tradebook/internal/events"
)

func f(v float64) *float64 { return &v }

// memStore is an in-memory snapshot store for exercising the service without
// sqlite.
type memStore struct {
	portfolio domain.Portfolio
}

func (m *memStore) Load(ctx context.Context) (*domain.Portfolio, error) {
	p := m.portfolio
	return &p, nil
}

func (m *memStore) Save(ctx context.Context, p *domain.Portfolio) error {
	m.portfolio = *p
	return nil
}

func newTestService() (*Service, *memStore) {
	store := &memStore{
		portfolio: domain.Portfolio{
			OpeningBalance: 10000,
			Trades: []domain.Trade{
				{ID: "t1", Date: "2024-01-15", Stocks: "AAPL", Profit: f(500), Commission: 10},
				{ID: "t2", Date: "2024-01-16", TradeType: domain.TradeTypeOptions, Loss: f(120), Commission: 5},
			},
			CashFlows: []domain.CashFlow{
				{ID: "c1", Date: "2024-01-10", Amount: 2000},
			},
		},
	}
	return NewService(store, zerolog.Nop()), store
}

func TestSummary(t *testing.T) {
	service, _ := newTestService()

	summary, err := service.Summary(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 10000, summary.OpeningBalance, 1e-9)
	assert.InDelta(t, 12365, summary.CurrentBalance, 1e-9) // 10000+2000+490-125
	assert.InDelta(t, 365, summary.TotalProfitLoss, 1e-9)
	assert.InDelta(t, 2000, summary.TotalCashFlow, 1e-9)
	assert.InDelta(t, 3.04, summary.ROI, 1e-9) // 365/12000*100 = 3.0417 -> 3.04
	assert.InDelta(t, 50.0, summary.WinRate, 1e-9)
	assert.InDelta(t, 15, summary.TotalCommission, 1e-9)
	assert.Equal(t, 2, summary.TradeCount)
	require.NotNil(t, summary.BestTrade)
	assert.Equal(t, "t1", summary.BestTrade.ID)
	require.NotNil(t, summary.WorstTrade)
	assert.Equal(t, "t2", summary.WorstTrade.ID)
}

func TestSummaryEmptyLedger(t *testing.T) {
	service := NewService(&memStore{}, zerolog.Nop())

	summary, err := service.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.ROI)
	assert.Zero(t, summary.WinRate)
	assert.Nil(t, summary.BestTrade)
	assert.Nil(t, summary.WorstTrade)
}

func TestHandleSummaryEndpoint(t *testing.T) {
	service, _ := newTestService()
	handler := NewHandler(service, events.NewManager(zerolog.Nop()), zerolog.Nop())

	req := httptest.NewRequest("GET", "/reports/summary", nil)
	w := httptest.NewRecorder()
	handler.HandleSummary(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var summary Summary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))
	assert.InDelta(t, 12365, summary.CurrentBalance, 1e-9)
}

func TestHandleBalanceHistoryWithSmoothing(t *testing.T) {
	service, _ := newTestService()
	handler := NewHandler(service, events.NewManager(zerolog.Nop()), zerolog.Nop())

	req := httptest.NewRequest("GET", "/reports/balance-history?smooth=2", nil)
	w := httptest.NewRecorder()
	handler.HandleBalanceHistory(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		History  []map[string]interface{} `json:"history"`
		Smoothed []map[string]interface{} `json:"smoothed"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Len(t, response.History, 3)
	assert.Len(t, response.Smoothed, 2)
}

func TestHandleBalanceHistoryInvalidSmooth(t *testing.T) {
	service, _ := newTestService()
	handler := NewHandler(service, events.NewManager(zerolog.Nop()), zerolog.Nop())

	req := httptest.NewRequest("GET", "/reports/balance-history?smooth=1", nil)
	w := httptest.NewRecorder()
	handler.HandleBalanceHistory(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleByType(t *testing.T) {
	service, _ := newTestService()
	handler := NewHandler(service, events.NewManager(zerolog.Nop()), zerolog.Nop())

	req := httptest.NewRequest("GET", "/reports/by-type", nil)
	w := httptest.NewRecorder()
	handler.HandleByType(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var breakdown TypeBreakdown
	require.NoError(t, json.NewDecoder(w.Body).Decode(&breakdown))
	assert.Len(t, breakdown.Breakdown, 3)
	assert.Equal(t, 1, breakdown.Counts[domain.TradeTypeStocks])
	assert.Equal(t, 1, breakdown.Counts[domain.TradeTypeOptions])
	assert.InDelta(t, 100.0, breakdown.WinRates[domain.TradeTypeStocks], 1e-9)
}

func TestHandleRestorePortfolio(t *testing.T) {
	service, store := newTestService()
	handler := NewHandler(service, events.NewManager(zerolog.Nop()), zerolog.Nop())

	snapshot := domain.Portfolio{
		OpeningBalance: 500,
		Trades: []domain.Trade{
			{Date: "2024-02-01", Profit: f(50)}, // no id: assigned on restore
		},
		CashFlows: []domain.CashFlow{},
	}
	body, _ := json.Marshal(snapshot)

	req := httptest.NewRequest("PUT", "/portfolio", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleRestorePortfolio(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.portfolio.Trades, 1)
	assert.NotEmpty(t, store.portfolio.Trades[0].ID)
	assert.InDelta(t, 500, store.portfolio.OpeningBalance, 1e-9)
}

func TestHandleRestoreRejectsBadDates(t *testing.T) {
	service, _ := newTestService()
	handler := NewHandler(service, events.NewManager(zerolog.Nop()), zerolog.Nop())

	body, _ := json.Marshal(domain.Portfolio{
		Trades: []domain.Trade{{ID: "x", Date: "tomorrow", Profit: f(1)}},
	})

	req := httptest.NewRequest("PUT", "/portfolio", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleRestorePortfolio(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWriteCSV(t *testing.T) {
	service, _ := newTestService()

	var buf bytes.Buffer
	require.NoError(t, service.WriteCSV(context.Background(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4) // header + 3 transactions

	assert.Equal(t, "Date,Type,Trade Type,Instrument,Amount,Commission", lines[0])
	// Date-sorted: cash flow first.
	assert.Contains(t, lines[1], "2024-01-10")
	assert.Contains(t, lines[1], "Cash In")
	assert.Contains(t, lines[2], "490.00")
	assert.Contains(t, lines[3], "-125.00")
}
