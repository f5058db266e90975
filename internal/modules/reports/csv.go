package reports

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"tradebook/internal/domain"
)

// csvHeaders matches the columns the web app's export always produced.
var csvHeaders = []string{"Date", "Type", "Trade Type", "Instrument", "Amount", "Commission"}

// WriteCSV streams every transaction as CSV, trades and cash flows merged
// and sorted by date. Trade amounts are commission-netted, cash flows keep
// their signed amount.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer) error {
	p, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	type row struct {
		date   string
		fields []string
	}
	rows := make([]row, 0, len(p.Trades)+len(p.CashFlows))

	for _, tr := range p.Trades {
		instrument := tr.Stocks
		if instrument == "" {
			instrument = "N/A"
		}
		rows = append(rows, row{
			date: tr.Date,
			fields: []string{
				tr.Date,
				"Trade",
				string(tr.Type()),
				instrument,
				fmt.Sprintf("%.2f", tr.Net()),
				fmt.Sprintf("%.2f", tr.Commission),
			},
		})
	}

	for _, cf := range p.CashFlows {
		direction := "Cash In"
		if cf.Amount < 0 {
			direction = "Cash Out"
		}
		rows = append(rows, row{
			date: cf.Date,
			fields: []string{
				cf.Date,
				"Cash Flow",
				"-",
				direction,
				fmt.Sprintf("%.2f", cf.Amount),
				"0.00",
			},
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].date < rows[j].date })

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("csv export: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.fields); err != nil {
			return fmt.Errorf("csv export: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// restoreIDs fills in ids missing from an imported snapshot so that a
// restored ledger stays addressable for edits and deletes.
func restoreIDs(p *domain.Portfolio, newID func() string) {
	for i := range p.Trades {
		if p.Trades[i].ID == "" {
			p.Trades[i].ID = newID()
		}
	}
	for i := range p.CashFlows {
		if p.CashFlows[i].ID == "" {
			p.CashFlows[i].ID = newID()
		}
	}
}
