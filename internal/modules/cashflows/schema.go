package cashflows

import "database/sql"

// CashFlowsSchema mirrors the remote store's cash_flows table: one row per
// deposit or withdrawal, amount signed.
const CashFlowsSchema = `
CREATE TABLE IF NOT EXISTS cash_flows (
    id TEXT PRIMARY KEY,
    date TEXT NOT NULL,
    amount REAL NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cash_flows_date ON cash_flows(date);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(CashFlowsSchema)
	return err
}
