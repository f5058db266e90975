package trades

import "database/sql"

// TradesSchema mirrors the remote store's trades table: one row per recorded
// trade, profit/loss nullable, commission defaulted.
const TradesSchema = `
CREATE TABLE IF NOT EXISTS trades (
    id TEXT PRIMARY KEY,
    date TEXT NOT NULL,
    trade_type TEXT NOT NULL DEFAULT 'Stocks',
    stocks TEXT NOT NULL DEFAULT '',
    profit REAL,
    loss REAL,
    commission REAL NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
CREATE INDEX IF NOT EXISTS idx_trades_type ON trades(trade_type);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(TradesSchema)
	return err
}
