package trades

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"tradebook/internal/domain"
)

// Repository handles trade persistence in the local ledger database.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new trade repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "trades").Logger(),
	}
}

const tradeColumns = "id, date, trade_type, stocks, profit, loss, commission"

// Create inserts a new trade.
func (r *Repository) Create(trade domain.Trade) error {
	query := `
		INSERT INTO trades (id, date, trade_type, stocks, profit, loss, commission, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := r.db.Exec(
		query,
		trade.ID,
		trade.Date,
		string(trade.Type()),
		trade.Stocks,
		trade.Profit,
		trade.Loss,
		trade.Commission,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}
	return nil
}

// GetByID retrieves a trade by id, nil when absent.
func (r *Repository) GetByID(id string) (*domain.Trade, error) {
	query := "SELECT " + tradeColumns + " FROM trades WHERE id = ?"

	trade, err := scanTrade(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}
	return &trade, nil
}

// GetAll returns every trade in replay order: date ascending, then creation
// order. This ordering is what makes balance reconstruction deterministic for
// same-day records.
func (r *Repository) GetAll() ([]domain.Trade, error) {
	query := "SELECT " + tradeColumns + " FROM trades ORDER BY date ASC, created_at ASC, id ASC"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	return scanTrades(rows)
}

// Update rewrites every mutable field of an existing trade (id is immutable).
// Returns false when no trade has that id.
func (r *Repository) Update(trade domain.Trade) (bool, error) {
	query := `
		UPDATE trades
		SET date = ?, trade_type = ?, stocks = ?, profit = ?, loss = ?, commission = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(
		query,
		trade.Date,
		string(trade.Type()),
		trade.Stocks,
		trade.Profit,
		trade.Loss,
		trade.Commission,
		trade.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update trade: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// Delete removes a trade by id. Returns false when no trade has that id.
func (r *Repository) Delete(id string) (bool, error) {
	result, err := r.db.Exec("DELETE FROM trades WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete trade: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// ReplaceAll swaps the full trade set inside an existing transaction, used by
// snapshot restore. Creation order follows slice order so replay stays stable.
func (r *Repository) ReplaceAll(tx *sql.Tx, trades []domain.Trade) error {
	if _, err := tx.Exec("DELETE FROM trades"); err != nil {
		return fmt.Errorf("failed to clear trades: %w", err)
	}

	base := time.Now().UTC()
	for i, trade := range trades {
		createdAt := base.Add(time.Duration(i) * time.Microsecond).Format(time.RFC3339Nano)
		_, err := tx.Exec(
			`INSERT INTO trades (id, date, trade_type, stocks, profit, loss, commission, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			trade.ID,
			trade.Date,
			string(trade.Type()),
			trade.Stocks,
			trade.Profit,
			trade.Loss,
			trade.Commission,
			createdAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trade %s: %w", trade.ID, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row rowScanner) (domain.Trade, error) {
	var tr domain.Trade
	var tradeType string
	var profit, loss sql.NullFloat64

	err := row.Scan(&tr.ID, &tr.Date, &tradeType, &tr.Stocks, &profit, &loss, &tr.Commission)
	if err != nil {
		return domain.Trade{}, err
	}

	tr.TradeType = domain.TradeType(tradeType)
	if profit.Valid {
		tr.Profit = &profit.Float64
	}
	if loss.Valid {
		tr.Loss = &loss.Float64
	}
	return tr, nil
}

func scanTrades(rows *sql.Rows) ([]domain.Trade, error) {
	var trades []domain.Trade
	for rows.Next() {
		tr, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}
	return trades, nil
}
