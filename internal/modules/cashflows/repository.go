package cashflows

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"tradebook/internal/domain"
)

// Repository handles cash flow persistence in the local ledger database.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new cash flow repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "cash_flows").Logger(),
	}
}

// Create inserts a new cash flow.
func (r *Repository) Create(cf domain.CashFlow) error {
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := r.db.Exec(
		"INSERT INTO cash_flows (id, date, amount, created_at) VALUES (?, ?, ?, ?)",
		cf.ID, cf.Date, cf.Amount, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cash flow: %w", err)
	}
	return nil
}

// GetByID retrieves a cash flow by id, nil when absent.
func (r *Repository) GetByID(id string) (*domain.CashFlow, error) {
	var cf domain.CashFlow
	err := r.db.QueryRow(
		"SELECT id, date, amount FROM cash_flows WHERE id = ?", id,
	).Scan(&cf.ID, &cf.Date, &cf.Amount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cash flow: %w", err)
	}
	return &cf, nil
}

// GetAll returns every cash flow in replay order: date ascending, then
// creation order.
func (r *Repository) GetAll() ([]domain.CashFlow, error) {
	rows, err := r.db.Query(
		"SELECT id, date, amount FROM cash_flows ORDER BY date ASC, created_at ASC, id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash flows: %w", err)
	}
	defer rows.Close()

	var cashFlows []domain.CashFlow
	for rows.Next() {
		var cf domain.CashFlow
		if err := rows.Scan(&cf.ID, &cf.Date, &cf.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan cash flow: %w", err)
		}
		cashFlows = append(cashFlows, cf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash flows: %w", err)
	}
	return cashFlows, nil
}

// Delete removes a cash flow by id. Returns false when no row has that id.
func (r *Repository) Delete(id string) (bool, error) {
	result, err := r.db.Exec("DELETE FROM cash_flows WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete cash flow: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// ReplaceAll swaps the full cash flow set inside an existing transaction,
// used by snapshot restore.
func (r *Repository) ReplaceAll(tx *sql.Tx, cashFlows []domain.CashFlow) error {
	if _, err := tx.Exec("DELETE FROM cash_flows"); err != nil {
		return fmt.Errorf("failed to clear cash flows: %w", err)
	}

	base := time.Now().UTC()
	for i, cf := range cashFlows {
		createdAt := base.Add(time.Duration(i) * time.Microsecond).Format(time.RFC3339Nano)
		_, err := tx.Exec(
			"INSERT INTO cash_flows (id, date, amount, created_at) VALUES (?, ?, ?, ?)",
			cf.ID, cf.Date, cf.Amount, createdAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cash flow %s: %w", cf.ID, err)
		}
	}
	return nil
}
