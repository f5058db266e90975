package settings

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

const openingBalanceKey = "opening_balance"

// Repository handles portfolio settings persistence.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new settings repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "settings").Logger(),
	}
}

// OpeningBalance returns the stored opening balance, 0 when never set.
func (r *Repository) OpeningBalance() (float64, error) {
	var value float64
	err := r.db.QueryRow(
		"SELECT value FROM portfolio_settings WHERE key = ?", openingBalanceKey,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get opening balance: %w", err)
	}
	return value, nil
}

// SetOpeningBalance upserts the opening balance.
func (r *Repository) SetOpeningBalance(value float64) error {
	_, err := r.db.Exec(
		`INSERT INTO portfolio_settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		openingBalanceKey, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set opening balance: %w", err)
	}
	return nil
}

// SetOpeningBalanceTx upserts the opening balance inside an existing
// transaction, used by snapshot restore.
func (r *Repository) SetOpeningBalanceTx(tx *sql.Tx, value float64) error {
	_, err := tx.Exec(
		`INSERT INTO portfolio_settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		openingBalanceKey, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set opening balance: %w", err)
	}
	return nil
}
