package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"tradebook/internal/database"
	"tradebook/internal/domain"
	"tradebook/internal/modules/cashflows"
	"tradebook/internal/modules/settings"
	"tradebook/internal/modules/trades"
)

// Local is the on-device store of record, assembled from the sqlite ledger
// tables. Load returns records in replay order; Save is a transactional
// replace-all, mirroring the remote endpoint's semantics.
type Local struct {
	db        *database.DB
	trades    *trades.Repository
	cashFlows *cashflows.Repository
	settings  *settings.Repository
	log       zerolog.Logger
}

// NewLocal creates the local snapshot store on top of the module repositories.
func NewLocal(
	db *database.DB,
	tradeRepo *trades.Repository,
	cashFlowRepo *cashflows.Repository,
	settingsRepo *settings.Repository,
	log zerolog.Logger,
) *Local {
	return &Local{
		db:        db,
		trades:    tradeRepo,
		cashFlows: cashFlowRepo,
		settings:  settingsRepo,
		log:       log.With().Str("store", "local").Logger(),
	}
}

// Load assembles the current portfolio snapshot.
func (s *Local) Load(ctx context.Context) (*domain.Portfolio, error) {
	openingBalance, err := s.settings.OpeningBalance()
	if err != nil {
		return nil, fmt.Errorf("local load: %w", err)
	}

	tradeList, err := s.trades.GetAll()
	if err != nil {
		return nil, fmt.Errorf("local load: %w", err)
	}

	cashFlowList, err := s.cashFlows.GetAll()
	if err != nil {
		return nil, fmt.Errorf("local load: %w", err)
	}

	if tradeList == nil {
		tradeList = []domain.Trade{}
	}
	if cashFlowList == nil {
		cashFlowList = []domain.CashFlow{}
	}

	return &domain.Portfolio{
		OpeningBalance: openingBalance,
		Trades:         tradeList,
		CashFlows:      cashFlowList,
	}, nil
}

// Save replaces the whole local ledger with the given snapshot in one
// transaction, so a failed restore never leaves a half-written ledger.
func (s *Local) Save(ctx context.Context, p *domain.Portfolio) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("local save: %w", err)
	}
	defer tx.Rollback()

	if err := s.settings.SetOpeningBalanceTx(tx, p.OpeningBalance); err != nil {
		return fmt.Errorf("local save: %w", err)
	}
	if err := s.trades.ReplaceAll(tx, p.Trades); err != nil {
		return fmt.Errorf("local save: %w", err)
	}
	if err := s.cashFlows.ReplaceAll(tx, p.CashFlows); err != nil {
		return fmt.Errorf("local save: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("local save: %w", err)
	}

	s.log.Debug().
		Int("trades", len(p.Trades)).
		Int("cash_flows", len(p.CashFlows)).
		Msg("Snapshot saved locally")
	return nil
}
