package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"tradebook/internal/domain"
)

// Fallback composes the remote store with the local store of record: the
// remote is preferred but never trusted to be available. Load tries the
// remote first and mirrors a successful result into the local store; on any
// remote failure it serves the local snapshot. Save always writes locally
// and pushes to the remote best-effort.
type Fallback struct {
	remote Store
	local  Store
	log    zerolog.Logger
}

// NewFallback creates the composite store. remote may be nil, which degrades
// to local-only operation.
func NewFallback(remote, local Store, log zerolog.Logger) *Fallback {
	return &Fallback{
		remote: remote,
		local:  local,
		log:    log.With().Str("store", "fallback").Logger(),
	}
}

// Load prefers the remote snapshot, falling back to the local one.
func (s *Fallback) Load(ctx context.Context) (*domain.Portfolio, error) {
	if s.remote != nil {
		p, err := s.remote.Load(ctx)
		if err == nil {
			// Keep the local store of record converged with what we served.
			if saveErr := s.local.Save(ctx, p); saveErr != nil {
				s.log.Warn().Err(saveErr).Msg("Failed to mirror remote snapshot locally")
			}
			return p, nil
		}
		s.log.Warn().Err(err).Msg("Remote load failed, falling back to local store")
	}

	return s.local.Load(ctx)
}

// Save writes the local store of record first; a local failure is an error,
// a remote failure is only logged.
func (s *Fallback) Save(ctx context.Context, p *domain.Portfolio) error {
	if err := s.local.Save(ctx, p); err != nil {
		return fmt.Errorf("fallback save: %w", err)
	}

	if s.remote != nil {
		if err := s.remote.Save(ctx, p); err != nil {
			s.log.Warn().Err(err).Msg("Remote save failed, local store remains the record")
		}
	}
	return nil
}
