package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"tradebook/internal/domain"
)

// Remote is a thin client for the hosted portfolio endpoints: one GET
// returning the whole snapshot, one POST replacing it.
type Remote struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewRemote creates a remote snapshot store client. baseURL points at the
// endpoint root, e.g. "https://example.app/.netlify/functions".
func NewRemote(baseURL string, log zerolog.Logger) *Remote {
	return &Remote{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     log.With().Str("store", "remote").Logger(),
	}
}

// Load fetches the portfolio snapshot from the remote store. Missing fields
// default to an empty portfolio shape, never nil slices.
func (s *Remote) Load(ctx context.Context) (*domain.Portfolio, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/get-portfolio", nil)
	if err != nil {
		return nil, fmt.Errorf("remote load: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote load: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote load: unexpected status %d", resp.StatusCode)
	}

	var p domain.Portfolio
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("remote load: decode: %w", err)
	}

	if p.Trades == nil {
		p.Trades = []domain.Trade{}
	}
	if p.CashFlows == nil {
		p.CashFlows = []domain.CashFlow{}
	}
	return &p, nil
}

// Save pushes the full snapshot to the remote store.
func (s *Remote) Save(ctx context.Context, p *domain.Portfolio) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("remote save: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/save-portfolio", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("remote save: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("remote save: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("remote save: unexpected status %d", resp.StatusCode)
	}
	return nil
}
