// Package storage defines the snapshot boundary between the ledger and its
// persistence backends: a Store loads and saves whole Portfolio snapshots.
// The analytics core never touches a Store; it only sees the loaded value.
package storage

import (
	"context"

	"tradebook/internal/domain"
)

// Store loads and saves portfolio snapshots.
type Store interface {
	Load(ctx context.Context) (*domain.Portfolio, error)
	Save(ctx context.Context, p *domain.Portfolio) error
}
