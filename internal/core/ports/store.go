package ports

import (
	"context"

	"github.com/sweepr/sweepr/internal/core/domain"
)

// StoreScope identifies the state of one wallet. Stores of different
// scopes never share data.
type StoreScope struct {
	Network  string
	Template string
	RunID    string
	// Resume reuses the state of previous runs of the same network and
	// template instead of a fresh one.
	Resume bool
}

// StateStore persists the utxo set and scan frontier of a single wallet.
// It is owned by one wallet and never shared.
type StateStore interface {
	// ApplySync replaces the stored view with the given snapshot, all or
	// nothing.
	ApplySync(ctx context.Context, snapshot domain.SyncSnapshot) error
	// Balance returns the balance recorded by the sync of the given run. It
	// fails with domain.ErrStaleBalance if the last sync belongs to another
	// run.
	Balance(ctx context.Context, runID string) (domain.Balance, error)
	// ListUtxos returns the utxos recorded by the sync of the given run.
	ListUtxos(ctx context.Context, runID string) ([]domain.Utxo, error)
	// Frontier returns the last used indexes found by previous syncs.
	Frontier(ctx context.Context) (domain.Frontier, error)
	Close() error
}

// StateStoreFactory opens the state store of a wallet.
type StateStoreFactory interface {
	Open(scope StoreScope) (StateStore, error)
}
