package application

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sweepr/sweepr/internal/core/domain"
	"github.com/sweepr/sweepr/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// SyncCoordinator scans the chain for the funds of many wallets at once.
type SyncCoordinator struct {
	chain       ports.ChainClient
	stopGap     int
	callTimeout time.Duration
	resume      bool
}

func NewSyncCoordinator(
	chain ports.ChainClient, stopGap int, callTimeout time.Duration, resume bool,
) *SyncCoordinator {
	if stopGap <= 0 {
		stopGap = domain.DefaultStopGap
	}
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	return &SyncCoordinator{chain, stopGap, callTimeout, resume}
}

// SyncAll syncs all wallets concurrently. The failure of a wallet never
// stops the others and results are in the same order as the wallets.
func (s *SyncCoordinator) SyncAll(
	ctx context.Context, runID string, wallets []*CandidateWallet,
) []SyncResult {
	results := make([]SyncResult, len(wallets))

	g := new(errgroup.Group)
	for i, w := range wallets {
		i, w := i, w
		g.Go(func() error {
			results[i] = s.Sync(ctx, runID, w)
			return nil
		})
	}
	// workers never return errors
	_ = g.Wait()

	return results
}

// Sync scans both branches of the given wallet up to the stop gap, then
// applies what was found to the wallet store in one go.
func (s *SyncCoordinator) Sync(
	ctx context.Context, runID string, w *CandidateWallet,
) SyncResult {
	logger := log.WithField("template", w.Template.Name)

	snapshot, err := s.scan(ctx, runID, w)
	if err != nil {
		logger.WithError(err).Warn("sync failed")
		return SyncResult{Wallet: w, Err: domain.NewSyncError(w.Template.Name, err)}
	}

	if err := w.Store.ApplySync(ctx, *snapshot); err != nil {
		logger.WithError(err).Warn("failed to store sync result")
		return SyncResult{Wallet: w, Err: domain.NewSyncError(w.Template.Name, err)}
	}

	balance, err := w.Store.Balance(ctx, runID)
	if err != nil {
		return SyncResult{Wallet: w, Err: domain.NewSyncError(w.Template.Name, err)}
	}
	utxos, err := w.Store.ListUtxos(ctx, runID)
	if err != nil {
		return SyncResult{Wallet: w, Err: domain.NewSyncError(w.Template.Name, err)}
	}

	logger.Debugf(
		"synced at height %d: %d utxos, confirmed %d sats, unconfirmed %d sats",
		snapshot.TipHeight, len(utxos), balance.Confirmed, balance.Unconfirmed,
	)

	return SyncResult{Wallet: w, Balance: balance, Utxos: utxos}
}

func (s *SyncCoordinator) scan(
	ctx context.Context, runID string, w *CandidateWallet,
) (*domain.SyncSnapshot, error) {
	var tip int64
	if err := s.call(ctx, func(ctx context.Context) (err error) {
		tip, err = s.chain.GetBlockHeight(ctx)
		return
	}); err != nil {
		return nil, err
	}

	hint := domain.NewFrontier()
	if s.resume {
		frontier, err := w.Store.Frontier(ctx)
		if err != nil {
			return nil, err
		}
		hint = frontier
	}

	frontier := domain.NewFrontier()
	utxos := make([]domain.Utxo, 0)

	for _, chain := range domain.Branches {
		descriptor := w.Descriptor(chain)
		gap := 0
		for index := 0; gap < s.stopGap || index <= hint.Last(chain); index++ {
			key, err := descriptor.Derive(uint32(index))
			if err != nil {
				return nil, err
			}
			addr := key.Address.EncodeAddress()

			var stats ports.AddressStats
			if err := s.call(ctx, func(ctx context.Context) (err error) {
				stats, err = s.chain.GetAddressStats(ctx, addr)
				return
			}); err != nil {
				return nil, err
			}
			if !stats.IsUsed() {
				gap++
				continue
			}
			gap = 0
			frontier.Use(chain, index)

			var unspents []ports.Utxo
			if err := s.call(ctx, func(ctx context.Context) (err error) {
				unspents, err = s.chain.GetAddressUtxos(ctx, addr)
				return
			}); err != nil {
				return nil, err
			}
			for _, u := range unspents {
				utxos = append(utxos, domain.Utxo{
					TxID:        u.GetTxid(),
					VOut:        u.GetIndex(),
					Value:       u.GetValue(),
					Script:      key.Script,
					Address:     addr,
					Branch:      chain,
					Index:       uint32(index),
					Confirmed:   u.IsConfirmed(),
					BlockHeight: u.GetBlockHeight(),
				})
			}
		}
	}

	return &domain.SyncSnapshot{
		RunID:     runID,
		TipHeight: tip,
		Frontier:  frontier,
		Utxos:     utxos,
	}, nil
}

func (s *SyncCoordinator) call(
	ctx context.Context, fn func(ctx context.Context) error,
) error {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return fn(ctx)
}
