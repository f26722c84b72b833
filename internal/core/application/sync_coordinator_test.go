package application_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sweepr/sweepr/internal/core/application"
	"github.com/sweepr/sweepr/internal/core/domain"
)

func TestSyncCoordinator(t *testing.T) {
	ctx := context.Background()

	t.Run("scans both branches up to the stop gap", func(t *testing.T) {
		wallets := newTestWallets(t, testTemplates[0])
		w := wallets[0]

		chain := &mockChainClient{}
		chain.On("GetBlockHeight", mock.Anything).Return(int64(120), nil)
		mockUsedAddress(chain, deriveAddress(t, w, domain.ExternalChain, 0))
		mockUsedAddress(
			chain, deriveAddress(t, w, domain.ExternalChain, 2),
			utxo{testTxid1, 0, 10000, true},
		)
		mockUsedAddress(
			chain, deriveAddress(t, w, domain.InternalChain, 1),
			utxo{testTxid2, 1, 2000, false},
		)
		mockUnusedAddresses(chain)

		syncer := application.NewSyncCoordinator(chain, 3, time.Second, false)
		res := syncer.Sync(ctx, testRunID, w)
		require.NoError(t, res.Err)
		require.Equal(t, domain.Balance{Confirmed: 10000, Unconfirmed: 2000}, res.Balance)
		require.Len(t, res.Utxos, 2)

		// external: 0..2 plus 3 unused, internal: 0..1 plus 3 unused.
		chain.AssertNumberOfCalls(t, "GetAddressStats", 11)
		chain.AssertNumberOfCalls(t, "GetAddressUtxos", 3)

		ext := res.Utxos[0]
		require.Equal(t, domain.ExternalChain, ext.Branch)
		require.Equal(t, uint32(2), ext.Index)
		require.Equal(t, deriveKey(t, w, domain.ExternalChain, 2).Script, ext.Script)

		frontier, err := w.Store.Frontier(ctx)
		require.NoError(t, err)
		require.Equal(t, domain.Frontier{LastExternalIndex: 2, LastInternalIndex: 1}, frontier)
	})

	t.Run("failures are isolated", func(t *testing.T) {
		wallets := newTestWallets(t, testTemplates...)

		chain := &mockChainClient{}
		chain.On("GetBlockHeight", mock.Anything).Return(int64(120), nil)
		chain.On(
			"GetAddressStats", mock.Anything,
			deriveAddress(t, wallets[0], domain.ExternalChain, 0),
		).Return(nil, fmt.Errorf("connection reset by peer"))
		mockUsedAddress(
			chain, deriveAddress(t, wallets[1], domain.ExternalChain, 0),
			utxo{testTxid1, 0, 10000, true},
		)
		mockUnusedAddresses(chain)

		syncer := application.NewSyncCoordinator(chain, 2, time.Second, false)
		results := syncer.SyncAll(ctx, testRunID, wallets)
		require.Len(t, results, 2)

		require.Equal(t, wallets[0], results[0].Wallet)
		require.ErrorIs(t, results[0].Err, domain.ErrSync)
		name, ok := domain.TemplateOf(results[0].Err)
		require.True(t, ok)
		require.Equal(t, testTemplates[0].Name, name)

		require.Equal(t, wallets[1], results[1].Wallet)
		require.NoError(t, results[1].Err)
		require.Equal(t, int64(10000), results[1].Balance.Confirmed)
	})

	t.Run("fails if chain tip is not available", func(t *testing.T) {
		wallets := newTestWallets(t, testTemplates[0])

		chain := &mockChainClient{}
		chain.On("GetBlockHeight", mock.Anything).Return(
			nil, context.DeadlineExceeded,
		)

		syncer := application.NewSyncCoordinator(chain, 2, time.Second, false)
		res := syncer.Sync(ctx, testRunID, wallets[0])
		require.ErrorIs(t, res.Err, domain.ErrSync)
		require.ErrorIs(t, res.Err, context.DeadlineExceeded)
		chain.AssertNotCalled(t, "GetAddressStats", mock.Anything, mock.Anything)
	})

	t.Run("resume scans at least up to the stored frontier", func(t *testing.T) {
		wallets := newTestWallets(t, testTemplates[0])
		w := wallets[0]
		err := w.Store.ApplySync(ctx, domain.SyncSnapshot{
			RunID:    "previous-run",
			Frontier: domain.Frontier{LastExternalIndex: 8, LastInternalIndex: -1},
		})
		require.NoError(t, err)

		chain := &mockChainClient{}
		chain.On("GetBlockHeight", mock.Anything).Return(int64(120), nil)
		mockUnusedAddresses(chain)

		syncer := application.NewSyncCoordinator(chain, 2, time.Second, true)
		res := syncer.Sync(ctx, testRunID, w)
		require.NoError(t, res.Err)
		require.Zero(t, res.Balance.Total())

		// external: 0..8, internal: 0..1.
		chain.AssertNumberOfCalls(t, "GetAddressStats", 11)
	})

	t.Run("fresh runs ignore the stored frontier", func(t *testing.T) {
		wallets := newTestWallets(t, testTemplates[0])
		w := wallets[0]
		err := w.Store.ApplySync(ctx, domain.SyncSnapshot{
			RunID:    "previous-run",
			Frontier: domain.Frontier{LastExternalIndex: 8, LastInternalIndex: -1},
		})
		require.NoError(t, err)

		chain := &mockChainClient{}
		chain.On("GetBlockHeight", mock.Anything).Return(int64(120), nil)
		mockUnusedAddresses(chain)

		syncer := application.NewSyncCoordinator(chain, 2, time.Second, false)
		res := syncer.Sync(ctx, testRunID, w)
		require.NoError(t, res.Err)
		chain.AssertNumberOfCalls(t, "GetAddressStats", 4)
	})
}
