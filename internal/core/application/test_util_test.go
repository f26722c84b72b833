package application_test

import (
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sweepr/sweepr/internal/core/application"
	"github.com/sweepr/sweepr/internal/core/domain"
	"github.com/sweepr/sweepr/internal/core/ports"
	dbbadger "github.com/sweepr/sweepr/internal/infrastructure/storage/badger"
	"github.com/sweepr/sweepr/pkg/wallet"
)

const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon " +
		"abandon abandon abandon abandon abandon cactus"
	testRunID = "e7d3a4a5-6b3c-4f0e-9d56-0f1e0b9d1d11"

	testTxid1 = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"
	testTxid2 = "0e3e2357e806b6cdb1f70b54c3a3a17b6714ee1f0e68bebb44a74b1efd512098"
)

var (
	regtest = &chaincfg.RegressionNetParams

	testTemplates = []domain.Template{
		{Name: "bip84-regtest", Prefix: "m/84'/1'/0'/", ScriptType: wallet.ScriptTypeNativeSegwit},
		{Name: "bip86-regtest", Prefix: "m/86'/1'/0'/", ScriptType: wallet.ScriptTypeTaproot},
	}
)

func testSeed(t *testing.T) []byte {
	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic: strings.Fields(testMnemonic),
	})
	require.NoError(t, err)
	return w.Seed()
}

// newTestWallets creates the wallets of the given templates on regtest,
// each backed by an in-memory store.
func newTestWallets(
	t *testing.T, templates ...domain.Template,
) []*application.CandidateWallet {
	factory := application.NewWalletFactory(
		dbbadger.NewStateStoreFactory("", nil), 2,
	)
	wallets, errs := factory.CreateAll(
		testSeed(t), regtest, templates, testRunID, false,
	)
	for _, err := range errs {
		require.NoError(t, err)
	}
	t.Cleanup(func() {
		for _, w := range wallets {
			w.Close()
		}
	})
	return wallets
}

func deriveAddress(
	t *testing.T, w *application.CandidateWallet, chain, index uint32,
) string {
	key, err := w.Descriptor(chain).Derive(index)
	require.NoError(t, err)
	return key.Address.EncodeAddress()
}

func deriveKey(
	t *testing.T, w *application.CandidateWallet, chain, index uint32,
) *wallet.DerivedKey {
	key, err := w.Descriptor(chain).Derive(index)
	require.NoError(t, err)
	return key
}

// mockUnusedAddresses makes every address not mocked before unused.
func mockUnusedAddresses(chain *mockChainClient) {
	chain.On("GetAddressStats", mock.Anything, mock.Anything).Return(
		addressStats{}, nil,
	)
}

func mockUsedAddress(
	chain *mockChainClient, address string, utxos ...ports.Utxo,
) {
	chain.On("GetAddressStats", mock.Anything, address).Return(
		addressStats{address, 1}, nil,
	)
	if utxos == nil {
		utxos = []ports.Utxo{}
	}
	chain.On("GetAddressUtxos", mock.Anything, address).Return(utxos, nil)
}
