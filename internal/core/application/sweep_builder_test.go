package application_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/sweepr/sweepr/internal/core/application"
	"github.com/sweepr/sweepr/internal/core/domain"
)

func newFundedWallet(
	t *testing.T, w *application.CandidateWallet, values ...int64,
) application.FundedWallet {
	utxos := make([]domain.Utxo, 0, len(values))
	var total int64
	for i, v := range values {
		chain := uint32(i % 2)
		key := deriveKey(t, w, chain, uint32(i))
		utxos = append(utxos, domain.Utxo{
			TxID:      testTxid1,
			VOut:      uint32(i),
			Value:     v,
			Script:    key.Script,
			Address:   key.Address.EncodeAddress(),
			Branch:    chain,
			Index:     uint32(i),
			Confirmed: true,
		})
		total += v
	}
	return application.FundedWallet{
		CandidateWallet: w,
		Balance:         domain.Balance{Confirmed: total},
		Utxos:           utxos,
	}
}

func TestSweepBuilder(t *testing.T) {
	wallets := newTestWallets(t, testTemplates...)
	destination := deriveKey(t, wallets[0], domain.ExternalChain, 99).Script
	feeRate := decimal.NewFromInt(5)
	builder := application.NewSweepBuilder()

	t.Run("valid", func(t *testing.T) {
		tests := []struct {
			name   string
			wallet *application.CandidateWallet
			values []int64
		}{
			{"single input", wallets[0], []int64{50000}},
			{"inputs on both branches", wallets[0], []int64{50000, 20000, 3000}},
			{"taproot inputs", wallets[1], []int64{10000, 10000}},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				funded := newFundedWallet(t, tt.wallet, tt.values...)

				tx, err := builder.BuildAndSign(funded, destination, feeRate)
				require.NoError(t, err)
				require.NotNil(t, tx)

				require.Equal(t, funded.Balance.Confirmed, tx.Amount+tx.Fee)
				require.GreaterOrEqual(t, tx.Fee, 5*tx.VirtualSize)
				require.LessOrEqual(t, tx.Fee, 5*(tx.VirtualSize+1))

				require.Len(t, tx.Tx.TxIn, len(tt.values))
				require.Len(t, tx.Tx.TxOut, 1)
				require.Equal(t, tx.Amount, tx.Tx.TxOut[0].Value)
				require.Equal(t, destination, tx.Tx.TxOut[0].PkScript)
				require.Equal(t, tt.wallet.Template.Name, tx.Template)

				txHex, err := tx.Hex()
				require.NoError(t, err)
				require.NotEmpty(t, txHex)
				require.Len(t, tx.TxID(), 64)
			})
		}
	})

	t.Run("invalid", func(t *testing.T) {
		tests := []struct {
			name          string
			funded        application.FundedWallet
			feeRate       decimal.Decimal
			expectedError error
		}{
			{
				name:          "no inputs",
				funded:        newFundedWallet(t, wallets[0]),
				feeRate:       feeRate,
				expectedError: domain.ErrTxBuild,
			},
			{
				name:          "fee exceeds balance",
				funded:        newFundedWallet(t, wallets[0], 500),
				feeRate:       feeRate,
				expectedError: domain.ErrTxBuild,
			},
			{
				name:          "dust output",
				funded:        newFundedWallet(t, wallets[0], 800),
				feeRate:       feeRate,
				expectedError: domain.ErrTxBuild,
			},
			{
				name:          "zero fee rate",
				funded:        newFundedWallet(t, wallets[0], 50000),
				feeRate:       decimal.Zero,
				expectedError: domain.ErrFeeUnavailable,
			},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				tx, err := builder.BuildAndSign(tt.funded, destination, tt.feeRate)
				require.ErrorIs(t, err, tt.expectedError)
				require.Nil(t, tx)
			})
		}
	})
}
