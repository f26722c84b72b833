package application

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/mempool"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/sweepr/sweepr/internal/core/domain"
	"github.com/sweepr/sweepr/pkg/wallet"
)

// SweepBuilder builds and signs drain transactions.
type SweepBuilder struct {
	maxRounds int
}

func NewSweepBuilder() *SweepBuilder {
	return &SweepBuilder{maxFeeRounds}
}

// BuildAndSign spends all the confirmed utxos of the wallet to a single
// output paying the destination script. The fee is the given rate times the
// virtual size of the signed transaction, found by rebuilding the
// transaction until the fee it pays matches the one its size requires.
func (b *SweepBuilder) BuildAndSign(
	w FundedWallet, destination []byte, feeRate decimal.Decimal,
) (*SweepTransaction, error) {
	name := w.Template.Name

	if len(w.Utxos) <= 0 {
		return nil, domain.NewWalletError(
			name, domain.ErrTxBuild, wallet.ErrEmptyInputs,
		)
	}
	if !feeRate.IsPositive() {
		return nil, domain.NewWalletError(
			name, domain.ErrFeeUnavailable, fmt.Errorf("fee rate %s", feeRate),
		)
	}

	inputs := make([]wallet.Input, 0, len(w.Utxos))
	keys := make([]wallet.InputKey, 0, len(w.Utxos))
	scriptTypes := make([]wallet.ScriptType, 0, len(w.Utxos))
	var total int64
	for _, u := range w.Utxos {
		inputs = append(inputs, wallet.Input{
			TxID:   u.TxID,
			Index:  u.VOut,
			Value:  u.Value,
			Script: u.Script,
		})
		keys = append(keys, wallet.InputKey{
			Descriptor: w.Descriptor(u.Branch),
			Index:      u.Index,
		})
		scriptTypes = append(scriptTypes, w.Template.ScriptType)
		total += u.Value
	}

	vsize := int64(wallet.EstimateTxSize(scriptTypes, [][]byte{destination}))
	fee := requiredFee(feeRate, vsize)

	var best *SweepTransaction
	for round := 0; round < b.maxRounds; round++ {
		amount := total - fee
		if amount <= 0 {
			return nil, domain.NewWalletError(name, domain.ErrTxBuild, fmt.Errorf(
				"balance of %d sats does not cover fee of %d sats", total, fee,
			))
		}
		if wallet.IsDust(amount, destination) {
			return nil, domain.NewWalletError(name, domain.ErrTxBuild, fmt.Errorf(
				"output of %d sats is dust", amount,
			))
		}

		packet, err := wallet.NewSweepPacket(wallet.NewSweepPacketOpts{
			Inputs:      inputs,
			Destination: destination,
			Amount:      amount,
		})
		if err != nil {
			return nil, domain.NewWalletError(name, domain.ErrTxBuild, err)
		}
		tx, err := wallet.SignTransaction(wallet.SignTransactionOpts{
			Packet: packet,
			Keys:   keys,
		})
		if err != nil {
			return nil, domain.NewWalletError(name, domain.ErrSign, err)
		}

		vsize = mempool.GetTxVirtualSize(btcutil.NewTx(tx))
		required := requiredFee(feeRate, vsize)

		sweepTx := &SweepTransaction{
			Template:    name,
			Destination: destination,
			FeeRate:     feeRate,
			Fee:         fee,
			Amount:      amount,
			VirtualSize: vsize,
			Packet:      packet,
			Tx:          tx,
			Finalized:   true,
		}

		if required == fee {
			return sweepTx, nil
		}
		// Paying a bit more than required is fine if the sizes never settle.
		if required < fee && (best == nil || fee < best.Fee) {
			best = sweepTx
		}

		log.WithField("template", name).Debugf(
			"fee round %d: paid %d sats, required %d sats for %d vbytes",
			round, fee, required, vsize,
		)
		fee = required
	}

	if best != nil {
		return best, nil
	}
	return nil, domain.NewWalletError(name, domain.ErrTxBuild, fmt.Errorf(
		"fee did not converge after %d rounds", b.maxRounds,
	))
}

func requiredFee(feeRate decimal.Decimal, vsize int64) int64 {
	return feeRate.Mul(decimal.NewFromInt(vsize)).Ceil().IntPart()
}
