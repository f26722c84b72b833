package wallet

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/mempool"
	"github.com/stretchr/testify/require"
)

const testTxid = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"

func TestSignTransaction(t *testing.T) {
	net := &chaincfg.RegressionNetParams
	destinationKey, err := newTestDescriptor(
		t, "m/84'/1'/1'/0", ScriptTypeNativeSegwit, net,
	).Derive(0)
	require.NoError(t, err)
	destination := destinationKey.Script

	tests := []struct {
		name       string
		path       string
		scriptType ScriptType
		scriptSig  bool
		witness    bool
	}{
		{"legacy", "m/44'/1'/0'/0", ScriptTypeLegacy, true, false},
		{"nested segwit", "m/49'/1'/0'/0", ScriptTypeNestedSegwit, true, true},
		{"native segwit", "m/84'/1'/0'/0", ScriptTypeNativeSegwit, false, true},
		{"taproot", "m/86'/1'/0'/0", ScriptTypeTaproot, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			descriptor := newTestDescriptor(t, tt.path, tt.scriptType, net)

			inputs := make([]Input, 0, 2)
			keys := make([]InputKey, 0, 2)
			var inputsSize []ScriptType
			for i := uint32(0); i < 2; i++ {
				key, err := descriptor.Derive(i)
				require.NoError(t, err)
				inputs = append(inputs, Input{
					TxID: testTxid, Index: i, Value: 50000, Script: key.Script,
				})
				keys = append(keys, InputKey{Descriptor: descriptor, Index: i})
				inputsSize = append(inputsSize, tt.scriptType)
			}

			packet, err := NewSweepPacket(NewSweepPacketOpts{
				Inputs:      inputs,
				Destination: destination,
				Amount:      99000,
			})
			require.NoError(t, err)

			tx, err := SignTransaction(SignTransactionOpts{
				Packet: packet,
				Keys:   keys,
			})
			require.NoError(t, err)
			require.Len(t, tx.TxIn, 2)
			require.Len(t, tx.TxOut, 1)

			for _, in := range tx.TxIn {
				require.Equal(t, tt.scriptSig, len(in.SignatureScript) > 0)
				require.Equal(t, tt.witness, len(in.Witness) > 0)
				require.Equal(t, uint32(SequenceRBF), in.Sequence)
			}

			vsize := mempool.GetTxVirtualSize(btcutil.NewTx(tx))
			estimated := EstimateTxSize(inputsSize, [][]byte{destination})
			require.LessOrEqual(t, vsize, int64(estimated))
			require.GreaterOrEqual(t, vsize, int64(estimated-4))
		})
	}
}

func TestFailingSignTransaction(t *testing.T) {
	net := &chaincfg.RegressionNetParams
	descriptor := newTestDescriptor(t, "m/84'/1'/0'/0", ScriptTypeNativeSegwit, net)
	other := newTestDescriptor(t, "m/84'/1'/0'/1", ScriptTypeNativeSegwit, net)

	key, err := descriptor.Derive(0)
	require.NoError(t, err)

	newPacket := func() SignTransactionOpts {
		packet, err := NewSweepPacket(NewSweepPacketOpts{
			Inputs: []Input{
				{TxID: testTxid, Index: 0, Value: 10000, Script: key.Script},
			},
			Destination: key.Script,
			Amount:      9000,
		})
		require.NoError(t, err)
		return SignTransactionOpts{Packet: packet}
	}

	t.Run("null packet", func(t *testing.T) {
		_, err := SignTransaction(SignTransactionOpts{})
		require.ErrorIs(t, err, ErrNullPacket)
	})

	t.Run("keys length", func(t *testing.T) {
		_, err := SignTransaction(newPacket())
		require.ErrorIs(t, err, ErrInvalidInputKeysLength)
	})

	t.Run("wrong key", func(t *testing.T) {
		opts := newPacket()
		opts.Keys = []InputKey{{Descriptor: other, Index: 0}}
		_, err := SignTransaction(opts)
		require.Error(t, err)
	})

	t.Run("empty inputs", func(t *testing.T) {
		_, err := NewSweepPacket(NewSweepPacketOpts{
			Destination: key.Script, Amount: 1000,
		})
		require.ErrorIs(t, err, ErrEmptyInputs)
	})

	t.Run("non positive output", func(t *testing.T) {
		_, err := NewSweepPacket(NewSweepPacketOpts{
			Inputs: []Input{
				{TxID: testTxid, Index: 0, Value: 10000, Script: key.Script},
			},
			Destination: key.Script,
		})
		require.ErrorIs(t, err, ErrNonPositiveOutput)
	})
}
