package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

const (
	// TxVersion ...
	TxVersion = 2
	// SequenceRBF signals opt-in replaceability on every input.
	SequenceRBF = wire.MaxTxInSequenceNum - 2
)

// Input is an unspent output being spent by a sweep transaction.
type Input struct {
	TxID   string
	Index  uint32
	Value  int64
	Script []byte
}

// NewSweepPacketOpts is the struct given to NewSweepPacket method
type NewSweepPacketOpts struct {
	Inputs      []Input
	Destination []byte
	Amount      int64
}

func (o NewSweepPacketOpts) validate() error {
	if len(o.Inputs) <= 0 {
		return ErrEmptyInputs
	}
	for i, in := range o.Inputs {
		if _, err := chainhash.NewHashFromStr(in.TxID); err != nil {
			return fmt.Errorf("input %d: invalid txid: %w", i, err)
		}
		if in.Value <= 0 {
			return fmt.Errorf("input %d: value must be positive", i)
		}
		if len(in.Script) <= 0 {
			return fmt.Errorf("input %d: %w", i, ErrNullInputWitnessUtxo)
		}
	}
	if len(o.Destination) <= 0 {
		return ErrInvalidAddress
	}
	if o.Amount <= 0 {
		return ErrNonPositiveOutput
	}
	return nil
}

// NewSweepPacket returns a partial transaction spending all the given
// inputs to a single output. Every input carries its previous output so
// that it can be signed without fetching the funding transactions.
func NewSweepPacket(opts NewSweepPacketOpts) (*psbt.Packet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	outpoints := make([]*wire.OutPoint, 0, len(opts.Inputs))
	sequences := make([]uint32, 0, len(opts.Inputs))
	for _, in := range opts.Inputs {
		hash, _ := chainhash.NewHashFromStr(in.TxID)
		outpoints = append(outpoints, wire.NewOutPoint(hash, in.Index))
		sequences = append(sequences, SequenceRBF)
	}
	outputs := []*wire.TxOut{wire.NewTxOut(opts.Amount, opts.Destination)}

	packet, err := psbt.New(outpoints, outputs, TxVersion, 0, sequences)
	if err != nil {
		return nil, err
	}

	for i, in := range opts.Inputs {
		packet.Inputs[i].WitnessUtxo = wire.NewTxOut(in.Value, in.Script)
	}

	return packet, nil
}
