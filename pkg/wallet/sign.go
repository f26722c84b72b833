package wallet

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// InputKey tells which descriptor child controls an input.
type InputKey struct {
	Descriptor *Descriptor
	Index      uint32
}

// SignTransactionOpts is the struct given to SignTransaction method
type SignTransactionOpts struct {
	Packet *psbt.Packet
	Keys   []InputKey
}

func (o SignTransactionOpts) validate() error {
	if o.Packet == nil || o.Packet.UnsignedTx == nil {
		return ErrNullPacket
	}
	if len(o.Packet.Inputs) <= 0 {
		return ErrEmptyInputs
	}
	if len(o.Packet.Inputs) != len(o.Keys) {
		return ErrInvalidInputKeysLength
	}
	for i, in := range o.Packet.Inputs {
		if in.WitnessUtxo == nil {
			return fmt.Errorf("input %d: %w", i, ErrNullInputWitnessUtxo)
		}
		if o.Keys[i].Descriptor == nil {
			return fmt.Errorf("input %d: %w", i, ErrNullDescriptor)
		}
	}
	return nil
}

// SignTransaction signs and finalizes every input of the given partial
// transaction with the key found at the matching descriptor child, then
// verifies the scripts and returns the network-ready transaction.
func SignTransaction(opts SignTransactionOpts) (*wire.MsgTx, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	packet := opts.Packet
	tx := packet.UnsignedTx

	prevOuts := txscript.NewMultiPrevOutFetcher(nil)
	for i, in := range tx.TxIn {
		prevOuts.AddPrevOut(in.PreviousOutPoint, packet.Inputs[i].WitnessUtxo)
	}
	sigHashes := txscript.NewTxSigHashes(tx, prevOuts)

	for i := range packet.Inputs {
		if err := signInput(packet, i, opts.Keys[i], sigHashes); err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
	}

	signedTx, err := psbt.Extract(packet)
	if err != nil {
		return nil, err
	}

	for i, in := range packet.Inputs {
		prevOut := in.WitnessUtxo
		vm, err := txscript.NewEngine(
			prevOut.PkScript, signedTx, i, txscript.StandardVerifyFlags,
			nil, sigHashes, prevOut.Value, prevOuts,
		)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		if err := vm.Execute(); err != nil {
			return nil, fmt.Errorf(
				"input %d: %w: %s", i, ErrSignatureVerification, err,
			)
		}
	}

	return signedTx, nil
}

func signInput(
	packet *psbt.Packet, inIndex int, inKey InputKey,
	sigHashes *txscript.TxSigHashes,
) error {
	tx := packet.UnsignedTx
	prevOut := packet.Inputs[inIndex].WitnessUtxo

	key, err := inKey.Descriptor.Derive(inKey.Index)
	if err != nil {
		return err
	}
	if !bytes.Equal(key.Script, prevOut.PkScript) {
		return fmt.Errorf(
			"key at %s does not control the spent output", key.Path,
		)
	}

	var (
		scriptSig []byte
		witness   wire.TxWitness
	)

	switch inKey.Descriptor.ScriptType() {
	case ScriptTypeLegacy:
		scriptSig, err = txscript.SignatureScript(
			tx, inIndex, prevOut.PkScript, txscript.SigHashAll, key.PrivKey, true,
		)
	case ScriptTypeNativeSegwit:
		witness, err = txscript.WitnessSignature(
			tx, sigHashes, inIndex, prevOut.Value, prevOut.PkScript,
			txscript.SigHashAll, key.PrivKey, true,
		)
	case ScriptTypeNestedSegwit:
		witness, err = txscript.WitnessSignature(
			tx, sigHashes, inIndex, prevOut.Value, key.RedeemScript,
			txscript.SigHashAll, key.PrivKey, true,
		)
		if err == nil {
			scriptSig, err = txscript.NewScriptBuilder().
				AddData(key.RedeemScript).Script()
		}
	case ScriptTypeTaproot:
		witness, err = txscript.TaprootWitnessSignature(
			tx, sigHashes, inIndex, prevOut.Value, prevOut.PkScript,
			txscript.SigHashDefault, key.PrivKey,
		)
	default:
		return ErrUnsupportedScriptType
	}
	if err != nil {
		return err
	}

	in := &packet.Inputs[inIndex]
	if len(scriptSig) > 0 {
		in.FinalScriptSig = scriptSig
	}
	if len(witness) > 0 {
		serialized, err := serializeWitness(witness)
		if err != nil {
			return err
		}
		in.FinalScriptWitness = serialized
	}
	return nil
}
