package wallet

import "github.com/btcsuite/btcd/txscript"

const (
	// DustRelayFeeRate is the fee rate, in sat/vbyte, used by standard nodes
	// to tell whether an output is worth more than the cost of spending it.
	DustRelayFeeRate = 3

	// spend sizes of an output, scriptsig and witness discounted, used to
	// compute the dust threshold.
	nonWitnessSpendSize = 148
	witnessSpendSize    = 67
)

var (
	scriptSigSizeByScriptType = map[ScriptType]int{
		ScriptTypeLegacy:       108, // len + push + sig + push + pubkey
		ScriptTypeNestedSegwit: 24,  // len + push + p2wpkh script
		ScriptTypeNativeSegwit: 1,   // no scriptsig, still len is serialized
		ScriptTypeTaproot:      1,   // no scriptsig
	}
	witnessSizeByScriptType = map[ScriptType]int{
		ScriptTypeLegacy:       1,   // empty stack when tx has witnesses
		ScriptTypeNestedSegwit: 108, // count + len + sig + len + pubkey
		ScriptTypeNativeSegwit: 108, // count + len + sig + len + pubkey
		ScriptTypeTaproot:      66,  // count + len + schnorr sig
	}
)

// EstimateTxSize makes an estimation of the virtual size of a transaction
// spending inputs of the given script types to outputs with the given
// scripts. The estimation accounts for the largest possible ECDSA
// signatures so it never falls below the real size.
func EstimateTxSize(inScriptTypes []ScriptType, outScripts [][]byte) int {
	baseSize := calcTxBaseSize(inScriptTypes, outScripts)
	totalSize := baseSize + calcTxWitnessSize(inScriptTypes)

	weight := baseSize*3 + totalSize
	vsize := (weight + 3) / 4

	return vsize
}

func calcTxBaseSize(inScriptTypes []ScriptType, outScripts [][]byte) int {
	// hash + index + sequence
	inBaseSize := 40
	insSize := 0
	for _, scriptType := range inScriptTypes {
		insSize += inBaseSize + scriptSigSizeByScriptType[scriptType]
	}

	outsSize := 0
	for _, script := range outScripts {
		outsSize += outputSize(script)
	}

	// version + locktime
	return 8 +
		varIntSerializeSize(uint64(len(inScriptTypes))) +
		varIntSerializeSize(uint64(len(outScripts))) +
		insSize + outsSize
}

func calcTxWitnessSize(inScriptTypes []ScriptType) int {
	hasWitness := false
	insSize := 0
	for _, scriptType := range inScriptTypes {
		if scriptType != ScriptTypeLegacy {
			hasWitness = true
		}
		insSize += witnessSizeByScriptType[scriptType]
	}
	if !hasWitness {
		return 0
	}
	// marker + flag
	return 2 + insSize
}

// value + len + script
func outputSize(script []byte) int {
	return 8 + varIntSerializeSize(uint64(len(script))) + len(script)
}

// DustThreshold returns the minimum value an output with the given script
// must carry to be relayed by standard nodes.
func DustThreshold(script []byte) int64 {
	spendSize := nonWitnessSpendSize
	if txscript.IsWitnessProgram(script) {
		spendSize = witnessSpendSize
	}
	return int64(DustRelayFeeRate * (outputSize(script) + spendSize))
}

// IsDust returns whether an output of the given value and script is below
// the dust threshold.
func IsDust(value int64, script []byte) bool {
	return value < DustThreshold(script)
}
