package domain

// UtxoKey represent the ID of an Utxo, composed by its txid and vout.
type UtxoKey struct {
	TxID string
	VOut uint32
}

// Utxo is an unspent output locked to one of the scripts of a wallet,
// along with the position of that script in the wallet.
type Utxo struct {
	TxID        string
	VOut        uint32
	Value       int64
	Script      []byte
	Address     string
	Branch      uint32
	Index       uint32
	Confirmed   bool
	BlockHeight int64
}

// Key ...
func (u Utxo) Key() UtxoKey {
	return UtxoKey{u.TxID, u.VOut}
}

// Balance is the sum of the values of a set of utxos, split by
// confirmation status.
type Balance struct {
	Confirmed   int64
	Unconfirmed int64
}

// NewBalance ...
func NewBalance(utxos []Utxo) Balance {
	var b Balance
	for _, u := range utxos {
		if u.Confirmed {
			b.Confirmed += u.Value
		} else {
			b.Unconfirmed += u.Value
		}
	}
	return b
}

// Total ...
func (b Balance) Total() int64 {
	return b.Confirmed + b.Unconfirmed
}

// ConfirmedUtxos returns the confirmed utxos of the given list, keeping
// their order.
func ConfirmedUtxos(utxos []Utxo) []Utxo {
	confirmed := make([]Utxo, 0, len(utxos))
	for _, u := range utxos {
		if u.Confirmed {
			confirmed = append(confirmed, u)
		}
	}
	return confirmed
}

// Frontier keeps the index of the last used address of each branch of a
// wallet, -1 if none was ever used.
type Frontier struct {
	LastExternalIndex int
	LastInternalIndex int
}

// NewFrontier ...
func NewFrontier() Frontier {
	return Frontier{-1, -1}
}

// Last ...
func (f Frontier) Last(chain uint32) int {
	if chain == InternalChain {
		return f.LastInternalIndex
	}
	return f.LastExternalIndex
}

// Use records the given index as used, if greater than the current one.
func (f *Frontier) Use(chain uint32, index int) {
	if chain == InternalChain {
		if index > f.LastInternalIndex {
			f.LastInternalIndex = index
		}
		return
	}
	if index > f.LastExternalIndex {
		f.LastExternalIndex = index
	}
}

// SyncSnapshot is the whole view of a wallet resulting from a scan. It is
// applied to the state store at once.
type SyncSnapshot struct {
	RunID     string
	TipHeight int64
	Frontier  Frontier
	Utxos     []Utxo
}
