package esplora

/**** ADDRESS ****/

type txStats struct {
	FundedTxoCount int   `json:"funded_txo_count"`
	FundedTxoSum   int64 `json:"funded_txo_sum"`
	SpentTxoCount  int   `json:"spent_txo_count"`
	SpentTxoSum    int64 `json:"spent_txo_sum"`
	TxCount        int   `json:"tx_count"`
}

// addressStats is the implementation of the ports.AddressStats interface
type addressStats struct {
	Address      string  `json:"address"`
	ChainStats   txStats `json:"chain_stats"`
	MempoolStats txStats `json:"mempool_stats"`
}

func (a addressStats) GetAddress() string {
	return a.Address
}

func (a addressStats) GetTxCount() int {
	return a.ChainStats.TxCount
}

func (a addressStats) GetMempoolTxCount() int {
	return a.MempoolStats.TxCount
}

// IsUsed returns whether the address ever appeared in a transaction,
// confirmed or not.
func (a addressStats) IsUsed() bool {
	return a.ChainStats.TxCount > 0 || a.MempoolStats.TxCount > 0
}

/**** UTXO ****/

type utxoStatus struct {
	Confirmed   bool   `json:"confirmed"`
	BlockHeight int64  `json:"block_height"`
	BlockHash   string `json:"block_hash"`
	BlockTime   int64  `json:"block_time"`
}

// utxo is the implementation of the ports.Utxo interface
type utxo struct {
	TxID   string     `json:"txid"`
	VOut   uint32     `json:"vout"`
	Value  int64      `json:"value"`
	Status utxoStatus `json:"status"`
}

func (u utxo) GetTxid() string {
	return u.TxID
}

func (u utxo) GetIndex() uint32 {
	return u.VOut
}

func (u utxo) GetValue() int64 {
	return u.Value
}

func (u utxo) IsConfirmed() bool {
	return u.Status.Confirmed
}

func (u utxo) GetBlockHeight() int64 {
	return u.Status.BlockHeight
}
