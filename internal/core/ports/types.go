package ports

type AddressStats interface {
	GetAddress() string
	GetTxCount() int
	GetMempoolTxCount() int
	IsUsed() bool
}

type UtxoKey interface {
	GetTxid() string
	GetIndex() uint32
}

type Utxo interface {
	UtxoKey
	GetValue() int64
	IsConfirmed() bool
	GetBlockHeight() int64
}
