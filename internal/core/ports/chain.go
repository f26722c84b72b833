package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// ChainClient is the chain data provider shared by all wallets of a run.
// Implementations must be safe for concurrent use.
type ChainClient interface {
	// GetAddressStats returns the on-chain and mempool activity of the given
	// address.
	GetAddressStats(ctx context.Context, address string) (AddressStats, error)
	// GetAddressUtxos returns the unspent outputs locked to the given
	// address, confirmed or not.
	GetAddressUtxos(ctx context.Context, address string) ([]Utxo, error)
	// GetFeeEstimates returns the fee rate, in sat/vbyte, expected to get a
	// tx confirmed within each of the returned block targets.
	GetFeeEstimates(ctx context.Context) (map[uint32]decimal.Decimal, error)
	// BroadcastTransaction relays the given raw tx and returns its id.
	BroadcastTransaction(ctx context.Context, txHex string) (string, error)
	// GetBlockHeight returns the height of the chain tip.
	GetBlockHeight(ctx context.Context) (int64, error)
}
