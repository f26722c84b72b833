package application_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/sweepr/sweepr/internal/core/ports"
)

// **** Chain client ****

type mockChainClient struct {
	mock.Mock
}

func (m *mockChainClient) GetAddressStats(
	ctx context.Context, address string,
) (ports.AddressStats, error) {
	args := m.Called(ctx, address)

	var res ports.AddressStats
	if a := args.Get(0); a != nil {
		res = a.(ports.AddressStats)
	}
	return res, args.Error(1)
}

func (m *mockChainClient) GetAddressUtxos(
	ctx context.Context, address string,
) ([]ports.Utxo, error) {
	args := m.Called(ctx, address)

	var res []ports.Utxo
	if a := args.Get(0); a != nil {
		res = a.([]ports.Utxo)
	}
	return res, args.Error(1)
}

func (m *mockChainClient) GetFeeEstimates(
	ctx context.Context,
) (map[uint32]decimal.Decimal, error) {
	args := m.Called(ctx)

	var res map[uint32]decimal.Decimal
	if a := args.Get(0); a != nil {
		res = a.(map[uint32]decimal.Decimal)
	}
	return res, args.Error(1)
}

func (m *mockChainClient) BroadcastTransaction(
	ctx context.Context, txHex string,
) (string, error) {
	args := m.Called(ctx, txHex)

	var res string
	if a := args.Get(0); a != nil {
		res = a.(string)
	}
	return res, args.Error(1)
}

func (m *mockChainClient) GetBlockHeight(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	var res int64
	if a := args.Get(0); a != nil {
		res = a.(int64)
	}
	return res, args.Error(1)
}

// **** State store factory ****

type mockStoreFactory struct {
	mock.Mock
}

func (m *mockStoreFactory) Open(scope ports.StoreScope) (ports.StateStore, error) {
	args := m.Called(scope)

	var res ports.StateStore
	if a := args.Get(0); a != nil {
		res = a.(ports.StateStore)
	}
	return res, args.Error(1)
}

// **** Chain types ****

type addressStats struct {
	address string
	txCount int
}

func (a addressStats) GetAddress() string     { return a.address }
func (a addressStats) GetTxCount() int        { return a.txCount }
func (a addressStats) GetMempoolTxCount() int { return 0 }
func (a addressStats) IsUsed() bool           { return a.txCount > 0 }

type utxo struct {
	txid      string
	vout      uint32
	value     int64
	confirmed bool
}

func (u utxo) GetTxid() string   { return u.txid }
func (u utxo) GetIndex() uint32  { return u.vout }
func (u utxo) GetValue() int64   { return u.value }
func (u utxo) IsConfirmed() bool { return u.confirmed }
func (u utxo) GetBlockHeight() int64 {
	if u.confirmed {
		return 100
	}
	return 0
}
