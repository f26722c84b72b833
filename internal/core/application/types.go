package application

import (
	"bytes"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/shopspring/decimal"
	"github.com/sweepr/sweepr/internal/core/domain"
	"github.com/sweepr/sweepr/internal/core/ports"
	"github.com/sweepr/sweepr/pkg/wallet"
)

// SweepRequest holds the user input of a sweep run.
type SweepRequest struct {
	Mnemonic    string
	Passphrase  string
	Destination string
	Network     string
	// FeeTarget overrides the configured confirmation target when not nil.
	FeeTarget *uint32
	// DryRun builds and signs every sweep transaction without broadcasting.
	DryRun bool
}

// ScanRequest holds the user input of a discovery only run.
type ScanRequest struct {
	Mnemonic   string
	Passphrase string
	Network    string
}

// CandidateWallet is the account of a template. It exclusively owns its
// state store.
type CandidateWallet struct {
	Template domain.Template
	Paths    domain.PathPair
	Network  *chaincfg.Params
	External *wallet.Descriptor
	Internal *wallet.Descriptor
	Store    ports.StateStore
}

// Descriptor returns the descriptor of the given chain.
func (w *CandidateWallet) Descriptor(chain uint32) *wallet.Descriptor {
	if chain == domain.InternalChain {
		return w.Internal
	}
	return w.External
}

// Close releases the state store.
func (w *CandidateWallet) Close() error {
	if w.Store == nil {
		return nil
	}
	return w.Store.Close()
}

// SyncResult is the view of a wallet after syncing with the chain.
type SyncResult struct {
	Wallet  *CandidateWallet
	Balance domain.Balance
	Utxos   []domain.Utxo
	Err     error
}

// FundedWallet is a wallet holding confirmed funds in the current run.
// Utxos only lists the confirmed ones.
type FundedWallet struct {
	*CandidateWallet
	Balance domain.Balance
	Utxos   []domain.Utxo
}

// SweepTransaction is the signed drain transaction of a funded wallet.
type SweepTransaction struct {
	Template    string
	Destination []byte
	FeeRate     decimal.Decimal
	Fee         int64
	Amount      int64
	VirtualSize int64
	Packet      *psbt.Packet
	Tx          *wire.MsgTx
	Finalized   bool
}

// TxID ...
func (t *SweepTransaction) TxID() string {
	return t.Tx.TxHash().String()
}

// Hex returns the network serialization of the signed transaction.
func (t *SweepTransaction) Hex() (string, error) {
	var buf bytes.Buffer
	if err := t.Tx.Serialize(&buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf.Bytes()), nil
}

// BroadcastOutcome ...
type BroadcastOutcome struct {
	TxID string
	Err  error
}
