package wallet

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

var (
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network params are null")
	// ErrNullInputWitnessUtxo ...
	ErrNullInputWitnessUtxo = errors.New("input witness utxo must not be null")
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic is null")
	// ErrNullSeed ...
	ErrNullSeed = errors.New("seed is null")
	// ErrNullMasterKey ...
	ErrNullMasterKey = errors.New("master key is null")
	// ErrNullDerivationPath ...
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrNullPacket ...
	ErrNullPacket = errors.New("psbt packet must not be null")
	// ErrNullDescriptor ...
	ErrNullDescriptor = errors.New("descriptor must not be null")

	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidMnemonicLength ...
	ErrInvalidMnemonicLength = errors.New("mnemonic must be made of 12 or 24 words")
	// ErrInvalidDerivationPath ...
	ErrInvalidDerivationPath = errors.New("invalid derivation path")
	// ErrInvalidNetwork ...
	ErrInvalidNetwork = errors.New(
		"network must be one of mainnet, testnet or regtest",
	)
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address is invalid")
	// ErrInvalidAddressNetwork ...
	ErrInvalidAddressNetwork = errors.New("address does not belong to network")
	// ErrInvalidInputKeysLength ...
	ErrInvalidInputKeysLength = errors.New(
		"length of tx inputs and input keys must match",
	)
	// ErrUnsupportedScriptType ...
	ErrUnsupportedScriptType = errors.New("script type not supported")

	// ErrEmptyInputs ...
	ErrEmptyInputs = errors.New("input list must not be empty")
	// ErrNonPositiveOutput ...
	ErrNonPositiveOutput = errors.New("output amount must be positive")

	// ErrMalformedDerivationPath ...
	ErrMalformedDerivationPath = errors.New(
		"path must not start or end with a '/' and " +
			"can optionally start with 'm/' for absolute paths",
	)
	// ErrSignatureVerification ...
	ErrSignatureVerification = errors.New("signature verification failed")
)

// Wallet holds the bip39 seed every sweep account is derived from.
type Wallet struct {
	mnemonic []string
	seed     []byte
}

// NewWalletFromMnemonicOpts is the struct given to the NewWalletFromMnemonic
// method
type NewWalletFromMnemonicOpts struct {
	Mnemonic   []string
	Passphrase string
}

func (o NewWalletFromMnemonicOpts) validate() error {
	if len(o.Mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if len(o.Mnemonic) != 12 && len(o.Mnemonic) != 24 {
		return ErrInvalidMnemonicLength
	}
	if !isMnemonicValid(o.Mnemonic) {
		return ErrInvalidMnemonic
	}
	return nil
}

// NewWalletFromMnemonic generates the seed from the provided mnemonic and
// optional passphrase
func NewWalletFromMnemonic(opts NewWalletFromMnemonicOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	mnemonic := make([]string, len(opts.Mnemonic))
	copy(mnemonic, opts.Mnemonic)

	return &Wallet{
		mnemonic: mnemonic,
		seed:     generateSeedFromMnemonic(mnemonic, opts.Passphrase),
	}, nil
}

func (w *Wallet) validate() error {
	if len(w.mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if len(w.seed) <= 0 {
		return ErrNullSeed
	}
	return nil
}

// Seed returns a copy of the wallet seed
func (w *Wallet) Seed() []byte {
	seed := make([]byte, len(w.seed))
	copy(seed, w.seed)
	return seed
}

// MasterKey returns a fresh BIP32 master key for the given network.
// Every caller gets its own instance so keys can be derived concurrently.
func (w *Wallet) MasterKey(net *chaincfg.Params) (*hdkeychain.ExtendedKey, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}
	return NewMasterKey(w.seed, net)
}

// NewMasterKey returns the BIP32 master key of the given seed for the
// given network.
func NewMasterKey(seed []byte, net *chaincfg.Params) (*hdkeychain.ExtendedKey, error) {
	if len(seed) <= 0 {
		return nil, ErrNullSeed
	}
	if net == nil {
		return nil, ErrNullNetwork
	}
	key, err := hdkeychain.NewMaster(seed, net)
	if err != nil {
		return nil, fmt.Errorf("master key: %w", err)
	}
	return key, nil
}
